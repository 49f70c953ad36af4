package assessment

import (
	"context"

	"github.com/google/uuid"

	"github.com/infopontes/leishai-backend/internal/audit"
	domain "github.com/infopontes/leishai-backend/internal/domain/assessment"
	"github.com/infopontes/leishai-backend/internal/httperr"
)

type DeleteAssessment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAssessment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAssessment {
	return &DeleteAssessment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAssessment) Execute(
	ctx context.Context,
	id uuid.UUID,
	actorID uuid.UUID,
) error {

	if _, err := uc.repo.GetAssessmentByID(ctx, id); err != nil {
		return httperr.ErrBusiness(httperr.CodeAssessmentNotFound)
	}

	if err := uc.repo.DeleteAssessment(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "assessment_deleted",
		Entity:   "assessment",
		EntityID: &id,
	})

	return nil
}
