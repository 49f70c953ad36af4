package assessment

import (
	"context"

	"github.com/google/uuid"

	"github.com/infopontes/leishai-backend/internal/audit"
	domain "github.com/infopontes/leishai-backend/internal/domain/assessment"
	"github.com/infopontes/leishai-backend/internal/httperr"
	"github.com/infopontes/leishai-backend/internal/models"
)

type CreateAssessmentInput struct {
	AnimalID uuid.UUID
	UserID   uuid.UUID

	Fields models.Assessment
}

type CreateAssessment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAssessment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAssessment {
	return &CreateAssessment{
		repo:  repo,
		audit: audit,
	}
}

// Execute valida o animal, carimba o autor vindo do token e grava a
// avaliação, despachando o evento de auditoria fora do caminho crítico.
func (uc *CreateAssessment) Execute(
	ctx context.Context,
	in CreateAssessmentInput,
) (*models.Assessment, error) {

	animal, err := uc.repo.GetAnimalByID(ctx, in.AnimalID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAnimalNotFound)
	}

	as := in.Fields
	as.AnimalID = animal.ID
	as.UserID = in.UserID

	if err := uc.repo.CreateAssessment(ctx, &as); err != nil {
		return nil, err
	}

	created, err := uc.repo.GetAssessmentByID(ctx, as.ID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "assessment_created",
		Entity:   "assessment",
		EntityID: &as.ID,
	})

	return created, nil
}
