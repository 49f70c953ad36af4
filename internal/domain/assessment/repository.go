package assessment

import (
	"context"

	"github.com/google/uuid"

	"github.com/infopontes/leishai-backend/internal/models"
)

type Repository interface {
	// -------- Animal --------
	GetAnimalByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Animal, error)

	// -------- Assessment --------
	CreateAssessment(
		ctx context.Context,
		as *models.Assessment,
	) error

	GetAssessmentByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Assessment, error)

	DeleteAssessment(
		ctx context.Context,
		id uuid.UUID,
	) error
}
