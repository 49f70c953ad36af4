package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/models"
)

type AssessmentGormRepository struct {
	db *gorm.DB
}

func NewAssessmentGormRepository(db *gorm.DB) *AssessmentGormRepository {
	return &AssessmentGormRepository{db: db}
}

func (r *AssessmentGormRepository) GetAnimalByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Animal, error) {

	var animal models.Animal
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Breed").
		First(&animal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &animal, nil
}

func (r *AssessmentGormRepository) CreateAssessment(
	ctx context.Context,
	as *models.Assessment,
) error {
	return r.db.WithContext(ctx).Create(as).Error
}

func (r *AssessmentGormRepository) GetAssessmentByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Assessment, error) {

	var as models.Assessment
	if err := r.db.WithContext(ctx).
		Preload("Animal").
		Preload("Animal.Owner").
		Preload("Animal.Breed").
		Preload("User").
		Preload("User.Role").
		First(&as, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &as, nil
}

func (r *AssessmentGormRepository) DeleteAssessment(
	ctx context.Context,
	id uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Assessment{}, "id = ?", id).Error
}
