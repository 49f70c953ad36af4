package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Animal struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// Identificador herdado do dataset legado, usado para deduplicar
	// a importação via CSV.
	OriginalID *string `gorm:"size:50;uniqueIndex" json:"original_id"`

	Name string `gorm:"size:100;index;not null" json:"name"`
	Sex  string `gorm:"size:1" json:"sex"`

	PhotoURL string `gorm:"size:500" json:"photo_url"`

	OwnerID uuid.UUID `gorm:"type:uuid;not null" json:"owner_id"`
	Owner   Owner     `json:"owner"`

	BreedID uuid.UUID `gorm:"type:uuid;not null" json:"breed_id"`
	Breed   Breed     `json:"breed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Animal) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
