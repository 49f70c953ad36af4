package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Breed struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (b *Breed) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
