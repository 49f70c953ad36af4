package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Owner struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:150;index;not null" json:"name"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Address      string    `gorm:"size:255" json:"address"`
	Neighborhood string    `gorm:"size:100" json:"neighborhood"`
	City         string    `gorm:"size:100" json:"city"`
	State        string    `gorm:"size:2" json:"state"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Owner) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
