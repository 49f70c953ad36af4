package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:100" json:"full_name"`
	Institution  string    `gorm:"size:100" json:"institution"`

	// Usuários nunca são removidos; desativar equivale a soft delete.
	IsActive bool `gorm:"default:false" json:"is_active"`

	RoleID *uuid.UUID `gorm:"type:uuid" json:"role_id"`
	Role   *Role      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"role,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role != nil && u.Role.Name == "admin"
}
