package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assessment é uma avaliação clínica de um animal em um momento.
// Todos os campos clínicos são opcionais: o dataset legado tem lacunas.
type Assessment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	GeneralState            *GeneralState     `gorm:"size:30" json:"general_state"`
	Ectoparasites           *Severity         `gorm:"size:30" json:"ectoparasites"`
	NutritionalState        *NutritionalState `gorm:"size:30" json:"nutritional_state"`
	Coat                    *LesionSeverity   `gorm:"size:30" json:"coat"`
	Nails                   *LesionSeverity   `gorm:"size:30" json:"nails"`
	MucosaColor             *MucosaColor      `gorm:"size:40" json:"mucosa_color"`
	MuzzleEarLesion         *PresenceAbsence  `gorm:"size:30" json:"muzzle_ear_lesion"`
	LymphNodes              *LesionSeverity   `gorm:"size:30" json:"lymph_nodes"`
	Blepharitis             *PresenceAbsence  `gorm:"size:30" json:"blepharitis"`
	Conjunctivitis          *PresenceAbsence  `gorm:"size:30" json:"conjunctivitis"`
	Alopecia                *PresenceAbsence  `gorm:"size:30" json:"alopecia"`
	Bleeding                *PresenceAbsence  `gorm:"size:30" json:"bleeding"`
	SkinLesion              *PresenceAbsence  `gorm:"size:30" json:"skin_lesion"`
	MuzzleLipDepigmentation *PresenceAbsence  `gorm:"size:30" json:"muzzle_lip_depigmentation"`

	// Resultados laboratoriais
	Culture   *DiagnosisResult `gorm:"size:10" json:"culture"`
	Slide     *DiagnosisResult `gorm:"size:10" json:"slide"`
	Diagnosis *DiagnosisResult `gorm:"size:10" json:"diagnosis"`

	AnimalID uuid.UUID `gorm:"type:uuid;not null" json:"animal_id"`
	Animal   Animal    `json:"animal"`

	UserID uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User   User      `json:"user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
