package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/audit"
	"github.com/infopontes/leishai-backend/internal/httperr"
	"github.com/infopontes/leishai-backend/internal/httpresp"
	"github.com/infopontes/leishai-backend/internal/middleware"
	"github.com/infopontes/leishai-backend/internal/models"
	ucAssessment "github.com/infopontes/leishai-backend/internal/usecase/assessment"
)

type AssessmentHandler struct {
	db       *gorm.DB
	createUC *ucAssessment.CreateAssessment
	deleteUC *ucAssessment.DeleteAssessment
	audit    *audit.Dispatcher
}

func NewAssessmentHandler(
	db *gorm.DB,
	createUC *ucAssessment.CreateAssessment,
	deleteUC *ucAssessment.DeleteAssessment,
	auditDispatcher *audit.Dispatcher,
) *AssessmentHandler {
	return &AssessmentHandler{
		db:       db,
		createUC: createUC,
		deleteUC: deleteUC,
		audit:    auditDispatcher,
	}
}

// --------- Requests ---------

// ClinicalFieldsRequest cobre os campos clínicos compartilhados entre
// criação e atualização. Campo ausente fica nulo no banco.
type ClinicalFieldsRequest struct {
	GeneralState            *string `json:"general_state"`
	Ectoparasites           *string `json:"ectoparasites"`
	NutritionalState        *string `json:"nutritional_state"`
	Coat                    *string `json:"coat"`
	Nails                   *string `json:"nails"`
	MucosaColor             *string `json:"mucosa_color"`
	MuzzleEarLesion         *string `json:"muzzle_ear_lesion"`
	LymphNodes              *string `json:"lymph_nodes"`
	Blepharitis             *string `json:"blepharitis"`
	Conjunctivitis          *string `json:"conjunctivitis"`
	Alopecia                *string `json:"alopecia"`
	Bleeding                *string `json:"bleeding"`
	SkinLesion              *string `json:"skin_lesion"`
	MuzzleLipDepigmentation *string `json:"muzzle_lip_depigmentation"`
	Culture                 *string `json:"culture"`
	Slide                   *string `json:"slide"`
	Diagnosis               *string `json:"diagnosis"`
}

type CreateAssessmentRequest struct {
	AnimalID uuid.UUID `json:"animal_id" binding:"required"`
	ClinicalFieldsRequest
}

// apply valida cada valor contra o vocabulário clínico e escreve os
// campos presentes no destino.
func (r *ClinicalFieldsRequest) apply(as *models.Assessment) error {
	if err := setEnum(r.GeneralState, &as.GeneralState, "general_state"); err != nil {
		return err
	}
	if err := setEnum(r.Ectoparasites, &as.Ectoparasites, "ectoparasites"); err != nil {
		return err
	}
	if err := setEnum(r.NutritionalState, &as.NutritionalState, "nutritional_state"); err != nil {
		return err
	}
	if err := setEnum(r.Coat, &as.Coat, "coat"); err != nil {
		return err
	}
	if err := setEnum(r.Nails, &as.Nails, "nails"); err != nil {
		return err
	}
	if err := setEnum(r.MucosaColor, &as.MucosaColor, "mucosa_color"); err != nil {
		return err
	}
	if err := setEnum(r.MuzzleEarLesion, &as.MuzzleEarLesion, "muzzle_ear_lesion"); err != nil {
		return err
	}
	if err := setEnum(r.LymphNodes, &as.LymphNodes, "lymph_nodes"); err != nil {
		return err
	}
	if err := setEnum(r.Blepharitis, &as.Blepharitis, "blepharitis"); err != nil {
		return err
	}
	if err := setEnum(r.Conjunctivitis, &as.Conjunctivitis, "conjunctivitis"); err != nil {
		return err
	}
	if err := setEnum(r.Alopecia, &as.Alopecia, "alopecia"); err != nil {
		return err
	}
	if err := setEnum(r.Bleeding, &as.Bleeding, "bleeding"); err != nil {
		return err
	}
	if err := setEnum(r.SkinLesion, &as.SkinLesion, "skin_lesion"); err != nil {
		return err
	}
	if err := setEnum(r.MuzzleLipDepigmentation, &as.MuzzleLipDepigmentation, "muzzle_lip_depigmentation"); err != nil {
		return err
	}
	if err := setEnum(r.Culture, &as.Culture, "culture"); err != nil {
		return err
	}
	if err := setEnum(r.Slide, &as.Slide, "slide"); err != nil {
		return err
	}
	if err := setEnum(r.Diagnosis, &as.Diagnosis, "diagnosis"); err != nil {
		return err
	}
	return nil
}

type clinicalValue interface {
	~string
	Valid() bool
}

func setEnum[T clinicalValue](src *string, dst **T, field string) error {
	if src == nil {
		return nil
	}
	if *src == "" {
		*dst = nil
		return nil
	}
	v := T(*src)
	if !v.Valid() {
		return fmt.Errorf("%s: %q is not a valid value", field, *src)
	}
	*dst = &v
	return nil
}

// --------- Handlers ---------

func (h *AssessmentHandler) Create(c *gin.Context) {
	var req CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	var fields models.Assessment
	if err := req.apply(&fields); err != nil {
		httperr.Unprocessable(c, httperr.CodeInvalidClinicalValue, err.Error())
		return
	}

	user := middleware.CurrentUser(c)

	created, err := h.createUC.Execute(c.Request.Context(), ucAssessment.CreateAssessmentInput{
		AnimalID: req.AnimalID,
		UserID:   user.ID,
		Fields:   fields,
	})
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeAnimalNotFound) {
			httperr.BadRequest(c, httperr.CodeAnimalNotFound, "Animal not found")
			return
		}
		httperr.Internal(c, "failed_to_create_assessment", "Could not create assessment")
		return
	}

	httpresp.Created(c, created)
}

func (h *AssessmentHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	q := h.db.
		Preload("Animal").
		Preload("Animal.Owner").
		Preload("Animal.Breed").
		Preload("User").
		Preload("User.Role").
		Order("created_at DESC")

	if animalID := c.Query("animal_id"); animalID != "" {
		id, err := uuid.Parse(animalID)
		if err != nil {
			httperr.Unprocessable(c, "invalid_id", "Invalid animal_id filter")
			return
		}
		q = q.Where("animal_id = ?", id)
	}

	var assessments []models.Assessment
	if err := q.Offset(skip).Limit(limit).Find(&assessments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_assessments", "Could not list assessments")
		return
	}

	httpresp.List(c, assessments)
}

func (h *AssessmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	assessment, ok := h.loadAssessment(c, id)
	if !ok {
		return
	}

	httpresp.OK(c, assessment)
}

// Update nunca muda o animal: a avaliação pertence a quem foi avaliada.
func (h *AssessmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	assessment, ok := h.loadAssessment(c, id)
	if !ok {
		return
	}

	var req ClinicalFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	if err := req.apply(assessment); err != nil {
		httperr.Unprocessable(c, httperr.CodeInvalidClinicalValue, err.Error())
		return
	}

	if err := h.db.Save(assessment).Error; err != nil {
		httperr.Internal(c, "failed_to_update_assessment", "Could not update assessment")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "assessment_updated",
		Entity:   "assessment",
		EntityID: &assessment.ID,
	})

	httpresp.OK(c, assessment)
}

func (h *AssessmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)

	if err := h.deleteUC.Execute(c.Request.Context(), id, user.ID); err != nil {
		if httperr.IsBusiness(err, httperr.CodeAssessmentNotFound) {
			httperr.NotFound(c, httperr.CodeAssessmentNotFound, "Assessment not found")
			return
		}
		httperr.Internal(c, "failed_to_delete_assessment", "Could not delete assessment")
		return
	}

	c.Status(204)
}

func (h *AssessmentHandler) loadAssessment(c *gin.Context, id uuid.UUID) (*models.Assessment, bool) {
	var assessment models.Assessment
	if err := h.db.
		Preload("Animal").
		Preload("Animal.Owner").
		Preload("Animal.Breed").
		Preload("User").
		Preload("User.Role").
		First(&assessment, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "assessment_not_found", "Assessment not found")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_assessment", "Could not load assessment")
		return nil, false
	}
	return &assessment, true
}
