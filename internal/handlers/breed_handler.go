package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/audit"
	"github.com/infopontes/leishai-backend/internal/httperr"
	"github.com/infopontes/leishai-backend/internal/httpresp"
	"github.com/infopontes/leishai-backend/internal/middleware"
	"github.com/infopontes/leishai-backend/internal/models"
)

type BreedHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBreedHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *BreedHandler {
	return &BreedHandler{db: db, audit: auditDispatcher}
}

type CreateBreedRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateBreedRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *BreedHandler) Create(c *gin.Context) {
	var req CreateBreedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)

	// Duplicidade é case-insensitive: "poodle" e "Poodle" são a mesma raça.
	var count int64
	h.db.Model(&models.Breed{}).Where("LOWER(name) = LOWER(?)", name).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "breed_already_exists", fmt.Sprintf("Breed '%s' already exists", name))
		return
	}

	breed := models.Breed{Name: name}
	if err := h.db.Create(&breed).Error; err != nil {
		httperr.Internal(c, "failed_to_create_breed", "Could not create breed")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "breed_created",
		Entity:   "breed",
		EntityID: &breed.ID,
	})

	httpresp.Created(c, breed)
}

func (h *BreedHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	var breeds []models.Breed
	if err := h.db.
		Order("name ASC").
		Offset(skip).
		Limit(limit).
		Find(&breeds).Error; err != nil {

		httperr.Internal(c, "failed_to_list_breeds", "Could not list breeds")
		return
	}

	httpresp.List(c, breeds)
}

func (h *BreedHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var breed models.Breed
	if err := h.db.First(&breed, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "breed_not_found", "Breed not found")
			return
		}
		httperr.Internal(c, "failed_to_get_breed", "Could not load breed")
		return
	}

	httpresp.OK(c, breed)
}

func (h *BreedHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var breed models.Breed
	if err := h.db.First(&breed, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "breed_not_found", "Breed not found")
			return
		}
		httperr.Internal(c, "failed_to_get_breed", "Could not load breed")
		return
	}

	var req UpdateBreedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)

	var count int64
	h.db.Model(&models.Breed{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "breed_already_exists", fmt.Sprintf("Breed '%s' already exists", name))
		return
	}

	breed.Name = name
	if err := h.db.Save(&breed).Error; err != nil {
		httperr.Internal(c, "failed_to_update_breed", "Could not update breed")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "breed_updated",
		Entity:   "breed",
		EntityID: &breed.ID,
	})

	httpresp.OK(c, breed)
}

func (h *BreedHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var breed models.Breed
	if err := h.db.First(&breed, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "breed_not_found", "Breed not found")
			return
		}
		httperr.Internal(c, "failed_to_get_breed", "Could not load breed")
		return
	}

	var animals int64
	h.db.Model(&models.Animal{}).Where("breed_id = ?", id).Count(&animals)
	if animals > 0 {
		httperr.BadRequest(c, httperr.CodeBreedHasAnimals, "Cannot delete breed with associated animals")
		return
	}

	if err := h.db.Delete(&breed).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_breed", "Could not delete breed")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "breed_deleted",
		Entity:   "breed",
		EntityID: &id,
	})

	c.Status(204)
}
