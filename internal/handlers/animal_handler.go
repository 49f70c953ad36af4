package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/audit"
	"github.com/infopontes/leishai-backend/internal/httperr"
	"github.com/infopontes/leishai-backend/internal/httpresp"
	"github.com/infopontes/leishai-backend/internal/middleware"
	"github.com/infopontes/leishai-backend/internal/models"
	"github.com/infopontes/leishai-backend/internal/storage"
)

const maxPhotoUploadBytes = 10 << 20 // 10 MiB

type AnimalHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	photos storage.PhotoStore
}

func NewAnimalHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	photos storage.PhotoStore,
) *AnimalHandler {
	return &AnimalHandler{
		db:     db,
		audit:  auditDispatcher,
		photos: photos,
	}
}

// --------- Requests ---------

type CreateAnimalRequest struct {
	Name       string    `json:"name" binding:"required"`
	OriginalID *string   `json:"original_id"`
	Sex        string    `json:"sex" binding:"omitempty,oneof=M F"`
	OwnerID    uuid.UUID `json:"owner_id" binding:"required"`
	BreedID    uuid.UUID `json:"breed_id" binding:"required"`
}

type UpdateAnimalRequest struct {
	Name    *string    `json:"name,omitempty"`
	Sex     *string    `json:"sex,omitempty" binding:"omitempty,oneof=M F"`
	OwnerID *uuid.UUID `json:"owner_id,omitempty"`
	BreedID *uuid.UUID `json:"breed_id,omitempty"`
}

// --------- Handlers ---------

func (h *AnimalHandler) Create(c *gin.Context) {
	var req CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	var owner models.Owner
	if err := h.db.First(&owner, "id = ?", req.OwnerID).Error; err != nil {
		httperr.BadRequest(c, "owner_not_found", "Owner not found")
		return
	}

	var breed models.Breed
	if err := h.db.First(&breed, "id = ?", req.BreedID).Error; err != nil {
		httperr.BadRequest(c, "breed_not_found", "Breed not found")
		return
	}

	animal := models.Animal{
		Name:       strings.TrimSpace(req.Name),
		OriginalID: req.OriginalID,
		Sex:        req.Sex,
		OwnerID:    owner.ID,
		BreedID:    breed.ID,
	}

	if err := h.db.Create(&animal).Error; err != nil {
		httperr.Internal(c, "failed_to_create_animal", "Could not create animal")
		return
	}
	animal.Owner = owner
	animal.Breed = breed

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "animal_created",
		Entity:   "animal",
		EntityID: &animal.ID,
	})

	httpresp.Created(c, animal)
}

func (h *AnimalHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	q := h.db.Preload("Owner").Preload("Breed").Order("name ASC")
	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}

	var animals []models.Animal
	if err := q.Offset(skip).Limit(limit).Find(&animals).Error; err != nil {
		httperr.Internal(c, "failed_to_list_animals", "Could not list animals")
		return
	}

	httpresp.List(c, animals)
}

func (h *AnimalHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	animal, ok := h.loadAnimal(c, id)
	if !ok {
		return
	}

	httpresp.OK(c, animal)
}

func (h *AnimalHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	animal, ok := h.loadAnimal(c, id)
	if !ok {
		return
	}

	var req UpdateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	if req.Name != nil {
		animal.Name = strings.TrimSpace(*req.Name)
	}
	if req.Sex != nil {
		animal.Sex = *req.Sex
	}
	if req.OwnerID != nil {
		var owner models.Owner
		if err := h.db.First(&owner, "id = ?", *req.OwnerID).Error; err != nil {
			httperr.BadRequest(c, "owner_not_found", "Owner not found")
			return
		}
		animal.OwnerID = owner.ID
		animal.Owner = owner
	}
	if req.BreedID != nil {
		var breed models.Breed
		if err := h.db.First(&breed, "id = ?", *req.BreedID).Error; err != nil {
			httperr.BadRequest(c, "breed_not_found", "Breed not found")
			return
		}
		animal.BreedID = breed.ID
		animal.Breed = breed
	}

	if err := h.db.Save(animal).Error; err != nil {
		httperr.Internal(c, "failed_to_update_animal", "Could not update animal")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "animal_updated",
		Entity:   "animal",
		EntityID: &animal.ID,
	})

	httpresp.OK(c, animal)
}

func (h *AnimalHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	animal, ok := h.loadAnimal(c, id)
	if !ok {
		return
	}

	var assessments int64
	h.db.Model(&models.Assessment{}).Where("animal_id = ?", id).Count(&assessments)
	if assessments > 0 {
		httperr.BadRequest(c, httperr.CodeAnimalHasAssessments, "Cannot delete animal with associated assessments")
		return
	}

	if err := h.db.Delete(animal).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_animal", "Could not delete animal")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "animal_deleted",
		Entity:   "animal",
		EntityID: &id,
	})

	c.Status(204)
}

// UploadPhoto recebe multipart "photo", reencoda em WebP e guarda no S3.
func (h *AnimalHandler) UploadPhoto(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	animal, ok := h.loadAnimal(c, id)
	if !ok {
		return
	}

	if h.photos == nil {
		httperr.BadRequest(c, "photo_storage_not_configured", "Photo storage is not configured")
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.Unprocessable(c, "validation_error", "Missing 'photo' file field")
		return
	}
	if file.Size > maxPhotoUploadBytes {
		httperr.BadRequest(c, "photo_too_large", "Photo exceeds the 10MB limit")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Could not read uploaded photo")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Could not read uploaded photo")
		return
	}

	encoded, err := storage.EncodeWebP(data)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Uploaded file is not a valid JPEG or PNG image")
		return
	}

	key := fmt.Sprintf("animals/%s.webp", animal.ID)
	url, err := h.photos.Put(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_store_photo", "Could not store photo")
		return
	}

	animal.PhotoURL = url
	if err := h.db.Save(animal).Error; err != nil {
		httperr.Internal(c, "failed_to_update_animal", "Could not update animal")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "animal_photo_uploaded",
		Entity:   "animal",
		EntityID: &id,
	})

	httpresp.OK(c, animal)
}

func (h *AnimalHandler) loadAnimal(c *gin.Context, id uuid.UUID) (*models.Animal, bool) {
	var animal models.Animal
	if err := h.db.Preload("Owner").Preload("Breed").
		First(&animal, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "animal_not_found", "Animal not found")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_animal", "Could not load animal")
		return nil, false
	}
	return &animal, true
}
