package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/audit"
	"github.com/infopontes/leishai-backend/internal/httperr"
	"github.com/infopontes/leishai-backend/internal/httpresp"
	"github.com/infopontes/leishai-backend/internal/middleware"
	"github.com/infopontes/leishai-backend/internal/models"
)

type OwnerHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewOwnerHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *OwnerHandler {
	return &OwnerHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateOwnerRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type UpdateOwnerRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	Neighborhood *string `json:"neighborhood,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
}

// --------- Handlers ---------

func (h *OwnerHandler) Create(c *gin.Context) {
	var req CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	owner := models.Owner{
		Name:         strings.TrimSpace(req.Name),
		Phone:        req.Phone,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        strings.ToUpper(strings.TrimSpace(req.State)),
	}

	if err := h.db.Create(&owner).Error; err != nil {
		httperr.Internal(c, "failed_to_create_owner", "Could not create owner")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "owner_created",
		Entity:   "owner",
		EntityID: &owner.ID,
	})

	httpresp.Created(c, owner)
}

func (h *OwnerHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	q := h.db.Order("name ASC")
	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}

	var owners []models.Owner
	if err := q.Offset(skip).Limit(limit).Find(&owners).Error; err != nil {
		httperr.Internal(c, "failed_to_list_owners", "Could not list owners")
		return
	}

	httpresp.List(c, owners)
}

func (h *OwnerHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var owner models.Owner
	if err := h.db.First(&owner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "owner_not_found", "Owner not found")
			return
		}
		httperr.Internal(c, "failed_to_get_owner", "Could not load owner")
		return
	}

	httpresp.OK(c, owner)
}

func (h *OwnerHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var owner models.Owner
	if err := h.db.First(&owner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "owner_not_found", "Owner not found")
			return
		}
		httperr.Internal(c, "failed_to_get_owner", "Could not load owner")
		return
	}

	var req UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	if req.Name != nil {
		owner.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		owner.Phone = *req.Phone
	}
	if req.Address != nil {
		owner.Address = *req.Address
	}
	if req.Neighborhood != nil {
		owner.Neighborhood = *req.Neighborhood
	}
	if req.City != nil {
		owner.City = *req.City
	}
	if req.State != nil {
		owner.State = strings.ToUpper(strings.TrimSpace(*req.State))
	}

	if err := h.db.Save(&owner).Error; err != nil {
		httperr.Internal(c, "failed_to_update_owner", "Could not update owner")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "owner_updated",
		Entity:   "owner",
		EntityID: &owner.ID,
	})

	httpresp.OK(c, owner)
}

func (h *OwnerHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var owner models.Owner
	if err := h.db.First(&owner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "owner_not_found", "Owner not found")
			return
		}
		httperr.Internal(c, "failed_to_get_owner", "Could not load owner")
		return
	}

	var animals int64
	h.db.Model(&models.Animal{}).Where("owner_id = ?", id).Count(&animals)
	if animals > 0 {
		httperr.BadRequest(c, "owner_has_animals", "Cannot delete owner with associated animals")
		return
	}

	if err := h.db.Delete(&owner).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_owner", "Could not delete owner")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "owner_deleted",
		Entity:   "owner",
		EntityID: &id,
	})

	c.Status(204)
}
