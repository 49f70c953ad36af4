package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/httperr"
	"github.com/infopontes/leishai-backend/internal/httpresp"
	"github.com/infopontes/leishai-backend/internal/models"
)

type RoleHandler struct {
	db *gorm.DB
}

func NewRoleHandler(db *gorm.DB) *RoleHandler {
	return &RoleHandler{db: db}
}

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	var count int64
	h.db.Model(&models.Role{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "role_already_exists", "Role with this name already exists")
		return
	}

	role := models.Role{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.db.Create(&role).Error; err != nil {
		httperr.Internal(c, "failed_to_create_role", "Could not create role")
		return
	}

	httpresp.Created(c, role)
}

func (h *RoleHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	var roles []models.Role
	if err := h.db.
		Order("name ASC").
		Offset(skip).
		Limit(limit).
		Find(&roles).Error; err != nil {

		httperr.Internal(c, "failed_to_list_roles", "Could not list roles")
		return
	}

	httpresp.List(c, roles)
}
