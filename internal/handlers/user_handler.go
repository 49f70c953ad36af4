package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/audit"
	"github.com/infopontes/leishai-backend/internal/config"
	"github.com/infopontes/leishai-backend/internal/httperr"
	"github.com/infopontes/leishai-backend/internal/httpresp"
	"github.com/infopontes/leishai-backend/internal/limiter"
	"github.com/infopontes/leishai-backend/internal/mail"
	"github.com/infopontes/leishai-backend/internal/middleware"
	"github.com/infopontes/leishai-backend/internal/models"
	"github.com/infopontes/leishai-backend/internal/security"
	"github.com/infopontes/leishai-backend/internal/validators"
)

type UserHandler struct {
	db      *gorm.DB
	config  *config.Config
	tokens  *security.TokenManager
	mailer  mail.Sender
	limiter *limiter.Limiter
	audit   *audit.Dispatcher
}

func NewUserHandler(
	db *gorm.DB,
	cfg *config.Config,
	tokens *security.TokenManager,
	mailer mail.Sender,
	lim *limiter.Limiter,
	auditDispatcher *audit.Dispatcher,
) *UserHandler {
	return &UserHandler{
		db:      db,
		config:  cfg,
		tokens:  tokens,
		mailer:  mailer,
		limiter: lim,
		audit:   auditDispatcher,
	}
}

// --------- Requests ---------

type RegisterUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FullName    string `json:"full_name"`
	Institution string `json:"institution"`
}

type UpdateUserRequest struct {
	FullName    *string    `json:"full_name,omitempty"`
	Institution *string    `json:"institution,omitempty"`
	RoleID      *uuid.UUID `json:"role_id,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// --------- Handlers ---------

// Register cria o usuário desativado com o perfil padrão "veterinario"
// e envia o link de ativação. Um admin também pode ativar via update.
func (h *UserHandler) Register(c *gin.Context) {
	if !h.limiter.Allow(c.Request.Context(), "register:"+middleware.ClientIP(c)) {
		httperr.TooManyRequests(c, "rate_limit_exceeded", "Too many requests")
		return
	}

	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.config.Testing && !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "Email already registered")
		return
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create user")
		return
	}

	role, err := h.defaultRole()
	if err != nil {
		httperr.Internal(c, "failed_to_resolve_role", "Could not create user")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		FullName:     req.FullName,
		Institution:  req.Institution,
		IsActive:     false,
		RoleID:       &role.ID,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create user")
		return
	}
	user.Role = role

	ttl := time.Duration(h.config.ActivationTokenExpireHr) * time.Hour
	if token, err := h.tokens.CreateScopedToken(user.Email, security.ScopeAccountActivation, ttl); err == nil {
		activationURL := fmt.Sprintf("%s/activate?token=%s", h.config.FrontendURL, token)
		if err := h.mailer.SendAccountActivation(user.Email, activationURL); err != nil {
			log.Printf("register: activation email to %s failed: %v", user.Email, err)
		}
	}

	h.audit.Dispatch(audit.Event{
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.Created(c, user)
}

func (h *UserHandler) Me(c *gin.Context) {
	httpresp.OK(c, middleware.CurrentUser(c))
}

func (h *UserHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	var users []models.User
	if err := h.db.Preload("Role").
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&users).Error; err != nil {

		httperr.Internal(c, "failed_to_list_users", "Could not list users")
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Institution != nil {
		user.Institution = *req.Institution
	}
	if req.RoleID != nil {
		var role models.Role
		if err := h.db.First(&role, "id = ?", *req.RoleID).Error; err != nil {
			httperr.BadRequest(c, "role_not_found", "Role not found")
			return
		}
		user.RoleID = &role.ID
		user.Role = &role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update user")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.OK(c, user)
}

// Deactivate é o "delete" de usuário: apenas desliga a conta.
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Could not load user")
		return
	}

	user.IsActive = false
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_deactivate_user", "Could not deactivate user")
		return
	}

	actor := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "user_deactivated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.Status(204)
}

func (h *UserHandler) defaultRole() (*models.Role, error) {
	var role models.Role
	err := h.db.Where("name = ?", "veterinario").First(&role).Error
	if err == nil {
		return &role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role = models.Role{
		Name:        "veterinario",
		Description: "Usuário com permissões para gerenciar atendimentos.",
	}
	if err := h.db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}
