package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/config"
	"github.com/infopontes/leishai-backend/internal/httperr"
	"github.com/infopontes/leishai-backend/internal/limiter"
	"github.com/infopontes/leishai-backend/internal/mail"
	"github.com/infopontes/leishai-backend/internal/middleware"
	"github.com/infopontes/leishai-backend/internal/models"
	"github.com/infopontes/leishai-backend/internal/security"
)

type AuthHandler struct {
	db      *gorm.DB
	config  *config.Config
	tokens  *security.TokenManager
	mailer  mail.Sender
	limiter *limiter.Limiter
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	tokens *security.TokenManager,
	mailer mail.Sender,
	lim *limiter.Limiter,
) *AuthHandler {
	return &AuthHandler{
		db:      db,
		config:  cfg,
		tokens:  tokens,
		mailer:  mailer,
		limiter: lim,
	}
}

// --------- Requests ---------

// TokenRequest chega como form-data; o campo de login chama "username"
// por compatibilidade com o fluxo OAuth2 password do frontend.
type TokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type ActivateRequest struct {
	Token string `json:"token" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Username))

	var user models.User
	if err := h.db.Preload("Role").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		httperr.Unauthorized(c, "invalid_credentials", "Incorrect email or password")
		return
	}

	if !security.VerifyPassword(req.Password, user.PasswordHash) {
		httperr.Unauthorized(c, "invalid_credentials", "Incorrect email or password")
		return
	}

	if !user.IsActive {
		httperr.Unauthorized(c, "inactive_user", "Inactive user")
		return
	}

	ttl := time.Duration(h.config.AccessTokenExpireMin) * time.Minute
	token, err := h.tokens.CreateAccessToken(user.Email, ttl)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token")
		return
	}

	c.JSON(200, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.limiter.Allow(c.Request.Context(), "forgot-password:"+middleware.ClientIP(c)) {
		httperr.TooManyRequests(c, "rate_limit_exceeded", "Too many requests")
		return
	}

	// Resposta idêntica exista ou não a conta, para não vazar cadastro.
	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err == nil {
		ttl := time.Duration(h.config.ResetTokenExpireMin) * time.Minute
		token, err := h.tokens.CreateScopedToken(user.Email, security.ScopePasswordReset, ttl)
		if err == nil {
			resetURL := fmt.Sprintf("%s/reset-password?token=%s", h.config.FrontendURL, token)
			if err := h.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
				log.Printf("forgot-password: email to %s failed: %v", user.Email, err)
			}
		}
	}

	c.JSON(200, gin.H{
		"message": "If the email exists, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	email, err := h.tokens.VerifyScopedToken(req.Token, security.ScopePasswordReset)
	if err != nil {
		httperr.BadRequest(c, "invalid_token", "Invalid or expired reset token")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		httperr.BadRequest(c, "invalid_token", "Invalid or expired reset token")
		return
	}

	hashed, err := security.HashPassword(req.NewPassword)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not update password")
		return
	}

	user.PasswordHash = hashed
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_password", "Could not update password")
		return
	}

	c.JSON(200, gin.H{"message": "Password updated successfully"})
}

func (h *AuthHandler) Activate(c *gin.Context) {
	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	email, err := h.tokens.VerifyScopedToken(req.Token, security.ScopeAccountActivation)
	if err != nil {
		httperr.BadRequest(c, "invalid_token", "Invalid or expired activation token")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		httperr.BadRequest(c, "invalid_token", "Invalid or expired activation token")
		return
	}

	if !user.IsActive {
		user.IsActive = true
		if err := h.db.Save(&user).Error; err != nil {
			httperr.Internal(c, "failed_to_activate_user", "Could not activate account")
			return
		}
	}

	c.JSON(200, gin.H{"message": "Account activated successfully"})
}
