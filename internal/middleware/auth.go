package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/httperr"
	"github.com/infopontes/leishai-backend/internal/models"
	"github.com/infopontes/leishai-backend/internal/security"
)

const ContextUser = "currentUser"

// RequireUser valida o bearer token, carrega o usuário do banco e o
// deixa no contexto. Qualquer falha de decodificação, usuário ausente
// ou conta desativada encerra com 401.
func RequireUser(db *gorm.DB, tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Could not validate credentials")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Could not validate credentials")
			c.Abort()
			return
		}

		email, err := tokens.VerifyAccessToken(parts[1])
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Could not validate credentials")
			c.Abort()
			return
		}

		var user models.User
		if err := db.Preload("Role").
			Where("email = ?", email).
			First(&user).Error; err != nil {

			httperr.Unauthorized(c, "invalid_token", "Could not validate credentials")
			c.Abort()
			return
		}

		if !user.IsActive {
			httperr.Unauthorized(c, "inactive_user", "Inactive user")
			c.Abort()
			return
		}

		c.Set(ContextUser, &user)
		c.Next()
	}
}

// RequireAdmin roda depois de RequireUser e exige o perfil "admin".
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			httperr.Forbidden(c, "not_enough_privileges", "The user does not have enough privileges")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
