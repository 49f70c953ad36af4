package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/config"
	"github.com/infopontes/leishai-backend/internal/security"
)

func tokenRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AccessTokenExpireMin: 30}
	tokens := security.NewTokenManager("test-secret", "HS256")
	h := NewAuthHandler(db, cfg, tokens, nil, nil)

	r := gin.New()
	r.POST("/auth/token", h.Token)
	return r
}

func postToken(r *gin.Engine, username, password string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	body := "username=" + username + "&password=" + password
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func userRow(id uuid.UUID, email, passwordHash string, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "full_name", "institution",
		"is_active", "role_id", "created_at", "updated_at",
	}).AddRow(
		id, email, passwordHash, "Vet", "UFPI",
		active, nil, time.Now(), time.Now(),
	)
}

func TestTokenInactiveUserReturns401(t *testing.T) {
	db, mock := mockGorm(t)
	r := tokenRouter(db)

	hash, err := security.HashPassword("senha123")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("vet@example.com", 1).
		WillReturnRows(userRow(uuid.New(), "vet@example.com", hash, false))

	w := postToken(r, "vet@example.com", "senha123")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "inactive_user")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenWrongPasswordReturns401(t *testing.T) {
	db, mock := mockGorm(t)
	r := tokenRouter(db)

	hash, err := security.HashPassword("senha123")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("vet@example.com", 1).
		WillReturnRows(userRow(uuid.New(), "vet@example.com", hash, true))

	w := postToken(r, "vet@example.com", "senha-errada")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenActiveUserReceivesBearer(t *testing.T) {
	db, mock := mockGorm(t)
	r := tokenRouter(db)

	hash, err := security.HashPassword("senha123")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("vet@example.com", 1).
		WillReturnRows(userRow(uuid.New(), "vet@example.com", hash, true))

	w := postToken(r, "vet@example.com", "senha123")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
	assert.Contains(t, w.Body.String(), "bearer")
	assert.NoError(t, mock.ExpectationsWereMet())
}
