package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/audit"
	"github.com/infopontes/leishai-backend/internal/middleware"
	"github.com/infopontes/leishai-backend/internal/models"
)

func mockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

// asUser injeta um usuário autenticado no contexto, como RequireUser faria.
func asUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUser, &models.User{
			ID:       id,
			Email:    "vet@example.com",
			IsActive: true,
		})
	}
}

func breedRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBreedHandler(db, audit.NewDispatcher(audit.New(db)))

	r := gin.New()
	r.Use(asUser(uuid.New()))
	r.GET("/breeds/:id", h.Get)
	r.DELETE("/breeds/:id", h.Delete)
	return r
}

func TestDeleteBreedWithAnimalsReturns400(t *testing.T) {
	db, mock := mockGorm(t)
	r := breedRouter(db)

	breedID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "breeds"`).
		WithArgs(breedID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(breedID, "Poodle"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "animals"`).
		WithArgs(breedID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/breeds/"+breedID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "breed_has_animals")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBreedWithoutAnimalsReturns204(t *testing.T) {
	db, mock := mockGorm(t)
	r := breedRouter(db)

	breedID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "breeds"`).
		WithArgs(breedID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(breedID, "Poodle"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "animals"`).
		WithArgs(breedID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM "breeds"`).
		WithArgs(breedID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/breeds/"+breedID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBreedAfterDeletionReturns404(t *testing.T) {
	db, mock := mockGorm(t)
	r := breedRouter(db)

	breedID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "breeds"`).
		WithArgs(breedID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/breeds/"+breedID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "breed_not_found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
