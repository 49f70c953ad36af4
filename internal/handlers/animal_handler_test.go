package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/audit"
)

func animalRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAnimalHandler(db, audit.NewDispatcher(audit.New(db)), nil)

	r := gin.New()
	r.Use(asUser(uuid.New()))
	r.DELETE("/animals/:id", h.Delete)
	return r
}

func expectAnimalLoad(mock sqlmock.Sqlmock, animalID, ownerID, breedID uuid.UUID) {
	mock.ExpectQuery(`SELECT \* FROM "animals"`).
		WithArgs(animalID, 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "original_id", "name", "sex", "photo_url",
			"owner_id", "breed_id", "created_at", "updated_at",
		}).AddRow(
			animalID, nil, "Rex", "M", "",
			ownerID, breedID, time.Now(), time.Now(),
		))
	mock.ExpectQuery(`SELECT \* FROM "breeds"`).
		WithArgs(breedID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(breedID, "Poodle"))
	mock.ExpectQuery(`SELECT \* FROM "owners"`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(ownerID, "Marcelo"))
}

func TestDeleteAnimalWithAssessmentsReturns400(t *testing.T) {
	db, mock := mockGorm(t)
	r := animalRouter(db)

	animalID := uuid.New()
	expectAnimalLoad(mock, animalID, uuid.New(), uuid.New())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "assessments"`).
		WithArgs(animalID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/animals/"+animalID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "animal_has_assessments")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAnimalWithoutAssessmentsReturns204(t *testing.T) {
	db, mock := mockGorm(t)
	r := animalRouter(db)

	animalID := uuid.New()
	expectAnimalLoad(mock, animalID, uuid.New(), uuid.New())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "assessments"`).
		WithArgs(animalID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM "animals"`).
		WithArgs(animalID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/animals/"+animalID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnknownAnimalReturns404(t *testing.T) {
	db, mock := mockGorm(t)
	r := animalRouter(db)

	animalID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "animals"`).
		WithArgs(animalID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/animals/"+animalID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "animal_not_found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
