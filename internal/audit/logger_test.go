package audit

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mockLogger(t *testing.T) (*Logger, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return New(db), mock
}

func TestLogPersistsEntryWithMetadata(t *testing.T) {
	logger, mock := mockLogger(t)

	userID := uuid.New()
	entityID := uuid.New()

	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WithArgs(&userID, "owner_created", "owner", &entityID, `{"name":"Marcelo"}`, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := logger.Log(&userID, "owner_created", "owner", &entityID, map[string]string{"name": "Marcelo"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogWithoutMetadata(t *testing.T) {
	logger, mock := mockLogger(t)

	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WithArgs(nil, "user_registered", "user", nil, "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	err := logger.Log(nil, "user_registered", "user", nil, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
