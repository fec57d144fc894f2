package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestNewVendorService_NilDB(t *testing.T) {
	service, err := NewVendorService(nil)
	assert.Error(t, err)
	assert.Nil(t, service)
}

func TestFindOrCreateByEmail_CreatesVendor(t *testing.T) {
	db, mock := newMockDB(t)
	service := &VendorService{db: db}

	now := time.Now()
	mock.ExpectQuery("INSERT INTO vendors").
		WithArgs(sqlmock.AnyArg(), "Jane Doe", "jane@acme.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow("01VENDORID", "Jane Doe", "jane@acme.com", now))

	vendor, err := service.FindOrCreateByEmail(context.Background(), "Jane Doe", "jane@acme.com")

	require.NoError(t, err)
	assert.Equal(t, "01VENDORID", vendor.ID)
	assert.Equal(t, "Jane Doe", vendor.Name)
	assert.Equal(t, "jane@acme.com", vendor.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateByEmail_Idempotent(t *testing.T) {
	// Resolving the same address twice returns the same vendor id both
	// times; the conflict clause keeps the first record.
	db, mock := newMockDB(t)
	service := &VendorService{db: db}

	now := time.Now()
	for i := 0; i < 2; i++ {
		mock.ExpectQuery("INSERT INTO vendors").
			WithArgs(sqlmock.AnyArg(), "Jane Doe", "jane@acme.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
				AddRow("01VENDORID", "Jane Doe", "jane@acme.com", now))
	}

	first, err := service.FindOrCreateByEmail(context.Background(), "Jane Doe", "jane@acme.com")
	require.NoError(t, err)
	second, err := service.FindOrCreateByEmail(context.Background(), "Jane Doe", "jane@acme.com")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateByEmail_StoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	service := &VendorService{db: db}

	mock.ExpectQuery("INSERT INTO vendors").
		WillReturnError(sql.ErrConnDone)

	vendor, err := service.FindOrCreateByEmail(context.Background(), "Jane Doe", "jane@acme.com")

	assert.Error(t, err)
	assert.Nil(t, vendor)
	assert.Contains(t, err.Error(), "failed to resolve vendor")
}

func TestVendorList(t *testing.T) {
	db, mock := newMockDB(t)
	service := &VendorService{db: db}

	now := time.Now()
	mock.ExpectQuery("SELECT id, name, email, created_at FROM vendors").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow("01A", "Acme", "sales@acme.com", now).
			AddRow("01B", "Globex", "sales@globex.com", now))

	vendors, err := service.List(context.Background())

	require.NoError(t, err)
	require.Len(t, vendors, 2)
	assert.Equal(t, "Acme", vendors[0].Name)
}

func TestVendorGetByIDs_Empty(t *testing.T) {
	db, _ := newMockDB(t)
	service := &VendorService{db: db}

	vendors, err := service.GetByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, vendors)
}
