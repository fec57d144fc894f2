package database

import (
	"context"
	"testing"
	"time"

	"rfphub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStructuredData() models.RFPStructuredData {
	return models.RFPStructuredData{
		Items:        []models.LineItem{{Name: "Laptop", Quantity: "50", Description: "Business laptops"}},
		Budget:       "$50,000",
		Timeline:     "within 4 weeks",
		Warranty:     "Standard warranty",
		PaymentTerms: "Net 30",
		Summary:      "Fifty laptops",
	}
}

func TestRFPCreate(t *testing.T) {
	db, mock := newMockDB(t)
	service := &RFPService{db: db}

	now := time.Now()
	mock.ExpectQuery("INSERT INTO rfps").
		WithArgs(sqlmock.AnyArg(), "Office laptops", "we need 50 laptops", models.StatusDraft, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	rfp, err := service.Create(context.Background(), "Office laptops", "we need 50 laptops", testStructuredData())

	require.NoError(t, err)
	assert.NotEmpty(t, rfp.ID)
	assert.Equal(t, models.StatusDraft, rfp.Status)
	assert.Equal(t, "Office laptops", rfp.Title)
	assert.Equal(t, now, rfp.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRFPGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	service := &RFPService{db: db}

	now := time.Now()
	structured := `{"items":[{"name":"Laptop","quantity":"50","description":"d"}],"budget":"$50,000","timeline":"within 4 weeks","warranty":"w","paymentTerms":"p","summary":"s"}`
	mock.ExpectQuery("SELECT id, title, original_query, created_at, status, structured_data FROM rfps WHERE").
		WithArgs("01RFP").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "original_query", "created_at", "status", "structured_data"}).
			AddRow("01RFP", "Office laptops", "query", now, models.StatusSent, structured))

	rfp, err := service.GetByID(context.Background(), "01RFP")

	require.NoError(t, err)
	assert.Equal(t, "01RFP", rfp.ID)
	assert.Equal(t, models.StatusSent, rfp.Status)
	require.Len(t, rfp.StructuredData.Items, 1)
	assert.Equal(t, "Laptop", rfp.StructuredData.Items[0].Name)
	assert.Equal(t, "$50,000", rfp.StructuredData.Budget)
}

func TestRFPList_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	service := &RFPService{db: db}

	mock.ExpectQuery("SELECT id, title, original_query, created_at, status, structured_data FROM rfps ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "original_query", "created_at", "status", "structured_data"}))

	rfps, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rfps)
}

func TestRFPUpdateStatus_SkipsClosed(t *testing.T) {
	db, mock := newMockDB(t)
	service := &RFPService{db: db}

	// The predicate excludes Closed rows, so the update is a no-op for them
	mock.ExpectExec("UPDATE rfps SET status").
		WithArgs("01RFP", models.StatusSent).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := service.UpdateStatus(context.Background(), "01RFP", models.StatusSent)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
