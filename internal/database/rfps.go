package database

import (
	"context"
	"fmt"

	"rfphub/internal/models"

	"github.com/jmoiron/sqlx"
)

// RFPService handles RFP record storage
type RFPService struct {
	db *sqlx.DB
}

// NewRFPService creates a new RFP service
func NewRFPService(db *sqlx.DB) (*RFPService, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required for RFP service")
	}

	service := &RFPService{db: db}

	// Create tables if they don't exist
	if err := service.CreateTables(); err != nil {
		return nil, fmt.Errorf("failed to create RFP tables: %w", err)
	}

	return service, nil
}

// CreateTables creates the RFP tables in the database
func (s *RFPService) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS rfps (
			id VARCHAR(26) PRIMARY KEY,
			title TEXT NOT NULL,
			original_query TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			status VARCHAR(10) NOT NULL DEFAULT 'Draft',
			structured_data JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rfps_created_at ON rfps(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			// Ignore "already exists" errors
			continue
		}
	}

	return nil
}

// Create persists a new RFP in Draft status and returns it with its
// generated identifier
func (s *RFPService) Create(ctx context.Context, title, originalQuery string, data models.RFPStructuredData) (*models.RFP, error) {
	rfp := &models.RFP{
		ID:             newID(),
		Title:          title,
		OriginalQuery:  originalQuery,
		Status:         models.StatusDraft,
		StructuredData: data,
	}

	query := `
		INSERT INTO rfps (id, title, original_query, created_at, status, structured_data)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, $4, $5)
		RETURNING created_at
	`
	err := s.db.QueryRowxContext(ctx, query, rfp.ID, rfp.Title, rfp.OriginalQuery, rfp.Status, rfp.StructuredData).
		Scan(&rfp.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create RFP: %w", err)
	}

	return rfp, nil
}

// GetByID fetches a single RFP
func (s *RFPService) GetByID(ctx context.Context, id string) (*models.RFP, error) {
	var rfp models.RFP
	query := `SELECT id, title, original_query, created_at, status, structured_data FROM rfps WHERE id = $1`
	if err := s.db.GetContext(ctx, &rfp, query, id); err != nil {
		return nil, fmt.Errorf("failed to get RFP %s: %w", id, err)
	}
	return &rfp, nil
}

// List returns all RFPs, newest first
func (s *RFPService) List(ctx context.Context) ([]models.RFP, error) {
	rfps := []models.RFP{}
	query := `SELECT id, title, original_query, created_at, status, structured_data FROM rfps ORDER BY created_at DESC`
	if err := s.db.SelectContext(ctx, &rfps, query); err != nil {
		return nil, fmt.Errorf("failed to list RFPs: %w", err)
	}
	return rfps, nil
}

// UpdateStatus transitions an RFP to a new lifecycle status. Closed RFPs are
// immutable, so the update is a no-op for them.
func (s *RFPService) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE rfps SET status = $2 WHERE id = $1 AND status <> 'Closed'`
	if _, err := s.db.ExecContext(ctx, query, id, status); err != nil {
		return fmt.Errorf("failed to update RFP status: %w", err)
	}
	return nil
}
