package database

import (
	"context"
	"fmt"

	"rfphub/internal/models"

	"github.com/jmoiron/sqlx"
)

// VendorService handles vendor record storage
type VendorService struct {
	db *sqlx.DB
}

// NewVendorService creates a new vendor service
func NewVendorService(db *sqlx.DB) (*VendorService, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required for vendor service")
	}

	service := &VendorService{db: db}

	// Create tables if they don't exist
	if err := service.CreateTables(); err != nil {
		return nil, fmt.Errorf("failed to create vendor tables: %w", err)
	}

	return service, nil
}

// CreateTables creates the vendor tables in the database
func (s *VendorService) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS vendors (
			id VARCHAR(26) PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_vendors_email ON vendors(email)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			// Ignore "already exists" errors
			continue
		}
	}

	return nil
}

// FindOrCreateByEmail returns the vendor with the given email, creating one
// when absent. The upsert resolves by the unique email constraint in a single
// statement, so concurrent resolution of the same address yields one record.
func (s *VendorService) FindOrCreateByEmail(ctx context.Context, name, email string) (*models.Vendor, error) {
	var vendor models.Vendor
	query := `
		INSERT INTO vendors (id, name, email, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, name, email, created_at
	`
	if err := s.db.GetContext(ctx, &vendor, query, newID(), name, email); err != nil {
		return nil, fmt.Errorf("failed to resolve vendor %s: %w", email, err)
	}
	return &vendor, nil
}

// Create registers a vendor directly
func (s *VendorService) Create(ctx context.Context, name, email string) (*models.Vendor, error) {
	vendor := &models.Vendor{
		ID:    newID(),
		Name:  name,
		Email: email,
	}

	query := `
		INSERT INTO vendors (id, name, email, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING created_at
	`
	err := s.db.QueryRowxContext(ctx, query, vendor.ID, vendor.Name, vendor.Email).Scan(&vendor.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	return vendor, nil
}

// List returns all vendors
func (s *VendorService) List(ctx context.Context) ([]models.Vendor, error) {
	vendors := []models.Vendor{}
	query := `SELECT id, name, email, created_at FROM vendors ORDER BY created_at DESC`
	if err := s.db.SelectContext(ctx, &vendors, query); err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}

// GetByIDs fetches the vendors matching the given identifiers
func (s *VendorService) GetByIDs(ctx context.Context, ids []string) ([]models.Vendor, error) {
	if len(ids) == 0 {
		return []models.Vendor{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, name, email, created_at FROM vendors WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build vendor query: %w", err)
	}
	query = s.db.Rebind(query)

	vendors := []models.Vendor{}
	if err := s.db.SelectContext(ctx, &vendors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get vendors: %w", err)
	}
	return vendors, nil
}
