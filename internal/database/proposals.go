package database

import (
	"context"
	"fmt"

	"rfphub/internal/models"

	"github.com/jmoiron/sqlx"
)

// ProposalService handles proposal record storage
type ProposalService struct {
	db *sqlx.DB
}

// NewProposalService creates a new proposal service
func NewProposalService(db *sqlx.DB) (*ProposalService, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required for proposal service")
	}

	service := &ProposalService{db: db}

	// Create tables if they don't exist
	if err := service.CreateTables(); err != nil {
		return nil, fmt.Errorf("failed to create proposal tables: %w", err)
	}

	return service, nil
}

// CreateTables creates the proposal tables in the database.
// rfp_id carries no foreign key: a proposal may reference an RFP that was
// deleted after the reply arrived, and readers must tolerate that.
func (s *ProposalService) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS proposals (
			id VARCHAR(26) PRIMARY KEY,
			rfp_id VARCHAR(64) NOT NULL,
			vendor_id VARCHAR(26) NOT NULL,
			received_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			raw_content TEXT,
			parsed_data JSONB NOT NULL,
			ai_summary TEXT,
			ai_rating NUMERIC
		)`,
		`CREATE INDEX IF NOT EXISTS idx_proposals_rfp_id ON proposals(rfp_id)`,
		`CREATE INDEX IF NOT EXISTS idx_proposals_received_at ON proposals(received_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			// Ignore "already exists" errors
			continue
		}
	}

	return nil
}

// Create persists a correlated vendor reply as a proposal
func (s *ProposalService) Create(ctx context.Context, rfpID, vendorID, rawContent string, parsed models.ProposalParsedData, summary string) (*models.Proposal, error) {
	proposal := &models.Proposal{
		ID:         newID(),
		RFPID:      rfpID,
		VendorID:   vendorID,
		RawContent: rawContent,
		ParsedData: parsed,
		AISummary:  summary,
	}

	query := `
		INSERT INTO proposals (id, rfp_id, vendor_id, received_at, raw_content, parsed_data, ai_summary)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, $4, $5, $6)
		RETURNING received_at
	`
	err := s.db.QueryRowxContext(ctx, query,
		proposal.ID, proposal.RFPID, proposal.VendorID, proposal.RawContent, proposal.ParsedData, proposal.AISummary).
		Scan(&proposal.ReceivedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	return proposal, nil
}

// ListByRFP returns the proposals received for an RFP with vendor details,
// newest first
func (s *ProposalService) ListByRFP(ctx context.Context, rfpID string) ([]models.ProposalWithVendor, error) {
	proposals := []models.ProposalWithVendor{}
	query := `
		SELECT
			p.id, p.rfp_id, p.vendor_id, p.received_at, p.raw_content,
			p.parsed_data, p.ai_summary, p.ai_rating,
			v.name AS vendor_name, v.email AS vendor_email
		FROM proposals p
		JOIN vendors v ON v.id = p.vendor_id
		WHERE p.rfp_id = $1
		ORDER BY p.received_at DESC
	`
	if err := s.db.SelectContext(ctx, &proposals, query, rfpID); err != nil {
		return nil, fmt.Errorf("failed to list proposals for RFP %s: %w", rfpID, err)
	}
	return proposals, nil
}
