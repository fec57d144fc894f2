package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Vendor represents a supplier that replies to RFPs. Email is the natural
// key: the resolver creates a vendor lazily the first time a reply from a
// new address is seen.
type Vendor struct {
	ID        string    `db:"id" json:"id" example:"01J9ZK3V7R8WQT5E2M4N6P8B0D"`
	Name      string    `db:"name" json:"name" example:"Acme Supplies"`
	Email     string    `db:"email" json:"email" example:"sales@acme.com"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProposalParsedData is the structured payload extracted from a vendor reply
// @Description Structured proposal fields extracted from a reply body
type ProposalParsedData struct {
	Pricing      string `json:"pricing" example:"$2,500 each"`
	DeliveryTime string `json:"deliveryTime" example:"within 3 weeks"`
	Warranty     string `json:"warranty" example:"2 year on-site"`
	PaymentTerms string `json:"paymentTerms" example:"Net 30"`
	Summary      string `json:"summary"`
}

// Value implements driver.Valuer so the payload is stored as a JSON column
func (d ProposalParsedData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for reading the JSON column back
func (d *ProposalParsedData) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported type %T for ProposalParsedData", src)
	}
}

// Proposal represents one vendor reply correlated to exactly one RFP and one
// vendor. The RFP reference is the identifier found in the reply subject at
// ingestion time; it is not re-validated, so readers must tolerate dangling
// references.
type Proposal struct {
	ID         string             `db:"id" json:"id"`
	RFPID      string             `db:"rfp_id" json:"rfp_id"`
	VendorID   string             `db:"vendor_id" json:"vendor_id"`
	ReceivedAt time.Time          `db:"received_at" json:"received_at"`
	RawContent string             `db:"raw_content" json:"raw_content"`
	ParsedData ProposalParsedData `db:"parsed_data" json:"parsed_data"`
	AISummary  string             `db:"ai_summary" json:"ai_summary"`
	AIRating   *float64           `db:"ai_rating" json:"ai_rating,omitempty"` // reserved, never set by ingestion
}

// ProposalWithVendor is a proposal joined with its vendor for listing and
// comparison.
type ProposalWithVendor struct {
	Proposal
	VendorName  string `db:"vendor_name" json:"vendor_name"`
	VendorEmail string `db:"vendor_email" json:"vendor_email"`
}

// VendorRanking is one entry in a proposal comparison result
type VendorRanking struct {
	Vendor string `json:"vendor" example:"Acme Supplies"`
	Rank   int    `json:"rank" example:"1"`
	Reason string `json:"reason" example:"Lowest price with acceptable delivery"`
}

// ProposalComparison is the aggregated recommendation over all proposals
// for one RFP
// @Description Ranked comparison of vendor proposals
type ProposalComparison struct {
	Summary        string          `json:"summary"`
	Recommendation string          `json:"recommendation"`
	Rankings       []VendorRanking `json:"rankings"`
}
