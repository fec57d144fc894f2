package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RFP lifecycle statuses. An RFP starts as a draft, becomes Sent once
// dispatched to vendors, and is closed manually. Closed RFPs are immutable.
const (
	StatusDraft  = "Draft"
	StatusSent   = "Sent"
	StatusClosed = "Closed"
)

// LineItem is a single procurement line inside an RFP
type LineItem struct {
	Name        string `json:"name" example:"Laptop"`
	Quantity    string `json:"quantity" example:"50"`
	Description string `json:"description" example:"Business laptops as per user requirement"`
}

// RFPStructuredData is the structured payload extracted from a free-text query
// @Description Structured procurement requirement fields
type RFPStructuredData struct {
	Items        []LineItem `json:"items"`
	Budget       string     `json:"budget" example:"$50,000"`
	Timeline     string     `json:"timeline" example:"within 4 weeks"`
	Warranty     string     `json:"warranty" example:"Standard warranty"`
	PaymentTerms string     `json:"paymentTerms" example:"To be discussed"`
	Summary      string     `json:"summary" example:"50 business laptops for the sales team"`
}

// Value implements driver.Valuer so the payload is stored as a JSON column
func (d RFPStructuredData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for reading the JSON column back
func (d *RFPStructuredData) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported type %T for RFPStructuredData", src)
	}
}

// RFP represents a procurement request
// @Description Request for proposal record
type RFP struct {
	ID             string            `db:"id" json:"id" example:"01J9ZK3V7R8WQT5E2M4N6P8B0D"`
	Title          string            `db:"title" json:"title" example:"Office laptops Q3"`
	OriginalQuery  string            `db:"original_query" json:"original_query"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	Status         string            `db:"status" json:"status" example:"Draft"`
	StructuredData RFPStructuredData `db:"structured_data" json:"structured_data"`
}
