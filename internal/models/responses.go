package models

import "time"

// HealthResponse represents a basic health check response
// @Description Health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`                 // Health status
	Timestamp time.Time `json:"timestamp" example:"2023-01-01T00:00:00Z"` // Timestamp of the check
	Version   string    `json:"version" example:"1.0.0"`                  // Application version
}

// DBHealthResponse represents a database health check response
// @Description Database health check response
type DBHealthResponse struct {
	Status    string        `json:"status" example:"healthy"`                   // Health status
	Timestamp time.Time     `json:"timestamp" example:"2023-01-01T00:00:00Z"`   // Timestamp of the check
	Connected bool          `json:"connected" example:"true"`                   // Database connection status
	Latency   time.Duration `json:"latency" swaggertype:"string" example:"1ms"` // Database ping latency
	Error     string        `json:"error,omitempty" example:""`                 // Error message if any
}

// GenerateRequest is the request body for RFP structure generation
// @Description Free-text procurement query
type GenerateRequest struct {
	Query string `json:"query" example:"We need 50 laptops, budget $50,000, delivery within 4 weeks"`
}

// CreateRFPRequest is the request body for creating an RFP record
// @Description New RFP payload
type CreateRFPRequest struct {
	Title          string            `json:"title"`
	OriginalQuery  string            `json:"original_query"`
	StructuredData RFPStructuredData `json:"structured_data"`
}

// SendRFPRequest is the request body for dispatching an RFP to vendors
// @Description Vendor ids to dispatch the RFP to
type SendRFPRequest struct {
	VendorIDs []string `json:"vendor_ids"`
}

// CreateVendorRequest is the request body for registering a vendor directly
// @Description New vendor payload
type CreateVendorRequest struct {
	Name  string `json:"name" example:"Acme Supplies"`
	Email string `json:"email" example:"sales@acme.com"`
}

// CheckEmailsResponse reports the outcome of one reply-ingestion cycle.
// Status distinguishes a failed poll from an empty mailbox; the original
// behavior conflated the two.
// @Description Reply ingestion result
type CheckEmailsResponse struct {
	Message string `json:"message" example:"Emails checked. Found 2 new replies."`
	Count   int    `json:"count" example:"2"`
	Status  string `json:"status" example:"ok"` // "ok" or "failed"
}

// RFPDetailResponse is an RFP together with its received proposals
// @Description RFP with proposals
type RFPDetailResponse struct {
	RFP       *RFP                 `json:"rfp"`
	Proposals []ProposalWithVendor `json:"proposals"`
}

// ErrorResponse is a generic error payload
// @Description Error response
type ErrorResponse struct {
	Error string `json:"error"`
}
