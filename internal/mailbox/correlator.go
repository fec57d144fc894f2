package mailbox

import (
	"context"
	"regexp"
	"strings"

	"rfphub/internal/models"
)

// rfpIDPattern matches the correlation identifier embedded in reply subjects,
// e.g. "Re: RFP Requirement: Laptops (ID: 01J9ZK...)". Only the first
// occurrence is used.
var rfpIDPattern = regexp.MustCompile(`\(ID: (.*?)\)`)

var senderAddrPattern = regexp.MustCompile(`<([^>]+)>`)

// VendorResolver resolves a sender to an existing or newly created vendor
type VendorResolver interface {
	FindOrCreateByEmail(ctx context.Context, name, email string) (*models.Vendor, error)
}

// ProposalParser extracts structured proposal fields from a reply body
type ProposalParser interface {
	ParseProposal(ctx context.Context, body string) models.ProposalParsedData
}

// ProposalDraft is the persistence instruction emitted for one correlated
// reply
type ProposalDraft struct {
	RFPID      string
	Vendor     *models.Vendor
	RawContent string
	ParsedData models.ProposalParsedData
	Summary    string
}

// Correlator turns fetched messages into proposal drafts
type Correlator struct {
	vendors VendorResolver
	parser  ProposalParser
}

// NewCorrelator creates a correlator over the given vendor resolver and
// proposal parser
func NewCorrelator(vendors VendorResolver, parser ProposalParser) *Correlator {
	return &Correlator{vendors: vendors, parser: parser}
}

// Correlate processes one message. A nil draft with a nil error means the
// message carried no correlation identifier and was skipped; the shared
// inbox is expected to contain unrelated mail, so this is not an error.
// The identifier is trusted as found: whether it still names an existing
// RFP is not verified here.
func (c *Correlator) Correlate(ctx context.Context, msg Message) (*ProposalDraft, error) {
	rfpID, ok := ExtractRFPID(msg.Subject)
	if !ok {
		return nil, nil
	}

	name, email := ParseSender(msg.From)
	vendor, err := c.vendors.FindOrCreateByEmail(ctx, name, email)
	if err != nil {
		return nil, err
	}

	parsed := c.parser.ParseProposal(ctx, msg.Body)

	return &ProposalDraft{
		RFPID:      rfpID,
		Vendor:     vendor,
		RawContent: msg.Body,
		ParsedData: parsed,
		Summary:    parsed.Summary,
	}, nil
}

// ExtractRFPID returns the first correlation identifier found in a subject
// line
func ExtractRFPID(subject string) (string, bool) {
	match := rfpIDPattern.FindStringSubmatch(subject)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// ParseSender splits a "Display Name <address>" header value into a
// best-effort name and address. With no angle-bracket address the whole
// value is treated as the address; there is no failure path.
func ParseSender(from string) (name, email string) {
	match := senderAddrPattern.FindStringSubmatch(from)
	if match == nil {
		addr := strings.TrimSpace(from)
		return addr, addr
	}

	email = match[1]
	name = strings.TrimSpace(strings.SplitN(from, "<", 2)[0])
	if name == "" {
		name = email
	}
	return name, email
}
