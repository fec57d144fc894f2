package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"rfphub/internal/models"

	"github.com/rs/zerolog"
)

// NotSpecified is the sentinel written into any field that could not be
// determined from the input text.
const NotSpecified = "Not specified"

const unparsedProposalSummary = "Unable to parse proposal automatically"

var (
	budgetPattern   = regexp.MustCompile(`(?i)\$[\d,]+(\s*(per|each))?`)
	timelinePattern = regexp.MustCompile(`(?i)(next\s+(week|month|quarter|year)|within\s+\d+\s+(days|weeks|months))`)
	codeFenceJSON   = regexp.MustCompile("(?i)```json")
)

// Extractor turns free text into schema-complete structured records. Every
// method is best-effort-then-fallback: the generative call may time out,
// fail, or return garbage, and the result is still a fully populated record.
// No method returns an error.
type Extractor struct {
	gen    Generator
	logger zerolog.Logger
}

// NewExtractor creates an extractor over the given generator
func NewExtractor(gen Generator, logger zerolog.Logger) *Extractor {
	return &Extractor{gen: gen, logger: logger}
}

// GenerateRFPStructure extracts a structured RFP from a free-text
// procurement query
func (e *Extractor) GenerateRFPStructure(ctx context.Context, query string) models.RFPStructuredData {
	prompt := fmt.Sprintf(`You are a procurement data extraction AI.

STRICT RULES:
- You MUST extract budget and timeline if mentioned.
- NEVER leave fields empty.
- If missing, write "Not specified".
- Return ONLY valid JSON. No markdown. No explanation.

User Requirement:
"%s"

JSON format:
{
  "items": [
    { "name": "string", "quantity": "string", "description": "string" }
  ],
  "budget": "string",
  "timeline": "string",
  "warranty": "string",
  "paymentTerms": "string",
  "summary": "string"
}`, query)

	var data models.RFPStructuredData
	raw, err := e.gen.Generate(ctx, prompt)
	if err == nil {
		err = json.Unmarshal([]byte(stripCodeFences(raw)), &data)
	}
	if err != nil {
		e.logger.Warn().Err(err).Msg("RFP structure generation failed, using fallback")
		return fallbackRFPStructure(query)
	}

	// The model sometimes returns the sentinel for values that a plain
	// pattern match can still find in the input; prefer the match.
	if data.Budget == "" || data.Budget == NotSpecified {
		data.Budget = ExtractBudget(query)
	}
	if data.Timeline == "" || data.Timeline == NotSpecified {
		data.Timeline = ExtractTimeline(query)
	}

	return normalizeRFPStructure(data, query)
}

// ParseProposal extracts structured proposal fields from a vendor reply body
func (e *Extractor) ParseProposal(ctx context.Context, body string) models.ProposalParsedData {
	prompt := fmt.Sprintf(`Extract proposal details from this vendor email.
Return ONLY valid JSON.

Email:
"%s"

JSON format:
{
  "pricing": "string",
  "deliveryTime": "string",
  "warranty": "string",
  "paymentTerms": "string",
  "summary": "string"
}`, body)

	var data models.ProposalParsedData
	raw, err := e.gen.Generate(ctx, prompt)
	if err == nil {
		err = json.Unmarshal([]byte(stripCodeFences(raw)), &data)
	}
	if err != nil {
		e.logger.Warn().Err(err).Msg("Proposal parse failed, using fallback")
		return fallbackProposalData()
	}

	return normalizeProposalData(data)
}

// CompareProposals aggregates the proposals for one RFP into a ranked
// recommendation. Single attempt, no retry; an empty input or any failure
// yields the fixed manual-review fallback.
func (e *Extractor) CompareProposals(ctx context.Context, proposals []models.ProposalWithVendor) models.ProposalComparison {
	if len(proposals) == 0 {
		return fallbackComparison()
	}

	encoded, err := json.Marshal(comparisonInput(proposals))
	if err != nil {
		e.logger.Warn().Err(err).Msg("Proposal comparison failed, using fallback")
		return fallbackComparison()
	}

	prompt := fmt.Sprintf(`Compare these vendor proposals and recommend the best one.
Return ONLY JSON.

Proposals:
%s

JSON format:
{
  "summary": "string",
  "recommendation": "string",
  "rankings": [
    { "vendor": "string", "rank": number, "reason": "string" }
  ]
}`, encoded)

	var comparison models.ProposalComparison
	raw, err := e.gen.Generate(ctx, prompt)
	if err == nil {
		err = json.Unmarshal([]byte(stripCodeFences(raw)), &comparison)
	}
	if err != nil {
		e.logger.Warn().Err(err).Msg("Proposal comparison failed, using fallback")
		return fallbackComparison()
	}

	if comparison.Summary == "" {
		comparison.Summary = NotSpecified
	}
	if comparison.Recommendation == "" {
		comparison.Recommendation = NotSpecified
	}
	if comparison.Rankings == nil {
		comparison.Rankings = []models.VendorRanking{}
	}

	return comparison
}

// ExtractBudget returns the first currency amount found in the text
func ExtractBudget(text string) string {
	if match := budgetPattern.FindString(text); match != "" {
		return match
	}
	return NotSpecified
}

// ExtractTimeline returns the first relative-time phrase found in the text
func ExtractTimeline(text string) string {
	if match := timelinePattern.FindString(text); match != "" {
		return match
	}
	return NotSpecified
}

// stripCodeFences removes markdown code-fence markers the model wraps its
// JSON in despite instructions
func stripCodeFences(raw string) string {
	cleaned := codeFenceJSON.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// comparisonEntry is the per-proposal view sent to the comparison prompt
type comparisonEntry struct {
	Vendor     string                    `json:"vendor"`
	ParsedData models.ProposalParsedData `json:"parsedData"`
	Summary    string                    `json:"summary"`
}

func comparisonInput(proposals []models.ProposalWithVendor) []comparisonEntry {
	entries := make([]comparisonEntry, len(proposals))
	for i, p := range proposals {
		entries[i] = comparisonEntry{
			Vendor:     p.VendorName,
			ParsedData: p.ParsedData,
			Summary:    p.AISummary,
		}
	}
	return entries
}

// normalizeRFPStructure guarantees a schema-complete record regardless of
// what the model returned
func normalizeRFPStructure(data models.RFPStructuredData, query string) models.RFPStructuredData {
	if len(data.Items) == 0 {
		data.Items = []models.LineItem{placeholderItem(query)}
	}
	for i := range data.Items {
		if data.Items[i].Name == "" {
			data.Items[i].Name = NotSpecified
		}
		if data.Items[i].Quantity == "" {
			data.Items[i].Quantity = NotSpecified
		}
		if data.Items[i].Description == "" {
			data.Items[i].Description = NotSpecified
		}
	}
	if data.Budget == "" {
		data.Budget = NotSpecified
	}
	if data.Timeline == "" {
		data.Timeline = NotSpecified
	}
	if data.Warranty == "" {
		data.Warranty = NotSpecified
	}
	if data.PaymentTerms == "" {
		data.PaymentTerms = NotSpecified
	}
	if data.Summary == "" {
		data.Summary = querySummary(query)
	}
	return data
}

func querySummary(query string) string {
	summary := strings.TrimSpace(query)
	if summary == "" {
		return NotSpecified
	}
	return summary
}

func normalizeProposalData(data models.ProposalParsedData) models.ProposalParsedData {
	if data.Pricing == "" {
		data.Pricing = NotSpecified
	}
	if data.DeliveryTime == "" {
		data.DeliveryTime = NotSpecified
	}
	if data.Warranty == "" {
		data.Warranty = NotSpecified
	}
	if data.PaymentTerms == "" {
		data.PaymentTerms = NotSpecified
	}
	if data.Summary == "" {
		data.Summary = unparsedProposalSummary
	}
	return data
}

func placeholderItem(query string) models.LineItem {
	description := strings.TrimSpace(query)
	if description == "" {
		description = NotSpecified
	}
	return models.LineItem{
		Name:        "Requested item",
		Quantity:    "1",
		Description: description,
	}
}

func fallbackRFPStructure(query string) models.RFPStructuredData {
	return models.RFPStructuredData{
		Items:        []models.LineItem{placeholderItem(query)},
		Budget:       ExtractBudget(query),
		Timeline:     ExtractTimeline(query),
		Warranty:     "Standard warranty",
		PaymentTerms: "To be discussed",
		Summary:      querySummary(query),
	}
}

func fallbackProposalData() models.ProposalParsedData {
	return models.ProposalParsedData{
		Pricing:      NotSpecified,
		DeliveryTime: NotSpecified,
		Warranty:     NotSpecified,
		PaymentTerms: NotSpecified,
		Summary:      unparsedProposalSummary,
	}
}

func fallbackComparison() models.ProposalComparison {
	return models.ProposalComparison{
		Summary:        "Comparison could not be generated",
		Recommendation: "Manual review required",
		Rankings:       []models.VendorRanking{},
	}
}
