package email

import (
	"fmt"
	"strings"

	"rfphub/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Service handles dispatching RFPs to vendors via SendGrid
type Service struct {
	apiKey    string
	fromEmail string
}

// NewService creates a new email service instance
func NewService(apiKey, fromEmail string) *Service {
	if fromEmail == "" {
		fromEmail = "procurement@rfphub.io"
	}
	return &Service{
		apiKey:    apiKey,
		fromEmail: fromEmail,
	}
}

// Subject builds the outgoing subject line. The "(ID: ...)" token is what
// reply correlation keys on, so it must survive into the vendor's reply
// subject.
func Subject(rfp *models.RFP) string {
	return fmt.Sprintf("RFP Requirement: %s (ID: %s)", rfp.Title, rfp.ID)
}

// SendRFP composes and delivers one RFP email to a vendor. It reports
// success as a boolean; delivery failures are the caller's to log and
// swallow.
func (s *Service) SendRFP(vendorEmail string, rfp *models.RFP) bool {
	if s.apiKey == "" {
		return false
	}

	from := mail.NewEmail("Procurement Team", s.fromEmail)
	to := mail.NewEmail("Vendor", vendorEmail)
	body := composeBody(rfp)

	message := mail.NewSingleEmail(from, Subject(rfp), to, body, body)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return false
	}

	return response.StatusCode < 400
}

func composeBody(rfp *models.RFP) string {
	var items strings.Builder
	for _, item := range rfp.StructuredData.Items {
		items.WriteString(fmt.Sprintf("- %s: %s\n", item.Name, item.Quantity))
	}

	return fmt.Sprintf(`Dear Vendor,

We have a new procurement requirement. Please verify the details below and reply to this email with your proposal.

Items:
%s
Budget: %s
Timeline: %s

IMPORTANT: Please reply to this email. Your subject line MUST contain "Re: RFP Requirement".

Regards,
Procurement Team`, items.String(), rfp.StructuredData.Budget, rfp.StructuredData.Timeline)
}
