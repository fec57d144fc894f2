package mailbox

import (
	"context"

	"rfphub/internal/models"

	"github.com/rs/zerolog"
)

// ProposalWriter persists correlated proposal drafts
type ProposalWriter interface {
	Create(ctx context.Context, rfpID, vendorID, rawContent string, parsed models.ProposalParsedData, summary string) (*models.Proposal, error)
}

// Poller runs one reply-ingestion cycle on demand. Cycles are caller-driven;
// there is no internal scheduler, and concurrent cycles may ingest the same
// message twice if both fetch it before the seen flag lands.
type Poller struct {
	dialer     Dialer
	correlator *Correlator
	proposals  ProposalWriter
	logger     zerolog.Logger
}

// NewPoller creates a poller
func NewPoller(dialer Dialer, correlator *Correlator, proposals ProposalWriter, logger zerolog.Logger) *Poller {
	return &Poller{
		dialer:     dialer,
		correlator: correlator,
		proposals:  proposals,
		logger:     logger,
	}
}

// Poll fetches unseen vendor replies, correlates them, and persists the
// resulting proposals. It returns the number of proposals persisted.
// Session-level failures return (0, err) so callers can tell a failed cycle
// from an empty mailbox; per-message failures are logged and isolated, and
// messages without a correlation identifier are counted as skipped.
func (p *Poller) Poll(ctx context.Context) (int, error) {
	session, err := p.dialer.Dial(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("Mailbox session failed")
		return 0, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			p.logger.Warn().Err(err).Msg("Error closing mailbox session")
		}
	}()

	seqNums, err := session.SearchUnseen(ReplySubjectMarker)
	if err != nil {
		p.logger.Error().Err(err).Msg("Mailbox search failed")
		return 0, err
	}
	if len(seqNums) == 0 {
		p.logger.Debug().Msg("No unseen replies")
		return 0, nil
	}

	messages, err := session.Fetch(seqNums)
	if err != nil {
		p.logger.Error().Err(err).Msg("Mailbox fetch failed")
		return 0, err
	}

	// Every fetched message is marked seen, correlated or not. If this
	// fails the messages may be re-ingested on the next cycle, producing
	// duplicate proposals; that is accepted.
	if err := session.MarkSeen(seqNums); err != nil {
		p.logger.Warn().Err(err).Msg("Failed to mark replies seen, duplicates possible on next poll")
	}

	correlated := 0
	skipped := 0
	for _, msg := range messages {
		draft, err := p.correlator.Correlate(ctx, msg)
		if err != nil {
			p.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("Reply correlation failed")
			continue
		}
		if draft == nil {
			skipped++
			continue
		}

		if _, err := p.proposals.Create(ctx, draft.RFPID, draft.Vendor.ID, draft.RawContent, draft.ParsedData, draft.Summary); err != nil {
			p.logger.Error().Err(err).Str("rfp_id", draft.RFPID).Msg("Failed to persist proposal")
			continue
		}
		correlated++
	}

	p.logger.Info().
		Int("fetched", len(messages)).
		Int("correlated", correlated).
		Int("skipped", skipped).
		Msg("Reply poll cycle complete")

	return correlated, nil
}
