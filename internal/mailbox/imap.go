package mailbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// IMAPConfig holds the fixed account settings for the polled mailbox
type IMAPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Timeout  time.Duration
}

// IMAPDialer opens TLS IMAP sessions against a single configured account
type IMAPDialer struct {
	cfg IMAPConfig
}

// NewIMAPDialer creates a dialer for the configured mailbox account
func NewIMAPDialer(cfg IMAPConfig) *IMAPDialer {
	return &IMAPDialer{cfg: cfg}
}

// Dial connects, authenticates, and selects the inbox
func (d *IMAPDialer) Dial(ctx context.Context) (Session, error) {
	addr := fmt.Sprintf("%s:%d", d.cfg.Host, d.cfg.Port)

	c, err := client.DialTLS(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server %s: %w", addr, err)
	}
	c.Timeout = d.cfg.Timeout

	if err := c.Login(d.cfg.User, d.cfg.Password); err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("IMAP login failed: %w", err)
	}

	if _, err := c.Select("INBOX", false); err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("failed to select INBOX: %w", err)
	}

	return &imapSession{client: c}, nil
}

// imapSession is the go-imap backed Session
type imapSession struct {
	client *client.Client
}

func (s *imapSession) SearchUnseen(subject string) ([]uint32, error) {
	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	criteria.Header.Add("Subject", subject)

	seqNums, err := s.client.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("IMAP search failed: %w", err)
	}
	return seqNums, nil
}

// Fetch retrieves the full body of each message. The non-peek BODY[] fetch
// marks messages seen on the server as a side effect; MarkSeen is still
// called afterwards so the flag survives servers that defer it.
func (s *imapSession) Fetch(seqNums []uint32) ([]Message, error) {
	if len(seqNums) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(seqNums...)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem()}

	ch := make(chan *imap.Message, len(seqNums))
	done := make(chan error, 1)
	go func() {
		done <- s.client.Fetch(seqset, items, ch)
	}()

	var messages []Message
	for msg := range ch {
		r := msg.GetBody(section)
		if r == nil {
			continue
		}
		parsed, err := parseMessage(r)
		if err != nil {
			// An unparseable message is skipped; the rest of the batch
			// still completes
			continue
		}
		messages = append(messages, *parsed)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("IMAP fetch failed: %w", err)
	}

	return messages, nil
}

func (s *imapSession) MarkSeen(seqNums []uint32) error {
	if len(seqNums) == 0 {
		return nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(seqNums...)

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.SeenFlag}
	if err := s.client.Store(seqset, item, flags, nil); err != nil {
		return fmt.Errorf("failed to mark messages seen: %w", err)
	}
	return nil
}

func (s *imapSession) Close() error {
	err := s.client.Logout()
	if err != nil && !strings.Contains(err.Error(), "closed") {
		return fmt.Errorf("IMAP logout failed: %w", err)
	}
	return nil
}
