// Package mailbox polls an IMAP account for vendor replies, correlates each
// reply to an RFP by the identifier embedded in its subject, and persists the
// extracted proposals.
package mailbox

import "context"

// ReplySubjectMarker is the fixed token vendors are instructed to keep in
// their reply subject. The poll search filters on it so unrelated mail in a
// shared inbox is never fetched.
const ReplySubjectMarker = "Re: RFP Requirement"

// Message is one fetched mail message reduced to the fields ingestion needs
type Message struct {
	Subject string
	From    string
	Body    string
}

// Session is one open mailbox connection. The IMAP implementation lives in
// imap.go; tests substitute a fake.
type Session interface {
	// SearchUnseen returns the sequence numbers of unseen messages whose
	// subject contains the given marker
	SearchUnseen(subject string) ([]uint32, error)
	// Fetch retrieves and parses the given messages. Fetching also marks
	// them seen on the server.
	Fetch(seqNums []uint32) ([]Message, error)
	// MarkSeen explicitly flags the given messages as seen
	MarkSeen(seqNums []uint32) error
	Close() error
}

// Dialer opens mailbox sessions
type Dialer interface {
	Dial(ctx context.Context) (Session, error)
}
