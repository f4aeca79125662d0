package core

import (
	"fmt"
	"strings"
	"time"
)

// InboundMessage represents one unread client reply pulled from the mailbox.
// It is immutable once fetched and consumed exactly once by the triage cycle.
type InboundMessage struct {
	Sender  string
	Subject string
	Body    string
}

// FetchedMessage pairs an inbound message with its mark-seen commit step.
// Commit must only be called after the message's outcome has been recorded,
// so a crash mid-cycle never loses the seen-state of an unprocessed message.
type FetchedMessage struct {
	InboundMessage

	Commit func() error
}

// ClassificationResult holds the two independent triage decisions for one message.
type ClassificationResult struct {
	NeedsReply      bool
	NeedsEscalation bool
}

// OutcomeKind identifies what happened to one message or invoice during a cycle.
type OutcomeKind string

const (
	OutcomeReminderSent  OutcomeKind = "reminder-sent"
	OutcomeNoReplyNeeded OutcomeKind = "no-reply-needed"
	OutcomeAIReplySent   OutcomeKind = "ai-reply-sent"
	OutcomeEscalated     OutcomeKind = "escalated"
	OutcomeError         OutcomeKind = "error"
)

// OutcomeRecord is one append-only audit entry. Records are never mutated
// after they are appended to the activity log.
type OutcomeRecord struct {
	Kind       OutcomeKind
	Detail     string
	RecordedAt time.Time
}

// NewOutcomeRecord creates a timestamped outcome record.
func NewOutcomeRecord(kind OutcomeKind, detail string) OutcomeRecord {
	return OutcomeRecord{
		Kind:       kind,
		Detail:     detail,
		RecordedAt: time.Now().UTC(),
	}
}

// String renders the record the way the activity log displays it.
func (r OutcomeRecord) String() string {
	return fmt.Sprintf("[%s] %s", r.Kind, r.Detail)
}

// Invoice is a read-only view of one invoice from the invoice store.
// The triage core only consumes the overdue subset and never writes
// invoice state back.
type Invoice struct {
	ID      string  `json:"id,omitempty"`
	Client  string  `json:"client"`
	Amount  float64 `json:"amount"`
	DueDate string  `json:"due_date"`
	Status  string  `json:"status"`
	Email   string  `json:"email"`
}

// Key returns a stable identifier for reminder-sent bookkeeping. Invoices
// without an explicit ID fall back to the email/due-date pair.
func (i Invoice) Key() string {
	if id := strings.TrimSpace(i.ID); id != "" {
		return id
	}
	return strings.ToLower(strings.TrimSpace(i.Email)) + "|" + strings.TrimSpace(i.DueDate)
}

// Due parses the invoice due date (YYYY-MM-DD).
func (i Invoice) Due() (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(i.DueDate))
}

// IsOverdue reports whether the invoice is unpaid with a due date strictly
// before now's calendar date. Invoices with unparseable due dates are never
// considered overdue.
func (i Invoice) IsOverdue(now time.Time) bool {
	if !strings.EqualFold(strings.TrimSpace(i.Status), "unpaid") {
		return false
	}
	due, err := i.Due()
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// Overdue filters invoices down to the unpaid, past-due subset.
func Overdue(invoices []Invoice, now time.Time) []Invoice {
	var overdue []Invoice
	for _, inv := range invoices {
		if inv.IsOverdue(now) {
			overdue = append(overdue, inv)
		}
	}
	return overdue
}

// ExtractAddress pulls the bare address out of a raw From header. Headers
// arrive either as "Jane Doe <jane@example.com>" or as a plain address;
// the extraction is total and idempotent.
func ExtractAddress(raw string) string {
	start := strings.LastIndex(raw, "<")
	end := strings.LastIndex(raw, ">")
	if start >= 0 && end > start {
		return strings.TrimSpace(raw[start+1 : end])
	}
	return strings.TrimSpace(raw)
}
