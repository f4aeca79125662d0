package core

import (
	"context"
	"errors"
)

// ErrMissingCredentials is returned when a mail operation is attempted
// without transport credentials configured.
var ErrMissingCredentials = errors.New("mail credentials are not configured")

// ErrMissingEscalationAddress is returned when a message requires human
// escalation but no escalation recipient is configured.
var ErrMissingEscalationAddress = errors.New("escalation address is not configured")

// ErrEmptyDraft is returned when the model produced no usable text for a
// draft. It distinguishes a generation failure from a legitimate draft and
// keeps empty bodies from being emailed.
var ErrEmptyDraft = errors.New("model returned an empty draft")

// TextCompleter sends a prompt to a language model and returns the raw
// response text. Implementations return an empty string rather than an
// error when the model response carries no text field.
type TextCompleter interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// MailboxReader yields unread messages from the inbox. Messages with no
// extractable plain-text payload are filtered out before they are returned.
// Marking a message seen is deferred to its Commit handle.
type MailboxReader interface {
	FetchUnseen(ctx context.Context) ([]*FetchedMessage, error)
}

// Mailer sends a single email.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// InvoiceStore loads the invoice records the reminder sweep runs over.
// A missing backing file yields an empty slice, not an error.
type InvoiceStore interface {
	Load(ctx context.Context) ([]Invoice, error)
}

// ActivityLog is the append-only audit trail of triage and reminder
// outcomes. Recent returns at most n of the newest records for display.
type ActivityLog interface {
	Append(ctx context.Context, record OutcomeRecord) error
	Recent(ctx context.Context, n int) ([]OutcomeRecord, error)
}

// ReminderLedger records which invoices have already received an overdue
// reminder, keyed by Invoice.Key, so sweeps never re-send per tick.
type ReminderLedger interface {
	WasSent(ctx context.Context, invoiceKey string) (bool, error)
	MarkSent(ctx context.Context, invoiceKey string) error
}
