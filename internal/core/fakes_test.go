package core

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/damlois/ai-credit-controller/internal/utils"
)

// scriptedCompleter answers each prompt family with a canned response and
// records which prompts were issued, in order.
type scriptedCompleter struct {
	replyVerdict      string
	escalationVerdict string
	draft             string

	// failContains makes any prompt containing the substring fail,
	// simulating a model outage for one message in a batch.
	failContains string

	calls []string
}

func (s *scriptedCompleter) Generate(_ context.Context, prompt string, _ int) (string, error) {
	if s.failContains != "" && strings.Contains(prompt, s.failContains) {
		return "", errors.New("model unavailable")
	}
	switch {
	case strings.Contains(prompt, "requires a reply"):
		s.calls = append(s.calls, "needs_reply")
		return s.replyVerdict, nil
	case strings.Contains(prompt, "escalated to a human"):
		s.calls = append(s.calls, "needs_escalation")
		return s.escalationVerdict, nil
	default:
		s.calls = append(s.calls, "draft")
		return s.draft, nil
	}
}

type sentMail struct {
	recipient string
	subject   string
	body      string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, recipient, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{recipient: recipient, subject: subject, body: body})
	return nil
}

type recordingActivity struct {
	records  []OutcomeRecord
	err      error
	onAppend func()
}

func (a *recordingActivity) Append(_ context.Context, record OutcomeRecord) error {
	if a.err != nil {
		return a.err
	}
	if a.onAppend != nil {
		a.onAppend()
	}
	a.records = append(a.records, record)
	return nil
}

func (a *recordingActivity) Recent(_ context.Context, n int) ([]OutcomeRecord, error) {
	if n > len(a.records) {
		n = len(a.records)
	}
	return a.records[len(a.records)-n:], nil
}

type staticMailbox struct {
	batch []*FetchedMessage
	err   error
}

func (m *staticMailbox) FetchUnseen(context.Context) ([]*FetchedMessage, error) {
	return m.batch, m.err
}

type staticInvoices struct {
	invoices []Invoice
	err      error
}

func (s *staticInvoices) Load(context.Context) ([]Invoice, error) {
	return s.invoices, s.err
}

type fakeLedger struct {
	sent        map[string]bool
	wasSentErr  error
	markSentErr error
	marked      []string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{sent: make(map[string]bool)}
}

func (l *fakeLedger) WasSent(_ context.Context, key string) (bool, error) {
	if l.wasSentErr != nil {
		return false, l.wasSentErr
	}
	return l.sent[key], nil
}

func (l *fakeLedger) MarkSent(_ context.Context, key string) error {
	if l.markSentErr != nil {
		return l.markSentErr
	}
	l.sent[key] = true
	l.marked = append(l.marked, key)
	return nil
}

func newTestClassifier(completer TextCompleter) *ReplyClassifier {
	logger := zap.NewNop()
	return NewReplyClassifier(completer, utils.NewTextProcessor(logger), 4096, logger)
}

func newTestGenerator(completer TextCompleter) *ResponseGenerator {
	logger := zap.NewNop()
	return NewResponseGenerator(completer, utils.NewTextProcessor(logger), 4096, logger)
}
