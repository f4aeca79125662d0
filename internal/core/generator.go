package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/damlois/ai-credit-controller/internal/utils"
	"go.uber.org/zap"
)

const (
	replyMaxTokens    = 350
	reminderMaxTokens = 250
)

const replyPrompt = `As a professional credit controller at Interprais, respond to the following client message:

%q

Craft a single, thoughtful, human-like email reply based on the message. Choose only one appropriate response, based on the client's intent.

- If the client says they will pay soon but doesn't give a date, thank them and ask for a specific payment date.
- If they already provided a date, acknowledge it politely.
- If they say they've already paid, apologize for any discrepancy and let them know you'll verify and confirm.
- If they share a concern or delay, acknowledge it and request a realistic payment date.

Only reply with the one appropriate message - do not list multiple variations or explanations.
Use a respectful and warm professional tone. Keep it concise and ready to send.
Do not include placeholders, commentary, or contact info.

Reply in this format:

Subject: [A short subject line]

Dear Customer,

[Email body]

Interprais Credit Controller`

const reminderPrompt = `Write a concise, professional, and polite email reminder to %s about their overdue invoice of %.2f due on %s. Do not include any reasoning, explanations, or extra commentary - just the email content. Do not add a signature or company contact info. Start directly with the greeting and end with a warm closing, but do not include your name or company details. Reply in this format:

Subject: [A short subject line]

Dear %s,

[Email body]

Interprais Credit Controller`

// ResponseGenerator drafts outbound email bodies. Model-backed drafts are
// passed through verbatim; the generator never parses the Subject/body
// structure the prompt requests. Escalation messages are fixed templates
// with no model call.
type ResponseGenerator struct {
	completer   TextCompleter
	textProc    *utils.TextProcessor
	maxBodySize int
	logger      *zap.Logger
}

// NewResponseGenerator creates a generator backed by the given completer.
func NewResponseGenerator(completer TextCompleter, textProc *utils.TextProcessor, maxBodySize int, logger *zap.Logger) *ResponseGenerator {
	return &ResponseGenerator{
		completer:   completer,
		textProc:    textProc,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

// DraftReply produces the AI reply for a non-escalated message. A blank
// model response surfaces as ErrEmptyDraft so an empty body is never sent.
func (g *ResponseGenerator) DraftReply(ctx context.Context, body string) (string, error) {
	body = g.textProc.ProcessText(body, g.maxBodySize)
	draft, err := g.completer.Generate(ctx, fmt.Sprintf(replyPrompt, body), replyMaxTokens)
	if err != nil {
		return "", fmt.Errorf("draft reply: %w", err)
	}
	if strings.TrimSpace(draft) == "" {
		return "", fmt.Errorf("draft reply: %w", ErrEmptyDraft)
	}
	return strings.TrimSpace(draft), nil
}

// DraftInitialReminder produces the outbound overdue-payment reminder for
// one invoice.
func (g *ResponseGenerator) DraftInitialReminder(ctx context.Context, clientName string, amount float64, dueDate string) (string, error) {
	prompt := fmt.Sprintf(reminderPrompt, clientName, amount, dueDate, clientName)
	draft, err := g.completer.Generate(ctx, prompt, reminderMaxTokens)
	if err != nil {
		return "", fmt.Errorf("draft reminder: %w", err)
	}
	if strings.TrimSpace(draft) == "" {
		return "", fmt.Errorf("draft reminder: %w", ErrEmptyDraft)
	}
	return strings.TrimSpace(draft), nil
}

// DraftEscalationAck is the deterministic client-facing acknowledgment sent
// when a case is routed to a human.
func (g *ResponseGenerator) DraftEscalationAck(subject string) string {
	return fmt.Sprintf("Dear Customer,\n\n"+
		"Thank you for your message regarding '%s'.\n"+
		"Our team has been notified and will get back to you shortly after reviewing your case.\n\n"+
		"Interprais Credit Controller", subject)
}

// EscalationNotice is the deterministic body of the email that routes a
// client message to the human escalation address.
func (g *ResponseGenerator) EscalationNotice(sender, subject, body string) string {
	return fmt.Sprintf("AI Agent Escalation Notice\n\nFrom: %s\nSubject: %s\nMessage:\n%s", sender, subject, body)
}
