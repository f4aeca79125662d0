package core

import (
	"context"
	"fmt"

	"github.com/damlois/ai-credit-controller/internal/utils"
	"go.uber.org/zap"
)

// Token budget for a one-word YES/NO verdict.
const decisionMaxTokens = 5

const needsReplyPrompt = `Determine if the following client message requires a reply from a credit controller. Reply ONLY with YES or NO.

Message:
%q

Say NO only if the message is a simple, polite acknowledgment that clearly requires no further response (such as 'Thank you', 'Noted', 'Okay', 'Received').

Say YES if the message:
- Mentions a future payment or states they will pay later
- Indicates they have already paid or will send proof of payment
- Expresses confusion, concern, or dissatisfaction
- Asks a question or seeks clarification
- Explains a reason for delay or requests more time
- Mentions a partial payment or any unusual situation
- Includes ambiguous or unclear content that might require follow-up`

const needsEscalationPrompt = `As a professional credit controller, determine whether a client's reply should be escalated to a human. Respond with only YES or NO.

Client's message:
%q

Say YES only if the client:
- Says they have already paid
- Expresses confusion or surprise about the message
- Submits a complaint or dispute

Say NO for all other responses, including if the client says they will pay later, or provides information that can be handled without human involvement.`

// ReplyClassifier runs the two triage predicates over a message body.
// Both predicates are stateless, issue one model call each, and fall back
// to their conservative default on ambiguous output: silence must never
// trigger an unwanted reply or escalation.
type ReplyClassifier struct {
	completer   TextCompleter
	textProc    *utils.TextProcessor
	maxBodySize int
	logger      *zap.Logger
}

// NewReplyClassifier creates a classifier backed by the given completer.
func NewReplyClassifier(completer TextCompleter, textProc *utils.TextProcessor, maxBodySize int, logger *zap.Logger) *ReplyClassifier {
	return &ReplyClassifier{
		completer:   completer,
		textProc:    textProc,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

// NeedsReply reports whether the message warrants any response at all.
// Defaults to false when the model's verdict is not a clear yes.
func (c *ReplyClassifier) NeedsReply(ctx context.Context, body string) (bool, error) {
	body = c.textProc.ProcessText(body, c.maxBodySize)
	return c.decide(ctx, "needs_reply", fmt.Sprintf(needsReplyPrompt, body))
}

// NeedsEscalation reports whether the message must be routed to a human.
// Defaults to false when the model's verdict is not a clear yes.
func (c *ReplyClassifier) NeedsEscalation(ctx context.Context, body string) (bool, error) {
	body = c.textProc.ProcessText(body, c.maxBodySize)
	return c.decide(ctx, "needs_escalation", fmt.Sprintf(needsEscalationPrompt, body))
}

// Classify evaluates both predicates for one message. The escalation
// predicate is only consulted when a reply is needed at all, so a
// no-reply message costs exactly one model call.
func (c *ReplyClassifier) Classify(ctx context.Context, body string) (ClassificationResult, error) {
	needsReply, err := c.NeedsReply(ctx, body)
	if err != nil {
		return ClassificationResult{}, err
	}
	if !needsReply {
		return ClassificationResult{}, nil
	}

	needsEscalation, err := c.NeedsEscalation(ctx, body)
	if err != nil {
		return ClassificationResult{}, err
	}
	return ClassificationResult{NeedsReply: true, NeedsEscalation: needsEscalation}, nil
}

func (c *ReplyClassifier) decide(ctx context.Context, predicate, prompt string) (bool, error) {
	response, err := c.completer.Generate(ctx, prompt, decisionMaxTokens)
	if err != nil {
		return false, fmt.Errorf("%s classification: %w", predicate, err)
	}

	decision := ParseDecision(response)
	if decision == DecisionUnknown {
		c.logger.Debug("Ambiguous classifier verdict, using conservative default",
			zap.String("predicate", predicate),
			zap.String("response", response))
	}
	return decision == DecisionYes, nil
}
