package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// TriageOptions carries the orchestration settings that come from
// configuration rather than from collaborators.
type TriageOptions struct {
	// EscalationAddress receives the human-escalation notice.
	EscalationAddress string
	// IgnoredSenders lists bare addresses (mailer daemons, no-reply
	// aliases) whose messages are logged and skipped without model calls.
	IgnoredSenders []string
}

// TriageService is the core control loop over inbound replies. Each
// fetched message flows through classifier, generator, and mailer, and
// produces exactly one outcome record; a failure in one message never
// aborts the rest of the batch.
type TriageService struct {
	mailbox    MailboxReader
	classifier *ReplyClassifier
	generator  *ResponseGenerator
	mailer     Mailer
	activity   ActivityLog
	logger     *zap.Logger
	opts       TriageOptions
}

// NewTriageService creates the triage orchestrator.
func NewTriageService(
	mailbox MailboxReader,
	classifier *ReplyClassifier,
	generator *ResponseGenerator,
	mailer Mailer,
	activity ActivityLog,
	logger *zap.Logger,
	opts TriageOptions,
) *TriageService {
	return &TriageService{
		mailbox:    mailbox,
		classifier: classifier,
		generator:  generator,
		mailer:     mailer,
		activity:   activity,
		logger:     logger,
		opts:       opts,
	}
}

// RunTriageCycle performs one pass over the currently unread inbox. It
// returns one record per fetched message. Only a mailbox fetch failure is
// reported as a cycle-level error; everything after fetch is isolated at
// message granularity.
func (s *TriageService) RunTriageCycle(ctx context.Context) ([]OutcomeRecord, error) {
	batch, err := s.mailbox.FetchUnseen(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch unseen messages: %w", err)
	}
	if len(batch) == 0 {
		s.logger.Debug("No new replies in inbox")
		return nil, nil
	}
	s.logger.Info("Processing inbound replies", zap.Int("count", len(batch)))

	records := make([]OutcomeRecord, 0, len(batch))
	for _, msg := range batch {
		record := s.processMessage(ctx, msg.InboundMessage)

		if err := s.activity.Append(ctx, record); err != nil {
			// The record still counts toward the cycle result; only the
			// audit write failed.
			s.logger.Error("Failed to append outcome record",
				zap.String("kind", string(record.Kind)),
				zap.Error(err))
		} else if msg.Commit != nil {
			// Mark seen only once the outcome is on record, so a crash
			// here re-delivers the message instead of dropping it.
			if err := msg.Commit(); err != nil {
				s.logger.Error("Failed to mark message seen",
					zap.String("sender", msg.Sender),
					zap.Error(err))
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// processMessage runs one message through the classify/generate/send state
// machine and converts any failure into an error outcome.
func (s *TriageService) processMessage(ctx context.Context, msg InboundMessage) OutcomeRecord {
	sender := ExtractAddress(msg.Sender)

	if s.isIgnoredSender(sender) {
		s.logger.Info("Skipping ignored sender", zap.String("sender", sender))
		return NewOutcomeRecord(OutcomeNoReplyNeeded,
			fmt.Sprintf("Message from %s skipped: sender is on the ignore list", sender))
	}

	result, err := s.classifier.Classify(ctx, msg.Body)
	if err != nil {
		return s.errorRecord(msg.Sender, err)
	}

	if !result.NeedsReply {
		return NewOutcomeRecord(OutcomeNoReplyNeeded,
			fmt.Sprintf("Message from %s skipped: %q", msg.Sender, preview(msg.Body)))
	}

	if result.NeedsEscalation {
		if err := s.escalate(ctx, msg, sender); err != nil {
			return s.errorRecord(msg.Sender, err)
		}
		return NewOutcomeRecord(OutcomeEscalated,
			fmt.Sprintf("Escalated to human team for %s | Subject: %s", sender, msg.Subject))
	}

	if err := s.autoReply(ctx, msg, sender); err != nil {
		return s.errorRecord(msg.Sender, err)
	}
	return NewOutcomeRecord(OutcomeAIReplySent,
		fmt.Sprintf("Sent to %s | Subject: %s", sender, msg.Subject))
}

// escalate notifies the human team and acknowledges the client. Two sends,
// in that order; either failure fails the message.
func (s *TriageService) escalate(ctx context.Context, msg InboundMessage, sender string) error {
	if strings.TrimSpace(s.opts.EscalationAddress) == "" {
		return ErrMissingEscalationAddress
	}

	notice := s.generator.EscalationNotice(msg.Sender, msg.Subject, msg.Body)
	if err := s.mailer.Send(ctx, s.opts.EscalationAddress, "Escalation Needed: "+msg.Subject, notice); err != nil {
		return fmt.Errorf("send escalation notice: %w", err)
	}

	ack := s.generator.DraftEscalationAck(msg.Subject)
	if err := s.mailer.Send(ctx, sender, "Re: "+msg.Subject, ack); err != nil {
		return fmt.Errorf("send escalation acknowledgment: %w", err)
	}

	s.logger.Info("Escalated message to human team",
		zap.String("sender", sender),
		zap.String("subject", msg.Subject),
		zap.String("escalation_address", s.opts.EscalationAddress))
	return nil
}

func (s *TriageService) autoReply(ctx context.Context, msg InboundMessage, sender string) error {
	reply, err := s.generator.DraftReply(ctx, msg.Body)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, sender, "Re: "+msg.Subject, reply); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}

	s.logger.Info("Sent AI reply",
		zap.String("recipient", sender),
		zap.String("subject", msg.Subject))
	return nil
}

func (s *TriageService) isIgnoredSender(sender string) bool {
	for _, ignored := range s.opts.IgnoredSenders {
		if strings.EqualFold(strings.TrimSpace(ignored), sender) {
			return true
		}
	}
	return false
}

func (s *TriageService) errorRecord(sender string, err error) OutcomeRecord {
	s.logger.Error("Failed to process reply",
		zap.String("sender", sender),
		zap.Error(err))
	return NewOutcomeRecord(OutcomeError,
		fmt.Sprintf("Processing reply from %s: %v", sender, err))
}

func preview(body string) string {
	body = strings.TrimSpace(body)
	if len(body) > 60 {
		return body[:60] + "..."
	}
	return body
}
