package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ReminderService runs the overdue-payment reminder sweep. Each unpaid,
// past-due invoice gets at most one reminder, tracked in the ledger, with
// the same per-item error isolation as the triage cycle.
type ReminderService struct {
	invoices  InvoiceStore
	generator *ResponseGenerator
	mailer    Mailer
	ledger    ReminderLedger
	activity  ActivityLog
	logger    *zap.Logger
}

// NewReminderService creates the reminder sweep service.
func NewReminderService(
	invoices InvoiceStore,
	generator *ResponseGenerator,
	mailer Mailer,
	ledger ReminderLedger,
	activity ActivityLog,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		invoices:  invoices,
		generator: generator,
		mailer:    mailer,
		ledger:    ledger,
		activity:  activity,
		logger:    logger,
	}
}

// RunReminderSweep performs one pass over the invoice store, sending a
// reminder for every overdue invoice that has not already received one.
// It returns one record per invoice acted on (sent or failed); invoices
// already in the ledger are skipped silently.
func (s *ReminderService) RunReminderSweep(ctx context.Context, now time.Time) ([]OutcomeRecord, error) {
	invoices, err := s.invoices.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}

	overdue := Overdue(invoices, now)
	if len(overdue) == 0 {
		s.logger.Debug("No overdue invoices found")
		return nil, nil
	}
	s.logger.Info("Sweeping overdue invoices", zap.Int("count", len(overdue)))

	var records []OutcomeRecord
	for _, inv := range overdue {
		sent, err := s.ledger.WasSent(ctx, inv.Key())
		if err != nil {
			records = append(records, s.record(ctx, s.errorRecord(inv, err)))
			continue
		}
		if sent {
			s.logger.Debug("Reminder already sent", zap.String("invoice", inv.Key()))
			continue
		}

		if err := s.remind(ctx, inv); err != nil {
			records = append(records, s.record(ctx, s.errorRecord(inv, err)))
			continue
		}
		records = append(records, s.record(ctx, NewOutcomeRecord(OutcomeReminderSent,
			fmt.Sprintf("Sent to %s (%s) for invoice due %s", inv.Client, inv.Email, inv.DueDate))))
	}
	return records, nil
}

func (s *ReminderService) remind(ctx context.Context, inv Invoice) error {
	body, err := s.generator.DraftInitialReminder(ctx, inv.Client, inv.Amount, inv.DueDate)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, inv.Email, "Payment Reminder", body); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	// Mark only after a successful send so a failed invoice is retried on
	// the next sweep.
	if err := s.ledger.MarkSent(ctx, inv.Key()); err != nil {
		s.logger.Error("Failed to record reminder in ledger",
			zap.String("invoice", inv.Key()),
			zap.Error(err))
	}
	return nil
}

func (s *ReminderService) record(ctx context.Context, rec OutcomeRecord) OutcomeRecord {
	if err := s.activity.Append(ctx, rec); err != nil {
		s.logger.Error("Failed to append outcome record",
			zap.String("kind", string(rec.Kind)),
			zap.Error(err))
	}
	return rec
}

func (s *ReminderService) errorRecord(inv Invoice, err error) OutcomeRecord {
	s.logger.Error("Failed to process invoice",
		zap.String("client", inv.Client),
		zap.String("invoice", inv.Key()),
		zap.Error(err))
	return NewOutcomeRecord(OutcomeError,
		fmt.Sprintf("Overdue reminder for %s (%s): %v", inv.Client, inv.Email, err))
}
