package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/damlois/ai-credit-controller/internal/core"
)

// TriageRunner runs one pass over the unread inbox.
type TriageRunner interface {
	RunTriageCycle(ctx context.Context) ([]core.OutcomeRecord, error)
}

// ReminderRunner runs one pass over the invoice store.
type ReminderRunner interface {
	RunReminderSweep(ctx context.Context, now time.Time) ([]core.OutcomeRecord, error)
}

// Options controls which passes the scheduler drives and how often.
type Options struct {
	PollInterval     time.Duration
	RemindersEnabled bool
	TriageEnabled    bool
}

// Service drives the periodic reminder sweep and triage cycle. Cycles are
// strictly sequential: a tick that fires while the previous cycle is still
// running is skipped, never overlapped.
type Service struct {
	triage    TriageRunner
	reminders ReminderRunner
	logger    *zap.Logger
	opts      Options

	mu sync.Mutex
}

// New creates a new scheduler service
func New(triage TriageRunner, reminders ReminderRunner, logger *zap.Logger, opts Options) *Service {
	if opts.PollInterval < time.Second {
		opts.PollInterval = 30 * time.Second
	}
	return &Service{
		triage:    triage,
		reminders: reminders,
		logger:    logger,
		opts:      opts,
	}
}

// Start runs the scheduling loop until the context is cancelled. The first
// cycle runs immediately rather than one interval in.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Scheduler started",
		zap.Duration("poll_interval", s.opts.PollInterval),
		zap.Bool("reminders_enabled", s.opts.RemindersEnabled),
		zap.Bool("triage_enabled", s.opts.TriageEnabled))

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return nil
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single sweep-then-triage cycle. It returns false when
// a previous cycle was still in flight and this one was skipped.
func (s *Service) RunOnce(ctx context.Context) bool {
	if !s.mu.TryLock() {
		s.logger.Warn("Previous cycle still running, skipping tick")
		return false
	}
	defer s.mu.Unlock()

	if s.opts.RemindersEnabled {
		if records, err := s.reminders.RunReminderSweep(ctx, time.Now()); err != nil {
			s.logger.Error("Reminder sweep failed", zap.Error(err))
		} else if len(records) > 0 {
			s.logger.Info("Reminder sweep completed", zap.Int("records", len(records)))
		}
	}

	if s.opts.TriageEnabled {
		if records, err := s.triage.RunTriageCycle(ctx); err != nil {
			s.logger.Error("Triage cycle failed", zap.Error(err))
		} else if len(records) > 0 {
			s.logger.Info("Triage cycle completed", zap.Int("records", len(records)))
		}
	}
	return true
}
