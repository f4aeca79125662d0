package ledger

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemoryLedger is an in-memory implementation of the ReminderLedger
// interface. Sent-state lasts for the process lifetime only, which matches
// the original session-scoped behavior; use the sqlite or mysql ledger to
// survive restarts.
type MemoryLedger struct {
	sent   map[string]struct{}
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMemoryLedger creates a new in-memory reminder ledger
func NewMemoryLedger(logger *zap.Logger) *MemoryLedger {
	return &MemoryLedger{
		sent:   make(map[string]struct{}),
		logger: logger,
	}
}

// WasSent reports whether a reminder was already recorded for the invoice.
func (l *MemoryLedger) WasSent(ctx context.Context, invoiceKey string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.sent[invoiceKey]
	return ok, nil
}

// MarkSent records that a reminder went out for the invoice.
func (l *MemoryLedger) MarkSent(ctx context.Context, invoiceKey string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent[invoiceKey] = struct{}{}
	return nil
}
