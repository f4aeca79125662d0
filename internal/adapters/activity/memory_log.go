package activity

import (
	"context"
	"sync"

	"github.com/damlois/ai-credit-controller/internal/core"
	"go.uber.org/zap"
)

// MemoryLog is an in-memory implementation of the ActivityLog interface.
// Records live for the process lifetime; Recent serves the display-
// truncated view.
type MemoryLog struct {
	records []core.OutcomeRecord
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewMemoryLog creates a new in-memory activity log
func NewMemoryLog(logger *zap.Logger) *MemoryLog {
	return &MemoryLog{
		logger: logger,
	}
}

// Append adds one record to the end of the log.
func (l *MemoryLog) Append(ctx context.Context, record core.OutcomeRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	return nil
}

// Recent returns at most n of the newest records, oldest first.
func (l *MemoryLog) Recent(ctx context.Context, n int) ([]core.OutcomeRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.records) {
		n = len(l.records)
	}
	recent := make([]core.OutcomeRecord, n)
	copy(recent, l.records[len(l.records)-n:])
	return recent, nil
}
