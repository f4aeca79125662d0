package activity

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/damlois/ai-credit-controller/internal/core"
)

func TestMemoryLogAppendAndRecent(t *testing.T) {
	log := NewMemoryLog(zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec := core.NewOutcomeRecord(core.OutcomeReminderSent, fmt.Sprintf("record %d", i))
		if err := log.Append(ctx, rec); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	recent, err := log.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recent))
	}
	// Oldest first within the truncated window.
	if recent[0].Detail != "record 2" || recent[2].Detail != "record 4" {
		t.Fatalf("unexpected window: %v", recent)
	}
}

func TestMemoryLogRecentMoreThanStored(t *testing.T) {
	log := NewMemoryLog(zap.NewNop())
	ctx := context.Background()

	if err := log.Append(ctx, core.NewOutcomeRecord(core.OutcomeError, "only one")); err != nil {
		t.Fatalf("append: %v", err)
	}

	recent, err := log.Recent(ctx, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recent))
	}
}

func TestMemoryLogRecentEmpty(t *testing.T) {
	log := NewMemoryLog(zap.NewNop())

	recent, err := log.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected empty result, got %v", recent)
	}
}
