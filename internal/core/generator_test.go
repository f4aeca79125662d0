package core

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDraftReply(t *testing.T) {
	completer := &scriptedCompleter{draft: "  Dear Customer,\n\nThank you for the update.\n\nInterprais Credit Controller  "}
	generator := newTestGenerator(completer)

	draft, err := generator.DraftReply(context.Background(), "I will pay on Friday.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.HasPrefix(draft, " ") || strings.HasSuffix(draft, " ") {
		t.Fatalf("draft not trimmed: %q", draft)
	}
	if !strings.Contains(draft, "Thank you for the update") {
		t.Fatalf("unexpected draft: %q", draft)
	}
}

func TestDraftReplyEmptyModelOutput(t *testing.T) {
	completer := &scriptedCompleter{draft: "   \n  "}
	generator := newTestGenerator(completer)

	_, err := generator.DraftReply(context.Background(), "Anything")
	if !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}
}

func TestDraftInitialReminderEmptyModelOutput(t *testing.T) {
	completer := &scriptedCompleter{draft: ""}
	generator := newTestGenerator(completer)

	_, err := generator.DraftInitialReminder(context.Background(), "Acme", 1200.50, "2025-06-01")
	if !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}
}

func TestDraftEscalationAckMentionsSubject(t *testing.T) {
	generator := newTestGenerator(&scriptedCompleter{})

	ack := generator.DraftEscalationAck("Invoice INV-42")
	if !strings.Contains(ack, "Invoice INV-42") {
		t.Fatalf("ack does not mention the subject: %q", ack)
	}
	if !strings.Contains(ack, "Interprais Credit Controller") {
		t.Fatalf("ack missing signature: %q", ack)
	}
}

func TestEscalationNoticeCarriesOriginalMessage(t *testing.T) {
	generator := newTestGenerator(&scriptedCompleter{})

	notice := generator.EscalationNotice("Jane <jane@x.com>", "Dispute", "I already paid.")
	for _, want := range []string{"Jane <jane@x.com>", "Dispute", "I already paid."} {
		if !strings.Contains(notice, want) {
			t.Fatalf("notice missing %q: %q", want, notice)
		}
	}
}
