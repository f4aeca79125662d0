package core

import (
	"context"
	"testing"
)

func TestClassifyNoReplyNeeded(t *testing.T) {
	completer := &scriptedCompleter{replyVerdict: "NO"}
	classifier := newTestClassifier(completer)

	result, err := classifier.Classify(context.Background(), "Thank you, noted.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NeedsReply || result.NeedsEscalation {
		t.Fatalf("expected no-reply result, got %+v", result)
	}
	// The escalation predicate must not run for a no-reply message.
	if len(completer.calls) != 1 || completer.calls[0] != "needs_reply" {
		t.Fatalf("expected one needs_reply call, got %v", completer.calls)
	}
}

func TestClassifyReplyWithoutEscalation(t *testing.T) {
	completer := &scriptedCompleter{replyVerdict: "YES", escalationVerdict: "NO"}
	classifier := newTestClassifier(completer)

	result, err := classifier.Classify(context.Background(), "I will pay next week.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.NeedsReply || result.NeedsEscalation {
		t.Fatalf("expected reply-only result, got %+v", result)
	}
	if len(completer.calls) != 2 {
		t.Fatalf("expected two model calls, got %v", completer.calls)
	}
}

func TestClassifyEscalation(t *testing.T) {
	completer := &scriptedCompleter{replyVerdict: "YES", escalationVerdict: "YES"}
	classifier := newTestClassifier(completer)

	result, err := classifier.Classify(context.Background(), "I already paid this invoice!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.NeedsReply || !result.NeedsEscalation {
		t.Fatalf("expected escalation result, got %+v", result)
	}
}

func TestClassifyAmbiguousVerdictDefaultsToNo(t *testing.T) {
	// An unparseable verdict must fall back to the quiet default rather
	// than trigger a reply.
	completer := &scriptedCompleter{replyVerdict: "It depends on the context"}
	classifier := newTestClassifier(completer)

	result, err := classifier.Classify(context.Background(), "Hmm.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NeedsReply {
		t.Fatal("ambiguous verdict must not produce a reply")
	}
}

func TestClassifyCompleterError(t *testing.T) {
	completer := &scriptedCompleter{failContains: "requires a reply"}
	classifier := newTestClassifier(completer)

	if _, err := classifier.Classify(context.Background(), "Anything"); err == nil {
		t.Fatal("expected classification error when the model is unavailable")
	}
}

func TestClassifyDeterministic(t *testing.T) {
	completer := &scriptedCompleter{replyVerdict: "YES", escalationVerdict: "NO"}
	classifier := newTestClassifier(completer)

	first, err := classifier.Classify(context.Background(), "Can you resend the invoice?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := classifier.Classify(context.Background(), "Can you resend the invoice?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("same body classified differently: %+v vs %+v", first, second)
	}
}
