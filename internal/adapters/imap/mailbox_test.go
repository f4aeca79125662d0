package imap

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/damlois/ai-credit-controller/internal/core"
)

func newTestReader(t *testing.T) *Reader {
	t.Helper()
	return NewReader("imap.example.com", 993, "bot@example.com", "secret", "INBOX", zap.NewNop())
}

func TestFetchUnseenMissingCredentials(t *testing.T) {
	reader := NewReader("imap.example.com", 993, "", "", "INBOX", zap.NewNop())

	_, err := reader.FetchUnseen(context.Background())
	if !errors.Is(err, core.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestFetchUnseenWrapsCommit(t *testing.T) {
	reader := newTestReader(t)
	reader.fetchUnread = func(context.Context) ([]fetchedItem, error) {
		return []fetchedItem{
			{uid: 7, sender: "Jane <jane@x.com>", subject: "Hi", body: "I will pay Friday.\n"},
		}, nil
	}
	var marked []uint32
	reader.markSeen = func(_ context.Context, uids ...uint32) error {
		marked = append(marked, uids...)
		return nil
	}

	messages, err := reader.FetchUnseen(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected one message, got %d", len(messages))
	}
	msg := messages[0]
	if msg.Sender != "Jane <jane@x.com>" || msg.Subject != "Hi" || msg.Body != "I will pay Friday." {
		t.Fatalf("unexpected message %+v", msg.InboundMessage)
	}
	// Fetch alone must not touch the seen flag.
	if len(marked) != 0 {
		t.Fatalf("message marked seen before commit: %v", marked)
	}

	if err := msg.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(marked) != 1 || marked[0] != 7 {
		t.Fatalf("expected uid 7 marked seen, got %v", marked)
	}
}

func TestFetchUnseenDropsEmptyBodies(t *testing.T) {
	reader := newTestReader(t)
	reader.fetchUnread = func(context.Context) ([]fetchedItem, error) {
		return []fetchedItem{
			{uid: 1, sender: "a@x.com", body: "   "},
			{uid: 2, sender: "b@x.com", body: "Real content."},
		}, nil
	}
	var marked []uint32
	reader.markSeen = func(_ context.Context, uids ...uint32) error {
		marked = append(marked, uids...)
		return nil
	}

	messages, err := reader.FetchUnseen(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 1 || messages[0].Sender != "b@x.com" {
		t.Fatalf("expected only the non-empty message, got %v", messages)
	}
	// Payload-less messages are marked seen immediately so they are not
	// refetched every cycle.
	if len(marked) != 1 || marked[0] != 1 {
		t.Fatalf("expected uid 1 marked seen, got %v", marked)
	}
}

func TestFetchUnseenPropagatesFetchError(t *testing.T) {
	reader := newTestReader(t)
	reader.fetchUnread = func(context.Context) ([]fetchedItem, error) {
		return nil, errors.New("connection reset")
	}

	if _, err := reader.FetchUnseen(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
}

func TestFetchUnseenEmptyInbox(t *testing.T) {
	reader := newTestReader(t)
	reader.fetchUnread = func(context.Context) ([]fetchedItem, error) {
		return nil, nil
	}

	messages, err := reader.FetchUnseen(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %v", messages)
	}
}
