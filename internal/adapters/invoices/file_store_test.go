package invoices

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestFileStoreLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.json")
	data := `[
		{"client": "Acme", "amount": 1200.50, "due_date": "2025-06-01", "status": "unpaid", "email": "acme@x.com"},
		{"id": "INV-2", "client": "Beta", "amount": 300, "due_date": "2025-07-01", "status": "paid", "email": "beta@x.com"}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewFileStore(path, zap.NewNop())
	invoices, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(invoices))
	}
	if invoices[0].Client != "Acme" || invoices[0].Amount != 1200.50 {
		t.Fatalf("unexpected invoice %+v", invoices[0])
	}
	if invoices[1].ID != "INV-2" {
		t.Fatalf("unexpected invoice %+v", invoices[1])
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())

	invoices, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if len(invoices) != 0 {
		t.Fatalf("expected empty list, got %v", invoices)
	}
}

func TestFileStoreInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewFileStore(path, zap.NewNop())
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}
