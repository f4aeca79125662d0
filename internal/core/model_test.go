package core

import (
	"testing"
	"time"
)

func TestExtractAddress(t *testing.T) {
	cases := map[string]string{
		"Jane Doe <jane@x.com>": "jane@x.com",
		"jane@x.com":            "jane@x.com",
		"  jane@x.com  ":        "jane@x.com",
		"<jane@x.com>":          "jane@x.com",
		`"Doe, Jane" <jane@x.com>`: "jane@x.com",
	}
	for raw, want := range cases {
		if got := ExtractAddress(raw); got != want {
			t.Fatalf("ExtractAddress(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestExtractAddressIdempotent(t *testing.T) {
	once := ExtractAddress("Jane Doe <jane@x.com>")
	if twice := ExtractAddress(once); twice != once {
		t.Fatalf("second extraction changed result: %q -> %q", once, twice)
	}
}

func TestOverdueFilter(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	invoices := []Invoice{
		{Client: "Acme", Status: "unpaid", DueDate: "2025-06-14", Email: "a@x.com"},
		{Client: "Beta", Status: "paid", DueDate: "2025-06-14", Email: "b@x.com"},
		{Client: "Gamma", Status: "unpaid", DueDate: "2025-06-16", Email: "c@x.com"},
	}

	overdue := Overdue(invoices, now)
	if len(overdue) != 1 {
		t.Fatalf("expected 1 overdue invoice, got %d", len(overdue))
	}
	if overdue[0].Client != "Acme" {
		t.Fatalf("expected Acme, got %s", overdue[0].Client)
	}
}

func TestOverdueExcludesDueToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	inv := Invoice{Status: "unpaid", DueDate: "2025-06-15"}
	if inv.IsOverdue(now) {
		t.Fatal("invoice due today must not be overdue")
	}
}

func TestOverdueIgnoresBadDueDate(t *testing.T) {
	inv := Invoice{Status: "unpaid", DueDate: "not-a-date"}
	if inv.IsOverdue(time.Now()) {
		t.Fatal("unparseable due date must not be overdue")
	}
}

func TestInvoiceKey(t *testing.T) {
	withID := Invoice{ID: "INV-7", Email: "a@x.com", DueDate: "2025-01-01"}
	if withID.Key() != "INV-7" {
		t.Fatalf("expected explicit ID, got %q", withID.Key())
	}
	withoutID := Invoice{Email: "A@X.com", DueDate: "2025-01-01"}
	if withoutID.Key() != "a@x.com|2025-01-01" {
		t.Fatalf("unexpected fallback key %q", withoutID.Key())
	}
}
