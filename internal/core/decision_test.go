package core

import "testing"

func TestParseDecisionYes(t *testing.T) {
	for _, raw := range []string{"YES", "yes", "Yes.", "YES, I will", "yes!\nThe client..."} {
		if got := ParseDecision(raw); got != DecisionYes {
			t.Fatalf("ParseDecision(%q) = %v, want yes", raw, got)
		}
	}
}

func TestParseDecisionNo(t *testing.T) {
	for _, raw := range []string{"NO", "no", "No.", "no, nothing needed"} {
		if got := ParseDecision(raw); got != DecisionNo {
			t.Fatalf("ParseDecision(%q) = %v, want no", raw, got)
		}
	}
}

func TestParseDecisionUnknown(t *testing.T) {
	// "yesterday" is the classic substring-match trap; it must not count
	// as a yes.
	for _, raw := range []string{"", "   ", "yesterday", "maybe", "definitely yes", "noted"} {
		if got := ParseDecision(raw); got != DecisionUnknown {
			t.Fatalf("ParseDecision(%q) = %v, want unknown", raw, got)
		}
	}
}
