package core

import "strings"

// Decision is the closed enumeration of classifier verdicts parsed from
// model output.
type Decision int

const (
	DecisionUnknown Decision = iota
	DecisionYes
	DecisionNo
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case DecisionYes:
		return "yes"
	case DecisionNo:
		return "no"
	default:
		return "unknown"
	}
}

// ParseDecision maps raw model output onto a Decision. Only an exact
// case-insensitive "yes" or "no" leading token counts; everything else,
// including empty output, parses as DecisionUnknown. A substring match
// would wrongly accept words like "yesterday", so the first token is
// compared whole after stripping trailing punctuation.
func ParseDecision(raw string) Decision {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return DecisionUnknown
	}
	token := strings.ToLower(strings.TrimRight(fields[0], ".,!?:;\"'"))
	switch token {
	case "yes":
		return DecisionYes
	case "no":
		return DecisionNo
	default:
		return DecisionUnknown
	}
}
