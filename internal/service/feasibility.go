package service

import (
	"regexp"
	"strings"
)

var (
	affirmativePattern = regexp.MustCompile(`(?i)yes`)
	reasonPattern      = regexp.MustCompile(`(?s)Reason:\s*(.*)`)
)

// FeasibilityOutcome is the provider's verdict on the ingredient list
type FeasibilityOutcome struct {
	Feasible bool
	Reason   string
}

// ClassifyFeasibility reads the first completion. Any "yes" (case-insensitive, anywhere)
// is feasible; otherwise the text after "Reason:" is the refusal reason. A negative
// answer without a reason marker is a parse failure.
func ClassifyFeasibility(text string) (FeasibilityOutcome, error) {
	if affirmativePattern.MatchString(text) {
		return FeasibilityOutcome{Feasible: true}, nil
	}

	m := reasonPattern.FindStringSubmatch(text)
	if m == nil {
		return FeasibilityOutcome{}, &ParseError{Stage: "feasibility", Missing: ReasonMarker}
	}

	return FeasibilityOutcome{Feasible: false, Reason: strings.TrimSpace(m[1])}, nil
}
