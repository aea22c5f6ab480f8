// Package label normalizes free-text names from the building model so that
// rule lookups are robust to embedded numbering: "Classroom 12", "classroom"
// and "#3 Classroom" all share one canonical key.
package label

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold applies Unicode case folding. Casers are stateful, so one is created
// per call rather than shared.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Display returns the user-facing form of a raw label: whitespace runs
// collapsed, ends trimmed, standalone numeric tokens (optionally prefixed
// with '#') removed. Case is preserved.
func Display(raw string) string {
	fields := strings.Fields(raw)
	kept := fields[:0]
	for _, f := range fields {
		if !numericToken(f) {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// Canonical returns the lookup key for a raw label: the Display form with
// Unicode case folding applied. Empty and whitespace-only labels canonicalize
// to "" and are excluded from aggregation by callers.
func Canonical(raw string) string {
	return fold(Display(raw))
}

// ContainsFold reports whether the case-folded haystack contains the
// case-folded needle. Used for "contains" matches against display text.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(fold(haystack), fold(needle))
}

// numericToken reports whether a whitespace-delimited token is an optional
// '#' followed by one or more digits.
func numericToken(tok string) bool {
	tok = strings.TrimPrefix(tok, "#")
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
