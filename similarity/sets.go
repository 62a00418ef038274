package similarity

import (
	"slices"
	"strings"
)

// SetComparison is the outcome of comparing an expected and an actual term set.
type SetComparison struct {
	Score   float64  // |expected ∩ actual| / |expected ∪ actual|, 1 when both are empty
	Missing []string // expected - actual
	Extra   []string // actual - expected
	Matched []string // expected ∩ actual
}

// Mismatches returns the number of missing plus extra terms.
func (c SetComparison) Mismatches() int {
	return len(c.Missing) + len(c.Extra)
}

// CompareSets compares two term sets case-insensitively.
// Terms are trimmed and de-duplicated; blank terms are ignored.
// Missing, Extra and Matched are sorted.
func CompareSets(expected, actual []string) SetComparison {
	exp := toSet(expected)
	act := toSet(actual)

	result := SetComparison{
		Missing: []string{},
		Extra:   []string{},
		Matched: []string{},
	}

	for term := range exp {
		if act[term] {
			result.Matched = append(result.Matched, term)
		} else {
			result.Missing = append(result.Missing, term)
		}
	}
	for term := range act {
		if !exp[term] {
			result.Extra = append(result.Extra, term)
		}
	}
	slices.Sort(result.Matched)
	slices.Sort(result.Missing)
	slices.Sort(result.Extra)

	union := len(result.Matched) + len(result.Missing) + len(result.Extra)
	if union == 0 {
		result.Score = 1
		return result
	}
	result.Score = float64(len(result.Matched)) / float64(union)
	return result
}

func toSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = true
		}
	}
	return set
}
