package scoring

import (
	"math"
	"strings"
)

// Normalize lowercases a term and collapses internal whitespace, so
// membership checks are case- and whitespace-insensitive.
func Normalize(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}

// normalizeSet builds a normalized membership set from a skill profile.
// Empty terms are dropped.
func normalizeSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, term := range terms {
		if n := Normalize(term); n != "" {
			set[n] = true
		}
	}
	return set
}

// matchKeywords returns the keywords whose normalized form appears in the
// skill set, preserving original casing and order.
func matchKeywords(keywords []string, skillSet map[string]bool) []string {
	matched := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if skillSet[Normalize(kw)] {
			matched = append(matched, kw)
		}
	}
	return matched
}

// MatchScore computes the 0..100 percentage of matched keywords. A job with
// no extractable keywords scores zero by definition rather than failing.
func MatchScore(total, matched int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(matched) / float64(total)))
}
