package country

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// FuzzyScore returns a similarity score in [0,100] between two strings,
// derived from Levenshtein edit distance over the longer length:
// 100 * (maxLen - distance) / maxLen. Comparison is case-insensitive and
// ignores surrounding whitespace. Either side empty scores 0.
func FuzzyScore(a, b string) float64 {
	a = strings.ToUpper(strings.TrimSpace(a))
	b = strings.ToUpper(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	distance := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	return float64(maxLen-distance) / float64(maxLen) * 100
}
