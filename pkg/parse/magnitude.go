// Package parse provides the two pure parsing functions the engine relies on
// for sorting: human-readable magnitude strings ("1.2M" views) and result
// dates that arrive either as relative phrases ("2 days ago") or absolute
// date strings. Both degrade to a zero value instead of returning errors;
// malformed upstream text must never fail a request.
package parse

import (
	"strconv"
	"strings"
)

// Magnitude parses a human-readable count such as "1.2M", "3k", "500" or
// "1,234" into an integer. Unparseable input yields 0. Recognized suffixes
// are k (1e3), m (1e6) and b (1e9), case-insensitive.
func Magnitude(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "k"), strings.HasSuffix(s, "K"):
		multiplier = 1_000
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "m"), strings.HasSuffix(s, "M"):
		multiplier = 1_000_000
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "b"), strings.HasSuffix(s, "B"):
		multiplier = 1_000_000_000
		s = s[:len(s)-1]
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0
	}
	return int64(value * float64(multiplier))
}
