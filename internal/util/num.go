package util

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeNumberString reduces a locale-ambiguous numeric string to a plain
// decimal literal with "." as separator. Currency symbols, letters and every
// kind of space (including NBSP and narrow NBSP) are stripped. When both "," and
// "." appear, the one occurring last is the decimal separator. With a single
// separator kind repeated, all but the last occurrence are treated as grouping.
// No 3-digit-grouping validation is done, so "12,345,67" becomes "12345.67";
// that heuristic is intentional and matched by the tests.
func NormalizeNumberString(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range trimmed {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return ""
	}

	hasComma := strings.Contains(clean, ",")
	hasDot := strings.Contains(clean, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case hasComma:
		clean = joinLastAsDecimal(clean, ",")
	case hasDot:
		clean = joinLastAsDecimal(clean, ".")
	}

	return clean
}

// joinLastAsDecimal promotes the last occurrence of sep to the decimal point
// and drops any earlier occurrences.
func joinLastAsDecimal(s, sep string) string {
	parts := strings.Split(s, sep)
	if len(parts) == 1 {
		return s
	}
	decimal := parts[len(parts)-1]
	return strings.Join(parts[:len(parts)-1], "") + "." + decimal
}

// ParsePrice parses a messy price cell into a float. It never fails: empty,
// non-numeric or non-finite input degrades to 0 so one bad cell cannot abort
// a batch import.
func ParsePrice(raw string) float64 {
	normalized := NormalizeNumberString(raw)
	if normalized == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}
