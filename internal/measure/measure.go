// Package measure normalizes free-text quantity strings from supplier
// feeds into liters so that values written in different units and
// locales can be compared numerically.
package measure

import (
	"strconv"
	"strings"
)

// unit multipliers to liters, checked by substring in order.
// Bare "l" must stay last because it also matches inside "ml" and "lt".
var unitMultipliers = []struct {
	token      string
	multiplier float64
}{
	{"ml", 0.001},
	{"cc", 0.001},
	{"lt", 1.0},
	{"litre", 1.0},
	{"l", 1.0},
}

// Parse converts a free-text measurement like "3,3 LT" or "350 ML" into
// liters. The second return value is false when the text holds no
// parseable number. Parse never panics on malformed input.
func Parse(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	lowered := lowerTurkish(text)

	multiplier := 0.0
	for _, unit := range unitMultipliers {
		if strings.Contains(lowered, unit.token) {
			multiplier = unit.multiplier
			break
		}
	}
	if multiplier == 0 {
		// No recognizable unit, assume the value is already in liters.
		multiplier = 1.0
	}

	numeric := stripNonNumeric(lowered)
	if numeric == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(normalizeDecimal(numeric), 64)
	if err != nil {
		return 0, false
	}

	return value * multiplier, true
}

// lowerTurkish lowercases text with correct handling of the Turkish
// dotted and dotless I, which strings.ToLower alone gets wrong.
func lowerTurkish(s string) string {
	s = strings.ReplaceAll(s, "İ", "i")
	s = strings.ReplaceAll(s, "I", "ı")
	return strings.ToLower(s)
}

// stripNonNumeric keeps only digits, commas and dots.
func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeDecimal rewrites European-formatted numbers into the form
// strconv understands. With both separators present the dot is a
// thousands separator ("1.000,50" means 1000.50); a lone comma is the
// decimal separator.
func normalizeDecimal(s string) string {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	return s
}
