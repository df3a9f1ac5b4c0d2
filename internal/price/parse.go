// Package price turns localized display prices into numbers.
package price

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rangeSep      = regexp.MustCompile(`(?i)\s*[-–—]\s*|\s*to\s*`)
	qualifier     = regexp.MustCompile(`(?i)^(from|starting\s+at|ab|à\s+partir\s+de)\s*`)
	nonNumeric    = regexp.MustCompile(`[^0-9.,]`)
	euThousands   = regexp.MustCompile(`^\d+\.\d{3},\d{1,2}$`)
	euDecimal     = regexp.MustCompile(`^\d+,\d{1,2}$`)
	leadingNumber = regexp.MustCompile(`^[0-9]*\.?[0-9]*`)
)

// Parse extracts the numeric value of a display price such as "$1,234.56",
// "1.234,56 €" or "From ¥123,456". Only the first value of a range is used.
// Anything that does not yield a number parses as 0.
//
// A lone dot followed by exactly three digits ("1.234") is read as a
// thousands separator, so "1.234" is 1234 and not 1.234.
func Parse(s string) float64 {
	s = strings.TrimSpace(rangeSep.Split(s, 2)[0])
	s = qualifier.ReplaceAllString(s, "")

	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0
	}

	if isEuropean(cleaned) {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	return leadingFloat(cleaned)
}

// isEuropean reports whether comma is the decimal separator and dot the
// thousands separator in a string made of digits, dots and commas.
func isEuropean(s string) bool {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	if lastComma > lastDot && len(s)-lastComma-1 <= 2 {
		return true
	}
	if lastDot > lastComma && len(s)-lastDot-1 == 3 &&
		strings.Count(s, ".") == 1 && !strings.Contains(s, ",") {
		return true
	}
	if euThousands.MatchString(s) {
		return true
	}
	return euDecimal.MatchString(s) && !strings.Contains(s, ".")
}

// leadingFloat parses the longest numeric prefix, so "1.2.3" is 1.2.
func leadingFloat(s string) float64 {
	prefix := leadingNumber.FindString(s)
	if prefix == "" || prefix == "." {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return f
}
