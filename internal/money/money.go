// Package money provides fixed-point parsing and formatting of monetary
// amounts. Amounts are held in minor units (cents) so that aggregation is
// exact integer arithmetic with no floating-point drift.
package money

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	apperrors "fintrack/internal/errors"
)

// ParseAmount converts a decimal string to cents with half-up rounding on
// the third decimal place. It accepts dot (12.34) and comma (12,34) decimal
// separators. Amounts are unsigned magnitudes; direction comes from the
// transaction type, so a leading sign is rejected. Zero is allowed.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperrors.ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, apperrors.ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, apperrors.ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if len(parts) == 2 && parts[0] == "" && parts[1] == "" {
		// Bare "."
		return 0, apperrors.ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, apperrors.ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, apperrors.ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, apperrors.ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	return iv*100 + fracCents, nil
}

// FormatAmount renders cents as a decimal string with two fractional digits,
// e.g. 1234 -> "12.34". Used for pre-filling edit forms and display.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
