package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest single deposit or withdrawal accepted.
var MaxAmount = decimal.New(1, 15)

// inputs written with a larger exponent either way are rejected before
// rounding, which would otherwise expand them digit by digit
const maxExponent = 32

// ParseAmount reads a user-entered amount. Both "12.34" and "12,34" are
// accepted and the value is rounded half away from zero to cents. The amount
// must be positive; the sign of a transaction comes from the operation, never
// from the input.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return NormalizeAmount(d)
}

// NormalizeAmount rounds d to cents. It returns ErrInvalidAmount unless the
// result is positive and no larger than MaxAmount.
func NormalizeAmount(d decimal.Decimal) (decimal.Decimal, error) {
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}

	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders with exactly two fractional digits, the display and
// storage precision of totals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
