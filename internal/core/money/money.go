// Package money holds the fixed-scale decimal helpers every amount in the
// posting engine goes through. Stored amounts carry 2 fractional digits and
// rates carry 4; both round half away from zero.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// AmountScale is the number of fractional digits for stored money.
	AmountScale int32 = 2
	// RateScale is the number of fractional digits for rates.
	RateScale int32 = 4
)

var (
	// One is the decimal 1, the upper bound for rates.
	One = decimal.NewFromInt(1)
	// Hundred converts between a rate and a percentage.
	Hundred = decimal.NewFromInt(100)
)

// Round rounds d to AmountScale places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}

// RoundRate rounds d to RateScale places.
func RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(RateScale)
}

// Add returns round(a+b, 2).
func Add(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Add(b))
}

// Sub returns round(a-b, 2).
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Sub(b))
}

// Mul returns round(a*b, 2).
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Mul(b))
}

// Equal reports whether a and b have the same value. Trailing zeros do not
// matter; sub-cent differences do.
func Equal(a, b decimal.Decimal) bool {
	return a.Equal(b)
}

// IsPositive reports whether an optional amount is present and greater than zero.
func IsPositive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}

// Parse reads a plain decimal string such as "249.50".
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Format renders d with exactly AmountScale fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(AmountScale)
}
