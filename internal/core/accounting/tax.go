// Package accounting holds the pure computations of the posting engine: tax,
// document totals, journal line construction and the balance guard. Nothing
// here performs I/O.
package accounting

import (
	"fmt"
	"strings"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/money"
	"github.com/shopspring/decimal"
)

// TaxLine is the taxable subtotal of one line and its rate.
type TaxLine struct {
	Subtotal decimal.Decimal
	Rate     decimal.Decimal
}

// TaxSummary is the aggregate of a set of TaxLines.
type TaxSummary struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

func rateInRange(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(money.One)
}

// CalculateLineTax returns round(subtotal*rate, 2).
func CalculateLineTax(subtotal, rate decimal.Decimal) (decimal.Decimal, error) {
	if !rateInRange(rate) {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrInvalidRange, rate.String())
	}
	return money.Mul(subtotal, rate), nil
}

// CalculateTaxAggregate sums rounded line subtotals and per-line taxes
// independently, then totals them.
func CalculateTaxAggregate(lines []TaxLine) (TaxSummary, error) {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for i, l := range lines {
		lineTax, err := CalculateLineTax(l.Subtotal, l.Rate)
		if err != nil {
			return TaxSummary{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		subtotal = money.Add(subtotal, money.Round(l.Subtotal))
		tax = money.Add(tax, lineTax)
	}
	return TaxSummary{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     money.Add(subtotal, tax),
	}, nil
}

// ParseTaxRate reads a rate written either as a percentage ("10%", "7.25 %")
// or as a plain number. A plain number of at most 1 is a fraction ("0.0725");
// a larger one is a percentage ("8.25"). Rates needing more than 4 fractional
// digits are rejected rather than rounded.
func ParseTaxRate(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	pct := strings.HasSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty tax rate", apperrors.ErrInvalidRange)
	}
	n, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidRange, input)
	}

	rate := n
	if pct || n.GreaterThan(money.One) {
		rate = n.Div(money.Hundred)
	}
	if !rate.Equal(money.RoundRate(rate)) {
		return decimal.Zero, fmt.Errorf("%w: %q has more than %d rate digits", apperrors.ErrInvalidRange, input, money.RateScale)
	}
	if !rateInRange(rate) {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrInvalidRange, input)
	}
	return money.RoundRate(rate), nil
}

// FormatTaxRate renders a rate as a percentage string without trailing zeros,
// e.g. 0.1 -> "10%", 0.0725 -> "7.25%".
func FormatTaxRate(rate decimal.Decimal) string {
	return money.RoundRate(rate).Mul(money.Hundred).String() + "%"
}
