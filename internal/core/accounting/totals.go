package accounting

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	"github.com/SscSPs/bookkeeping_engine/internal/core/money"
	"github.com/shopspring/decimal"
)

// ComputeInvoiceTotalsAndIncomeBuckets derives subtotal, tax and total for a
// sales document and accumulates net revenue per income account. Every amount
// is rounded to 2 places before it is added to a running total.
func ComputeInvoiceTotalsAndIncomeBuckets(lines []domain.DocumentLine) (domain.DocumentTotals, error) {
	return computeTotals(lines)
}

// ComputeBillTotalsAndExpenseBuckets applies the invoice rules to a purchase
// document, bucketing net amounts per expense account.
func ComputeBillTotalsAndExpenseBuckets(lines []domain.DocumentLine) (domain.DocumentTotals, error) {
	return computeTotals(lines)
}

func computeTotals(lines []domain.DocumentLine) (domain.DocumentTotals, error) {
	subtotal := decimal.Zero
	taxAmount := decimal.Zero
	buckets := domain.NewAmountBuckets()

	for i, line := range lines {
		if line.Quantity.IsNegative() || line.UnitPrice.IsNegative() {
			return domain.DocumentTotals{}, fmt.Errorf("line %d: %w", i+1, apperrors.ErrInvalidQuantity)
		}

		lineSubtotal := money.Mul(line.Quantity, line.UnitPrice)
		if line.Discount.IsNegative() || line.Discount.GreaterThan(lineSubtotal) {
			return domain.DocumentTotals{}, fmt.Errorf("line %d: discount %s outside [0, %s]: %w",
				i+1, line.Discount.String(), money.Format(lineSubtotal), apperrors.ErrInvalidDiscount)
		}
		netSubtotal := money.Sub(lineSubtotal, line.Discount)

		if !rateInRange(line.TaxRate) {
			return domain.DocumentTotals{}, fmt.Errorf("line %d: rate %s: %w", i+1, line.TaxRate.String(), apperrors.ErrInvalidTaxRate)
		}
		lineTax := money.Mul(netSubtotal, line.TaxRate)

		subtotal = money.Add(subtotal, netSubtotal)
		taxAmount = money.Add(taxAmount, lineTax)
		buckets.Accumulate(line.AccountID, netSubtotal, money.Round)
	}

	return domain.DocumentTotals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     money.Add(subtotal, taxAmount),
		Buckets:   buckets,
	}, nil
}

// AssertTotalsMatchStored fails with ErrRoundingMismatch unless the recomputed
// total equals the stored one exactly. A stored total with sub-cent digits
// never matches.
func AssertTotalsMatchStored(computedTotal, storedTotal decimal.Decimal) error {
	if !money.Equal(computedTotal, storedTotal) {
		return fmt.Errorf("%w: computed %s, stored %s", apperrors.ErrRoundingMismatch,
			money.Format(computedTotal), storedTotal.String())
	}
	return nil
}
