package accounting

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	"github.com/SscSPs/bookkeeping_engine/internal/core/money"
	"github.com/shopspring/decimal"
)

// DebitCreditTotals are the two sides of a journal.
type DebitCreditTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// SumDebitsCredits reduces lines, rounding to 2 places at each step.
func SumDebitsCredits(lines []domain.JournalLine) DebitCreditTotals {
	totals := DebitCreditTotals{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, l := range lines {
		totals.Debit = money.Add(totals.Debit, l.Debit)
		totals.Credit = money.Add(totals.Credit, l.Credit)
	}
	return totals
}

// AssertBalanced is the guard every posting path runs before persistence.
// Beyond debit == credit it rejects empty journals, negative sides, lines with
// both sides set and lines without an account.
func AssertBalanced(lines []domain.JournalLine) (DebitCreditTotals, error) {
	if len(lines) < 2 {
		return DebitCreditTotals{}, fmt.Errorf("%w: journal must have at least two lines", apperrors.ErrUnbalancedJournal)
	}
	for i, l := range lines {
		if l.AccountID == "" {
			return DebitCreditTotals{}, fmt.Errorf("%w: line %d has no account", apperrors.ErrUnbalancedJournal, i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return DebitCreditTotals{}, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrUnbalancedJournal, i+1)
		}
		if !l.Debit.IsZero() && !l.Credit.IsZero() {
			return DebitCreditTotals{}, fmt.Errorf("%w: line %d has both debit and credit", apperrors.ErrUnbalancedJournal, i+1)
		}
	}

	totals := SumDebitsCredits(lines)
	if !totals.Debit.Equal(totals.Credit) {
		return totals, fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalancedJournal,
			money.Format(totals.Debit), money.Format(totals.Credit))
	}
	return totals, nil
}
