package accounting

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	"github.com/SscSPs/bookkeeping_engine/internal/core/money"
	"github.com/shopspring/decimal"
)

// InvoicePostingArgs are the inputs to BuildInvoicePostingJournalLines. The
// optional amounts are nil when the document carries no tax or COGS.
type InvoicePostingArgs struct {
	ARAccountID             string
	Total                   decimal.Decimal
	IncomeBuckets           *domain.AmountBuckets
	TaxAmount               *decimal.Decimal
	TaxPayableAccountID     string
	TotalCogs               *decimal.Decimal
	CogsAccountID           string
	InventoryAssetAccountID string
}

// BuildInvoicePostingJournalLines turns invoice totals into journal lines:
// AR debit, one income credit per bucket, tax payable credit and the COGS pair.
// Amounts that round to zero produce no line; an invoice with nothing left to
// post fails with ErrValidation.
func BuildInvoicePostingJournalLines(args InvoicePostingArgs) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, 0, args.IncomeBuckets.Len()+4)
	if total := money.Round(args.Total); !total.IsZero() {
		lines = append(lines, domain.DebitLine(args.ARAccountID, total))
	}

	for _, b := range args.IncomeBuckets.Entries() {
		if amount := money.Round(b.Amount); !amount.IsZero() {
			lines = append(lines, domain.CreditLine(b.AccountID, amount))
		}
	}

	if money.IsPositive(args.TaxAmount) {
		if args.TaxPayableAccountID == "" {
			return nil, apperrors.ErrMissingTaxAccount
		}
		lines = append(lines, domain.CreditLine(args.TaxPayableAccountID, money.Round(*args.TaxAmount)))
	}

	cogsLines, err := cogsLines(args.TotalCogs, args.CogsAccountID, args.InventoryAssetAccountID)
	if err != nil {
		return nil, err
	}
	return nonEmpty(append(lines, cogsLines...))
}

func nonEmpty(lines []domain.JournalLine) ([]domain.JournalLine, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: document has no non-zero amounts to post", apperrors.ErrValidation)
	}
	return lines, nil
}

func cogsLines(totalCogs *decimal.Decimal, cogsAccountID, inventoryAccountID string) ([]domain.JournalLine, error) {
	if !money.IsPositive(totalCogs) {
		return nil, nil
	}
	if cogsAccountID == "" || inventoryAccountID == "" {
		return nil, apperrors.ErrMissingCogsAccounts
	}
	amount := money.Round(*totalCogs)
	return []domain.JournalLine{
		domain.DebitLine(cogsAccountID, amount),
		domain.CreditLine(inventoryAccountID, amount),
	}, nil
}

// BillPostingArgs are the inputs to BuildBillPostingJournalLines.
type BillPostingArgs struct {
	APAccountID            string
	Total                  decimal.Decimal
	ExpenseBuckets         *domain.AmountBuckets
	TaxAmount              *decimal.Decimal
	TaxReceivableAccountID string
}

// BuildBillPostingJournalLines mirrors invoice posting for purchases: one
// expense debit per bucket, a tax receivable debit and the AP credit. Zero
// amounts are skipped the same way.
func BuildBillPostingJournalLines(args BillPostingArgs) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, 0, args.ExpenseBuckets.Len()+2)
	for _, b := range args.ExpenseBuckets.Entries() {
		if amount := money.Round(b.Amount); !amount.IsZero() {
			lines = append(lines, domain.DebitLine(b.AccountID, amount))
		}
	}
	if money.IsPositive(args.TaxAmount) {
		if args.TaxReceivableAccountID == "" {
			return nil, apperrors.ErrMissingTaxAccount
		}
		lines = append(lines, domain.DebitLine(args.TaxReceivableAccountID, money.Round(*args.TaxAmount)))
	}
	if total := money.Round(args.Total); !total.IsZero() {
		lines = append(lines, domain.CreditLine(args.APAccountID, total))
	}
	return nonEmpty(lines)
}

// PaymentDirection tells whether cash came in or went out.
type PaymentDirection string

const (
	PaymentReceived PaymentDirection = "RECEIVED"
	PaymentMade     PaymentDirection = "MADE"
)

// PaymentPostingArgs are the inputs to BuildPaymentJournalLines.
// CounterpartyAccountID is AR for received payments and AP for payments made.
type PaymentPostingArgs struct {
	Direction             PaymentDirection
	CashAccountID         string
	CounterpartyAccountID string
	Amount                decimal.Decimal
}

// BuildPaymentJournalLines settles a receivable or payable against cash.
func BuildPaymentJournalLines(args PaymentPostingArgs) ([]domain.JournalLine, error) {
	if !args.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	amount := money.Round(args.Amount)
	switch args.Direction {
	case PaymentReceived:
		return []domain.JournalLine{
			domain.DebitLine(args.CashAccountID, amount),
			domain.CreditLine(args.CounterpartyAccountID, amount),
		}, nil
	case PaymentMade:
		return []domain.JournalLine{
			domain.DebitLine(args.CounterpartyAccountID, amount),
			domain.CreditLine(args.CashAccountID, amount),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown payment direction %q", apperrors.ErrValidation, args.Direction)
	}
}

// ReceivingLine is one received stock line valued at cost.
type ReceivingLine struct {
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// ReceivingPostingArgs are the inputs to BuildReceivingJournalLines.
type ReceivingPostingArgs struct {
	InventoryAssetAccountID string
	ClearingAccountID       string
	Lines                   []ReceivingLine
}

// BuildReceivingJournalLines capitalizes received stock: inventory asset debit
// against the goods-received clearing (or AP) credit. It returns the lines and
// the rounded receipt value.
func BuildReceivingJournalLines(args ReceivingPostingArgs) ([]domain.JournalLine, decimal.Decimal, error) {
	total := decimal.Zero
	for i, l := range args.Lines {
		if l.Quantity.IsNegative() || l.UnitCost.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("line %d: %w", i+1, apperrors.ErrInvalidQuantity)
		}
		total = money.Add(total, money.Mul(l.Quantity, l.UnitCost))
	}
	if !total.IsPositive() {
		return nil, decimal.Zero, fmt.Errorf("%w: receipt value must be positive", apperrors.ErrValidation)
	}
	if args.InventoryAssetAccountID == "" || args.ClearingAccountID == "" {
		return nil, decimal.Zero, fmt.Errorf("%w: inventory and clearing accounts are required", apperrors.ErrValidation)
	}
	return []domain.JournalLine{
		domain.DebitLine(args.InventoryAssetAccountID, total),
		domain.CreditLine(args.ClearingAccountID, total),
	}, total, nil
}
