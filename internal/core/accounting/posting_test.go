package accounting_test

import (
	"testing"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/accounting"
	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestBuildInvoicePostingJournalLines_Scenario(t *testing.T) {
	totals, err := accounting.ComputeInvoiceTotalsAndIncomeBuckets([]domain.DocumentLine{
		line("1", "200", "10", "0.05", "income-4000"),
		line("2", "25", "0", "0", "income-4000"),
	})
	require.NoError(t, err)

	lines, err := accounting.BuildInvoicePostingJournalLines(accounting.InvoicePostingArgs{
		ARAccountID:         "ar-1100",
		Total:               totals.Total,
		IncomeBuckets:       totals.Buckets,
		TaxAmount:           &totals.TaxAmount,
		TaxPayableAccountID: "tax-2100",
	})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, "ar-1100", lines[0].AccountID)
	assert.Equal(t, "249.50", lines[0].Debit.StringFixed(2))
	assert.True(t, lines[0].Credit.IsZero())

	assert.Equal(t, "income-4000", lines[1].AccountID)
	assert.Equal(t, "240.00", lines[1].Credit.StringFixed(2))

	assert.Equal(t, "tax-2100", lines[2].AccountID)
	assert.Equal(t, "9.50", lines[2].Credit.StringFixed(2))

	sums, err := accounting.AssertBalanced(lines)
	require.NoError(t, err)
	assert.Equal(t, "249.50", sums.Debit.StringFixed(2))
}

func TestBuildInvoicePostingJournalLines_BucketOrderIsDeterministic(t *testing.T) {
	buckets := domain.NewAmountBuckets()
	for _, id := range []string{"c", "a", "b"} {
		buckets.Accumulate(id, dec("1"), func(d decimal.Decimal) decimal.Decimal { return d.Round(2) })
	}
	for i := 0; i < 5; i++ {
		lines, err := accounting.BuildInvoicePostingJournalLines(accounting.InvoicePostingArgs{
			ARAccountID: "ar", Total: dec("3"), IncomeBuckets: buckets,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"ar", "c", "a", "b"}, []string{lines[0].AccountID, lines[1].AccountID, lines[2].AccountID, lines[3].AccountID})
	}
}

func TestBuildInvoicePostingJournalLines_TaxAccountRequired(t *testing.T) {
	buckets := domain.NewAmountBuckets()
	buckets.Accumulate("income", dec("100"), func(d decimal.Decimal) decimal.Decimal { return d })

	_, err := accounting.BuildInvoicePostingJournalLines(accounting.InvoicePostingArgs{
		ARAccountID: "ar", Total: dec("110"), IncomeBuckets: buckets, TaxAmount: decPtr("10"),
	})
	assert.ErrorIs(t, err, apperrors.ErrMissingTaxAccount)

	// Zero tax needs no account and emits no tax line.
	lines, err := accounting.BuildInvoicePostingJournalLines(accounting.InvoicePostingArgs{
		ARAccountID: "ar", Total: dec("100"), IncomeBuckets: buckets, TaxAmount: decPtr("0"),
	})
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestBuildInvoicePostingJournalLines_Cogs(t *testing.T) {
	buckets := domain.NewAmountBuckets()
	buckets.Accumulate("income", dec("100"), func(d decimal.Decimal) decimal.Decimal { return d })

	lines, err := accounting.BuildInvoicePostingJournalLines(accounting.InvoicePostingArgs{
		ARAccountID: "ar", Total: dec("100"), IncomeBuckets: buckets,
		TotalCogs: decPtr("61.555"), CogsAccountID: "cogs", InventoryAssetAccountID: "inv",
	})
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, "cogs", lines[2].AccountID)
	assert.Equal(t, "61.56", lines[2].Debit.StringFixed(2))
	assert.Equal(t, "inv", lines[3].AccountID)
	assert.Equal(t, "61.56", lines[3].Credit.StringFixed(2))

	_, err = accounting.AssertBalanced(lines)
	assert.NoError(t, err)
}

func TestBuildInvoicePostingJournalLines_CogsAccountsRequired(t *testing.T) {
	tests := []struct {
		name string
		cogs string
		inv  string
	}{
		{name: "missing both", cogs: "", inv: ""},
		{name: "missing inventory", cogs: "cogs", inv: ""},
		{name: "missing cogs", cogs: "", inv: "inv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accounting.BuildInvoicePostingJournalLines(accounting.InvoicePostingArgs{
				ARAccountID: "ar", Total: dec("0"), IncomeBuckets: domain.NewAmountBuckets(),
				TotalCogs: decPtr("5"), CogsAccountID: tt.cogs, InventoryAssetAccountID: tt.inv,
			})
			assert.ErrorIs(t, err, apperrors.ErrMissingCogsAccounts)
		})
	}
}

func TestInvoicePosting_AlwaysBalances(t *testing.T) {
	prices := []string{"0.01", "0.335", "1.005", "19.99", "250", "1234.567"}
	rates := []string{"0", "0.05", "0.075", "0.0825", "0.2", "1"}
	accounts := []string{"4000", "4100", "4200"}

	for n := 1; n <= 12; n++ {
		lines := make([]domain.DocumentLine, 0, n)
		for i := 0; i < n; i++ {
			price := dec(prices[(i*7+n)%len(prices)])
			qty := decimal.NewFromInt(int64(1 + (i*3+n)%5))
			gross := qty.Mul(price).Round(2)
			discount := gross.Div(decimal.NewFromInt(int64(2 + i%4))).Round(2)
			lines = append(lines, domain.DocumentLine{
				Quantity:  qty,
				UnitPrice: price,
				Discount:  discount,
				TaxRate:   dec(rates[(i+n)%len(rates)]),
				AccountID: accounts[i%len(accounts)],
			})
		}

		totals, err := accounting.ComputeInvoiceTotalsAndIncomeBuckets(lines)
		require.NoError(t, err)

		journal, err := accounting.BuildInvoicePostingJournalLines(accounting.InvoicePostingArgs{
			ARAccountID:         "ar",
			Total:               totals.Total,
			IncomeBuckets:       totals.Buckets,
			TaxAmount:           &totals.TaxAmount,
			TaxPayableAccountID: "tax",
		})
		require.NoError(t, err)

		sums := accounting.SumDebitsCredits(journal)
		assert.True(t, sums.Debit.Equal(sums.Credit), "n=%d debit %s credit %s", n, sums.Debit, sums.Credit)
	}
}

func TestBuildBillPostingJournalLines(t *testing.T) {
	totals, err := accounting.ComputeBillTotalsAndExpenseBuckets([]domain.DocumentLine{
		line("3", "10", "0", "0.1", "exp-6000"),
		line("1", "20", "0", "0", "exp-6100"),
	})
	require.NoError(t, err)

	lines, err := accounting.BuildBillPostingJournalLines(accounting.BillPostingArgs{
		APAccountID:            "ap",
		Total:                  totals.Total,
		ExpenseBuckets:         totals.Buckets,
		TaxAmount:              &totals.TaxAmount,
		TaxReceivableAccountID: "tax-rec",
	})
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, "30.00", lines[0].Debit.StringFixed(2))
	assert.Equal(t, "20.00", lines[1].Debit.StringFixed(2))
	assert.Equal(t, "tax-rec", lines[2].AccountID)
	assert.Equal(t, "3.00", lines[2].Debit.StringFixed(2))
	assert.Equal(t, "ap", lines[3].AccountID)
	assert.Equal(t, "53.00", lines[3].Credit.StringFixed(2))

	_, err = accounting.AssertBalanced(lines)
	assert.NoError(t, err)

	_, err = accounting.BuildBillPostingJournalLines(accounting.BillPostingArgs{
		APAccountID: "ap", Total: totals.Total, ExpenseBuckets: totals.Buckets, TaxAmount: &totals.TaxAmount,
	})
	assert.ErrorIs(t, err, apperrors.ErrMissingTaxAccount)
}

func TestBuildInvoicePostingJournalLines_SkipsZeroAmounts(t *testing.T) {
	totals, err := accounting.ComputeInvoiceTotalsAndIncomeBuckets([]domain.DocumentLine{
		line("1", "50", "50", "0.1", "income-4100"),
		line("2", "10", "0", "0", "income-4000"),
	})
	require.NoError(t, err)

	lines, err := accounting.BuildInvoicePostingJournalLines(accounting.InvoicePostingArgs{
		ARAccountID:         "ar",
		Total:               totals.Total,
		IncomeBuckets:       totals.Buckets,
		TaxAmount:           &totals.TaxAmount,
		TaxPayableAccountID: "tax",
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "ar", lines[0].AccountID)
	assert.Equal(t, "20.00", lines[0].Debit.StringFixed(2))
	assert.Equal(t, "income-4000", lines[1].AccountID)
	assert.Equal(t, "20.00", lines[1].Credit.StringFixed(2))
	for _, l := range lines {
		assert.False(t, l.Debit.IsZero() && l.Credit.IsZero(), "zero line for %s", l.AccountID)
	}
}

func TestBuildInvoicePostingJournalLines_NothingToPost(t *testing.T) {
	totals, err := accounting.ComputeInvoiceTotalsAndIncomeBuckets([]domain.DocumentLine{
		line("1", "0", "0", "0", "income-4000"),
	})
	require.NoError(t, err)

	_, err = accounting.BuildInvoicePostingJournalLines(accounting.InvoicePostingArgs{
		ARAccountID: "ar", Total: totals.Total, IncomeBuckets: totals.Buckets, TaxAmount: &totals.TaxAmount,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// A free item still moves stock at cost.
	lines, err := accounting.BuildInvoicePostingJournalLines(accounting.InvoicePostingArgs{
		ARAccountID:             "ar",
		Total:                   totals.Total,
		IncomeBuckets:           totals.Buckets,
		TotalCogs:               decPtr("12.00"),
		CogsAccountID:           "cogs",
		InventoryAssetAccountID: "inv",
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "cogs", lines[0].AccountID)
	assert.Equal(t, "inv", lines[1].AccountID)
}

func TestBuildBillPostingJournalLines_SkipsZeroAmounts(t *testing.T) {
	totals, err := accounting.ComputeBillTotalsAndExpenseBuckets([]domain.DocumentLine{
		line("1", "40", "40", "0", "exp-6000"),
		line("1", "15", "0", "0", "exp-6100"),
	})
	require.NoError(t, err)

	lines, err := accounting.BuildBillPostingJournalLines(accounting.BillPostingArgs{
		APAccountID: "ap", Total: totals.Total, ExpenseBuckets: totals.Buckets, TaxAmount: &totals.TaxAmount,
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "exp-6100", lines[0].AccountID)
	assert.Equal(t, "ap", lines[1].AccountID)

	_, err = accounting.BuildBillPostingJournalLines(accounting.BillPostingArgs{
		APAccountID: "ap", Total: decimal.Zero, ExpenseBuckets: domain.NewAmountBuckets(),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuildPaymentJournalLines(t *testing.T) {
	received, err := accounting.BuildPaymentJournalLines(accounting.PaymentPostingArgs{
		Direction: accounting.PaymentReceived, CashAccountID: "cash", CounterpartyAccountID: "ar", Amount: dec("249.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "cash", received[0].AccountID)
	assert.Equal(t, "249.50", received[0].Debit.StringFixed(2))
	assert.Equal(t, "ar", received[1].AccountID)

	made, err := accounting.BuildPaymentJournalLines(accounting.PaymentPostingArgs{
		Direction: accounting.PaymentMade, CashAccountID: "cash", CounterpartyAccountID: "ap", Amount: dec("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ap", made[0].AccountID)
	assert.Equal(t, "cash", made[1].AccountID)
	assert.Equal(t, "10.00", made[1].Credit.StringFixed(2))

	_, err = accounting.BuildPaymentJournalLines(accounting.PaymentPostingArgs{Direction: accounting.PaymentMade, Amount: dec("0")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.BuildPaymentJournalLines(accounting.PaymentPostingArgs{Direction: "SIDEWAYS", Amount: dec("1")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuildReceivingJournalLines(t *testing.T) {
	lines, total, err := accounting.BuildReceivingJournalLines(accounting.ReceivingPostingArgs{
		InventoryAssetAccountID: "inv",
		ClearingAccountID:       "grni",
		Lines: []accounting.ReceivingLine{
			{Quantity: dec("3"), UnitCost: dec("0.335")},
			{Quantity: dec("2"), UnitCost: dec("10")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "21.01", total.StringFixed(2))
	assert.Equal(t, "21.01", lines[0].Debit.StringFixed(2))
	assert.Equal(t, "21.01", lines[1].Credit.StringFixed(2))

	_, _, err = accounting.BuildReceivingJournalLines(accounting.ReceivingPostingArgs{
		InventoryAssetAccountID: "inv", ClearingAccountID: "grni",
		Lines: []accounting.ReceivingLine{{Quantity: dec("-1"), UnitCost: dec("1")}},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuantity)

	_, _, err = accounting.BuildReceivingJournalLines(accounting.ReceivingPostingArgs{
		Lines: []accounting.ReceivingLine{{Quantity: dec("1"), UnitCost: dec("1")}},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
