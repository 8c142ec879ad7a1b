package accounting_test

import (
	"testing"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateLineTax(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		rate     string
		want     string
		wantErr  error
	}{
		{name: "five percent", subtotal: "190", rate: "0.05", want: "9.50"},
		{name: "rounds half up", subtotal: "0.10", rate: "0.05", want: "0.01"},
		{name: "rounds down", subtotal: "0.10", rate: "0.04", want: "0.00"},
		{name: "zero rate", subtotal: "50", rate: "0", want: "0.00"},
		{name: "full rate", subtotal: "12.34", rate: "1", want: "12.34"},
		{name: "four digit rate", subtotal: "99.99", rate: "0.0825", want: "8.25"},
		{name: "negative rate", subtotal: "10", rate: "-0.01", wantErr: apperrors.ErrInvalidRange},
		{name: "rate above one", subtotal: "10", rate: "1.0001", wantErr: apperrors.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.CalculateLineTax(dec(tt.subtotal), dec(tt.rate))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestCalculateLineTax_MatchesRoundedProduct(t *testing.T) {
	subtotals := []string{"0", "0.01", "1.23", "19.99", "333.33", "1000000.07"}
	rates := []string{"0", "0.0001", "0.05", "0.075", "0.125", "0.3333", "1"}
	for _, s := range subtotals {
		for _, r := range rates {
			got, err := accounting.CalculateLineTax(dec(s), dec(r))
			require.NoError(t, err)
			assert.True(t, dec(s).Mul(dec(r)).Round(2).Equal(got), "subtotal %s rate %s", s, r)
		}
	}
}

func TestCalculateTaxAggregate_LineLevelRounding(t *testing.T) {
	// Three lines of 0.10 at 5% each tax 0.005 -> 0.01, so 0.03 total;
	// aggregate-then-round would give 0.02.
	lines := []accounting.TaxLine{
		{Subtotal: dec("0.10"), Rate: dec("0.05")},
		{Subtotal: dec("0.10"), Rate: dec("0.05")},
		{Subtotal: dec("0.10"), Rate: dec("0.05")},
	}
	sum, err := accounting.CalculateTaxAggregate(lines)
	require.NoError(t, err)
	assert.Equal(t, "0.30", sum.Subtotal.StringFixed(2))
	assert.Equal(t, "0.03", sum.TaxAmount.StringFixed(2))
	assert.Equal(t, "0.33", sum.Total.StringFixed(2))
}

func TestCalculateTaxAggregate_RejectsBadRate(t *testing.T) {
	_, err := accounting.CalculateTaxAggregate([]accounting.TaxLine{
		{Subtotal: dec("10"), Rate: dec("0.1")},
		{Subtotal: dec("10"), Rate: dec("2")},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRange)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseTaxRate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "10%", want: "0.1"},
		{in: " 7.25 % ", want: "0.0725"},
		{in: "0%", want: "0"},
		{in: "100%", want: "1"},
		{in: "8.25", want: "0.0825"},
		{in: "0.0725", want: "0.0725"},
		{in: "0.5", want: "0.5"},
		{in: "1", want: "1"},
		{in: "0.07255", wantErr: true},
		{in: "7.255%", wantErr: true},
		{in: "0.5%", want: "0.005"},
		{in: "101%", wantErr: true},
		{in: "-1%", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "%", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := accounting.ParseTaxRate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestFormatTaxRate(t *testing.T) {
	assert.Equal(t, "10%", accounting.FormatTaxRate(dec("0.10")))
	assert.Equal(t, "7.25%", accounting.FormatTaxRate(dec("0.0725")))
	assert.Equal(t, "0.01%", accounting.FormatTaxRate(dec("0.0001")))
	assert.Equal(t, "0%", accounting.FormatTaxRate(decimal.Zero))
}

func TestTaxRate_RoundTrip(t *testing.T) {
	for i := int64(0); i <= 10000; i += 37 {
		r := decimal.New(i, -4)
		got, err := accounting.ParseTaxRate(accounting.FormatTaxRate(r))
		require.NoError(t, err)
		assert.True(t, r.Equal(got), "rate %s round-tripped to %s", r, got)
	}
}
