package domain

import "github.com/shopspring/decimal"

// DocumentLine is one priced line of an invoice, bill or receipt. AccountID is
// the income account for sales documents and the expense account for purchases.
type DocumentLine struct {
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	AccountID string          `json:"accountID"`
}

// DocumentTotals is derived from a document's lines for a single posting.
type DocumentTotals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	Buckets   *AmountBuckets
}
