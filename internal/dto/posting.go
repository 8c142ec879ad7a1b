package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentLineRequest is one priced line of an invoice or bill.
type DocumentLineRequest struct {
	Quantity  decimal.Decimal `json:"quantity" binding:"gte=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"gte=0"`
	Discount  decimal.Decimal `json:"discount"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	AccountID string          `json:"accountID" binding:"required"` // income account for invoices, expense account for bills
}

// PostInvoiceRequest carries everything needed to post a sales invoice.
type PostInvoiceRequest struct {
	InvoiceID    string                `json:"invoiceID" binding:"required"`
	Date         time.Time             `json:"date"`
	Description  string                `json:"description"`
	CurrencyCode string                `json:"currencyCode" binding:"required,len=3"`
	ARAccountID  string                `json:"arAccountID" binding:"required"`
	Lines        []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
	StoredTotal  *decimal.Decimal      `json:"storedTotal"` // Optional: total persisted on the invoice, checked against recomputation

	TotalCogs               *decimal.Decimal `json:"totalCogs"`
	CogsAccountID           string           `json:"cogsAccountID"`
	InventoryAssetAccountID string           `json:"inventoryAssetAccountID"`

	// Location candidates arrive loosely typed from upstream documents.
	InvoiceLocationID        any `json:"invoiceLocationID"`
	ItemDefaultLocationID    any `json:"itemDefaultLocationID"`
	CompanyDefaultLocationID any `json:"companyDefaultLocationID"`
}

// PostBillRequest carries everything needed to post a supplier bill.
type PostBillRequest struct {
	BillID       string                `json:"billID" binding:"required"`
	Date         time.Time             `json:"date"`
	Description  string                `json:"description"`
	CurrencyCode string                `json:"currencyCode" binding:"required,len=3"`
	APAccountID  string                `json:"apAccountID" binding:"required"`
	Lines        []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
	StoredTotal  *decimal.Decimal      `json:"storedTotal"`
}

// PostPaymentRequest settles a receivable (RECEIVED) or payable (MADE) against cash.
type PostPaymentRequest struct {
	PaymentID             string          `json:"paymentID" binding:"required"`
	Date                  time.Time       `json:"date"`
	Description           string          `json:"description"`
	CurrencyCode          string          `json:"currencyCode" binding:"required,len=3"`
	Direction             string          `json:"direction" binding:"required,oneof=RECEIVED MADE"`
	CashAccountID         string          `json:"cashAccountID" binding:"required"`
	CounterpartyAccountID string          `json:"counterpartyAccountID" binding:"required"`
	Amount                decimal.Decimal `json:"amount" binding:"gt=0"`
}

// ReceivingLineRequest is one received stock line valued at cost.
type ReceivingLineRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"gte=0"`
	UnitCost decimal.Decimal `json:"unitCost" binding:"gte=0"`
}

// PostReceivingRequest capitalizes received stock into inventory.
type PostReceivingRequest struct {
	ReceiptID               string                 `json:"receiptID" binding:"required"`
	Date                    time.Time              `json:"date"`
	Description             string                 `json:"description"`
	CurrencyCode            string                 `json:"currencyCode" binding:"required,len=3"`
	InventoryAssetAccountID string                 `json:"inventoryAssetAccountID" binding:"required"`
	ClearingAccountID       string                 `json:"clearingAccountID" binding:"required"`
	Lines                   []ReceivingLineRequest `json:"lines" binding:"required,min=1,dive"`

	ReceiptLocationID        any `json:"receiptLocationID"`
	ItemDefaultLocationID    any `json:"itemDefaultLocationID"`
	CompanyDefaultLocationID any `json:"companyDefaultLocationID"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	AccountID string `json:"accountID"`
	Debit     string `json:"debit"`
	Credit    string `json:"credit"`
}

// JournalEntryResponse defines the data returned for a posted journal entry.
type JournalEntryResponse struct {
	JournalID    string                `json:"journalID"`
	CompanyID    string                `json:"companyID"`
	SourceType   domain.SourceType     `json:"sourceType"`
	SourceID     string                `json:"sourceID"`
	Date         time.Time             `json:"date"`
	Description  string                `json:"description"`
	CurrencyCode string                `json:"currencyCode"`
	LocationID   *int64                `json:"locationID,omitempty"`
	TotalDebit   string                `json:"totalDebit"`
	TotalCredit  string                `json:"totalCredit"`
	Lines        []JournalLineResponse `json:"lines"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ToDomainLines converts request lines to domain document lines.
func ToDomainLines(lines []DocumentLineRequest) []domain.DocumentLine {
	out := make([]domain.DocumentLine, len(lines))
	for i, l := range lines {
		out[i] = domain.DocumentLine{
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			TaxRate:   l.TaxRate,
			AccountID: l.AccountID,
		}
	}
	return out
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			AccountID: l.AccountID,
			Debit:     l.Debit.StringFixed(2),
			Credit:    l.Credit.StringFixed(2),
		}
	}
	return JournalEntryResponse{
		JournalID:    e.JournalID,
		CompanyID:    e.CompanyID,
		SourceType:   e.SourceType,
		SourceID:     e.SourceID,
		Date:         e.JournalDate,
		Description:  e.Description,
		CurrencyCode: e.CurrencyCode,
		LocationID:   e.LocationID,
		TotalDebit:   e.TotalDebit.StringFixed(2),
		TotalCredit:  e.TotalCredit.StringFixed(2),
		Lines:        lines,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ListJournalEntriesParams defines query parameters for listing posted entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"gte=1,lte=100"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse wraps one page of entry headers.
type ListJournalEntriesResponse struct {
	JournalEntries []JournalEntryResponse `json:"journalEntries"`
	NextToken      *string                `json:"nextToken,omitempty"`
}
