package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// SourceType names the business document a journal entry was posted from.
type SourceType string

const (
	SourceInvoice   SourceType = "INVOICE"
	SourceBill      SourceType = "BILL"
	SourcePayment   SourceType = "PAYMENT"
	SourceReceiving SourceType = "RECEIVING"
)

// JournalLine is one leg of a journal entry. Lines built by the posting engine
// carry exactly one nonzero side.
type JournalLine struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
}

// DebitLine creates a line with only the debit side set.
func DebitLine(accountID string, amount decimal.Decimal) JournalLine {
	return JournalLine{AccountID: accountID, Debit: amount, Credit: decimal.Zero}
}

// CreditLine creates a line with only the credit side set.
func CreditLine(accountID string, amount decimal.Decimal) JournalLine {
	return JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: amount}
}

// JournalEntry is a balanced, ordered set of lines recording one business event
// for one company in one currency. It is immutable once saved.
type JournalEntry struct {
	JournalID    string          `json:"journalID"`
	CompanyID    string          `json:"companyID"`
	SourceType   SourceType      `json:"sourceType"`
	SourceID     string          `json:"sourceID"`
	JournalDate  time.Time       `json:"journalDate"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Status       JournalStatus   `json:"status"`
	LocationID   *int64          `json:"locationID,omitempty"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	Lines        []JournalLine   `json:"lines"`
	AuditFields
}
