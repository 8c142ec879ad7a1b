package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	JournalID    string          `db:"journal_id"`
	CompanyID    string          `db:"company_id"`
	SourceType   string          `db:"source_type"`
	SourceID     string          `db:"source_id"`
	JournalDate  time.Time       `db:"journal_date"`
	Description  string          `db:"description"`
	CurrencyCode string          `db:"currency_code"`
	Status       JournalStatus   `db:"status"`
	LocationID   *int64          `db:"location_id"` // Nullable
	TotalDebit   decimal.Decimal `db:"total_debit"`
	TotalCredit  decimal.Decimal `db:"total_credit"`
	AuditFields
}

// JournalLine is a row of the journal_lines table. LineNo preserves the order
// the posting builder emitted.
type JournalLine struct {
	JournalID string          `db:"journal_id"`
	LineNo    int             `db:"line_no"`
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	Memo      string          `db:"memo"`
}
