package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents a tenant-scoped ledger account.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	CompanyID   string      `json:"companyID"`   // Tenant boundary (NON-NULL)
	Code        string      `json:"code"`        // Fixed-width numeric code, unique per company
	Name        string      `json:"name"`        // Display name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	ReportGroup string      `json:"reportGroup"` // Optional report grouping
	IsActive    bool        `json:"isActive"`
	AuditFields
}
