package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
)

// AccountQuery selects an account within one company. Empty fields match anything.
type AccountQuery struct {
	Name        string
	AccountType domain.AccountType
	Code        string
}

// LedgerStore is the account side of the ledger the posting engine reads and
// provisions. Every call is scoped to exactly one company.
type LedgerStore interface {
	// FindAccount returns the first account matching q, or apperrors.ErrNotFound.
	FindAccount(ctx context.Context, companyID string, q AccountQuery) (*domain.Account, error)

	// ListAccountCodes returns the codes in use, optionally restricted to one account type.
	ListAccountCodes(ctx context.Context, companyID string, accountType *domain.AccountType) ([]string, error)

	// CreateAccount inserts an account. It fails with apperrors.ErrDuplicateCode
	// when the code is already taken in the company.
	CreateAccount(ctx context.Context, companyID, code, name string, accountType domain.AccountType) (*domain.Account, error)
}
