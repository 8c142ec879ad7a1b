package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_engine/internal/core/accounting"
	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// AccountResolverSvc finds or provisions system accounts. It works against the
// store it is handed so callers can resolve inside their own transaction.
type AccountResolverSvc interface {
	// ResolveAccount returns the id of the account for purpose, creating it with
	// the first free code in the purpose's range when it does not exist.
	ResolveAccount(ctx context.Context, store portsrepo.LedgerStore, companyID string, purpose accounting.AccountPurpose) (string, error)

	// EnsureTaxPayableAccountIfNeeded resolves the Tax Payable account, or returns
	// nil without touching the store when taxAmount is nil or zero.
	EnsureTaxPayableAccountIfNeeded(ctx context.Context, store portsrepo.LedgerStore, companyID string, taxAmount *decimal.Decimal) (*string, error)

	// EnsureTaxReceivableAccountIfNeeded is the purchase-side counterpart.
	EnsureTaxReceivableAccountIfNeeded(ctx context.Context, store portsrepo.LedgerStore, companyID string, taxAmount *decimal.Decimal) (*string, error)
}
