package accounting

import "github.com/SscSPs/bookkeeping_engine/internal/core/domain"

const (
	TaxPayableAccountName    = "Tax Payable"
	TaxReceivableAccountName = "Tax Receivable"
)

// AccountPurpose identifies a system account by canonical name and type and
// says where in the chart its code may be allocated.
type AccountPurpose struct {
	Name        string
	AccountType domain.AccountType
	Range       CodeRange
}

// TaxPayablePurpose is the liability account output tax is credited to.
func TaxPayablePurpose(r CodeRange) AccountPurpose {
	return AccountPurpose{Name: TaxPayableAccountName, AccountType: domain.Liability, Range: r}
}

// TaxReceivablePurpose is the asset account input tax is debited to.
func TaxReceivablePurpose(r CodeRange) AccountPurpose {
	return AccountPurpose{Name: TaxReceivableAccountName, AccountType: domain.Asset, Range: r}
}

var (
	DefaultTaxPayableRange    = CodeRange{Preferred: 2100, Min: 2100, Max: 2999}
	DefaultTaxReceivableRange = CodeRange{Preferred: 1210, Min: 1210, Max: 1999}
)
