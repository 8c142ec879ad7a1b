package services

import (
	"github.com/SscSPs/bookkeeping_engine/internal/core/accounting"
	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_engine/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Tax account code ranges come from TAX_*_CODE_* settings.
	container.Resolver = NewAccountResolver(
		WithTaxPayableRange(codeRange(cfg.TaxPayableCodes)),
		WithTaxReceivableRange(codeRange(cfg.TaxReceivableCodes)),
	)

	container.Posting = NewPostingService(
		repos.TxManager,
		repos.Journals,
		repos.Locker,
		WithAccountResolver(container.Resolver),
		WithPostingLock(cfg.PostingLockTTL, cfg.PostingLockMode),
	)

	return container
}

func codeRange(c config.CodeRangeConfig) accounting.CodeRange {
	return accounting.CodeRange{Preferred: c.Preferred, Min: c.Min, Max: c.Max}
}
