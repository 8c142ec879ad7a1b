package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/accounting"
	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_engine/internal/core/ports/services"
)

// accountResolver implements AccountResolverSvc.
type accountResolver struct {
	BaseService
	taxPayable    accounting.AccountPurpose
	taxReceivable accounting.AccountPurpose
}

// ResolverOption configures the account resolver
type ResolverOption func(*accountResolver)

// WithTaxPayableRange overrides where a new Tax Payable account may be numbered.
func WithTaxPayableRange(r accounting.CodeRange) ResolverOption {
	return func(s *accountResolver) {
		s.taxPayable = accounting.TaxPayablePurpose(r)
	}
}

// WithTaxReceivableRange overrides where a new Tax Receivable account may be numbered.
func WithTaxReceivableRange(r accounting.CodeRange) ResolverOption {
	return func(s *accountResolver) {
		s.taxReceivable = accounting.TaxReceivablePurpose(r)
	}
}

// NewAccountResolver creates an account resolver using the default code ranges
// unless overridden.
func NewAccountResolver(options ...ResolverOption) portssvc.AccountResolverSvc {
	svc := &accountResolver{
		taxPayable:    accounting.TaxPayablePurpose(accounting.DefaultTaxPayableRange),
		taxReceivable: accounting.TaxReceivablePurpose(accounting.DefaultTaxReceivableRange),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountResolverSvc = (*accountResolver)(nil)

func (s *accountResolver) ResolveAccount(ctx context.Context, store portsrepo.LedgerStore, companyID string, purpose accounting.AccountPurpose) (string, error) {
	accountID, err := s.resolveOnce(ctx, store, companyID, purpose)
	if errors.Is(err, apperrors.ErrDuplicateCode) {
		// Someone took the code between our scan and insert. The winner may have
		// created this very account, so search before allocating again.
		s.LogInfo(ctx, "Account code taken concurrently, re-resolving",
			slog.String("company_id", companyID),
			slog.String("account_name", purpose.Name))
		accountID, err = s.resolveOnce(ctx, store, companyID, purpose)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve system account",
			slog.String("company_id", companyID),
			slog.String("account_name", purpose.Name))
		return "", err
	}
	return accountID, nil
}

func (s *accountResolver) resolveOnce(ctx context.Context, store portsrepo.LedgerStore, companyID string, purpose accounting.AccountPurpose) (string, error) {
	existing, err := store.FindAccount(ctx, companyID, portsrepo.AccountQuery{
		Name:        purpose.Name,
		AccountType: purpose.AccountType,
	})
	if err == nil {
		return existing.AccountID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("find %s account: %w", purpose.Name, err)
	}

	// Codes are unique across the whole chart, not per type.
	codes, err := store.ListAccountCodes(ctx, companyID, nil)
	if err != nil {
		return "", fmt.Errorf("list account codes: %w", err)
	}
	code, err := purpose.Range.Pick(accounting.UsedNumericCodes(codes))
	if err != nil {
		return "", err
	}

	created, err := store.CreateAccount(ctx, companyID, code, purpose.Name, purpose.AccountType)
	if err != nil {
		return "", err
	}
	s.LogInfo(ctx, "Provisioned system account",
		slog.String("company_id", companyID),
		slog.String("account_name", purpose.Name),
		slog.String("code", code))
	return created.AccountID, nil
}

func (s *accountResolver) EnsureTaxPayableAccountIfNeeded(ctx context.Context, store portsrepo.LedgerStore, companyID string, taxAmount *decimal.Decimal) (*string, error) {
	return s.ensureIfNeeded(ctx, store, companyID, taxAmount, s.taxPayable)
}

func (s *accountResolver) EnsureTaxReceivableAccountIfNeeded(ctx context.Context, store portsrepo.LedgerStore, companyID string, taxAmount *decimal.Decimal) (*string, error) {
	return s.ensureIfNeeded(ctx, store, companyID, taxAmount, s.taxReceivable)
}

func (s *accountResolver) ensureIfNeeded(ctx context.Context, store portsrepo.LedgerStore, companyID string, taxAmount *decimal.Decimal, purpose accounting.AccountPurpose) (*string, error) {
	if taxAmount == nil || taxAmount.IsZero() {
		return nil, nil
	}
	accountID, err := s.ResolveAccount(ctx, store, companyID, purpose)
	if err != nil {
		return nil, err
	}
	return &accountID, nil
}
