package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/accounting"
	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_engine/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_engine/internal/dto"
	"github.com/SscSPs/bookkeeping_engine/internal/platform/config"
)

// EventSourcePostingService identifies this service as the producer of outbox events.
const EventSourcePostingService = "posting-service"

const defaultPostingLockTTL = 30 * time.Second

// postingService implements PostingSvcFacade.
type postingService struct {
	BaseService
	txManager portsrepo.TransactionManager
	journals  portsrepo.JournalReader
	locker    portsrepo.PostingLocker
	resolver  portssvc.AccountResolverSvc
	lockTTL   time.Duration
	lockMode  config.LockMode
	now       func() time.Time
}

// PostingServiceOption is a functional option for configuring the posting service
type PostingServiceOption func(*postingService)

// WithAccountResolver replaces the default account resolver.
func WithAccountResolver(resolver portssvc.AccountResolverSvc) PostingServiceOption {
	return func(s *postingService) {
		s.resolver = resolver
	}
}

// WithPostingLock sets the lock TTL and what to do when the lock backend is down.
func WithPostingLock(ttl time.Duration, mode config.LockMode) PostingServiceOption {
	return func(s *postingService) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
		if mode != "" {
			s.lockMode = mode
		}
	}
}

// WithClock overrides the time source used for entry dates and event timestamps.
func WithClock(now func() time.Time) PostingServiceOption {
	return func(s *postingService) {
		s.now = now
	}
}

// NewPostingService creates a new posting service with the provided options.
func NewPostingService(txManager portsrepo.TransactionManager, journals portsrepo.JournalReader, locker portsrepo.PostingLocker, options ...PostingServiceOption) portssvc.PostingSvcFacade {
	svc := &postingService{
		txManager: txManager,
		journals:  journals,
		locker:    locker,
		lockTTL:   defaultPostingLockTTL,
		lockMode:  config.LockModeRequired,
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.resolver == nil {
		svc.resolver = NewAccountResolver()
	}
	return svc
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// postingPlan is what differs between document types. buildLines runs inside
// the store transaction so account provisioning commits or rolls back with the entry.
type postingPlan struct {
	sourceType   domain.SourceType
	sourceID     string
	date         time.Time
	description  string
	currencyCode string
	locationID   *int64
	buildLines   func(ctx context.Context, tx portsrepo.LedgerTx) ([]domain.JournalLine, error)
}

func (s *postingService) PostInvoice(ctx context.Context, companyID string, req dto.PostInvoiceRequest, userID string) (*domain.JournalEntry, error) {
	totals, err := accounting.ComputeInvoiceTotalsAndIncomeBuckets(dto.ToDomainLines(req.Lines))
	if err != nil {
		s.LogError(ctx, err, "Invalid invoice lines", slog.String("invoice_id", req.InvoiceID))
		return nil, err
	}
	if req.StoredTotal != nil {
		if err := accounting.AssertTotalsMatchStored(totals.Total, *req.StoredTotal); err != nil {
			s.LogError(ctx, err, "Invoice total drifted from stored value", slog.String("invoice_id", req.InvoiceID))
			return nil, err
		}
	}

	location := accounting.ResolveLocationForStockIssue(req.InvoiceLocationID, req.ItemDefaultLocationID, req.CompanyDefaultLocationID)

	return s.post(ctx, companyID, userID, postingPlan{
		sourceType:   domain.SourceInvoice,
		sourceID:     req.InvoiceID,
		date:         req.Date,
		description:  defaultString(req.Description, "Invoice "+req.InvoiceID),
		currencyCode: req.CurrencyCode,
		locationID:   location,
		buildLines: func(ctx context.Context, tx portsrepo.LedgerTx) ([]domain.JournalLine, error) {
			taxAccountID, err := s.resolver.EnsureTaxPayableAccountIfNeeded(ctx, tx, companyID, &totals.TaxAmount)
			if err != nil {
				return nil, err
			}
			return accounting.BuildInvoicePostingJournalLines(accounting.InvoicePostingArgs{
				ARAccountID:             req.ARAccountID,
				Total:                   totals.Total,
				IncomeBuckets:           totals.Buckets,
				TaxAmount:               &totals.TaxAmount,
				TaxPayableAccountID:     deref(taxAccountID),
				TotalCogs:               req.TotalCogs,
				CogsAccountID:           req.CogsAccountID,
				InventoryAssetAccountID: req.InventoryAssetAccountID,
			})
		},
	})
}

func (s *postingService) PostBill(ctx context.Context, companyID string, req dto.PostBillRequest, userID string) (*domain.JournalEntry, error) {
	totals, err := accounting.ComputeBillTotalsAndExpenseBuckets(dto.ToDomainLines(req.Lines))
	if err != nil {
		s.LogError(ctx, err, "Invalid bill lines", slog.String("bill_id", req.BillID))
		return nil, err
	}
	if req.StoredTotal != nil {
		if err := accounting.AssertTotalsMatchStored(totals.Total, *req.StoredTotal); err != nil {
			s.LogError(ctx, err, "Bill total drifted from stored value", slog.String("bill_id", req.BillID))
			return nil, err
		}
	}

	return s.post(ctx, companyID, userID, postingPlan{
		sourceType:   domain.SourceBill,
		sourceID:     req.BillID,
		date:         req.Date,
		description:  defaultString(req.Description, "Bill "+req.BillID),
		currencyCode: req.CurrencyCode,
		buildLines: func(ctx context.Context, tx portsrepo.LedgerTx) ([]domain.JournalLine, error) {
			taxAccountID, err := s.resolver.EnsureTaxReceivableAccountIfNeeded(ctx, tx, companyID, &totals.TaxAmount)
			if err != nil {
				return nil, err
			}
			return accounting.BuildBillPostingJournalLines(accounting.BillPostingArgs{
				APAccountID:            req.APAccountID,
				Total:                  totals.Total,
				ExpenseBuckets:         totals.Buckets,
				TaxAmount:              &totals.TaxAmount,
				TaxReceivableAccountID: deref(taxAccountID),
			})
		},
	})
}

func (s *postingService) PostPayment(ctx context.Context, companyID string, req dto.PostPaymentRequest, userID string) (*domain.JournalEntry, error) {
	lines, err := accounting.BuildPaymentJournalLines(accounting.PaymentPostingArgs{
		Direction:             accounting.PaymentDirection(strings.ToUpper(req.Direction)),
		CashAccountID:         req.CashAccountID,
		CounterpartyAccountID: req.CounterpartyAccountID,
		Amount:                req.Amount,
	})
	if err != nil {
		s.LogError(ctx, err, "Invalid payment", slog.String("payment_id", req.PaymentID))
		return nil, err
	}

	return s.post(ctx, companyID, userID, postingPlan{
		sourceType:   domain.SourcePayment,
		sourceID:     req.PaymentID,
		date:         req.Date,
		description:  defaultString(req.Description, "Payment "+req.PaymentID),
		currencyCode: req.CurrencyCode,
		buildLines: func(context.Context, portsrepo.LedgerTx) ([]domain.JournalLine, error) {
			return lines, nil
		},
	})
}

func (s *postingService) PostReceiving(ctx context.Context, companyID string, req dto.PostReceivingRequest, userID string) (*domain.JournalEntry, error) {
	receiving := make([]accounting.ReceivingLine, len(req.Lines))
	for i, l := range req.Lines {
		receiving[i] = accounting.ReceivingLine{Quantity: l.Quantity, UnitCost: l.UnitCost}
	}
	lines, _, err := accounting.BuildReceivingJournalLines(accounting.ReceivingPostingArgs{
		InventoryAssetAccountID: req.InventoryAssetAccountID,
		ClearingAccountID:       req.ClearingAccountID,
		Lines:                   receiving,
	})
	if err != nil {
		s.LogError(ctx, err, "Invalid receipt", slog.String("receipt_id", req.ReceiptID))
		return nil, err
	}

	return s.post(ctx, companyID, userID, postingPlan{
		sourceType:   domain.SourceReceiving,
		sourceID:     req.ReceiptID,
		date:         req.Date,
		description:  defaultString(req.Description, "Receipt "+req.ReceiptID),
		currencyCode: req.CurrencyCode,
		locationID:   accounting.ResolveLocationForStockIssue(req.ReceiptLocationID, req.ItemDefaultLocationID, req.CompanyDefaultLocationID),
		buildLines: func(context.Context, portsrepo.LedgerTx) ([]domain.JournalLine, error) {
			return lines, nil
		},
	})
}

func (s *postingService) GetJournalEntryBySource(ctx context.Context, companyID string, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error) {
	entry, err := s.journals.FindJournalEntryBySource(ctx, companyID, sourceType, sourceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load journal entry",
				slog.String("company_id", companyID),
				slog.String("source_type", string(sourceType)),
				slog.String("source_id", sourceID))
		}
		return nil, err
	}
	return entry, nil
}

// ListJournalEntries returns one page of a company's posted entries, newest first.
func (s *postingService) ListJournalEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	entries, nextToken, err := s.journals.ListJournalEntries(ctx, companyID, params.Limit, params.NextToken)
	if err != nil {
		if apperrors.HTTPStatus(err) >= 500 {
			s.LogError(ctx, err, "Failed to list journal entries", slog.String("company_id", companyID))
		}
		return nil, err
	}

	resp := &dto.ListJournalEntriesResponse{
		JournalEntries: make([]dto.JournalEntryResponse, len(entries)),
		NextToken:      nextToken,
	}
	for i := range entries {
		resp.JournalEntries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	s.LogDebug(ctx, "Journal entries listed", slog.String("company_id", companyID), slog.Int("count", len(entries)))
	return resp, nil
}

// post runs the shared lock / transaction / guard / persist / outbox sequence.
func (s *postingService) post(ctx context.Context, companyID, userID string, plan postingPlan) (*domain.JournalEntry, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company id is required", apperrors.ErrValidation)
	}
	if plan.sourceID == "" {
		return nil, fmt.Errorf("%w: source document id is required", apperrors.ErrValidation)
	}

	release, err := s.acquireLock(ctx, companyID, plan.sourceType, plan.sourceID)
	if err != nil {
		return nil, err
	}
	defer release()

	now := s.now().UTC()
	journalDate := plan.date
	if journalDate.IsZero() {
		journalDate = now
	}

	var entry domain.JournalEntry
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		lines, err := plan.buildLines(ctx, tx)
		if err != nil {
			return err
		}
		totals, err := accounting.AssertBalanced(lines)
		if err != nil {
			return err
		}

		entry = domain.JournalEntry{
			JournalID:    uuid.NewString(),
			CompanyID:    companyID,
			SourceType:   plan.sourceType,
			SourceID:     plan.sourceID,
			JournalDate:  journalDate,
			Description:  plan.description,
			CurrencyCode: strings.ToUpper(plan.currencyCode),
			Status:       domain.Posted,
			LocationID:   plan.locationID,
			TotalDebit:   totals.Debit,
			TotalCredit:  totals.Credit,
			Lines:        lines,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := tx.SaveJournalEntry(ctx, entry); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, newJournalCreatedEvent(entry, now))
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal entry",
			slog.String("company_id", companyID),
			slog.String("source_type", string(plan.sourceType)),
			slog.String("source_id", plan.sourceID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("journal_id", entry.JournalID),
		slog.String("company_id", companyID),
		slog.String("source_type", string(plan.sourceType)),
		slog.String("source_id", plan.sourceID),
		slog.String("total", entry.TotalDebit.StringFixed(2)))
	return &entry, nil
}

// acquireLock takes the per-document posting lock and returns its release func.
func (s *postingService) acquireLock(ctx context.Context, companyID string, sourceType domain.SourceType, sourceID string) (func(), error) {
	key := PostingLockKey(companyID, sourceType, sourceID)
	token, err := s.locker.Acquire(ctx, key, s.lockTTL)
	switch {
	case err == nil:
		return func() {
			// Release even if the request context was cancelled mid-posting.
			if err := s.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
				s.LogError(ctx, err, "Failed to release posting lock", slog.String("lock_key", key))
			}
		}, nil
	case errors.Is(err, apperrors.ErrLockUnavailable) && s.lockMode == config.LockModeBestEffort:
		s.LogWarn(ctx, "Posting lock unavailable, continuing without it",
			slog.String("lock_key", key),
			slog.String("error", err.Error()))
		return func() {}, nil
	default:
		s.LogError(ctx, err, "Failed to acquire posting lock", slog.String("lock_key", key))
		return nil, err
	}
}

// PostingLockKey is the lock key for one source document of one company.
func PostingLockKey(companyID string, sourceType domain.SourceType, sourceID string) string {
	return fmt.Sprintf("posting:%s:%s:%s", companyID, strings.ToLower(string(sourceType)), sourceID)
}

func newJournalCreatedEvent(entry domain.JournalEntry, occurredAt time.Time) domain.EventEnvelope {
	return domain.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     domain.EventJournalEntryCreated,
		SchemaVersion: domain.EventSchemaVersion,
		OccurredAt:    occurredAt,
		CompanyID:     entry.CompanyID,
		Source:        EventSourcePostingService,
		Payload: domain.JournalEventPayload{
			JournalEntryID: entry.JournalID,
			CompanyID:      entry.CompanyID,
			TotalDebit:     entry.TotalDebit,
			TotalCredit:    entry.TotalCredit,
		},
	}
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
