package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	"github.com/SscSPs/bookkeeping_engine/internal/dto"
)

// PostingWriterSvc turns business documents into balanced journal entries.
// Each call posts at most once per document; a repeat fails with apperrors.ErrAlreadyPosted.
type PostingWriterSvc interface {
	PostInvoice(ctx context.Context, companyID string, req dto.PostInvoiceRequest, userID string) (*domain.JournalEntry, error)
	PostBill(ctx context.Context, companyID string, req dto.PostBillRequest, userID string) (*domain.JournalEntry, error)
	PostPayment(ctx context.Context, companyID string, req dto.PostPaymentRequest, userID string) (*domain.JournalEntry, error)
	PostReceiving(ctx context.Context, companyID string, req dto.PostReceivingRequest, userID string) (*domain.JournalEntry, error)
}

// PostingReaderSvc defines read operations for posted entries.
type PostingReaderSvc interface {
	GetJournalEntryBySource(ctx context.Context, companyID string, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// PostingSvcFacade combines posting reads and writes.
type PostingSvcFacade interface {
	PostingWriterSvc
	PostingReaderSvc
}
