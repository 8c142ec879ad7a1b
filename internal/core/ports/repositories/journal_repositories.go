package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
)

// JournalReader defines read operations for posted journal entries.
type JournalReader interface {
	// FindJournalEntryBySource returns the entry posted for a document, or apperrors.ErrNotFound.
	FindJournalEntryBySource(ctx context.Context, companyID string, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error)

	// ListJournalEntries returns one page of a company's entry headers, newest
	// first, and a token for the next page when there is one. Lines are not loaded.
	ListJournalEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter persists journal entries.
type JournalWriter interface {
	// SaveJournalEntry stores the entry and its lines. A second entry for the same
	// company, source type and source id fails with apperrors.ErrAlreadyPosted.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error
}

// OutboxWriter appends events consumers pick up after commit.
type OutboxWriter interface {
	AppendEvent(ctx context.Context, event domain.EventEnvelope) error
}
