package pgsql

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_engine/internal/models"
	"github.com/SscSPs/bookkeeping_engine/internal/utils/mapping"
	"github.com/SscSPs/bookkeeping_engine/internal/utils/pagination"
)

// PgxJournalRepository stores journal entries and their ordered lines.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(db dbtx) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{DB: db}}
}

var (
	_ portsrepo.JournalReader = (*PgxJournalRepository)(nil)
	_ portsrepo.JournalWriter = (*PgxJournalRepository)(nil)
)

// SaveJournalEntry inserts the header and queues every line in a single batch.
// The unique (company_id, source_type, source_id) index turns a repeat posting into ErrAlreadyPosted.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	header, lines := mapping.ToModelJournalEntry(entry)

	headerQuery := `
		INSERT INTO journal_entries (
			journal_id, company_id, source_type, source_id, journal_date, description,
			currency_code, status, location_id, total_debit, total_credit,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.DB.Exec(ctx, headerQuery,
		header.JournalID, header.CompanyID, header.SourceType, header.SourceID, header.JournalDate,
		header.Description, header.CurrencyCode, header.Status, header.LocationID,
		header.TotalDebit, header.TotalCredit,
		header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrAlreadyPosted
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert journal entry "+header.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (journal_id, line_no, account_id, debit, credit, memo)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, l := range lines {
		batch.Queue(lineQuery, l.JournalID, l.LineNo, l.AccountID, l.Debit, l.Credit, l.Memo)
	}

	// Close reports the first failing statement of the batch.
	if err := r.DB.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert lines for journal entry "+header.JournalID, err)
	}
	return nil
}

// FindJournalEntryBySource loads the entry posted for one source document.
func (r *PgxJournalRepository) FindJournalEntryBySource(ctx context.Context, companyID string, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error) {
	headerQuery := `
		SELECT journal_id, company_id, source_type, source_id, journal_date, description,
		       currency_code, status, location_id, total_debit, total_credit,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE company_id = $1 AND source_type = $2 AND source_id = $3;
	`
	rows, err := r.DB.Query(ctx, headerQuery, companyID, string(sourceType), sourceID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query journal entry", err)
	}
	header, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan journal entry", err)
	}

	lineQuery := `
		SELECT journal_id, line_no, account_id, debit, credit, memo
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_no;
	`
	rows, err = r.DB.Query(ctx, lineQuery, header.JournalID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query journal lines", err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan journal lines", err)
	}

	entry := mapping.ToDomainJournalEntry(header, lines)
	return &entry, nil
}

// ListJournalEntries pages through a company's entry headers with keyset
// pagination on (journal_date, created_at, journal_id), newest first.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	query := `
		SELECT journal_id, company_id, source_type, source_id, journal_date, description,
		       currency_code, status, location_id, total_debit, total_credit,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE company_id = $1`
	args := []any{companyID}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", err)
		}
		query += ` AND (journal_date, created_at, journal_id) < ($2, $3, $4)`
		args = append(args, cursor.JournalDate, cursor.CreatedAt, cursor.JournalID)
	}
	query += ` ORDER BY journal_date DESC, created_at DESC, journal_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query journal entries for company "+companyID, err)
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan journal entries for company "+companyID, err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{JournalDate: last.JournalDate, CreatedAt: last.CreatedAt, JournalID: last.JournalID})
		nextTokenVal = &token
		headers = headers[:limit]
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, nil)
	}
	return entries, nextTokenVal, nil
}
