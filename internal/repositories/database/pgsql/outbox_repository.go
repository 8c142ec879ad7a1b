package pgsql

import (
	"context"
	"net/http"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_engine/internal/utils/mapping"
)

// PgxOutboxRepository appends events to outbox_events in the caller's transaction.
type PgxOutboxRepository struct {
	BaseRepository
}

func newPgxOutboxRepository(db dbtx) *PgxOutboxRepository {
	return &PgxOutboxRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.OutboxWriter = (*PgxOutboxRepository)(nil)

func (r *PgxOutboxRepository) AppendEvent(ctx context.Context, event domain.EventEnvelope) error {
	row, err := mapping.ToModelOutboxEvent(event)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO outbox_events (event_id, event_type, schema_version, company_id, source, occurred_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.DB.Exec(ctx, query,
		row.EventID, row.EventType, row.SchemaVersion, row.CompanyID, row.Source, row.OccurredAt, row.Payload,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to append outbox event "+row.EventID, err)
	}
	return nil
}
