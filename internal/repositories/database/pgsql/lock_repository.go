package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
)

// PgxPostingLocker keeps posting locks as rows with an expiry. An expired row
// is taken over by the next Acquire.
type PgxPostingLocker struct {
	pool *pgxpool.Pool
}

// NewPgxPostingLocker creates a locker backed by the posting_locks table.
func NewPgxPostingLocker(pool *pgxpool.Pool) *PgxPostingLocker {
	return &PgxPostingLocker{pool: pool}
}

var _ portsrepo.PostingLocker = (*PgxPostingLocker)(nil)

func (l *PgxPostingLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	query := `
		INSERT INTO posting_locks (lock_key, token, expires_at)
		VALUES ($1, $2, now() + $3::bigint * interval '1 millisecond')
		ON CONFLICT (lock_key) DO UPDATE
			SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at
			WHERE posting_locks.expires_at <= now()
		RETURNING token;
	`
	var got string
	err := l.pool.QueryRow(ctx, query, key, token, ttl.Milliseconds()).Scan(&got)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrLockHeld
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrLockUnavailable, err)
	}
	return got, nil
}

// Release deletes the lock only if token still owns it.
func (l *PgxPostingLocker) Release(ctx context.Context, key, token string) error {
	_, err := l.pool.Exec(ctx, `DELETE FROM posting_locks WHERE lock_key = $1 AND token = $2;`, key, token)
	if err != nil {
		return fmt.Errorf("release posting lock %s: %w", key, err)
	}
	return nil
}
