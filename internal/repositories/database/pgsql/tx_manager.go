package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
)

// pgxLedgerTx bundles the repositories bound to one pgx.Tx.
type pgxLedgerTx struct {
	*PgxAccountRepository
	*PgxJournalRepository
	*PgxOutboxRepository
}

var _ portsrepo.LedgerTx = pgxLedgerTx{}

// PgxTxManager runs units of work in a single Postgres transaction.
type PgxTxManager struct {
	BaseRepository
}

func newPgxTxManager(pool *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{BaseRepository: BaseRepository{DB: pool}}
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

func (m *PgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if the transaction is committed successfully
	defer m.Rollback(ctx, tx)

	ledgerTx := pgxLedgerTx{
		PgxAccountRepository: newPgxAccountRepository(tx),
		PgxJournalRepository: newPgxJournalRepository(tx),
		PgxOutboxRepository:  newPgxOutboxRepository(tx),
	}
	if err := fn(ctx, ledgerTx); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}
