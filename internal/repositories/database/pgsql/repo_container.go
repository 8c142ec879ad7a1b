package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the Postgres implementations of every repository port.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager: newPgxTxManager(dbPool),
		Journals:  newPgxJournalRepository(dbPool),
		Locker:    NewPgxPostingLocker(dbPool),
	}
}
