package repositories

import (
	"context"
)

// LedgerTx is the set of stores available inside one atomic unit of work.
type LedgerTx interface {
	LedgerStore
	JournalWriter
	OutboxWriter
}

// TransactionManager runs fn inside a transaction. The transaction commits when
// fn returns nil and rolls back otherwise.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
