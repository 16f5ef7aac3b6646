package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for database transaction management.
// Every multi-step reconciliation runs between one Begin and one Commit;
// helpers receive the pgx.Tx explicitly so atomicity boundaries stay visible
// at call sites.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Safe to defer after Commit.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
