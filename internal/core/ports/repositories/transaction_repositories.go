package repositories

import (
	"context"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for transaction data. All reads
// exclude soft-deleted rows.
type TransactionReader interface {
	// FindTransactionByID retrieves a live transaction by its identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of a user's live
	// transactions, newest first, optionally bounded to [from, to].
	ListTransactions(ctx context.Context, userID string, from, to *time.Time, limit, offset int) ([]domain.Transaction, error)

	// ListTransactionsBetween retrieves all of a user's live transactions
	// dated within [from, to] inclusive. Used by the reporting aggregations.
	ListTransactionsBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data that
// participate in an enclosing database transaction.
type TransactionWriter interface {
	// SaveTransactionInTx persists a new transaction row.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// FindTransactionByIDForUpdate reads a live transaction row and locks it
	// for the remainder of the transaction, so concurrent updates to the same
	// transaction id serialize on the read-for-update step.
	FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error)

	// UpdateTransactionInTx replaces the mutable fields of a transaction row.
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// SoftDeleteTransactionInTx sets the soft-delete marker. The row stays so
	// historical contribution records remain resolvable.
	SoftDeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) error

	// DeleteTransactionsByWalletInTx hard-deletes every transaction that
	// references the wallet as source or destination. Only used by the wallet
	// cascade delete.
	DeleteTransactionsByWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) error
}

// TransactionScopeReader defines scope queries used by contribution tracking
// and batch recomputation.
type TransactionScopeReader interface {
	// ListExpensesInScopeInTx retrieves all live expense transactions whose
	// wallet, category and date fall inside the given budget-item scope.
	ListExpensesInScopeInTx(ctx context.Context, tx pgx.Tx, walletID, categoryID string, start, end time.Time) ([]domain.Transaction, error)

	// ListExpensesBetweenInTx retrieves all live expense transactions dated
	// within [start, end] inclusive, across wallets. Used by the by-date
	// recompute to load the union range once.
	ListExpensesBetweenInTx(ctx context.Context, tx pgx.Tx, start, end time.Time) ([]domain.Transaction, error)

	// ListTransactionsTouchingWalletInTx retrieves all live transactions that
	// reference the wallet as source or transfer destination. Used by the
	// wallet cascade delete to reverse effects on surviving wallets.
	ListTransactionsTouchingWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) ([]domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionScopeReader
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// transaction capabilities.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
