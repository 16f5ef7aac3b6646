package repositories

import (
	"context"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BudgetReader defines read operations for budget data.
type BudgetReader interface {
	// FindBudgetByID retrieves a budget with its items.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// FindBudgetItemByID retrieves a single budget item.
	FindBudgetItemByID(ctx context.Context, budgetItemID string) (*domain.BudgetItem, error)

	// ListBudgets retrieves a paginated list of a user's budgets (with items),
	// ordered by start date, optionally restricted to those intersecting
	// [from, to].
	ListBudgets(ctx context.Context, userID string, from, to *time.Time, limit, offset int) ([]domain.Budget, error)
}

// BudgetWriter defines budget write operations that participate in an
// enclosing database transaction.
type BudgetWriter interface {
	// SaveBudgetInTx persists a budget header row.
	SaveBudgetInTx(ctx context.Context, tx pgx.Tx, budget domain.Budget) error

	// SaveBudgetItemInTx persists a budget item row.
	SaveBudgetItemInTx(ctx context.Context, tx pgx.Tx, item domain.BudgetItem) error

	// UpdateBudget updates a budget's header fields (name, total, range).
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudgetItemInTx updates an item's planned amount and category.
	UpdateBudgetItemInTx(ctx context.Context, tx pgx.Tx, item domain.BudgetItem) error

	// DeleteBudgetItemInTx removes an item row. Its pivots must already be gone.
	DeleteBudgetItemInTx(ctx context.Context, tx pgx.Tx, budgetItemID string) error

	// DeleteBudgetCascadeInTx removes a budget with its items and their
	// pivots, in dependency order.
	DeleteBudgetCascadeInTx(ctx context.Context, tx pgx.Tx, budgetID string) error

	// DeleteBudgetsByWalletInTx removes every budget scoped to the wallet,
	// cascading pivots and items first. Only used by the wallet cascade delete.
	DeleteBudgetsByWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) error
}

// BudgetScopeReader defines the scope queries behind overlap validation,
// contribution matching and recomputation.
type BudgetScopeReader interface {
	// FindOverlappingBudgetsInTx returns budgets (with items) in the wallet
	// whose [startAt, endAt] intersects [start, end] inclusive-inclusive and
	// that contain an item for any of categoryIDs. excludeBudgetID skips a
	// budget when checking its own item insertions.
	FindOverlappingBudgetsInTx(ctx context.Context, tx pgx.Tx, walletID string, categoryIDs []string, start, end time.Time, excludeBudgetID *string) ([]domain.Budget, error)

	// FindMatchingItemsInTx returns every budget item whose owning budget has
	// the given wallet and whose range contains date, with the item's
	// category equal to categoryID. Rows are locked for the transaction.
	FindMatchingItemsInTx(ctx context.Context, tx pgx.Tx, walletID, categoryID string, date time.Time) ([]domain.BudgetItem, error)

	// HasItemForCategoryInTx reports whether the budget already holds an item
	// for the category.
	HasItemForCategoryInTx(ctx context.Context, tx pgx.Tx, budgetID, categoryID string) (bool, error)

	// FindBudgetsContainingDateInTx returns all budgets (with items) whose
	// range contains date.
	FindBudgetsContainingDateInTx(ctx context.Context, tx pgx.Tx, date time.Time) ([]domain.Budget, error)
}

// ContributionPivotSupport defines the idempotency bookkeeping for
// (budget item, transaction) contributions.
type ContributionPivotSupport interface {
	// PivotExistsInTx reports whether the (item, transaction) pivot exists.
	PivotExistsInTx(ctx context.Context, tx pgx.Tx, budgetItemID, transactionID string) (bool, error)

	// InsertPivotInTx records the pivot. A concurrent duplicate insert
	// surfaces as apperrors.ErrConflict via the unique constraint.
	InsertPivotInTx(ctx context.Context, tx pgx.Tx, pivot domain.BudgetItemTransaction) error

	// DeletePivotInTx removes the pivot row.
	DeletePivotInTx(ctx context.Context, tx pgx.Tx, budgetItemID, transactionID string) error

	// DeletePivotsByItemInTx removes every pivot for the item.
	DeletePivotsByItemInTx(ctx context.Context, tx pgx.Tx, budgetItemID string) error

	// FindPivotsByTransactionInTx returns all live pivots for the transaction,
	// across items.
	FindPivotsByTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) ([]domain.BudgetItemTransaction, error)

	// AddToItemActualInTx increments the item's actual by delta (may be
	// negative) inside the caller's transaction.
	AddToItemActualInTx(ctx context.Context, tx pgx.Tx, budgetItemID string, delta int64, userID string, now time.Time) error

	// SetItemActualInTx sets the item's actual to an absolute value. Used by
	// batch recomputation.
	SetItemActualInTx(ctx context.Context, tx pgx.Tx, budgetItemID string, actual int64, userID string, now time.Time) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
	BudgetScopeReader
	ContributionPivotSupport
}

// BudgetRepositoryWithTx extends BudgetRepositoryFacade with transaction capabilities.
type BudgetRepositoryWithTx interface {
	BudgetRepositoryFacade
	TransactionManager
}
