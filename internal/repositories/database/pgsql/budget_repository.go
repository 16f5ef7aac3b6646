package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/apperrors"
	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku-app/dompetku_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL SQLSTATE codes for constraint breaches.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// PGSQLBudgetRepository implements budget, budget item and contribution pivot
// persistence backed by PostgreSQL.
type PGSQLBudgetRepository struct {
	BaseRepository
}

// NewPGSQLBudgetRepository creates a new budget repository instance.
func NewPGSQLBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryWithTx {
	return &PGSQLBudgetRepository{BaseRepository: NewBaseRepository(pool)}
}

const budgetColumns = `budget_id, user_id, wallet_id, name, start_at, end_at, total, created_at, created_by, last_updated_at, last_updated_by`

const budgetItemColumns = `budget_item_id, budget_id, category_id, planned, actual, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(&b.BudgetID, &b.UserID, &b.WalletID, &b.Name, &b.StartAt, &b.EndAt, &b.Total,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning budget: %w", err)
	}
	return &b, nil
}

func scanBudgetItem(row pgx.Row) (*domain.BudgetItem, error) {
	var i domain.BudgetItem
	err := row.Scan(&i.BudgetItemID, &i.BudgetID, &i.CategoryID, &i.Planned, &i.Actual,
		&i.CreatedAt, &i.CreatedBy, &i.LastUpdatedAt, &i.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning budget item: %w", err)
	}
	return &i, nil
}

func collectBudgetItems(rows pgx.Rows) ([]domain.BudgetItem, error) {
	defer rows.Close()
	items := make([]domain.BudgetItem, 0)
	for rows.Next() {
		item, err := scanBudgetItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// querier abstracts the pool and an open transaction for shared read helpers.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PGSQLBudgetRepository) loadItems(ctx context.Context, q querier, budgetID string) ([]domain.BudgetItem, error) {
	rows, err := q.Query(ctx,
		`SELECT `+budgetItemColumns+` FROM budget_items WHERE budget_id = $1 ORDER BY created_at ASC`,
		budgetID)
	if err != nil {
		return nil, fmt.Errorf("querying budget items: %w", err)
	}
	return collectBudgetItems(rows)
}

// FindBudgetByID retrieves a budget with its items.
func (r *PGSQLBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	budget, err := scanBudget(r.Pool.QueryRow(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE budget_id = $1`, budgetID))
	if err != nil {
		return nil, err
	}
	budget.Items, err = r.loadItems(ctx, r.Pool, budgetID)
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// FindBudgetItemByID retrieves a single budget item.
func (r *PGSQLBudgetRepository) FindBudgetItemByID(ctx context.Context, budgetItemID string) (*domain.BudgetItem, error) {
	return scanBudgetItem(r.Pool.QueryRow(ctx,
		`SELECT `+budgetItemColumns+` FROM budget_items WHERE budget_item_id = $1`, budgetItemID))
}

// ListBudgets retrieves a user's budgets with items, ordered by start date,
// optionally restricted to those intersecting [from, to].
func (r *PGSQLBudgetRepository) ListBudgets(ctx context.Context, userID string, from, to *time.Time, limit, offset int) ([]domain.Budget, error) {
	sql := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1`
	args := []any{userID}
	if from != nil && to != nil {
		sql += fmt.Sprintf(` AND start_at <= $%d AND end_at >= $%d`, len(args)+1, len(args)+2)
		args = append(args, *to, *from)
	}
	sql += fmt.Sprintf(` ORDER BY start_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]domain.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range budgets {
		budgets[i].Items, err = r.loadItems(ctx, r.Pool, budgets[i].BudgetID)
		if err != nil {
			return nil, err
		}
	}
	return budgets, nil
}

// SaveBudgetInTx persists a budget header row.
func (r *PGSQLBudgetRepository) SaveBudgetInTx(ctx context.Context, tx pgx.Tx, budget domain.Budget) error {
	query := `INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := tx.Exec(ctx, query,
		budget.BudgetID, budget.UserID, budget.WalletID, budget.Name,
		budget.StartAt, budget.EndAt, budget.Total,
		budget.CreatedAt, budget.CreatedBy, budget.LastUpdatedAt, budget.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("inserting budget: %w", err)
	}
	return nil
}

// SaveBudgetItemInTx persists a budget item row.
func (r *PGSQLBudgetRepository) SaveBudgetItemInTx(ctx context.Context, tx pgx.Tx, item domain.BudgetItem) error {
	query := `INSERT INTO budget_items (` + budgetItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := tx.Exec(ctx, query,
		item.BudgetItemID, item.BudgetID, item.CategoryID, item.Planned, item.Actual,
		item.CreatedAt, item.CreatedBy, item.LastUpdatedAt, item.LastUpdatedBy)
	if err != nil {
		if isPgErrCode(err, uniqueViolation) {
			return fmt.Errorf("%w: budget already has an item for this category", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("inserting budget item: %w", err)
	}
	return nil
}

// UpdateBudget updates a budget's header fields.
func (r *PGSQLBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	query := `UPDATE budgets SET name = $2, total = $3, last_updated_at = $4, last_updated_by = $5
		WHERE budget_id = $1`
	tag, err := r.Pool.Exec(ctx, query,
		budget.BudgetID, budget.Name, budget.Total, budget.LastUpdatedAt, budget.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateBudgetItemInTx updates an item's planned amount and category.
func (r *PGSQLBudgetRepository) UpdateBudgetItemInTx(ctx context.Context, tx pgx.Tx, item domain.BudgetItem) error {
	query := `UPDATE budget_items SET category_id = $2, planned = $3, last_updated_at = $4, last_updated_by = $5
		WHERE budget_item_id = $1`
	tag, err := tx.Exec(ctx, query,
		item.BudgetItemID, item.CategoryID, item.Planned, item.LastUpdatedAt, item.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("updating budget item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudgetItemInTx removes an item row.
func (r *PGSQLBudgetRepository) DeleteBudgetItemInTx(ctx context.Context, tx pgx.Tx, budgetItemID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM budget_items WHERE budget_item_id = $1`, budgetItemID)
	if err != nil {
		return fmt.Errorf("deleting budget item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudgetCascadeInTx removes a budget with its items and their pivots,
// in dependency order.
func (r *PGSQLBudgetRepository) DeleteBudgetCascadeInTx(ctx context.Context, tx pgx.Tx, budgetID string) error {
	_, err := tx.Exec(ctx, `DELETE FROM budget_item_transactions
		WHERE budget_item_id IN (SELECT budget_item_id FROM budget_items WHERE budget_id = $1)`, budgetID)
	if err != nil {
		return fmt.Errorf("deleting budget contribution records: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM budget_items WHERE budget_id = $1`, budgetID); err != nil {
		return fmt.Errorf("deleting budget items: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1`, budgetID)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudgetsByWalletInTx removes every budget scoped to the wallet,
// cascading pivots and items first.
func (r *PGSQLBudgetRepository) DeleteBudgetsByWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) error {
	_, err := tx.Exec(ctx, `DELETE FROM budget_item_transactions
		WHERE budget_item_id IN (
			SELECT i.budget_item_id FROM budget_items i
			JOIN budgets b ON b.budget_id = i.budget_id
			WHERE b.wallet_id = $1)`, walletID)
	if err != nil {
		return fmt.Errorf("deleting wallet contribution records: %w", err)
	}
	_, err = tx.Exec(ctx, `DELETE FROM budget_items
		WHERE budget_id IN (SELECT budget_id FROM budgets WHERE wallet_id = $1)`, walletID)
	if err != nil {
		return fmt.Errorf("deleting wallet budget items: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM budgets WHERE wallet_id = $1`, walletID); err != nil {
		return fmt.Errorf("deleting wallet budgets: %w", err)
	}
	return nil
}

// FindOverlappingBudgetsInTx returns budgets in the wallet that track any of
// the categories over a range intersecting [start, end]. Both bounds are
// inclusive, so ranges that merely touch at an endpoint still conflict.
func (r *PGSQLBudgetRepository) FindOverlappingBudgetsInTx(ctx context.Context, tx pgx.Tx, walletID string, categoryIDs []string, start, end time.Time, excludeBudgetID *string) ([]domain.Budget, error) {
	query := `SELECT DISTINCT ` + prefixColumns("b", budgetColumns) + ` FROM budgets b
		JOIN budget_items i ON i.budget_id = b.budget_id
		WHERE b.wallet_id = $1 AND i.category_id = ANY($2)
			AND b.start_at <= $3 AND b.end_at >= $4
			AND ($5::text IS NULL OR b.budget_id <> $5)`
	rows, err := tx.Query(ctx, query, walletID, categoryIDs, end, start, excludeBudgetID)
	if err != nil {
		return nil, fmt.Errorf("querying overlapping budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]domain.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}
	return budgets, rows.Err()
}

// FindMatchingItemsInTx returns every budget item whose owning budget has the
// given wallet and whose range contains date, with the item's category equal
// to categoryID. The item rows are locked for the transaction.
func (r *PGSQLBudgetRepository) FindMatchingItemsInTx(ctx context.Context, tx pgx.Tx, walletID, categoryID string, date time.Time) ([]domain.BudgetItem, error) {
	query := `SELECT ` + prefixColumns("i", budgetItemColumns) + ` FROM budget_items i
		JOIN budgets b ON b.budget_id = i.budget_id
		WHERE b.wallet_id = $1 AND i.category_id = $2
			AND b.start_at <= $3 AND b.end_at >= $3
		ORDER BY i.budget_item_id
		FOR UPDATE OF i`
	rows, err := tx.Query(ctx, query, walletID, categoryID, date)
	if err != nil {
		return nil, fmt.Errorf("querying matching budget items: %w", err)
	}
	return collectBudgetItems(rows)
}

// HasItemForCategoryInTx reports whether the budget already holds an item for
// the category.
func (r *PGSQLBudgetRepository) HasItemForCategoryInTx(ctx context.Context, tx pgx.Tx, budgetID, categoryID string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM budget_items WHERE budget_id = $1 AND category_id = $2)`,
		budgetID, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking item category: %w", err)
	}
	return exists, nil
}

// FindBudgetsContainingDateInTx returns all budgets (with items) whose range
// contains date.
func (r *PGSQLBudgetRepository) FindBudgetsContainingDateInTx(ctx context.Context, tx pgx.Tx, date time.Time) ([]domain.Budget, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE start_at <= $1 AND end_at >= $1`, date)
	if err != nil {
		return nil, fmt.Errorf("querying budgets for date: %w", err)
	}
	defer rows.Close()

	budgets := make([]domain.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range budgets {
		budgets[i].Items, err = r.loadItems(ctx, tx, budgets[i].BudgetID)
		if err != nil {
			return nil, err
		}
	}
	return budgets, nil
}

// PivotExistsInTx reports whether the (item, transaction) pivot exists.
func (r *PGSQLBudgetRepository) PivotExistsInTx(ctx context.Context, tx pgx.Tx, budgetItemID, transactionID string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM budget_item_transactions WHERE budget_item_id = $1 AND transaction_id = $2)`,
		budgetItemID, transactionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking contribution record: %w", err)
	}
	return exists, nil
}

// InsertPivotInTx records the pivot. The primary key on (item, transaction)
// backstops the service-level existence check under concurrency.
func (r *PGSQLBudgetRepository) InsertPivotInTx(ctx context.Context, tx pgx.Tx, pivot domain.BudgetItemTransaction) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO budget_item_transactions (budget_item_id, transaction_id, created_at) VALUES ($1, $2, $3)`,
		pivot.BudgetItemID, pivot.TransactionID, pivot.CreatedAt)
	if err != nil {
		if isPgErrCode(err, uniqueViolation) {
			return fmt.Errorf("%w: contribution already recorded", apperrors.ErrConflict)
		}
		return fmt.Errorf("inserting contribution record: %w", err)
	}
	return nil
}

// DeletePivotInTx removes the pivot row.
func (r *PGSQLBudgetRepository) DeletePivotInTx(ctx context.Context, tx pgx.Tx, budgetItemID, transactionID string) error {
	_, err := tx.Exec(ctx,
		`DELETE FROM budget_item_transactions WHERE budget_item_id = $1 AND transaction_id = $2`,
		budgetItemID, transactionID)
	if err != nil {
		return fmt.Errorf("deleting contribution record: %w", err)
	}
	return nil
}

// DeletePivotsByItemInTx removes every pivot for the item.
func (r *PGSQLBudgetRepository) DeletePivotsByItemInTx(ctx context.Context, tx pgx.Tx, budgetItemID string) error {
	_, err := tx.Exec(ctx,
		`DELETE FROM budget_item_transactions WHERE budget_item_id = $1`, budgetItemID)
	if err != nil {
		return fmt.Errorf("deleting contribution records: %w", err)
	}
	return nil
}

// FindPivotsByTransactionInTx returns all pivots for the transaction.
func (r *PGSQLBudgetRepository) FindPivotsByTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) ([]domain.BudgetItemTransaction, error) {
	rows, err := tx.Query(ctx,
		`SELECT budget_item_id, transaction_id, created_at FROM budget_item_transactions WHERE transaction_id = $1`,
		transactionID)
	if err != nil {
		return nil, fmt.Errorf("querying contribution records: %w", err)
	}
	defer rows.Close()

	pivots := make([]domain.BudgetItemTransaction, 0)
	for rows.Next() {
		var p domain.BudgetItemTransaction
		if err := rows.Scan(&p.BudgetItemID, &p.TransactionID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning contribution record: %w", err)
		}
		pivots = append(pivots, p)
	}
	return pivots, rows.Err()
}

// AddToItemActualInTx increments the item's actual by delta.
func (r *PGSQLBudgetRepository) AddToItemActualInTx(ctx context.Context, tx pgx.Tx, budgetItemID string, delta int64, userID string, now time.Time) error {
	query := `UPDATE budget_items SET actual = actual + $2, last_updated_at = $3, last_updated_by = $4
		WHERE budget_item_id = $1`
	tag, err := tx.Exec(ctx, query, budgetItemID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("incrementing budget item actual: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetItemActualInTx sets the item's actual to an absolute value.
func (r *PGSQLBudgetRepository) SetItemActualInTx(ctx context.Context, tx pgx.Tx, budgetItemID string, actual int64, userID string, now time.Time) error {
	query := `UPDATE budget_items SET actual = $2, last_updated_at = $3, last_updated_by = $4
		WHERE budget_item_id = $1`
	tag, err := tx.Exec(ctx, query, budgetItemID, actual, now, userID)
	if err != nil {
		return fmt.Errorf("setting budget item actual: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
