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

// PGSQLTransactionRepository implements transaction persistence backed by
// PostgreSQL. Every read filters soft-deleted rows; the rows themselves stay
// so history remains resolvable.
type PGSQLTransactionRepository struct {
	BaseRepository
}

// NewPGSQLTransactionRepository creates a new transaction repository instance.
func NewPGSQLTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PGSQLTransactionRepository{BaseRepository: NewBaseRepository(pool)}
}

const transactionColumns = `transaction_id, user_id, wallet_id, to_wallet_id, category_id, kind, amount, date, remark, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.TransactionID, &t.UserID, &t.WalletID, &t.ToWalletID,
		&t.CategoryID, &t.Kind, &t.Amount, &t.Date, &t.Remark, &t.DeletedAt,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning transaction: %w", err)
	}
	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	return txns, rows.Err()
}

// FindTransactionByID retrieves a live transaction by its identifier.
func (r *PGSQLTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE transaction_id = $1 AND deleted_at IS NULL`
	return scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
}

// ListTransactions retrieves a page of a user's live transactions, newest
// first.
func (r *PGSQLTransactionRepository) ListTransactions(ctx context.Context, userID string, from, to *time.Time, limit, offset int) ([]domain.Transaction, error) {
	sql := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE user_id = $1 AND deleted_at IS NULL`
	args := []any{userID}
	if from != nil && to != nil {
		sql += fmt.Sprintf(` AND date >= $%d AND date <= $%d`, len(args)+1, len(args)+2)
		args = append(args, *from, *to)
	}
	sql += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	return collectTransactions(rows)
}

// ListTransactionsBetween retrieves all of a user's live transactions dated
// within [from, to] inclusive.
func (r *PGSQLTransactionRepository) ListTransactionsBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE user_id = $1 AND deleted_at IS NULL AND date >= $2 AND date <= $3
		ORDER BY date ASC`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	return collectTransactions(rows)
}

// SaveTransactionInTx persists a new transaction row.
func (r *PGSQLTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID, txn.UserID, txn.WalletID, txn.ToWalletID,
		txn.CategoryID, txn.Kind, txn.Amount, txn.Date, txn.Remark, txn.DeletedAt,
		txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

// FindTransactionByIDForUpdate reads a live transaction row and locks it for
// the remainder of the transaction.
func (r *PGSQLTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE transaction_id = $1 AND deleted_at IS NULL FOR UPDATE`
	return scanTransaction(tx.QueryRow(ctx, query, transactionID))
}

// UpdateTransactionInTx replaces the mutable fields of a transaction row.
func (r *PGSQLTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `UPDATE transactions
		SET wallet_id = $2, to_wallet_id = $3, category_id = $4, kind = $5,
			amount = $6, date = $7, remark = $8, last_updated_at = $9, last_updated_by = $10
		WHERE transaction_id = $1 AND deleted_at IS NULL`
	tag, err := tx.Exec(ctx, query,
		txn.TransactionID, txn.WalletID, txn.ToWalletID, txn.CategoryID, txn.Kind,
		txn.Amount, txn.Date, txn.Remark, txn.LastUpdatedAt, txn.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteTransactionInTx sets the soft-delete marker on a live row.
func (r *PGSQLTransactionRepository) SoftDeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) error {
	query := `UPDATE transactions
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $1 AND deleted_at IS NULL`
	tag, err := tx.Exec(ctx, query, transactionID, now, userID)
	if err != nil {
		return fmt.Errorf("soft-deleting transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransactionsByWalletInTx hard-deletes every transaction referencing
// the wallet as source or destination, soft-deleted rows included.
func (r *PGSQLTransactionRepository) DeleteTransactionsByWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) error {
	_, err := tx.Exec(ctx,
		`DELETE FROM transactions WHERE wallet_id = $1 OR to_wallet_id = $1`, walletID)
	if err != nil {
		return fmt.Errorf("deleting wallet transactions: %w", err)
	}
	return nil
}

// ListExpensesInScopeInTx retrieves all live expense transactions inside a
// budget-item scope.
func (r *PGSQLTransactionRepository) ListExpensesInScopeInTx(ctx context.Context, tx pgx.Tx, walletID, categoryID string, start, end time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE wallet_id = $1 AND category_id = $2 AND kind = 'expense'
			AND deleted_at IS NULL AND date >= $3 AND date <= $4`
	rows, err := tx.Query(ctx, query, walletID, categoryID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying in-scope expenses: %w", err)
	}
	return collectTransactions(rows)
}

// ListExpensesBetweenInTx retrieves all live expense transactions dated
// within [start, end] inclusive, across wallets.
func (r *PGSQLTransactionRepository) ListExpensesBetweenInTx(ctx context.Context, tx pgx.Tx, start, end time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE kind = 'expense' AND deleted_at IS NULL AND date >= $1 AND date <= $2`
	rows, err := tx.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying expenses: %w", err)
	}
	return collectTransactions(rows)
}

// ListTransactionsTouchingWalletInTx retrieves all live transactions that
// reference the wallet as source or transfer destination.
func (r *PGSQLTransactionRepository) ListTransactionsTouchingWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE (wallet_id = $1 OR to_wallet_id = $1) AND deleted_at IS NULL`
	rows, err := tx.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("querying wallet transactions: %w", err)
	}
	return collectTransactions(rows)
}
