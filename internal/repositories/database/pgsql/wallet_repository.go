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

// PGSQLWalletRepository implements wallet persistence backed by PostgreSQL.
type PGSQLWalletRepository struct {
	BaseRepository
}

// NewPGSQLWalletRepository creates a new wallet repository instance.
func NewPGSQLWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryWithTx {
	return &PGSQLWalletRepository{BaseRepository: NewBaseRepository(pool)}
}

const walletColumns = `wallet_id, user_id, name, color, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(&w.WalletID, &w.UserID, &w.Name, &w.Color, &w.Balance,
		&w.CreatedAt, &w.CreatedBy, &w.LastUpdatedAt, &w.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning wallet: %w", err)
	}
	return &w, nil
}

// SaveWallet persists a new wallet.
func (r *PGSQLWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	query := `INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.Pool.Exec(ctx, query,
		wallet.WalletID, wallet.UserID, wallet.Name, wallet.Color, wallet.Balance,
		wallet.CreatedAt, wallet.CreatedBy, wallet.LastUpdatedAt, wallet.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("inserting wallet: %w", err)
	}
	return nil
}

// FindWalletByID retrieves a wallet by its identifier.
func (r *PGSQLWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1`
	return scanWallet(r.Pool.QueryRow(ctx, query, walletID))
}

// ListWallets retrieves a user's wallets ordered by creation time, optionally
// filtered by a case-insensitive name search.
func (r *PGSQLWalletRepository) ListWallets(ctx context.Context, userID string, query string, limit, offset int) ([]domain.Wallet, error) {
	sql := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	args := []any{userID}
	if query != "" {
		sql += ` AND name ILIKE $2`
		args = append(args, "%"+query+"%")
	}
	sql += fmt.Sprintf(` ORDER BY created_at ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying wallets: %w", err)
	}
	defer rows.Close()

	wallets := make([]domain.Wallet, 0)
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, *w)
	}
	return wallets, rows.Err()
}

// UpdateWallet updates a wallet's name and color.
func (r *PGSQLWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	query := `UPDATE wallets SET name = $2, color = $3, last_updated_at = $4, last_updated_by = $5
		WHERE wallet_id = $1`
	tag, err := r.Pool.Exec(ctx, query,
		wallet.WalletID, wallet.Name, wallet.Color, wallet.LastUpdatedAt, wallet.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("updating wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustWalletBalanceInTx increments the wallet's balance by delta inside the
// caller's transaction. The increment is a single atomic UPDATE; the database
// serializes concurrent adjustments through row locking.
func (r *PGSQLWalletRepository) AdjustWalletBalanceInTx(ctx context.Context, tx pgx.Tx, walletID string, delta int64, userID string, now time.Time) error {
	query := `UPDATE wallets SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE wallet_id = $1`
	tag, err := tx.Exec(ctx, query, walletID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("adjusting wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteWalletInTx removes the wallet row inside the caller's transaction.
func (r *PGSQLWalletRepository) DeleteWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM wallets WHERE wallet_id = $1`, walletID)
	if err != nil {
		return fmt.Errorf("deleting wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
