package repositories

import (
	"context"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// WalletReader defines read operations for wallet data.
type WalletReader interface {
	// FindWalletByID retrieves a specific wallet by its unique identifier.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// ListWallets retrieves a paginated list of a user's wallets, optionally
	// filtered by a case-insensitive name search.
	ListWallets(ctx context.Context, userID string, query string, limit, offset int) ([]domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data.
type WalletWriter interface {
	// SaveWallet persists a new wallet.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// UpdateWallet updates a wallet's name and color.
	UpdateWallet(ctx context.Context, wallet domain.Wallet) error
}

// WalletTransactionSupport defines wallet operations that participate in an
// enclosing database transaction.
type WalletTransactionSupport interface {
	// AdjustWalletBalanceInTx increments the wallet's stored balance by delta
	// (which may be negative) inside the caller's transaction. A missing
	// wallet surfaces as apperrors.ErrNotFound.
	AdjustWalletBalanceInTx(ctx context.Context, tx pgx.Tx, walletID string, delta int64, userID string, now time.Time) error

	// DeleteWalletInTx removes the wallet row inside the caller's transaction.
	// Dependent rows must already be gone.
	DeleteWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces.
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
	WalletTransactionSupport
}

// WalletRepositoryWithTx extends WalletRepositoryFacade with transaction capabilities.
type WalletRepositoryWithTx interface {
	WalletRepositoryFacade
	TransactionManager
}
