package services

import (
	"context"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
)

// WalletSvcFacade manages wallets. Balances are never set directly here; they
// move only through the reconciliation engine.
type WalletSvcFacade interface {
	CreateWallet(ctx context.Context, req dto.CreateWalletRequest, userID string) (*domain.Wallet, error)
	UpdateWallet(ctx context.Context, walletID string, req dto.CreateWalletRequest, userID string) (*domain.Wallet, error)

	// DeleteWallet removes the wallet and everything referencing it, in
	// dependency order: pivots, budget items, budgets, transactions, wallet.
	DeleteWallet(ctx context.Context, walletID string, userID string) error

	GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, userID string, params dto.ListParams) ([]domain.Wallet, error)
}
