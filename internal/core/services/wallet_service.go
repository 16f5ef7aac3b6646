package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/apperrors"
	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku-app/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/dompetku-app/dompetku_backend/internal/middleware"
	"github.com/google/uuid"
)

// walletService manages wallets. Balances are owned by the reconciliation
// engine; nothing here writes a balance except the cascade delete, which
// reverses transfer effects on surviving wallets before dropping the rows.
type walletService struct {
	walletRepo portsrepo.WalletRepositoryWithTx
	txnRepo    portsrepo.TransactionRepositoryFacade
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// NewWalletService creates a new wallet service instance.
func NewWalletService(
	walletRepo portsrepo.WalletRepositoryWithTx,
	txnRepo portsrepo.TransactionRepositoryFacade,
	budgetRepo portsrepo.BudgetRepositoryFacade,
) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		budgetRepo: budgetRepo,
	}
}

// CreateWallet creates a new wallet with a zero balance.
func (s *walletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest, userID string) (*domain.Wallet, error) {
	now := time.Now()
	wallet := domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   userID,
		Name:     req.Name,
		Color:    req.Color,
		Balance:  0,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		return nil, fmt.Errorf("saving wallet: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Wallet created", slog.String("wallet_id", wallet.WalletID))
	return &wallet, nil
}

// UpdateWallet updates a wallet's name and color. The balance is not an
// input; it moves only through transactions.
func (s *walletService) UpdateWallet(ctx context.Context, walletID string, req dto.CreateWalletRequest, userID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	wallet.Name = req.Name
	wallet.Color = req.Color
	wallet.LastUpdatedAt = time.Now()
	wallet.LastUpdatedBy = userID

	if err := s.walletRepo.UpdateWallet(ctx, *wallet); err != nil {
		return nil, fmt.Errorf("updating wallet: %w", err)
	}
	return wallet, nil
}

// DeleteWallet removes a wallet and everything referencing it, in dependency
// order: contribution records, budget items, budgets, transactions, then the
// wallet row. Transfers linking this wallet to surviving wallets are reversed
// on the surviving side first, so other balances still equal the sum of their
// remaining live transactions.
func (s *walletService) DeleteWallet(ctx context.Context, walletID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return err
	}
	if wallet.UserID != userID {
		return apperrors.ErrNotFound
	}

	now := time.Now()

	tx, err := s.walletRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.walletRepo.Rollback(ctx, tx) }()

	touching, err := s.txnRepo.ListTransactionsTouchingWalletInTx(ctx, tx, walletID)
	if err != nil {
		return fmt.Errorf("listing wallet transactions: %w", err)
	}

	// Net the surviving-side deltas of cross-wallet transfers, then apply
	// them in sorted order for a stable lock sequence.
	survivorDeltas := make(map[string]int64)
	for _, txn := range touching {
		for otherID, delta := range txn.InverseBalanceChanges() {
			if otherID != walletID {
				survivorDeltas[otherID] += delta
			}
		}
	}
	survivorIDs := make([]string, 0, len(survivorDeltas))
	for id := range survivorDeltas {
		survivorIDs = append(survivorIDs, id)
	}
	sort.Strings(survivorIDs)
	for _, survivorID := range survivorIDs {
		if survivorDeltas[survivorID] == 0 {
			continue
		}
		if err := s.walletRepo.AdjustWalletBalanceInTx(ctx, tx, survivorID, survivorDeltas[survivorID], userID, now); err != nil {
			return fmt.Errorf("reversing transfer on wallet %s: %w", survivorID, err)
		}
	}

	if err := s.budgetRepo.DeleteBudgetsByWalletInTx(ctx, tx, walletID); err != nil {
		return fmt.Errorf("deleting wallet budgets: %w", err)
	}
	if err := s.txnRepo.DeleteTransactionsByWalletInTx(ctx, tx, walletID); err != nil {
		return fmt.Errorf("deleting wallet transactions: %w", err)
	}
	if err := s.walletRepo.DeleteWalletInTx(ctx, tx, walletID); err != nil {
		return fmt.Errorf("deleting wallet: %w", err)
	}

	if err := s.walletRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Wallet deleted",
		slog.String("wallet_id", walletID),
		slog.Int("transactions_removed", len(touching)),
	)
	return nil
}

// GetWallet retrieves a wallet by ID.
func (s *walletService) GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error) {
	return s.walletRepo.FindWalletByID(ctx, walletID)
}

// ListWallets retrieves the user's wallets, optionally filtered by name.
func (s *walletService) ListWallets(ctx context.Context, userID string, params dto.ListParams) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWallets(ctx, userID, params.Query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}
	return wallets, nil
}
