package services_test

import (
	"context"
	"testing"

	"github.com/dompetku-app/dompetku_backend/internal/apperrors"
	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/dompetku-app/dompetku_backend/internal/core/services"
	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWalletService() (portssvc.WalletSvcFacade, *MockWalletRepository, *MockTransactionRepository, *MockBudgetRepository) {
	walletRepo := new(MockWalletRepository)
	txnRepo := new(MockTransactionRepository)
	budgetRepo := new(MockBudgetRepository)
	svc := services.NewWalletService(walletRepo, txnRepo, budgetRepo)
	return svc, walletRepo, txnRepo, budgetRepo
}

func TestCreateWallet_StartsWithZeroBalance(t *testing.T) {
	svc, walletRepo, _, _ := newTestWalletService()
	ctx := context.Background()

	walletRepo.On("SaveWallet", ctx, mock.MatchedBy(func(w domain.Wallet) bool {
		return w.Balance == 0 && w.UserID == testUserID && w.Name == "Cash"
	})).Return(nil)

	wallet, err := svc.CreateWallet(ctx, dto.CreateWalletRequest{Name: "Cash", Color: "#abc"}, testUserID)

	require.NoError(t, err)
	assert.Equal(t, int64(0), wallet.Balance)
	assert.NotEmpty(t, wallet.WalletID)
	walletRepo.AssertExpectations(t)
}

func TestUpdateWallet_OtherUsersWalletHidden(t *testing.T) {
	svc, walletRepo, _, _ := newTestWalletService()
	ctx := context.Background()

	walletRepo.On("FindWalletByID", ctx, "w-1").Return(&domain.Wallet{WalletID: "w-1", UserID: "someone-else"}, nil)

	_, err := svc.UpdateWallet(ctx, "w-1", dto.CreateWalletRequest{Name: "New"}, testUserID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	walletRepo.AssertNotCalled(t, "UpdateWallet", mock.Anything, mock.Anything)
}

func TestDeleteWallet_ReversesTransfersOnSurvivingWallets(t *testing.T) {
	svc, walletRepo, txnRepo, budgetRepo := newTestWalletService()
	ctx := context.Background()

	deleted := "wallet-gone"
	survivor := "wallet-stays"

	walletRepo.On("FindWalletByID", ctx, deleted).Return(&domain.Wallet{WalletID: deleted, UserID: testUserID}, nil)
	walletRepo.On("Begin", ctx).Return(nil, nil)

	// One transfer out of the surviving wallet into the deleted one, one
	// expense local to the deleted wallet.
	txnRepo.On("ListTransactionsTouchingWalletInTx", ctx, mock.Anything, deleted).Return([]domain.Transaction{
		{TransactionID: "t1", Kind: domain.KindTransfer, WalletID: survivor, ToWalletID: &deleted, Amount: 3000},
		{TransactionID: "t2", Kind: domain.KindExpense, WalletID: deleted, Amount: 500},
	}, nil)
	// The survivor's debit is undone; the deleted wallet's balance is not
	// touched since the row is about to go.
	walletRepo.On("AdjustWalletBalanceInTx", ctx, mock.Anything, survivor, int64(3000), testUserID, mock.Anything).Return(nil)
	budgetRepo.On("DeleteBudgetsByWalletInTx", ctx, mock.Anything, deleted).Return(nil)
	txnRepo.On("DeleteTransactionsByWalletInTx", ctx, mock.Anything, deleted).Return(nil)
	walletRepo.On("DeleteWalletInTx", ctx, mock.Anything, deleted).Return(nil)
	walletRepo.On("Commit", ctx, mock.Anything).Return(nil)
	walletRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := svc.DeleteWallet(ctx, deleted, testUserID)

	require.NoError(t, err)
	walletRepo.AssertExpectations(t)
	budgetRepo.AssertExpectations(t)
	txnRepo.AssertExpectations(t)
	walletRepo.AssertNotCalled(t, "AdjustWalletBalanceInTx", ctx, mock.Anything, deleted, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteWallet_BudgetCascadeFailureAborts(t *testing.T) {
	svc, walletRepo, txnRepo, budgetRepo := newTestWalletService()
	ctx := context.Background()

	walletRepo.On("FindWalletByID", ctx, "w-1").Return(&domain.Wallet{WalletID: "w-1", UserID: testUserID}, nil)
	walletRepo.On("Begin", ctx).Return(nil, nil)
	txnRepo.On("ListTransactionsTouchingWalletInTx", ctx, mock.Anything, "w-1").Return([]domain.Transaction{}, nil)
	budgetRepo.On("DeleteBudgetsByWalletInTx", ctx, mock.Anything, "w-1").Return(assert.AnError)
	walletRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := svc.DeleteWallet(ctx, "w-1", testUserID)

	require.Error(t, err)
	walletRepo.AssertNotCalled(t, "DeleteWalletInTx", mock.Anything, mock.Anything, mock.Anything)
	walletRepo.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}
