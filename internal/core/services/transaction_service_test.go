package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/apperrors"
	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/dompetku-app/dompetku_backend/internal/core/services"
	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testUserID   = "user-1"
	testWalletID = "wallet-a"
	testDestID   = "wallet-b"
	testCatID    = "cat-food"
)

func newTestTransactionService() (portssvc.TransactionSvcFacade, *MockTransactionRepository, *MockWalletRepository, *MockBudgetRepository, *MockCategoryRepository) {
	txnRepo := new(MockTransactionRepository)
	walletRepo := new(MockWalletRepository)
	budgetRepo := new(MockBudgetRepository)
	categoryRepo := new(MockCategoryRepository)
	svc := services.NewTransactionService(txnRepo, walletRepo, budgetRepo, categoryRepo)
	return svc, txnRepo, walletRepo, budgetRepo, categoryRepo
}

func expenseRequest(amount int64) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Amount:     amount,
		WalletID:   testWalletID,
		CategoryID: testCatID,
		Kind:       domain.KindExpense,
		Date:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateTransaction_ExpenseAdjustsBalanceAndContributes(t *testing.T) {
	svc, txnRepo, walletRepo, budgetRepo, _ := newTestTransactionService()
	ctx := context.Background()

	item := domain.BudgetItem{BudgetItemID: "item-1", BudgetID: "budget-1", CategoryID: testCatID}

	txnRepo.On("Begin", ctx).Return(nil, nil)
	walletRepo.On("AdjustWalletBalanceInTx", ctx, mock.Anything, testWalletID, int64(-5000), testUserID, mock.Anything).Return(nil)
	txnRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything).Return(nil)
	budgetRepo.On("FindMatchingItemsInTx", ctx, mock.Anything, testWalletID, testCatID, mock.Anything).Return([]domain.BudgetItem{item}, nil)
	budgetRepo.On("PivotExistsInTx", ctx, mock.Anything, "item-1", mock.Anything).Return(false, nil)
	budgetRepo.On("AddToItemActualInTx", ctx, mock.Anything, "item-1", int64(5000), testUserID, mock.Anything).Return(nil)
	budgetRepo.On("InsertPivotInTx", ctx, mock.Anything, mock.Anything).Return(nil)
	txnRepo.On("Commit", ctx, mock.Anything).Return(nil)
	txnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	txn, err := svc.CreateTransaction(ctx, expenseRequest(5000), testUserID)

	require.NoError(t, err)
	assert.Equal(t, domain.KindExpense, txn.Kind)
	assert.Equal(t, int64(5000), txn.Amount)
	assert.NotEmpty(t, txn.TransactionID)
	txnRepo.AssertExpectations(t)
	walletRepo.AssertExpectations(t)
	budgetRepo.AssertExpectations(t)
}

func TestCreateTransaction_ExistingContributionIsNotDoubleCounted(t *testing.T) {
	svc, txnRepo, walletRepo, budgetRepo, _ := newTestTransactionService()
	ctx := context.Background()

	item := domain.BudgetItem{BudgetItemID: "item-1", CategoryID: testCatID}

	txnRepo.On("Begin", ctx).Return(nil, nil)
	walletRepo.On("AdjustWalletBalanceInTx", ctx, mock.Anything, testWalletID, int64(-1000), testUserID, mock.Anything).Return(nil)
	txnRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything).Return(nil)
	budgetRepo.On("FindMatchingItemsInTx", ctx, mock.Anything, testWalletID, testCatID, mock.Anything).Return([]domain.BudgetItem{item}, nil)
	budgetRepo.On("PivotExistsInTx", ctx, mock.Anything, "item-1", mock.Anything).Return(true, nil)
	txnRepo.On("Commit", ctx, mock.Anything).Return(nil)
	txnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := svc.CreateTransaction(ctx, expenseRequest(1000), testUserID)

	require.NoError(t, err)
	budgetRepo.AssertNotCalled(t, "AddToItemActualInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	budgetRepo.AssertNotCalled(t, "InsertPivotInTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTransaction_TransferMovesBothBalances(t *testing.T) {
	svc, txnRepo, walletRepo, budgetRepo, _ := newTestTransactionService()
	ctx := context.Background()

	dest := testDestID
	req := dto.CreateTransactionRequest{
		Amount:     2500,
		WalletID:   testWalletID,
		ToWalletID: &dest,
		CategoryID: testCatID,
		Kind:       domain.KindTransfer,
		Date:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	txnRepo.On("Begin", ctx).Return(nil, nil)
	walletRepo.On("AdjustWalletBalanceInTx", ctx, mock.Anything, testWalletID, int64(-2500), testUserID, mock.Anything).Return(nil)
	walletRepo.On("AdjustWalletBalanceInTx", ctx, mock.Anything, testDestID, int64(2500), testUserID, mock.Anything).Return(nil)
	txnRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything).Return(nil)
	txnRepo.On("Commit", ctx, mock.Anything).Return(nil)
	txnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	txn, err := svc.CreateTransaction(ctx, req, testUserID)

	require.NoError(t, err)
	assert.Equal(t, domain.KindTransfer, txn.Kind)
	walletRepo.AssertExpectations(t)
	// Transfers never contribute to budgets.
	budgetRepo.AssertNotCalled(t, "FindMatchingItemsInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTransaction_TransferRequiresDestination(t *testing.T) {
	svc, txnRepo, _, _, _ := newTestTransactionService()

	req := expenseRequest(100)
	req.Kind = domain.KindTransfer
	req.ToWalletID = nil

	_, err := svc.CreateTransaction(context.Background(), req, testUserID)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	txnRepo.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestCreateTransaction_TransferToSameWalletRejected(t *testing.T) {
	svc, _, _, _, _ := newTestTransactionService()

	same := testWalletID
	req := expenseRequest(100)
	req.Kind = domain.KindTransfer
	req.ToWalletID = &same

	_, err := svc.CreateTransaction(context.Background(), req, testUserID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateTransaction_BalanceFailureAbortsEverything(t *testing.T) {
	svc, txnRepo, walletRepo, _, _ := newTestTransactionService()
	ctx := context.Background()

	txnRepo.On("Begin", ctx).Return(nil, nil)
	walletRepo.On("AdjustWalletBalanceInTx", ctx, mock.Anything, testWalletID, int64(-5000), testUserID, mock.Anything).Return(apperrors.ErrNotFound)
	txnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := svc.CreateTransaction(ctx, expenseRequest(5000), testUserID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	txnRepo.AssertNotCalled(t, "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	txnRepo.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestUpdateTransaction_AmountChangeReversesThenReapplies(t *testing.T) {
	svc, txnRepo, walletRepo, budgetRepo, _ := newTestTransactionService()
	ctx := context.Background()

	existing := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        testUserID,
		WalletID:      testWalletID,
		CategoryID:    testCatID,
		Kind:          domain.KindExpense,
		Amount:        5000,
		Date:          time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	pivot := domain.BudgetItemTransaction{BudgetItemID: "item-1", TransactionID: existing.TransactionID}
	item := domain.BudgetItem{BudgetItemID: "item-1", CategoryID: testCatID}

	txnRepo.On("Begin", ctx).Return(nil, nil)
	txnRepo.On("FindTransactionByIDForUpdate", ctx, mock.Anything, existing.TransactionID).Return(existing, nil)
	// Reversal of the stored row.
	walletRepo.On("AdjustWalletBalanceInTx", ctx, mock.Anything, testWalletID, int64(5000), testUserID, mock.Anything).Return(nil)
	budgetRepo.On("FindPivotsByTransactionInTx", ctx, mock.Anything, existing.TransactionID).Return([]domain.BudgetItemTransaction{pivot}, nil)
	budgetRepo.On("AddToItemActualInTx", ctx, mock.Anything, "item-1", int64(-5000), testUserID, mock.Anything).Return(nil)
	budgetRepo.On("DeletePivotInTx", ctx, mock.Anything, "item-1", existing.TransactionID).Return(nil)
	// Application of the new values.
	walletRepo.On("AdjustWalletBalanceInTx", ctx, mock.Anything, testWalletID, int64(-3000), testUserID, mock.Anything).Return(nil)
	txnRepo.On("UpdateTransactionInTx", ctx, mock.Anything, mock.Anything).Return(nil)
	budgetRepo.On("FindMatchingItemsInTx", ctx, mock.Anything, testWalletID, testCatID, mock.Anything).Return([]domain.BudgetItem{item}, nil)
	budgetRepo.On("PivotExistsInTx", ctx, mock.Anything, "item-1", existing.TransactionID).Return(false, nil)
	budgetRepo.On("AddToItemActualInTx", ctx, mock.Anything, "item-1", int64(3000), testUserID, mock.Anything).Return(nil)
	budgetRepo.On("InsertPivotInTx", ctx, mock.Anything, mock.Anything).Return(nil)
	txnRepo.On("Commit", ctx, mock.Anything).Return(nil)
	txnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	updated, err := svc.UpdateTransaction(ctx, existing.TransactionID, expenseRequest(3000), testUserID)

	require.NoError(t, err)
	assert.Equal(t, int64(3000), updated.Amount)
	assert.Equal(t, existing.TransactionID, updated.TransactionID)
	walletRepo.AssertExpectations(t)
	budgetRepo.AssertExpectations(t)
}

func TestUpdateTransaction_DateMovedOutOfBudgetRange(t *testing.T) {
	svc, txnRepo, walletRepo, budgetRepo, _ := newTestTransactionService()
	ctx := context.Background()

	existing := &domain.Transaction{
		TransactionID: "txn-1",
		UserID:        testUserID,
		WalletID:      testWalletID,
		CategoryID:    testCatID,
		Kind:          domain.KindExpense,
		Amount:        2000,
		Date:          time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	pivot := domain.BudgetItemTransaction{BudgetItemID: "item-1", TransactionID: "txn-1"}

	req := expenseRequest(2000)
	req.Date = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) // outside any budget

	txnRepo.On("Begin", ctx).Return(nil, nil)
	txnRepo.On("FindTransactionByIDForUpdate", ctx, mock.Anything, "txn-1").Return(existing, nil)
	walletRepo.On("AdjustWalletBalanceInTx", ctx, mock.Anything, testWalletID, int64(2000), testUserID, mock.Anything).Return(nil)
	budgetRepo.On("FindPivotsByTransactionInTx", ctx, mock.Anything, "txn-1").Return([]domain.BudgetItemTransaction{pivot}, nil)
	budgetRepo.On("AddToItemActualInTx", ctx, mock.Anything, "item-1", int64(-2000), testUserID, mock.Anything).Return(nil)
	budgetRepo.On("DeletePivotInTx", ctx, mock.Anything, "item-1", "txn-1").Return(nil)
	walletRepo.On("AdjustWalletBalanceInTx", ctx, mock.Anything, testWalletID, int64(-2000), testUserID, mock.Anything).Return(nil)
	txnRepo.On("UpdateTransactionInTx", ctx, mock.Anything, mock.Anything).Return(nil)
	budgetRepo.On("FindMatchingItemsInTx", ctx, mock.Anything, testWalletID, testCatID, req.Date).Return([]domain.BudgetItem{}, nil)
	txnRepo.On("Commit", ctx, mock.Anything).Return(nil)
	txnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := svc.UpdateTransaction(ctx, "txn-1", req, testUserID)

	require.NoError(t, err)
	// The old contribution is gone and no new one was recorded.
	budgetRepo.AssertCalled(t, "DeletePivotInTx", ctx, mock.Anything, "item-1", "txn-1")
	budgetRepo.AssertNotCalled(t, "InsertPivotInTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTransaction_OtherUsersTransactionHidden(t *testing.T) {
	svc, txnRepo, _, _, _ := newTestTransactionService()
	ctx := context.Background()

	existing := &domain.Transaction{TransactionID: "txn-1", UserID: "someone-else", Kind: domain.KindExpense, Amount: 100}

	txnRepo.On("Begin", ctx).Return(nil, nil)
	txnRepo.On("FindTransactionByIDForUpdate", ctx, mock.Anything, "txn-1").Return(existing, nil)
	txnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := svc.UpdateTransaction(ctx, "txn-1", expenseRequest(100), testUserID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	txnRepo.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestDeleteTransaction_RestoresBalanceAndContribution(t *testing.T) {
	svc, txnRepo, walletRepo, budgetRepo, _ := newTestTransactionService()
	ctx := context.Background()

	existing := &domain.Transaction{
		TransactionID: "txn-1",
		UserID:        testUserID,
		WalletID:      testWalletID,
		CategoryID:    testCatID,
		Kind:          domain.KindExpense,
		Amount:        4200,
	}
	pivot := domain.BudgetItemTransaction{BudgetItemID: "item-1", TransactionID: "txn-1"}

	txnRepo.On("Begin", ctx).Return(nil, nil)
	txnRepo.On("FindTransactionByIDForUpdate", ctx, mock.Anything, "txn-1").Return(existing, nil)
	walletRepo.On("AdjustWalletBalanceInTx", ctx, mock.Anything, testWalletID, int64(4200), testUserID, mock.Anything).Return(nil)
	budgetRepo.On("FindPivotsByTransactionInTx", ctx, mock.Anything, "txn-1").Return([]domain.BudgetItemTransaction{pivot}, nil)
	budgetRepo.On("AddToItemActualInTx", ctx, mock.Anything, "item-1", int64(-4200), testUserID, mock.Anything).Return(nil)
	budgetRepo.On("DeletePivotInTx", ctx, mock.Anything, "item-1", "txn-1").Return(nil)
	txnRepo.On("SoftDeleteTransactionInTx", ctx, mock.Anything, "txn-1", testUserID, mock.Anything).Return(nil)
	txnRepo.On("Commit", ctx, mock.Anything).Return(nil)
	txnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := svc.DeleteTransaction(ctx, "txn-1", testUserID)

	require.NoError(t, err)
	walletRepo.AssertExpectations(t)
	budgetRepo.AssertExpectations(t)
}

func TestDeleteTransaction_AlreadyDeletedFails(t *testing.T) {
	svc, txnRepo, walletRepo, _, _ := newTestTransactionService()
	ctx := context.Background()

	// The locked read only sees live rows, so a soft-deleted transaction is
	// indistinguishable from a missing one.
	txnRepo.On("Begin", ctx).Return(nil, nil)
	txnRepo.On("FindTransactionByIDForUpdate", ctx, mock.Anything, "txn-gone").Return(nil, apperrors.ErrNotFound)
	txnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := svc.DeleteTransaction(ctx, "txn-gone", testUserID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	walletRepo.AssertNotCalled(t, "AdjustWalletBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListTransactions_GroupsByDayAndExcludesTransfersFromTotals(t *testing.T) {
	svc, txnRepo, _, _, _ := newTestTransactionService()
	ctx := context.Background()

	dest := testDestID
	day1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		{TransactionID: "t1", Kind: domain.KindIncome, Amount: 10000, Date: day1},
		{TransactionID: "t2", Kind: domain.KindExpense, Amount: 3000, Date: day1},
		{TransactionID: "t3", Kind: domain.KindTransfer, Amount: 5000, Date: day1, ToWalletID: &dest},
		{TransactionID: "t4", Kind: domain.KindExpense, Amount: 700, Date: day2},
	}
	txnRepo.On("ListTransactions", ctx, testUserID, (*time.Time)(nil), (*time.Time)(nil), 20, 0).Return(txns, nil)

	groups, err := svc.ListTransactions(ctx, testUserID, dto.ListTransactionsParams{Limit: 20})

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "2026-03-02", groups[0].Date)
	assert.Equal(t, int64(7000), groups[0].Total) // 10000 - 3000, transfer ignored
	assert.Len(t, groups[0].Transactions, 3)      // transfer still listed
	assert.Equal(t, "2026-03-01", groups[1].Date)
	assert.Equal(t, int64(-700), groups[1].Total)
}

func TestMonthlySummary(t *testing.T) {
	svc, txnRepo, _, _, _ := newTestTransactionService()
	ctx := context.Background()

	txns := []domain.Transaction{
		{Kind: domain.KindIncome, Amount: 20000},
		{Kind: domain.KindExpense, Amount: 4500},
		{Kind: domain.KindExpense, Amount: 500},
		{Kind: domain.KindTransfer, Amount: 9999},
	}
	txnRepo.On("ListTransactionsBetween", ctx, testUserID, mock.Anything, mock.Anything).Return(txns, nil)

	summary, err := svc.MonthlySummary(ctx, testUserID, 2, 2026)

	require.NoError(t, err)
	assert.Equal(t, int64(20000), summary.Income)
	assert.Equal(t, int64(5000), summary.Expense)
	assert.Equal(t, int64(15000), summary.Balance)
}

func TestMonthlySummary_InvalidMonth(t *testing.T) {
	svc, _, _, _, _ := newTestTransactionService()
	_, err := svc.MonthlySummary(context.Background(), testUserID, 12, 2026)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestChartByRange_WeekStartsMonday(t *testing.T) {
	svc, txnRepo, _, _, _ := newTestTransactionService()
	ctx := context.Background()

	// 2026-03-18 is a Wednesday; its week starts Monday 2026-03-16.
	wednesday := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		{Kind: domain.KindExpense, Amount: 1500, Date: time.Date(2026, 3, 17, 8, 0, 0, 0, time.UTC)},
	}
	txnRepo.On("ListTransactionsBetween", ctx, testUserID, mock.Anything, mock.Anything).Return(txns, nil)

	points, err := svc.ChartByRange(ctx, testUserID, wednesday, "1w")

	require.NoError(t, err)
	require.Len(t, points, 7)
	assert.Equal(t, "2026-03-16", points[0].Date)
	assert.Equal(t, "2026-03-22", points[6].Date)
	assert.Equal(t, int64(1500), points[1].Expense)
}

func TestChartByRange_UnknownRange(t *testing.T) {
	svc, _, _, _, _ := newTestTransactionService()
	_, err := svc.ChartByRange(context.Background(), testUserID, time.Now(), "3m")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCategoryOverview_SortsByTotalDescending(t *testing.T) {
	svc, txnRepo, _, _, categoryRepo := newTestTransactionService()
	ctx := context.Background()

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		{Kind: domain.KindExpense, CategoryID: "cat-a", Amount: 100},
		{Kind: domain.KindExpense, CategoryID: "cat-b", Amount: 900},
		{Kind: domain.KindExpense, CategoryID: "cat-a", Amount: 200},
		{Kind: domain.KindIncome, CategoryID: "cat-c", Amount: 5000}, // wrong kind, skipped
	}
	txnRepo.On("ListTransactionsBetween", ctx, testUserID, mock.Anything, mock.Anything).Return(txns, nil)
	categoryRepo.On("FindCategoryByID", ctx, "cat-a").Return(&domain.Category{CategoryID: "cat-a", Name: "Food", Color: "#f00"}, nil)
	categoryRepo.On("FindCategoryByID", ctx, "cat-b").Return(&domain.Category{CategoryID: "cat-b", Name: "Rent", Color: "#0f0"}, nil)

	entries, err := svc.CategoryOverview(ctx, testUserID, date, domain.KindExpense)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Rent", entries[0].Name)
	assert.Equal(t, int64(900), entries[0].Total)
	assert.Equal(t, "Food", entries[1].Name)
	assert.Equal(t, int64(300), entries[1].Total)
}

func TestCategoryOverview_RejectsTransferKind(t *testing.T) {
	svc, _, _, _, _ := newTestTransactionService()
	_, err := svc.CategoryOverview(context.Background(), testUserID, time.Now(), domain.KindTransfer)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
