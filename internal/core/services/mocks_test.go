package services_test

import (
	"context"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// MockWalletRepository mocks the wallet repository facade.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockWalletRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockWalletRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	wallet, _ := args.Get(0).(*domain.Wallet)
	return wallet, args.Error(1)
}

func (m *MockWalletRepository) ListWallets(ctx context.Context, userID string, query string, limit, offset int) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID, query, limit, offset)
	wallets, _ := args.Get(0).([]domain.Wallet)
	return wallets, args.Error(1)
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	return m.Called(ctx, wallet).Error(0)
}

func (m *MockWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	return m.Called(ctx, wallet).Error(0)
}

func (m *MockWalletRepository) AdjustWalletBalanceInTx(ctx context.Context, tx pgx.Tx, walletID string, delta int64, userID string, now time.Time) error {
	return m.Called(ctx, tx, walletID, delta, userID, now).Error(0)
}

func (m *MockWalletRepository) DeleteWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) error {
	return m.Called(ctx, tx, walletID).Error(0)
}

// MockTransactionRepository mocks the transaction repository facade.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	txn, _ := args.Get(0).(*domain.Transaction)
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, from, to *time.Time, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, from, to, limit, offset)
	txns, _ := args.Get(0).([]domain.Transaction)
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, from, to)
	txns, _ := args.Get(0).([]domain.Transaction)
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	return m.Called(ctx, tx, txn).Error(0)
}

func (m *MockTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, transactionID)
	txn, _ := args.Get(0).(*domain.Transaction)
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	return m.Called(ctx, tx, txn).Error(0)
}

func (m *MockTransactionRepository) SoftDeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) error {
	return m.Called(ctx, tx, transactionID, userID, now).Error(0)
}

func (m *MockTransactionRepository) DeleteTransactionsByWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) error {
	return m.Called(ctx, tx, walletID).Error(0)
}

func (m *MockTransactionRepository) ListExpensesInScopeInTx(ctx context.Context, tx pgx.Tx, walletID, categoryID string, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, tx, walletID, categoryID, start, end)
	txns, _ := args.Get(0).([]domain.Transaction)
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) ListExpensesBetweenInTx(ctx context.Context, tx pgx.Tx, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, tx, start, end)
	txns, _ := args.Get(0).([]domain.Transaction)
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsTouchingWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, tx, walletID)
	txns, _ := args.Get(0).([]domain.Transaction)
	return txns, args.Error(1)
}

// MockBudgetRepository mocks the budget repository facade.
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockBudgetRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockBudgetRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	budget, _ := args.Get(0).(*domain.Budget)
	return budget, args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetItemByID(ctx context.Context, budgetItemID string) (*domain.BudgetItem, error) {
	args := m.Called(ctx, budgetItemID)
	item, _ := args.Get(0).(*domain.BudgetItem)
	return item, args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, userID string, from, to *time.Time, limit, offset int) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, from, to, limit, offset)
	budgets, _ := args.Get(0).([]domain.Budget)
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) SaveBudgetInTx(ctx context.Context, tx pgx.Tx, budget domain.Budget) error {
	return m.Called(ctx, tx, budget).Error(0)
}

func (m *MockBudgetRepository) SaveBudgetItemInTx(ctx context.Context, tx pgx.Tx, item domain.BudgetItem) error {
	return m.Called(ctx, tx, item).Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	return m.Called(ctx, budget).Error(0)
}

func (m *MockBudgetRepository) UpdateBudgetItemInTx(ctx context.Context, tx pgx.Tx, item domain.BudgetItem) error {
	return m.Called(ctx, tx, item).Error(0)
}

func (m *MockBudgetRepository) DeleteBudgetItemInTx(ctx context.Context, tx pgx.Tx, budgetItemID string) error {
	return m.Called(ctx, tx, budgetItemID).Error(0)
}

func (m *MockBudgetRepository) DeleteBudgetCascadeInTx(ctx context.Context, tx pgx.Tx, budgetID string) error {
	return m.Called(ctx, tx, budgetID).Error(0)
}

func (m *MockBudgetRepository) DeleteBudgetsByWalletInTx(ctx context.Context, tx pgx.Tx, walletID string) error {
	return m.Called(ctx, tx, walletID).Error(0)
}

func (m *MockBudgetRepository) FindOverlappingBudgetsInTx(ctx context.Context, tx pgx.Tx, walletID string, categoryIDs []string, start, end time.Time, excludeBudgetID *string) ([]domain.Budget, error) {
	args := m.Called(ctx, tx, walletID, categoryIDs, start, end, excludeBudgetID)
	budgets, _ := args.Get(0).([]domain.Budget)
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) FindMatchingItemsInTx(ctx context.Context, tx pgx.Tx, walletID, categoryID string, date time.Time) ([]domain.BudgetItem, error) {
	args := m.Called(ctx, tx, walletID, categoryID, date)
	items, _ := args.Get(0).([]domain.BudgetItem)
	return items, args.Error(1)
}

func (m *MockBudgetRepository) HasItemForCategoryInTx(ctx context.Context, tx pgx.Tx, budgetID, categoryID string) (bool, error) {
	args := m.Called(ctx, tx, budgetID, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetsContainingDateInTx(ctx context.Context, tx pgx.Tx, date time.Time) ([]domain.Budget, error) {
	args := m.Called(ctx, tx, date)
	budgets, _ := args.Get(0).([]domain.Budget)
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) PivotExistsInTx(ctx context.Context, tx pgx.Tx, budgetItemID, transactionID string) (bool, error) {
	args := m.Called(ctx, tx, budgetItemID, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBudgetRepository) InsertPivotInTx(ctx context.Context, tx pgx.Tx, pivot domain.BudgetItemTransaction) error {
	return m.Called(ctx, tx, pivot).Error(0)
}

func (m *MockBudgetRepository) DeletePivotInTx(ctx context.Context, tx pgx.Tx, budgetItemID, transactionID string) error {
	return m.Called(ctx, tx, budgetItemID, transactionID).Error(0)
}

func (m *MockBudgetRepository) DeletePivotsByItemInTx(ctx context.Context, tx pgx.Tx, budgetItemID string) error {
	return m.Called(ctx, tx, budgetItemID).Error(0)
}

func (m *MockBudgetRepository) FindPivotsByTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) ([]domain.BudgetItemTransaction, error) {
	args := m.Called(ctx, tx, transactionID)
	pivots, _ := args.Get(0).([]domain.BudgetItemTransaction)
	return pivots, args.Error(1)
}

func (m *MockBudgetRepository) AddToItemActualInTx(ctx context.Context, tx pgx.Tx, budgetItemID string, delta int64, userID string, now time.Time) error {
	return m.Called(ctx, tx, budgetItemID, delta, userID, now).Error(0)
}

func (m *MockBudgetRepository) SetItemActualInTx(ctx context.Context, tx pgx.Tx, budgetItemID string, actual int64, userID string, now time.Time) error {
	return m.Called(ctx, tx, budgetItemID, actual, userID, now).Error(0)
}

// MockCategoryRepository mocks the category repository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string, parentID *string, categoryType, query string, limit, offset int) ([]domain.Category, error) {
	args := m.Called(ctx, userID, parentID, categoryType, query, limit, offset)
	categories, _ := args.Get(0).([]domain.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

// MockGoalRepository mocks the goal repository.
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, goalID)
	goal, _ := args.Get(0).(*domain.Goal)
	return goal, args.Error(1)
}

func (m *MockGoalRepository) ListGoals(ctx context.Context, userID string, query string, limit, offset int) ([]domain.Goal, error) {
	args := m.Called(ctx, userID, query, limit, offset)
	goals, _ := args.Get(0).([]domain.Goal)
	return goals, args.Error(1)
}

func (m *MockGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	return m.Called(ctx, goalID).Error(0)
}

// MockUserRepository mocks the user repository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}
