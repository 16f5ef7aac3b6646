package services

import (
	"context"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
)

// BudgetSvcFacade manages budgets, their items, and the batch recomputation
// of item actuals.
type BudgetSvcFacade interface {
	// CreateBudget creates a budget with its items after overlap validation,
	// backfilling actuals for expenses already inside the period.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)

	// UpdateBudget updates a budget's header fields.
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error)

	// DeleteBudget removes a budget, its items and their pivots.
	DeleteBudget(ctx context.Context, budgetID string, userID string) error

	// GetBudget retrieves a budget with derived spent/usage totals.
	GetBudget(ctx context.Context, budgetID string, userID string) (*dto.BudgetResponse, error)

	// ListBudgets lists the user's budgets with derived totals.
	ListBudgets(ctx context.Context, userID string, params dto.ListBudgetsParams) ([]dto.BudgetResponse, error)

	// CreateBudgetItem adds one category to a budget after overlap and
	// duplicate checks, backfilling its actual.
	CreateBudgetItem(ctx context.Context, req dto.CreateBudgetItemRequest, userID string) (*domain.BudgetItem, error)

	// UpdateBudgetItem updates an item's planned amount and/or category. A
	// category change rebuilds the item's contributions from scratch.
	UpdateBudgetItem(ctx context.Context, budgetItemID string, req dto.UpdateBudgetItemRequest, userID string) (*domain.BudgetItem, error)

	// RemoveBudgetItem deletes an item and its pivots.
	RemoveBudgetItem(ctx context.Context, budgetItemID string, userID string) error

	BudgetRecomputeSvc
}

// BudgetRecomputeSvc is the batch repair/backfill utility. All entry points
// are idempotent and must agree with the incrementally maintained actuals.
type BudgetRecomputeSvc interface {
	// RecomputeBudget rebuilds every item of the budget: actual is set to the
	// sum of live in-scope expenses and the item's pivots are reinserted to
	// match.
	RecomputeBudget(ctx context.Context, budgetID string) error

	// RecomputeDate rebuilds every item of every budget whose range contains
	// date, loading the union of their expense windows once.
	RecomputeDate(ctx context.Context, date time.Time) error

	// RecomputeTransactionDelta applies a coarse signed delta to the items
	// matching the wallet/category/date scope. No-op for non-expense kinds.
	// Kept as an offline tool; the request path uses pivot tracking.
	RecomputeTransactionDelta(ctx context.Context, categoryID, walletID string, amount int64, date time.Time, kind domain.TransactionKind) error
}
