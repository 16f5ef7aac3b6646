package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/apperrors"
	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku-app/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/dompetku-app/dompetku_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// recomputeActor marks maintenance writes that are not attributable to a
// request user.
const recomputeActor = "system"

// budgetService manages budgets and their per-category items. Item actuals
// are owned by the reconciliation engine at request time; this service only
// writes them during backfill and batch recomputation, always together with
// the pivot records so the two stay in lockstep.
type budgetService struct {
	budgetRepo portsrepo.BudgetRepositoryWithTx
	txnRepo    portsrepo.TransactionRepositoryFacade
	walletRepo portsrepo.WalletReader
}

// NewBudgetService creates a new budget service instance.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryWithTx,
	txnRepo portsrepo.TransactionRepositoryFacade,
	walletRepo portsrepo.WalletReader,
) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo: budgetRepo,
		txnRepo:    txnRepo,
		walletRepo: walletRepo,
	}
}

// checkOverlap rejects the (wallet, categories, range) combination when any
// other budget in the wallet already tracks one of the categories over an
// intersecting range. Ranges touch-at-endpoint count as overlapping since
// both bounds are inclusive.
func (s *budgetService) checkOverlap(ctx context.Context, tx pgx.Tx, walletID string, categoryIDs []string, start, end time.Time, excludeBudgetID *string) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	conflicts, err := s.budgetRepo.FindOverlappingBudgetsInTx(ctx, tx, walletID, categoryIDs, start, end, excludeBudgetID)
	if err != nil {
		return fmt.Errorf("checking budget overlap: %w", err)
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("%w: budget %q already tracks one of these categories in an overlapping period",
			apperrors.ErrConflict, conflicts[0].Name)
	}
	return nil
}

// rebuildItemInTx recomputes one item from source data: its pivots are
// replaced with one row per live in-scope expense and its actual is set to
// their sum. Used for backfill at item creation and by every batch recompute,
// so repaired items keep reversing correctly through their pivots afterward.
func (s *budgetService) rebuildItemInTx(ctx context.Context, tx pgx.Tx, budget domain.Budget, item *domain.BudgetItem, userID string, now time.Time) error {
	expenses, err := s.txnRepo.ListExpensesInScopeInTx(ctx, tx, budget.WalletID, item.CategoryID, budget.StartAt, budget.EndAt)
	if err != nil {
		return fmt.Errorf("listing in-scope expenses: %w", err)
	}

	if err := s.budgetRepo.DeletePivotsByItemInTx(ctx, tx, item.BudgetItemID); err != nil {
		return fmt.Errorf("clearing contribution records: %w", err)
	}

	var total int64
	for _, expense := range expenses {
		total += expense.Amount
		if err := s.budgetRepo.InsertPivotInTx(ctx, tx, domain.BudgetItemTransaction{
			BudgetItemID:  item.BudgetItemID,
			TransactionID: expense.TransactionID,
			CreatedAt:     now,
		}); err != nil {
			return fmt.Errorf("recording contribution: %w", err)
		}
	}

	if err := s.budgetRepo.SetItemActualInTx(ctx, tx, item.BudgetItemID, total, userID, now); err != nil {
		return fmt.Errorf("setting budget item actual: %w", err)
	}
	item.Actual = total
	return nil
}

// CreateBudget creates a budget with its initial items. The overlap check and
// the per-item backfill run in the same database transaction as the inserts,
// so a concurrent conflicting budget or a failed backfill leaves nothing
// behind.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EndAt.Before(req.StartAt) {
		return nil, fmt.Errorf("%w: budget end date precedes start date", apperrors.ErrValidation)
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, req.WalletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID: uuid.NewString(),
		UserID:   userID,
		WalletID: req.WalletID,
		Name:     req.Name,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
		Total:    req.Total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tx, err := s.budgetRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.budgetRepo.Rollback(ctx, tx) }()

	categoryIDs := make([]string, len(req.Categories))
	for i, c := range req.Categories {
		categoryIDs[i] = c.CategoryID
	}
	if err := s.checkOverlap(ctx, tx, req.WalletID, categoryIDs, req.StartAt, req.EndAt, nil); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.SaveBudgetInTx(ctx, tx, budget); err != nil {
		return nil, fmt.Errorf("saving budget: %w", err)
	}

	for _, input := range req.Categories {
		item := domain.BudgetItem{
			BudgetItemID: uuid.NewString(),
			BudgetID:     budget.BudgetID,
			CategoryID:   input.CategoryID,
			Planned:      input.Planned,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.budgetRepo.SaveBudgetItemInTx(ctx, tx, item); err != nil {
			return nil, fmt.Errorf("saving budget item: %w", err)
		}
		// Expenses recorded before the budget existed still count.
		if err := s.rebuildItemInTx(ctx, tx, budget, &item, userID, now); err != nil {
			return nil, err
		}
		budget.Items = append(budget.Items, item)
	}

	if err := s.budgetRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Budget created",
		slog.String("budget_id", budget.BudgetID),
		slog.Int("items", len(budget.Items)),
	)
	return &budget, nil
}

// UpdateBudget updates a budget's header fields. The date range is fixed at
// creation; changing it would silently invalidate every item's accumulated
// actuals.
func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.Total != nil {
		budget.Total = *req.Total
	}
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		return nil, fmt.Errorf("updating budget: %w", err)
	}
	return budget, nil
}

// DeleteBudget removes a budget with its items and contribution records.
// Wallet balances are untouched: budgets only observe transactions, they
// never move money.
func (s *budgetService) DeleteBudget(ctx context.Context, budgetID string, userID string) error {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return err
	}
	if budget.UserID != userID {
		return apperrors.ErrNotFound
	}

	tx, err := s.budgetRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.budgetRepo.Rollback(ctx, tx) }()

	if err := s.budgetRepo.DeleteBudgetCascadeInTx(ctx, tx, budgetID); err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if err := s.budgetRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

// GetBudget retrieves a budget with derived spent/remaining/usage totals.
func (s *budgetService) GetBudget(ctx context.Context, budgetID string, userID string) (*dto.BudgetResponse, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	resp := dto.ToBudgetResponse(budget)
	return &resp, nil
}

// ListBudgets lists the user's budgets, optionally narrowed to those whose
// range intersects the given month.
func (s *budgetService) ListBudgets(ctx context.Context, userID string, params dto.ListBudgetsParams) ([]dto.BudgetResponse, error) {
	var from, to *time.Time
	if params.Month != nil && params.Year != nil {
		start, end := monthRange(*params.Year, *params.Month)
		from, to = &start, &end
	}

	budgets, err := s.budgetRepo.ListBudgets(ctx, userID, from, to, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	responses := make([]dto.BudgetResponse, len(budgets))
	for i := range budgets {
		responses[i] = dto.ToBudgetResponse(&budgets[i])
	}
	return responses, nil
}

// CreateBudgetItem adds one category to an existing budget. The overlap check
// excludes the owning budget itself; a second item for the same category in
// the same budget is a duplicate, not an overlap.
func (s *budgetService) CreateBudgetItem(ctx context.Context, req dto.CreateBudgetItemRequest, userID string) (*domain.BudgetItem, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, req.BudgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now()

	tx, err := s.budgetRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.budgetRepo.Rollback(ctx, tx) }()

	if err := s.checkOverlap(ctx, tx, budget.WalletID, []string{req.CategoryID}, budget.StartAt, budget.EndAt, &budget.BudgetID); err != nil {
		return nil, err
	}
	taken, err := s.budgetRepo.HasItemForCategoryInTx(ctx, tx, budget.BudgetID, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("checking for duplicate category: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: budget already has an item for this category", apperrors.ErrDuplicate)
	}

	item := domain.BudgetItem{
		BudgetItemID: uuid.NewString(),
		BudgetID:     budget.BudgetID,
		CategoryID:   req.CategoryID,
		Planned:      req.Planned,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.budgetRepo.SaveBudgetItemInTx(ctx, tx, item); err != nil {
		return nil, fmt.Errorf("saving budget item: %w", err)
	}
	if err := s.rebuildItemInTx(ctx, tx, *budget, &item, userID, now); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &item, nil
}

// UpdateBudgetItem updates an item's planned amount and/or category. Changing
// the category re-runs overlap and duplicate validation, then rebuilds the
// item's contributions from scratch: the old category's expenses no longer
// belong here.
func (s *budgetService) UpdateBudgetItem(ctx context.Context, budgetItemID string, req dto.UpdateBudgetItemRequest, userID string) (*domain.BudgetItem, error) {
	item, err := s.budgetRepo.FindBudgetItemByID(ctx, budgetItemID)
	if err != nil {
		return nil, err
	}
	budget, err := s.budgetRepo.FindBudgetByID(ctx, item.BudgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now()

	tx, err := s.budgetRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.budgetRepo.Rollback(ctx, tx) }()

	categoryChanged := false
	if req.CategoryID != nil && *req.CategoryID != item.CategoryID {
		if err := s.checkOverlap(ctx, tx, budget.WalletID, []string{*req.CategoryID}, budget.StartAt, budget.EndAt, &budget.BudgetID); err != nil {
			return nil, err
		}
		taken, err := s.budgetRepo.HasItemForCategoryInTx(ctx, tx, budget.BudgetID, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("checking for duplicate category: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: budget already has an item for this category", apperrors.ErrDuplicate)
		}
		item.CategoryID = *req.CategoryID
		categoryChanged = true
	}
	if req.Planned != nil {
		item.Planned = *req.Planned
	}
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudgetItemInTx(ctx, tx, *item); err != nil {
		return nil, fmt.Errorf("updating budget item: %w", err)
	}
	if categoryChanged {
		if err := s.rebuildItemInTx(ctx, tx, *budget, item, userID, now); err != nil {
			return nil, err
		}
	}

	if err := s.budgetRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return item, nil
}

// RemoveBudgetItem deletes an item and its contribution records.
func (s *budgetService) RemoveBudgetItem(ctx context.Context, budgetItemID string, userID string) error {
	item, err := s.budgetRepo.FindBudgetItemByID(ctx, budgetItemID)
	if err != nil {
		return err
	}
	budget, err := s.budgetRepo.FindBudgetByID(ctx, item.BudgetID)
	if err != nil {
		return err
	}
	if budget.UserID != userID {
		return apperrors.ErrNotFound
	}

	tx, err := s.budgetRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.budgetRepo.Rollback(ctx, tx) }()

	if err := s.budgetRepo.DeletePivotsByItemInTx(ctx, tx, budgetItemID); err != nil {
		return fmt.Errorf("clearing contribution records: %w", err)
	}
	if err := s.budgetRepo.DeleteBudgetItemInTx(ctx, tx, budgetItemID); err != nil {
		return fmt.Errorf("deleting budget item: %w", err)
	}

	if err := s.budgetRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RecomputeBudget rebuilds every item of one budget from live expense data.
// Safe to run at any time; the result matches what incremental tracking
// should have produced.
func (s *budgetService) RecomputeBudget(ctx context.Context, budgetID string) error {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return err
	}

	now := time.Now()

	tx, err := s.budgetRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.budgetRepo.Rollback(ctx, tx) }()

	for i := range budget.Items {
		if err := s.rebuildItemInTx(ctx, tx, *budget, &budget.Items[i], recomputeActor, now); err != nil {
			return err
		}
	}

	if err := s.budgetRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Budget recomputed",
		slog.String("budget_id", budgetID),
		slog.Int("items", len(budget.Items)),
	)
	return nil
}

// RecomputeDate rebuilds every item of every budget whose range contains the
// date. The expenses for the union of all affected ranges are loaded once and
// partitioned in memory instead of querying per item.
func (s *budgetService) RecomputeDate(ctx context.Context, date time.Time) error {
	now := time.Now()

	tx, err := s.budgetRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.budgetRepo.Rollback(ctx, tx) }()

	budgets, err := s.budgetRepo.FindBudgetsContainingDateInTx(ctx, tx, date)
	if err != nil {
		return fmt.Errorf("finding budgets for date: %w", err)
	}
	if len(budgets) == 0 {
		return s.budgetRepo.Commit(ctx, tx)
	}

	unionStart, unionEnd := budgets[0].StartAt, budgets[0].EndAt
	for _, budget := range budgets[1:] {
		if budget.StartAt.Before(unionStart) {
			unionStart = budget.StartAt
		}
		if budget.EndAt.After(unionEnd) {
			unionEnd = budget.EndAt
		}
	}

	expenses, err := s.txnRepo.ListExpensesBetweenInTx(ctx, tx, unionStart, unionEnd)
	if err != nil {
		return fmt.Errorf("listing expenses for recompute: %w", err)
	}

	var items int
	for _, budget := range budgets {
		for i := range budget.Items {
			item := &budget.Items[i]
			if err := s.budgetRepo.DeletePivotsByItemInTx(ctx, tx, item.BudgetItemID); err != nil {
				return fmt.Errorf("clearing contribution records: %w", err)
			}
			var total int64
			for _, expense := range expenses {
				if expense.WalletID != budget.WalletID || expense.CategoryID != item.CategoryID {
					continue
				}
				if !budget.ContainsDate(expense.Date) {
					continue
				}
				total += expense.Amount
				if err := s.budgetRepo.InsertPivotInTx(ctx, tx, domain.BudgetItemTransaction{
					BudgetItemID:  item.BudgetItemID,
					TransactionID: expense.TransactionID,
					CreatedAt:     now,
				}); err != nil {
					return fmt.Errorf("recording contribution: %w", err)
				}
			}
			if err := s.budgetRepo.SetItemActualInTx(ctx, tx, item.BudgetItemID, total, recomputeActor, now); err != nil {
				return fmt.Errorf("setting budget item actual: %w", err)
			}
			items++
		}
	}

	if err := s.budgetRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Budgets recomputed for date",
		slog.Time("date", date),
		slog.Int("budgets", len(budgets)),
		slog.Int("items", items),
	)
	return nil
}

// RecomputeTransactionDelta adds a signed amount to every item matching the
// wallet/category/date scope, without touching pivots. A coarse offline
// repair tool only; the request path keeps actuals and pivots consistent via
// the contribution tracker.
func (s *budgetService) RecomputeTransactionDelta(ctx context.Context, categoryID, walletID string, amount int64, date time.Time, kind domain.TransactionKind) error {
	if kind != domain.KindExpense {
		return nil
	}

	now := time.Now()

	tx, err := s.budgetRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.budgetRepo.Rollback(ctx, tx) }()

	items, err := s.budgetRepo.FindMatchingItemsInTx(ctx, tx, walletID, categoryID, date)
	if err != nil {
		return fmt.Errorf("finding matching budget items: %w", err)
	}
	for _, item := range items {
		if err := s.budgetRepo.AddToItemActualInTx(ctx, tx, item.BudgetItemID, amount, recomputeActor, now); err != nil {
			return fmt.Errorf("adjusting budget item actual: %w", err)
		}
	}

	return s.budgetRepo.Commit(ctx, tx)
}
