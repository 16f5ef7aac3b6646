package services

import (
	"context"
	"errors"
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
	"github.com/jackc/pgx/v5"
)

// transactionService keeps the three money surfaces consistent: wallet
// balances, budget item actuals and the contribution records binding the two.
// Every mutation runs its adjustments and the row write inside one database
// transaction, so a failure at any step leaves all three surfaces untouched.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryWithTx
	walletRepo   portsrepo.WalletRepositoryFacade
	categoryRepo portsrepo.CategoryRepository
	tracker      *contributionTracker
}

// NewTransactionService creates a new transaction service instance.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryWithTx,
	walletRepo portsrepo.WalletRepositoryFacade,
	budgetRepo portsrepo.BudgetRepositoryFacade,
	categoryRepo portsrepo.CategoryRepository,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		walletRepo:   walletRepo,
		categoryRepo: categoryRepo,
		tracker:      newContributionTracker(budgetRepo),
	}
}

// validateRequest enforces the kind/shape rules before any state is touched.
func (s *transactionService) validateRequest(req dto.CreateTransactionRequest) error {
	if !req.Kind.Valid() {
		return fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.Kind == domain.KindTransfer {
		if req.ToWalletID == nil || *req.ToWalletID == "" {
			return fmt.Errorf("%w: transfer requires a destination wallet", apperrors.ErrValidation)
		}
		if *req.ToWalletID == req.WalletID {
			return fmt.Errorf("%w: transfer source and destination must differ", apperrors.ErrValidation)
		}
	} else if req.ToWalletID != nil {
		return fmt.Errorf("%w: destination wallet is only valid for transfers", apperrors.ErrValidation)
	}
	return nil
}

// adjustBalances applies a set of per-wallet deltas inside the transaction.
// Wallets are visited in sorted ID order so concurrent reconciliations lock
// rows in the same sequence and cannot deadlock each other.
func (s *transactionService) adjustBalances(ctx context.Context, tx pgx.Tx, changes map[string]int64, userID string, now time.Time) error {
	walletIDs := make([]string, 0, len(changes))
	for walletID := range changes {
		walletIDs = append(walletIDs, walletID)
	}
	sort.Strings(walletIDs)

	for _, walletID := range walletIDs {
		delta := changes[walletID]
		if delta == 0 {
			continue
		}
		if err := s.walletRepo.AdjustWalletBalanceInTx(ctx, tx, walletID, delta, userID, now); err != nil {
			return fmt.Errorf("adjusting wallet %s balance: %w", walletID, err)
		}
	}
	return nil
}

// CreateTransaction validates the input, adjusts the affected wallet
// balances, persists the row and applies budget contributions, all inside
// one database transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		WalletID:      req.WalletID,
		ToWalletID:    req.ToWalletID,
		CategoryID:    req.CategoryID,
		Kind:          req.Kind,
		Amount:        req.Amount,
		Date:          req.Date,
		Remark:        req.Remark,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, tx) }()

	if err := s.adjustBalances(ctx, tx, txn.BalanceChanges(), userID, now); err != nil {
		return nil, err
	}
	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("saving transaction: %w", err)
	}
	if err := s.tracker.Apply(ctx, tx, txn, userID, now); err != nil {
		return nil, err
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.Int64("amount", txn.Amount),
	)
	return &txn, nil
}

// UpdateTransaction replaces a live transaction's fields. The stored row's
// effects are fully reversed first (balances via the inverse deltas,
// contributions via the pivot records), then the new values are applied as if
// freshly created. The row is locked for the duration so concurrent updates
// to the same transaction serialize.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, tx) }()

	existing, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	// Undo the stored row before touching anything with the new values.
	if err := s.adjustBalances(ctx, tx, existing.InverseBalanceChanges(), userID, now); err != nil {
		return nil, err
	}
	if err := s.tracker.Reverse(ctx, tx, *existing, userID, now); err != nil {
		return nil, err
	}

	updated := *existing
	updated.WalletID = req.WalletID
	updated.ToWalletID = req.ToWalletID
	updated.CategoryID = req.CategoryID
	updated.Kind = req.Kind
	updated.Amount = req.Amount
	updated.Date = req.Date
	updated.Remark = req.Remark
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.adjustBalances(ctx, tx, updated.BalanceChanges(), userID, now); err != nil {
		return nil, err
	}
	if err := s.txnRepo.UpdateTransactionInTx(ctx, tx, updated); err != nil {
		return nil, fmt.Errorf("updating transaction: %w", err)
	}
	if err := s.tracker.Apply(ctx, tx, updated, userID, now); err != nil {
		return nil, err
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTransaction reverses the transaction's balance and contribution
// effects, then soft-deletes the row. The locked read only sees live rows, so
// deleting an already-deleted transaction fails with ErrNotFound instead of
// reversing twice.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, tx) }()

	existing, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return apperrors.ErrNotFound
	}

	if err := s.adjustBalances(ctx, tx, existing.InverseBalanceChanges(), userID, now); err != nil {
		return err
	}
	if err := s.tracker.Reverse(ctx, tx, *existing, userID, now); err != nil {
		return err
	}
	if err := s.txnRepo.SoftDeleteTransactionInTx(ctx, tx, transactionID, userID, now); err != nil {
		return fmt.Errorf("soft-deleting transaction: %w", err)
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// GetTransaction retrieves a live transaction by ID.
func (s *transactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// monthRange returns the inclusive bounds of a month given its 0-based index.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// ListTransactions returns the user's live transactions grouped per calendar
// day, newest day first. Each group carries the day's net total: income adds,
// expense subtracts, transfers are listed but excluded from the total since
// the money stays with the user.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]dto.DailyTransactionGroup, error) {
	var from, to *time.Time
	if params.Month != nil && params.Year != nil {
		start, end := monthRange(*params.Year, *params.Month)
		from, to = &start, &end
	}

	txns, err := s.txnRepo.ListTransactions(ctx, userID, from, to, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	groups := make([]dto.DailyTransactionGroup, 0)
	index := make(map[string]int)
	for i := range txns {
		txn := &txns[i]
		day := txn.Date.Format("2006-01-02")
		gi, ok := index[day]
		if !ok {
			gi = len(groups)
			index[day] = gi
			groups = append(groups, dto.DailyTransactionGroup{Date: day})
		}
		switch txn.Kind {
		case domain.KindIncome:
			groups[gi].Total += txn.Amount
		case domain.KindExpense:
			groups[gi].Total -= txn.Amount
		}
		groups[gi].Transactions = append(groups[gi].Transactions, dto.ToTransactionResponse(txn))
	}
	return groups, nil
}

// MonthlySummary totals one month's income and expense for the user.
func (s *transactionService) MonthlySummary(ctx context.Context, userID string, month int, year int) (*dto.MonthlySummaryResponse, error) {
	if month < 0 || month > 11 {
		return nil, fmt.Errorf("%w: month must be between 0 and 11", apperrors.ErrValidation)
	}

	from, to := monthRange(year, month)
	txns, err := s.txnRepo.ListTransactionsBetween(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for summary: %w", err)
	}

	summary := &dto.MonthlySummaryResponse{}
	for _, txn := range txns {
		switch txn.Kind {
		case domain.KindIncome:
			summary.Income += txn.Amount
		case domain.KindExpense:
			summary.Expense += txn.Amount
		}
	}
	summary.Balance = summary.Income - summary.Expense
	return summary, nil
}

// startOfWeek returns the Monday 00:00 UTC of the week containing t.
func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7 // Monday-based
	return t.AddDate(0, 0, -offset)
}

// ChartByRange returns per-day income and expense totals over the window the
// range key selects: "1w" is the week containing date, "2w" the two weeks
// ending with it, "1m" the whole month. Days without activity appear with
// zero totals so charts render a continuous axis.
func (s *transactionService) ChartByRange(ctx context.Context, userID string, date time.Time, chartRange string) ([]dto.ChartPoint, error) {
	var from, to time.Time
	switch chartRange {
	case "1w":
		from = startOfWeek(date)
		to = from.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case "2w":
		from = startOfWeek(date).AddDate(0, 0, -7)
		to = from.AddDate(0, 0, 14).Add(-time.Nanosecond)
	case "1m":
		from, to = monthRange(date.Year(), int(date.Month())-1)
	default:
		return nil, fmt.Errorf("%w: unknown chart range %q", apperrors.ErrValidation, chartRange)
	}

	txns, err := s.txnRepo.ListTransactionsBetween(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for chart: %w", err)
	}

	points := make([]dto.ChartPoint, 0)
	index := make(map[string]int)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		index[key] = len(points)
		points = append(points, dto.ChartPoint{Date: key})
	}
	for _, txn := range txns {
		pi, ok := index[txn.Date.Format("2006-01-02")]
		if !ok {
			continue
		}
		switch txn.Kind {
		case domain.KindIncome:
			points[pi].Income += txn.Amount
		case domain.KindExpense:
			points[pi].Expense += txn.Amount
		}
	}
	return points, nil
}

// CategoryOverview totals one month's transactions of the given kind per
// category, largest total first. Transfers carry no category semantics and
// are rejected.
func (s *transactionService) CategoryOverview(ctx context.Context, userID string, date time.Time, kind domain.TransactionKind) ([]dto.CategoryOverviewEntry, error) {
	if kind != domain.KindIncome && kind != domain.KindExpense {
		return nil, fmt.Errorf("%w: overview kind must be income or expense", apperrors.ErrValidation)
	}

	from, to := monthRange(date.Year(), int(date.Month())-1)
	txns, err := s.txnRepo.ListTransactionsBetween(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for overview: %w", err)
	}

	totals := make(map[string]int64)
	for _, txn := range txns {
		if txn.Kind != kind {
			continue
		}
		totals[txn.CategoryID] += txn.Amount
	}

	entries := make([]dto.CategoryOverviewEntry, 0, len(totals))
	for categoryID, total := range totals {
		entry := dto.CategoryOverviewEntry{CategoryID: categoryID, Total: total}
		category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
		switch {
		case err == nil:
			entry.Name = category.Name
			entry.Color = category.Color
			entry.ImageURL = category.ImageURL
			entry.ImageVariant = category.ImageVariant
		case errors.Is(err, apperrors.ErrNotFound):
			entry.Name = "Uncategorized"
		default:
			return nil, fmt.Errorf("loading category %s: %w", categoryID, err)
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].CategoryID < entries[j].CategoryID
	})
	return entries, nil
}
