package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku-app/dompetku_backend/internal/core/ports/repositories"
	"github.com/dompetku-app/dompetku_backend/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// contributionTracker maintains the per-(budget item, transaction) pivot
// records and the item actuals they sum into. Both Apply and Reverse run
// inside the caller's database transaction so they commit or roll back
// together with the balance adjustment and the transaction row itself.
type contributionTracker struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
}

func newContributionTracker(budgetRepo portsrepo.BudgetRepositoryFacade) *contributionTracker {
	return &contributionTracker{budgetRepo: budgetRepo}
}

// Apply counts an expense transaction into every budget item whose wallet,
// category and date range match. A pivot row per touched item makes the
// operation idempotent: an item that already holds a pivot for this
// transaction is skipped, so re-applying never double-counts.
func (t *contributionTracker) Apply(ctx context.Context, tx pgx.Tx, txn domain.Transaction, userID string, now time.Time) error {
	if txn.Kind != domain.KindExpense {
		return nil
	}

	items, err := t.budgetRepo.FindMatchingItemsInTx(ctx, tx, txn.WalletID, txn.CategoryID, txn.Date)
	if err != nil {
		return fmt.Errorf("finding matching budget items: %w", err)
	}

	for _, item := range items {
		exists, err := t.budgetRepo.PivotExistsInTx(ctx, tx, item.BudgetItemID, txn.TransactionID)
		if err != nil {
			return fmt.Errorf("checking contribution record: %w", err)
		}
		if exists {
			continue
		}

		if err := t.budgetRepo.AddToItemActualInTx(ctx, tx, item.BudgetItemID, txn.Amount, userID, now); err != nil {
			return fmt.Errorf("incrementing budget item actual: %w", err)
		}
		if err := t.budgetRepo.InsertPivotInTx(ctx, tx, domain.BudgetItemTransaction{
			BudgetItemID:  item.BudgetItemID,
			TransactionID: txn.TransactionID,
			CreatedAt:     now,
		}); err != nil {
			return fmt.Errorf("recording contribution: %w", err)
		}
	}
	return nil
}

// Reverse removes the transaction's contributions by walking its pivot rows
// rather than re-running the scope match. The pivots record where the amount
// actually landed, so reversal stays correct even after the transaction's
// category, wallet or date has since changed, and a transaction that never
// contributed reverses as a no-op.
func (t *contributionTracker) Reverse(ctx context.Context, tx pgx.Tx, txn domain.Transaction, userID string, now time.Time) error {
	if txn.Kind != domain.KindExpense {
		return nil
	}

	pivots, err := t.budgetRepo.FindPivotsByTransactionInTx(ctx, tx, txn.TransactionID)
	if err != nil {
		return fmt.Errorf("finding contribution records: %w", err)
	}
	if len(pivots) == 0 {
		return nil
	}

	for _, pivot := range pivots {
		if err := t.budgetRepo.AddToItemActualInTx(ctx, tx, pivot.BudgetItemID, -txn.Amount, userID, now); err != nil {
			return fmt.Errorf("decrementing budget item actual: %w", err)
		}
		if err := t.budgetRepo.DeletePivotInTx(ctx, tx, pivot.BudgetItemID, txn.TransactionID); err != nil {
			return fmt.Errorf("removing contribution record: %w", err)
		}
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Reversed budget contributions",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int("pivots", len(pivots)),
	)
	return nil
}
