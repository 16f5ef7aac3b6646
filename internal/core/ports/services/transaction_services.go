package services

import (
	"context"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
)

// TransactionSvcFacade is the reconciliation engine's service boundary. Every
// mutation keeps wallet balances, budget actuals and contribution pivots
// consistent inside one atomic database transaction.
type TransactionSvcFacade interface {
	// CreateTransaction validates the input, adjusts wallet balances, persists
	// the row and applies budget contributions, all-or-nothing.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction replaces a live transaction's fields, reversing the
	// old row's balance and contribution effects before applying the new ones.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction reverses the transaction's effects and soft-deletes
	// the row. Deleting an already-deleted transaction fails with ErrNotFound.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error

	// GetTransaction retrieves a live transaction.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns the user's live transactions grouped by day,
	// newest first, optionally narrowed to a month.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]dto.DailyTransactionGroup, error)

	// MonthlySummary totals a month's income and expense. Transfers are
	// excluded: the money stays with the user.
	MonthlySummary(ctx context.Context, userID string, month int, year int) (*dto.MonthlySummaryResponse, error)

	// ChartByRange returns per-day income/expense totals for a 1w/2w/1m
	// window around date.
	ChartByRange(ctx context.Context, userID string, date time.Time, chartRange string) ([]dto.ChartPoint, error)

	// CategoryOverview totals one month's transactions of the given kind per
	// category.
	CategoryOverview(ctx context.Context, userID string, date time.Time, kind domain.TransactionKind) ([]dto.CategoryOverviewEntry, error)
}
