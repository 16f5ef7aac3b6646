package dto

import (
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
)

// CreateTransactionRequest is the input shape for creating a transaction.
// The same shape is used for full-replacement updates.
type CreateTransactionRequest struct {
	Amount     int64                  `json:"amount" binding:"required,gt=0"`
	WalletID   string                 `json:"walletId" binding:"required"`
	CategoryID string                 `json:"categoryId" binding:"required"`
	Kind       domain.TransactionKind `json:"kind" binding:"required,oneof=expense income transfer"`
	Date       time.Time              `json:"date" binding:"required"`
	ToWalletID *string                `json:"toWalletId"` // Required iff kind == transfer
	Remark     string                 `json:"remark"`
}

// TransactionResponse is the outward representation of a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionId"`
	WalletID      string                 `json:"walletId"`
	ToWalletID    *string                `json:"toWalletId,omitempty"`
	CategoryID    string                 `json:"categoryId"`
	Kind          domain.TransactionKind `json:"kind"`
	Amount        int64                  `json:"amount"`
	Date          time.Time              `json:"date"`
	Remark        string                 `json:"remark,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToTransactionResponse maps a domain transaction to its response shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		WalletID:      t.WalletID,
		ToWalletID:    t.ToWalletID,
		CategoryID:    t.CategoryID,
		Kind:          t.Kind,
		Amount:        t.Amount,
		Date:          t.Date,
		Remark:        t.Remark,
		CreatedAt:     t.CreatedAt,
	}
}

// ListTransactionsParams narrows a transaction listing.
type ListTransactionsParams struct {
	Month  *int `form:"month" binding:"omitempty,min=0,max=11"` // 0-based month index
	Year   *int `form:"year" binding:"omitempty,min=1970"`
	Limit  int  `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int  `form:"offset" binding:"omitempty,min=0"`
}

// DailyTransactionGroup is one day's transactions with the day's net total.
type DailyTransactionGroup struct {
	Date         string                `json:"date"`
	Total        int64                 `json:"total"`
	Transactions []TransactionResponse `json:"transactions"`
}

// MonthlySummaryResponse aggregates one month of activity.
type MonthlySummaryResponse struct {
	Balance int64 `json:"balance"`
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
}

// ChartPoint is one day's totals for the range chart.
type ChartPoint struct {
	Date    string `json:"date"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// CategoryOverviewEntry is a per-category total for one month.
type CategoryOverviewEntry struct {
	CategoryID   string `json:"categoryId"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	ImageURL     string `json:"imageUrl,omitempty"`
	ImageVariant string `json:"imageVariant,omitempty"`
	Total        int64  `json:"total"`
}
