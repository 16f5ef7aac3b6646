package dto

import (
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetCategoryInput pairs a category with its planned amount at budget creation.
type BudgetCategoryInput struct {
	CategoryID string `json:"categoryId" binding:"required"`
	Planned    int64  `json:"planned" binding:"gte=0"`
}

// CreateBudgetRequest is the input shape for creating a budget with its items.
type CreateBudgetRequest struct {
	Name       string                `json:"name" binding:"required"`
	WalletID   string                `json:"walletId" binding:"required"`
	Total      int64                 `json:"total" binding:"gte=0"`
	StartAt    time.Time             `json:"startAt" binding:"required"`
	EndAt      time.Time             `json:"endAt" binding:"required"`
	Categories []BudgetCategoryInput `json:"categories" binding:"omitempty,dive"`
}

// UpdateBudgetRequest updates a budget's header fields.
type UpdateBudgetRequest struct {
	Name  *string `json:"name"`
	Total *int64  `json:"total" binding:"omitempty,gte=0"`
}

// CreateBudgetItemRequest adds one category to an existing budget.
type CreateBudgetItemRequest struct {
	BudgetID   string `json:"budgetId" binding:"required"`
	CategoryID string `json:"categoryId" binding:"required"`
	Planned    int64  `json:"planned" binding:"gte=0"`
}

// UpdateBudgetItemRequest updates an item's planned amount and/or category.
type UpdateBudgetItemRequest struct {
	Planned    *int64  `json:"planned" binding:"omitempty,gte=0"`
	CategoryID *string `json:"categoryId"`
}

// ListBudgetsParams narrows a budget listing to those intersecting a month.
type ListBudgetsParams struct {
	Month  *int `form:"month" binding:"omitempty,min=0,max=11"` // 0-based month index
	Year   *int `form:"year" binding:"omitempty,min=1970"`
	Limit  int  `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int  `form:"offset" binding:"omitempty,min=0"`
}

// BudgetItemResponse is the outward representation of one budget item.
type BudgetItemResponse struct {
	BudgetItemID string `json:"budgetItemId"`
	CategoryID   string `json:"categoryId"`
	Planned      int64  `json:"planned"`
	Actual       int64  `json:"actual"`
	Progress     int    `json:"progress"` // actual/planned, whole percent
}

// BudgetResponse is the outward representation of a budget with derived totals.
type BudgetResponse struct {
	BudgetID   string               `json:"budgetId"`
	Name       string               `json:"name"`
	WalletID   string               `json:"walletId"`
	StartAt    time.Time            `json:"startAt"`
	EndAt      time.Time            `json:"endAt"`
	Total      int64                `json:"total"`
	Spent      int64                `json:"spent"`
	Remaining  int64                `json:"remaining"`
	Usage      int                  `json:"usage"` // spent/total, whole percent
	Categories []BudgetItemResponse `json:"categories"`
}

// percentOf computes part/whole as a whole percentage, rounded half up.
// Decimal math avoids the integer truncation a plain int division would have.
func percentOf(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	ratio := decimal.NewFromInt(part).
		Div(decimal.NewFromInt(whole)).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	return int(ratio.IntPart())
}

// ToBudgetResponse maps a domain budget (with items) to its response shape.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	var spent int64
	items := make([]BudgetItemResponse, len(b.Items))
	for i, item := range b.Items {
		spent += item.Actual
		items[i] = BudgetItemResponse{
			BudgetItemID: item.BudgetItemID,
			CategoryID:   item.CategoryID,
			Planned:      item.Planned,
			Actual:       item.Actual,
			Progress:     percentOf(item.Actual, item.Planned),
		}
	}
	return BudgetResponse{
		BudgetID:   b.BudgetID,
		Name:       b.Name,
		WalletID:   b.WalletID,
		StartAt:    b.StartAt,
		EndAt:      b.EndAt,
		Total:      b.Total,
		Spent:      spent,
		Remaining:  b.Total - spent,
		Usage:      percentOf(spent, b.Total),
		Categories: items,
	}
}
