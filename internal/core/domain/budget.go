package domain

import "time"

// Budget is a planned-spending envelope for one wallet over an inclusive
// [StartAt, EndAt] date range. Within one wallet no two budgets may hold an
// item for the same category with overlapping ranges.
type Budget struct {
	BudgetID string       `json:"budgetID"` // Primary key (UUID)
	UserID   string       `json:"userID"`   // FK -> users.user_id
	WalletID string       `json:"walletID"` // FK -> wallets.wallet_id
	Name     string       `json:"name"`
	StartAt  time.Time    `json:"startAt"`
	EndAt    time.Time    `json:"endAt"`
	Total    int64        `json:"total"` // Planned total, minor units
	Items    []BudgetItem `json:"items,omitempty"`
	AuditFields
}

// ContainsDate reports whether date falls inside the budget's inclusive range.
func (b Budget) ContainsDate(date time.Time) bool {
	return !date.Before(b.StartAt) && !date.After(b.EndAt)
}

// Overlaps reports whether [start, end] intersects the budget's range,
// inclusive on both ends.
func (b Budget) Overlaps(start, end time.Time) bool {
	return !b.StartAt.After(end) && !b.EndAt.Before(start)
}

// BudgetItem is the per-category planned/actual pair within a budget.
// Actual is maintained incrementally through contribution pivots and must
// always match what a batch recompute over live expense transactions yields.
type BudgetItem struct {
	BudgetItemID string `json:"budgetItemID"` // Primary key (UUID)
	BudgetID     string `json:"budgetID"`     // FK -> budgets.budget_id
	CategoryID   string `json:"categoryID"`   // FK -> categories.category_id
	Planned      int64  `json:"planned"`      // Minor units
	Actual       int64  `json:"actual"`       // Signed, minor units, starts at zero
	AuditFields
}

// BudgetItemTransaction marks that a transaction's amount is currently counted
// into a budget item's actual. At most one row exists per (item, transaction)
// pair; the row is hard-deleted on reversal since it is derived bookkeeping,
// not an audit record.
type BudgetItemTransaction struct {
	BudgetItemID  string    `json:"budgetItemID"`
	TransactionID string    `json:"transactionID"`
	CreatedAt     time.Time `json:"createdAt"`
}
