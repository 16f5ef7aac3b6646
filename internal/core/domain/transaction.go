package domain

import "time"

// TransactionKind indicates how a transaction moves money.
type TransactionKind string

const (
	KindIncome   TransactionKind = "income"
	KindExpense  TransactionKind = "expense"
	KindTransfer TransactionKind = "transfer"
)

// Valid reports whether k is one of the known transaction kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer:
		return true
	}
	return false
}

// Transaction represents a single monetary event affecting one wallet, or two
// for transfers. Amount is always non-negative; direction is derived from Kind.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary key (UUID)
	UserID        string          `json:"userID"`        // FK -> users.user_id
	WalletID      string          `json:"walletID"`      // Source wallet
	ToWalletID    *string         `json:"toWalletID"`    // Destination wallet, set iff Kind == transfer
	CategoryID    string          `json:"categoryID"`    // FK -> categories.category_id
	Kind          TransactionKind `json:"kind"`
	Amount        int64           `json:"amount"` // Non-negative, minor units
	Date          time.Time       `json:"date"`
	Remark        string          `json:"remark"`
	DeletedAt     *time.Time      `json:"deletedAt"` // Soft-delete marker
	AuditFields
}

// IsDeleted reports whether the transaction has been soft-deleted.
func (t Transaction) IsDeleted() bool {
	return t.DeletedAt != nil
}

// BalanceChanges returns the signed per-wallet deltas this transaction applies
// when it becomes live: income credits the source wallet, expense debits it,
// a transfer debits the source and credits the destination.
func (t Transaction) BalanceChanges() map[string]int64 {
	changes := make(map[string]int64, 2)
	switch t.Kind {
	case KindIncome:
		changes[t.WalletID] += t.Amount
	case KindExpense:
		changes[t.WalletID] -= t.Amount
	case KindTransfer:
		changes[t.WalletID] -= t.Amount
		if t.ToWalletID != nil {
			changes[*t.ToWalletID] += t.Amount
		}
	}
	return changes
}

// InverseBalanceChanges returns the deltas that undo BalanceChanges.
func (t Transaction) InverseBalanceChanges() map[string]int64 {
	changes := t.BalanceChanges()
	for walletID, delta := range changes {
		changes[walletID] = -delta
	}
	return changes
}
