package domain

// Wallet represents a single account holding a monetary balance.
// Balance is stored in minor currency units and is only ever mutated through
// the repository's balance adjustment, never by direct field assignment.
type Wallet struct {
	WalletID string `json:"walletID"` // Primary key (UUID)
	UserID   string `json:"userID"`   // FK -> users.user_id
	Name     string `json:"name"`
	Color    string `json:"color"`
	Balance  int64  `json:"balance"` // Signed, minor units; sum of all live transaction effects
	AuditFields
}
