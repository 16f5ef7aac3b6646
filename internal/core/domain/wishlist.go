package domain

// Wishlist is a saved purchase goal with a target price in minor units.
type Wishlist struct {
	WishlistID string `json:"wishlistID"` // Primary key (UUID)
	UserID     string `json:"userID"`     // FK -> users.user_id
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	ImageURL   string `json:"imageUrl"`
	AuditFields
}
