package dto

import "github.com/dompetku-app/dompetku_backend/internal/core/domain"

// CreateWishlistRequest is the input shape for creating or updating a wishlist item.
type CreateWishlistRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    int64  `json:"price" binding:"gte=0"`
	ImageURL string `json:"imageUrl"`
}

// WishlistResponse is the outward representation of a wishlist item.
type WishlistResponse struct {
	WishlistID string `json:"wishlistId"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// ToWishlistResponse maps a domain wishlist item to its response shape.
func ToWishlistResponse(w *domain.Wishlist) WishlistResponse {
	return WishlistResponse{
		WishlistID: w.WishlistID,
		Name:       w.Name,
		Price:      w.Price,
		ImageURL:   w.ImageURL,
	}
}
