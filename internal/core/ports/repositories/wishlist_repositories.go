package repositories

import (
	"context"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
)

// WishlistRepository defines persistence operations for wishlist items.
type WishlistRepository interface {
	SaveWishlist(ctx context.Context, item domain.Wishlist) error
	FindWishlistByID(ctx context.Context, wishlistID string) (*domain.Wishlist, error)
	ListWishlists(ctx context.Context, userID string, query string, limit, offset int) ([]domain.Wishlist, error)
	UpdateWishlist(ctx context.Context, item domain.Wishlist) error
	DeleteWishlist(ctx context.Context, wishlistID string) error
}
