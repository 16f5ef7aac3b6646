package services

import (
	"context"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
)

// WishlistSvcFacade manages a user's wishlist items.
type WishlistSvcFacade interface {
	CreateWishlist(ctx context.Context, req dto.CreateWishlistRequest, userID string) (*domain.Wishlist, error)
	UpdateWishlist(ctx context.Context, wishlistID string, req dto.CreateWishlistRequest, userID string) (*domain.Wishlist, error)
	DeleteWishlist(ctx context.Context, wishlistID string, userID string) error
	ListWishlists(ctx context.Context, userID string, params dto.ListParams) ([]domain.Wishlist, error)
}
