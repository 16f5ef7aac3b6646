package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/apperrors"
	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku-app/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/google/uuid"
)

type wishlistService struct {
	wishlistRepo portsrepo.WishlistRepository
}

// NewWishlistService creates a new wishlist service instance.
func NewWishlistService(wishlistRepo portsrepo.WishlistRepository) portssvc.WishlistSvcFacade {
	return &wishlistService{wishlistRepo: wishlistRepo}
}

func (s *wishlistService) CreateWishlist(ctx context.Context, req dto.CreateWishlistRequest, userID string) (*domain.Wishlist, error) {
	now := time.Now()
	item := domain.Wishlist{
		WishlistID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Price:      req.Price,
		ImageURL:   req.ImageURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.wishlistRepo.SaveWishlist(ctx, item); err != nil {
		return nil, fmt.Errorf("saving wishlist item: %w", err)
	}
	return &item, nil
}

func (s *wishlistService) UpdateWishlist(ctx context.Context, wishlistID string, req dto.CreateWishlistRequest, userID string) (*domain.Wishlist, error) {
	item, err := s.wishlistRepo.FindWishlistByID(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	item.Name = req.Name
	item.Price = req.Price
	item.ImageURL = req.ImageURL
	item.LastUpdatedAt = time.Now()
	item.LastUpdatedBy = userID

	if err := s.wishlistRepo.UpdateWishlist(ctx, *item); err != nil {
		return nil, fmt.Errorf("updating wishlist item: %w", err)
	}
	return item, nil
}

func (s *wishlistService) DeleteWishlist(ctx context.Context, wishlistID string, userID string) error {
	item, err := s.wishlistRepo.FindWishlistByID(ctx, wishlistID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return apperrors.ErrNotFound
	}
	return s.wishlistRepo.DeleteWishlist(ctx, wishlistID)
}

func (s *wishlistService) ListWishlists(ctx context.Context, userID string, params dto.ListParams) ([]domain.Wishlist, error) {
	items, err := s.wishlistRepo.ListWishlists(ctx, userID, params.Query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing wishlist items: %w", err)
	}
	return items, nil
}
