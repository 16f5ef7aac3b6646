package services

import (
	"context"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
)

// CategorySvcFacade manages a user's transaction categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string, userID string) error
	GetCategory(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string, params dto.ListCategoriesParams) ([]domain.Category, error)
}
