package repositories

import (
	"context"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	// ListCategories returns a user's categories ordered by name. When
	// parentID is nil only top-level categories are returned; categoryType
	// and query are optional filters.
	ListCategories(ctx context.Context, userID string, parentID *string, categoryType, query string, limit, offset int) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}
