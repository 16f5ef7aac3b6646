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

type categoryService struct {
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service instance.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindCategoryByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.UserID != userID {
			return nil, apperrors.ErrNotFound
		}
		// One level of nesting only.
		if parent.ParentID != nil {
			return nil, fmt.Errorf("%w: categories nest at most one level", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		Color:        req.Color,
		Type:         req.Type,
		ParentID:     req.ParentID,
		ImageURL:     req.ImageURL,
		ImageVariant: req.ImageVariant,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("saving category: %w", err)
	}
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	category.Name = req.Name
	category.Color = req.Color
	category.Type = req.Type
	category.ParentID = req.ParentID
	category.ImageURL = req.ImageURL
	category.ImageVariant = req.ImageVariant
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string, userID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.UserID != userID {
		return apperrors.ErrNotFound
	}
	return s.categoryRepo.DeleteCategory(ctx, categoryID)
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context, userID string, params dto.ListCategoriesParams) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID, params.ParentID, params.Type, params.Query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}
