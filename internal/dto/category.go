package dto

import "github.com/dompetku-app/dompetku_backend/internal/core/domain"

// CreateCategoryRequest is the input shape for creating or updating a category.
type CreateCategoryRequest struct {
	Name         string  `json:"name" binding:"required"`
	Color        string  `json:"color" binding:"omitempty,hexcolor_or_empty"`
	Type         string  `json:"type" binding:"required,oneof=expense income"`
	ParentID     *string `json:"parentId"`
	ImageURL     string  `json:"imageUrl"`
	ImageVariant string  `json:"imageVariant"`
}

// ListCategoriesParams narrows a category listing.
type ListCategoriesParams struct {
	Query    string  `form:"q"`
	ParentID *string `form:"parentId"`
	Type     string  `form:"type" binding:"omitempty,oneof=expense income"`
	Limit    int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset   int     `form:"offset" binding:"omitempty,min=0"`
}

// CategoryResponse is the outward representation of a category. Children is
// populated only by the tree-shaped listing.
type CategoryResponse struct {
	CategoryID   string             `json:"categoryId"`
	Name         string             `json:"name"`
	Color        string             `json:"color"`
	Type         string             `json:"type"`
	ParentID     *string            `json:"parentId,omitempty"`
	ImageURL     string             `json:"imageUrl,omitempty"`
	ImageVariant string             `json:"imageVariant,omitempty"`
	Children     []CategoryResponse `json:"children,omitempty"`
}

// ToCategoryTreeResponse nests child categories under their parents.
// Categories whose parent is absent from the slice are kept at the top level
// so a filtered listing never silently drops rows.
func ToCategoryTreeResponse(categories []domain.Category) []CategoryResponse {
	byParent := make(map[string][]CategoryResponse)
	present := make(map[string]bool, len(categories))
	for i := range categories {
		present[categories[i].CategoryID] = true
	}
	for i := range categories {
		c := &categories[i]
		if c.ParentID != nil && present[*c.ParentID] {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], ToCategoryResponse(c))
		}
	}

	roots := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		if c.ParentID != nil && present[*c.ParentID] {
			continue
		}
		resp := ToCategoryResponse(c)
		resp.Children = byParent[c.CategoryID]
		roots = append(roots, resp)
	}
	return roots
}

// ToCategoryResponse maps a domain category to its response shape.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:   c.CategoryID,
		Name:         c.Name,
		Color:        c.Color,
		Type:         c.Type,
		ParentID:     c.ParentID,
		ImageURL:     c.ImageURL,
		ImageVariant: c.ImageVariant,
	}
}
