package handlers

import (
	"net/http"

	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category requests.
type CategoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

// NewCategoryHandler creates a new category handler instance.
func NewCategoryHandler(categoryService portssvc.CategorySvcFacade) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory handles POST /categories.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// UpdateCategory handles PUT /categories/:id.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// DeleteCategory handles DELETE /categories/:id.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories handles GET /categories.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	if params.ParentID != nil {
		responses := make([]dto.CategoryResponse, len(categories))
		for i := range categories {
			responses[i] = dto.ToCategoryResponse(&categories[i])
		}
		c.JSON(http.StatusOK, responses)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryTreeResponse(categories))
}
