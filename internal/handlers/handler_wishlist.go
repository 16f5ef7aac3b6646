package handlers

import (
	"net/http"

	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// WishlistHandler handles wishlist requests.
type WishlistHandler struct {
	wishlistService portssvc.WishlistSvcFacade
}

// NewWishlistHandler creates a new wishlist handler instance.
func NewWishlistHandler(wishlistService portssvc.WishlistSvcFacade) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// CreateWishlist handles POST /wishlists.
func (h *WishlistHandler) CreateWishlist(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.wishlistService.CreateWishlist(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToWishlistResponse(item))
}

// UpdateWishlist handles PUT /wishlists/:id.
func (h *WishlistHandler) UpdateWishlist(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.wishlistService.UpdateWishlist(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWishlistResponse(item))
}

// DeleteWishlist handles DELETE /wishlists/:id.
func (h *WishlistHandler) DeleteWishlist(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.wishlistService.DeleteWishlist(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListWishlists handles GET /wishlists.
func (h *WishlistHandler) ListWishlists(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.wishlistService.ListWishlists(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.WishlistResponse, len(items))
	for i := range items {
		responses[i] = dto.ToWishlistResponse(&items[i])
	}
	c.JSON(http.StatusOK, responses)
}
