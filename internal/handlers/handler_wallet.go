package handlers

import (
	"net/http"

	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet requests.
type WalletHandler struct {
	walletService portssvc.WalletSvcFacade
}

// NewWalletHandler creates a new wallet handler instance.
func NewWalletHandler(walletService portssvc.WalletSvcFacade) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// CreateWallet handles POST /wallets.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

// UpdateWallet handles PUT /wallets/:id.
func (h *WalletHandler) UpdateWallet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := h.walletService.UpdateWallet(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// DeleteWallet handles DELETE /wallets/:id.
func (h *WalletHandler) DeleteWallet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.walletService.DeleteWallet(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetWallet handles GET /wallets/:id.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	wallet, err := h.walletService.GetWallet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if wallet.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// ListWallets handles GET /wallets.
func (h *WalletHandler) ListWallets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallets, err := h.walletService.ListWallets(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.WalletResponse, len(wallets))
	for i := range wallets {
		responses[i] = dto.ToWalletResponse(&wallets[i])
	}
	c.JSON(http.StatusOK, responses)
}
