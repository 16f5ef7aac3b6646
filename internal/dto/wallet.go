package dto

import (
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
)

// CreateWalletRequest is the input shape for creating or updating a wallet.
type CreateWalletRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"omitempty,hexcolor_or_empty"`
}

// WalletResponse is the outward representation of a wallet.
type WalletResponse struct {
	WalletID  string    `json:"walletId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToWalletResponse maps a domain wallet to its response shape.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:  w.WalletID,
		Name:      w.Name,
		Color:     w.Color,
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt,
	}
}

// ListParams is the shared pagination/search query shape for simple listings.
type ListParams struct {
	Query  string `form:"q"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}
