package services

import (
	"context"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
)

// UserSvcFacade handles registration, login and user lookup.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
