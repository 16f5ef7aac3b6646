package services

import (
	portsrepo "github.com/dompetku-app/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/pkg/config"
)

// NewServiceContainer wires every service with its repository dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Wallet:      NewWalletService(repos.WalletRepo, repos.TransactionRepo, repos.BudgetRepo),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.WalletRepo, repos.BudgetRepo, repos.CategoryRepo),
		Budget:      NewBudgetService(repos.BudgetRepo, repos.TransactionRepo, repos.WalletRepo),
		Category:    NewCategoryService(repos.CategoryRepo),
		Wishlist:    NewWishlistService(repos.WishlistRepo),
		Goal:        NewGoalService(repos.GoalRepo),
		User:        NewUserService(repos.UserRepo, cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiryDuration),
	}
}
