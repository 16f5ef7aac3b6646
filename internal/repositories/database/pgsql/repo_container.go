package pgsql

import (
	portsrepo "github.com/dompetku-app/dompetku_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		WalletRepo:      NewPGSQLWalletRepository(pool),
		TransactionRepo: NewPGSQLTransactionRepository(pool),
		BudgetRepo:      NewPGSQLBudgetRepository(pool),
		CategoryRepo:    NewPGSQLCategoryRepository(pool),
		WishlistRepo:    NewPGSQLWishlistRepository(pool),
		GoalRepo:        NewPGSQLGoalRepository(pool),
		UserRepo:        NewPGSQLUserRepository(pool),
	}
}
