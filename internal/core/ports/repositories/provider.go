package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service container.
type RepositoryProvider struct {
	WalletRepo      WalletRepositoryWithTx
	TransactionRepo TransactionRepositoryWithTx
	BudgetRepo      BudgetRepositoryWithTx
	CategoryRepo    CategoryRepository
	WishlistRepo    WishlistRepository
	GoalRepo        GoalRepository
	UserRepo        UserRepository
}
