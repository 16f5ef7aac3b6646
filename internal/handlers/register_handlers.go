package handlers

import (
	"fmt"
	"net/http"

	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/middleware"
	"github.com/dompetku-app/dompetku_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterHandlers wires all routes onto the engine. Auth endpoints are rate
// limited; everything under /api/v1 requires a valid bearer token.
func RegisterHandlers(engine *gin.Engine, services *portssvc.ServiceContainer, cfg *config.Config) error {
	registerValidations()

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("parsing rate limit: %w", err)
	}
	authLimiter := limiter.New(memory.NewStore(), rate)

	authHandler := NewAuthHandler(services.User)
	walletHandler := NewWalletHandler(services.Wallet)
	txnHandler := NewTransactionHandler(services.Transaction)
	budgetHandler := NewBudgetHandler(services.Budget)
	categoryHandler := NewCategoryHandler(services.Category)
	wishlistHandler := NewWishlistHandler(services.Wishlist)
	goalHandler := NewGoalHandler(services.Goal)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := engine.Group("/auth", middleware.RateLimit(authLimiter))
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api := engine.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		wallets := api.Group("/wallets")
		{
			wallets.POST("", walletHandler.CreateWallet)
			wallets.GET("", walletHandler.ListWallets)
			wallets.GET("/:id", walletHandler.GetWallet)
			wallets.PUT("/:id", walletHandler.UpdateWallet)
			wallets.DELETE("/:id", walletHandler.DeleteWallet)
		}

		transactions := api.Group("/transactions")
		{
			transactions.POST("", txnHandler.CreateTransaction)
			transactions.GET("", txnHandler.ListTransactions)
			transactions.GET("/summary", txnHandler.MonthlySummary)
			transactions.GET("/chart", txnHandler.ChartByRange)
			transactions.GET("/overview", txnHandler.CategoryOverview)
			transactions.GET("/:id", txnHandler.GetTransaction)
			transactions.PUT("/:id", txnHandler.UpdateTransaction)
			transactions.DELETE("/:id", txnHandler.DeleteTransaction)
		}

		budgets := api.Group("/budgets")
		{
			budgets.POST("", budgetHandler.CreateBudget)
			budgets.GET("", budgetHandler.ListBudgets)
			budgets.GET("/:id", budgetHandler.GetBudget)
			budgets.PATCH("/:id", budgetHandler.UpdateBudget)
			budgets.DELETE("/:id", budgetHandler.DeleteBudget)
			budgets.POST("/recompute", budgetHandler.RecomputeByDate)
			budgets.POST("/:id/recompute", budgetHandler.RecomputeBudget)
		}

		budgetItems := api.Group("/budget-items")
		{
			budgetItems.POST("", budgetHandler.CreateBudgetItem)
			budgetItems.PATCH("/:id", budgetHandler.UpdateBudgetItem)
			budgetItems.DELETE("/:id", budgetHandler.RemoveBudgetItem)
		}

		categories := api.Group("/categories")
		{
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("", categoryHandler.ListCategories)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		wishlists := api.Group("/wishlists")
		{
			wishlists.POST("", wishlistHandler.CreateWishlist)
			wishlists.GET("", wishlistHandler.ListWishlists)
			wishlists.PUT("/:id", wishlistHandler.UpdateWishlist)
			wishlists.DELETE("/:id", wishlistHandler.DeleteWishlist)
		}

		goals := api.Group("/goals")
		{
			goals.POST("", goalHandler.CreateGoal)
			goals.GET("", goalHandler.ListGoals)
			goals.PATCH("/:id", goalHandler.UpdateGoal)
			goals.DELETE("/:id", goalHandler.DeleteGoal)
		}
	}

	return nil
}
