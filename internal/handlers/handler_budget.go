package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// BudgetHandler handles budget and budget item requests.
type BudgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// NewBudgetHandler creates a new budget handler instance.
func NewBudgetHandler(budgetService portssvc.BudgetSvcFacade) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudget handles POST /budgets.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

// UpdateBudget handles PATCH /budgets/:id.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// DeleteBudget handles DELETE /budgets/:id.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetBudget handles GET /budgets/:id.
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.GetBudget(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

// ListBudgets handles GET /budgets.
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListBudgetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

// CreateBudgetItem handles POST /budget-items.
func (h *BudgetHandler) CreateBudgetItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.budgetService.CreateBudgetItem(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateBudgetItem handles PATCH /budget-items/:id.
func (h *BudgetHandler) UpdateBudgetItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.budgetService.UpdateBudgetItem(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveBudgetItem handles DELETE /budget-items/:id.
func (h *BudgetHandler) RemoveBudgetItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.budgetService.RemoveBudgetItem(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecomputeByDate handles POST /budgets/recompute?date=YYYY-MM-DD. It
// rebuilds every budget whose range contains the date. The rebuild derives
// everything from stored transactions, so any authenticated user may trigger
// it without affecting correctness.
func (h *BudgetHandler) RecomputeByDate(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	if err := h.budgetService.RecomputeDate(c.Request.Context(), date); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecomputeBudget handles POST /budgets/:id/recompute. The ownership check
// goes through GetBudget since recomputation itself is user-agnostic.
func (h *BudgetHandler) RecomputeBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if _, err := h.budgetService.GetBudget(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.budgetService.RecomputeBudget(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
