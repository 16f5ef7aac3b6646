package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction and reporting requests.
type TransactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

// NewTransactionHandler creates a new transaction handler instance.
func NewTransactionHandler(txnService portssvc.TransactionSvcFacade) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

// CreateTransaction handles POST /transactions.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.txnService.CreateTransaction(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// UpdateTransaction handles PUT /transactions/:id.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.txnService.UpdateTransaction(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// DeleteTransaction handles DELETE /transactions/:id.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.txnService.DeleteTransaction(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetTransaction handles GET /transactions/:id.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.txnService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if txn.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// ListTransactions handles GET /transactions.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	groups, err := h.txnService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// MonthlySummary handles GET /transactions/summary?month=&year=.
func (h *TransactionHandler) MonthlySummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be a number"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return
	}

	summary, err := h.txnService.MonthlySummary(c.Request.Context(), userID, month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ChartByRange handles GET /transactions/chart?date=&range=.
func (h *TransactionHandler) ChartByRange(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	date, err := time.Parse(time.RFC3339, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC3339"})
		return
	}

	points, err := h.txnService.ChartByRange(c.Request.Context(), userID, date, c.DefaultQuery("range", "1w"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// CategoryOverview handles GET /transactions/overview?date=&kind=.
func (h *TransactionHandler) CategoryOverview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	date, err := time.Parse(time.RFC3339, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC3339"})
		return
	}
	kind := domain.TransactionKind(c.DefaultQuery("kind", string(domain.KindExpense)))

	entries, err := h.txnService.CategoryOverview(c.Request.Context(), userID, date, kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
