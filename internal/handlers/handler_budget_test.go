package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/handlers"
	"github.com/dompetku-app/dompetku_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recomputeStub overrides only the recompute entry point; the embedded
// facade panics on anything else, which would fail the test loudly.
type recomputeStub struct {
	portssvc.BudgetSvcFacade
	dates []time.Time
}

func (s *recomputeStub) RecomputeDate(_ context.Context, date time.Time) error {
	s.dates = append(s.dates, date)
	return nil
}

func newRecomputeRouter(stub *recomputeStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithUserID(c.Request.Context(), "user-1"))
	})
	engine.POST("/budgets/recompute", handlers.NewBudgetHandler(stub).RecomputeByDate)
	return engine
}

func TestRecomputeByDate_RebuildsBudgetsForTheDate(t *testing.T) {
	stub := &recomputeStub{}
	router := newRecomputeRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/budgets/recompute?date=2026-03-15", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, stub.dates, 1)
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), stub.dates[0])
}

func TestRecomputeByDate_RejectsMalformedDate(t *testing.T) {
	stub := &recomputeStub{}
	router := newRecomputeRouter(stub)

	for _, query := range []string{"", "?date=15-03-2026", "?date=soon"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/budgets/recompute"+query, nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, stub.dates)
	}
}
