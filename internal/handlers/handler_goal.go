package handlers

import (
	"net/http"

	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService portssvc.GoalSvcFacade
}

// NewGoalHandler creates a new goal handler instance.
func NewGoalHandler(goalService portssvc.GoalSvcFacade) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoal handles POST /goals.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToGoalResponse(goal))
}

// UpdateGoal handles PATCH /goals/:id.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// DeleteGoal handles DELETE /goals/:id.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGoals handles GET /goals.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.GoalResponse, len(goals))
	for i := range goals {
		responses[i] = dto.ToGoalResponse(&goals[i])
	}
	c.JSON(http.StatusOK, responses)
}
