package dto

import (
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
)

// CreateGoalRequest is the input shape for creating or updating a savings goal.
type CreateGoalRequest struct {
	Name      string     `json:"name" binding:"required"`
	Target    int64      `json:"target" binding:"gt=0"`
	Collected int64      `json:"collected" binding:"gte=0"`
	DueDate   *time.Time `json:"dueDate"`
}

// GoalResponse is the outward representation of a savings goal. Progress is
// the collected amount as a rounded percentage of the target.
type GoalResponse struct {
	GoalID    string     `json:"goalId"`
	Name      string     `json:"name"`
	Target    int64      `json:"target"`
	Collected int64      `json:"collected"`
	Progress  int        `json:"progress"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToGoalResponse maps a domain goal to its response shape.
func ToGoalResponse(g *domain.Goal) GoalResponse {
	return GoalResponse{
		GoalID:    g.GoalID,
		Name:      g.Name,
		Target:    g.Target,
		Collected: g.Collected,
		Progress:  percentOf(g.Collected, g.Target),
		DueDate:   g.DueDate,
		CreatedAt: g.CreatedAt,
	}
}
