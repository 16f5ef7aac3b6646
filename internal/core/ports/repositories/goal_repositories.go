package repositories

import (
	"context"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
)

// GoalRepository defines persistence operations for savings goals.
type GoalRepository interface {
	SaveGoal(ctx context.Context, goal domain.Goal) error
	FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID string, query string, limit, offset int) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, goal domain.Goal) error
	DeleteGoal(ctx context.Context, goalID string) error
}
