package services

import (
	"context"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
)

// GoalSvcFacade manages a user's savings goals.
type GoalSvcFacade interface {
	CreateGoal(ctx context.Context, req dto.CreateGoalRequest, userID string) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, goalID string, req dto.CreateGoalRequest, userID string) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, goalID string, userID string) error
	ListGoals(ctx context.Context, userID string, params dto.ListParams) ([]domain.Goal, error)
}
