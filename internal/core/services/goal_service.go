package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/apperrors"
	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku-app/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/google/uuid"
)

type goalService struct {
	goalRepo portsrepo.GoalRepository
}

// NewGoalService creates a new goal service instance.
func NewGoalService(goalRepo portsrepo.GoalRepository) portssvc.GoalSvcFacade {
	return &goalService{goalRepo: goalRepo}
}

func (s *goalService) CreateGoal(ctx context.Context, req dto.CreateGoalRequest, userID string) (*domain.Goal, error) {
	if req.Collected > req.Target {
		return nil, fmt.Errorf("%w: collected amount exceeds the target", apperrors.ErrValidation)
	}

	now := time.Now()
	goal := domain.Goal{
		GoalID:    uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		Target:    req.Target,
		Collected: req.Collected,
		DueDate:   req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("saving goal: %w", err)
	}
	return &goal, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, goalID string, req dto.CreateGoalRequest, userID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if req.Collected > req.Target {
		return nil, fmt.Errorf("%w: collected amount exceeds the target", apperrors.ErrValidation)
	}

	goal.Name = req.Name
	goal.Target = req.Target
	goal.Collected = req.Collected
	goal.DueDate = req.DueDate
	goal.LastUpdatedAt = time.Now()
	goal.LastUpdatedBy = userID

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("updating goal: %w", err)
	}
	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, goalID string, userID string) error {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return err
	}
	if goal.UserID != userID {
		return apperrors.ErrNotFound
	}
	return s.goalRepo.DeleteGoal(ctx, goalID)
}

func (s *goalService) ListGoals(ctx context.Context, userID string, params dto.ListParams) ([]domain.Goal, error) {
	goals, err := s.goalRepo.ListGoals(ctx, userID, params.Query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	return goals, nil
}
