package services_test

import (
	"context"
	"testing"

	"github.com/dompetku-app/dompetku_backend/internal/apperrors"
	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	portssvc "github.com/dompetku-app/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku-app/dompetku_backend/internal/core/services"
	"github.com/dompetku-app/dompetku_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestGoalService() (portssvc.GoalSvcFacade, *MockGoalRepository) {
	goalRepo := new(MockGoalRepository)
	return services.NewGoalService(goalRepo), goalRepo
}

func TestCreateGoal_SavesWithAuditFields(t *testing.T) {
	svc, goalRepo := newTestGoalService()
	ctx := context.Background()

	goalRepo.On("SaveGoal", ctx, mock.MatchedBy(func(g domain.Goal) bool {
		return g.UserID == testUserID && g.Name == "Emergency fund" &&
			g.Target == 1_000_000 && g.Collected == 250_000 && g.CreatedBy == testUserID
	})).Return(nil)

	goal, err := svc.CreateGoal(ctx, dto.CreateGoalRequest{
		Name:      "Emergency fund",
		Target:    1_000_000,
		Collected: 250_000,
	}, testUserID)

	require.NoError(t, err)
	assert.NotEmpty(t, goal.GoalID)
	goalRepo.AssertExpectations(t)
}

func TestCreateGoal_CollectedAboveTargetRejected(t *testing.T) {
	svc, goalRepo := newTestGoalService()

	_, err := svc.CreateGoal(context.Background(), dto.CreateGoalRequest{
		Name:      "Bike",
		Target:    500,
		Collected: 600,
	}, testUserID)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	goalRepo.AssertNotCalled(t, "SaveGoal", mock.Anything, mock.Anything)
}

func TestUpdateGoal_OtherUsersGoalHidden(t *testing.T) {
	svc, goalRepo := newTestGoalService()
	ctx := context.Background()

	goalRepo.On("FindGoalByID", ctx, "g-1").
		Return(&domain.Goal{GoalID: "g-1", UserID: "someone-else"}, nil)

	_, err := svc.UpdateGoal(ctx, "g-1", dto.CreateGoalRequest{Name: "Bike", Target: 500}, testUserID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	goalRepo.AssertNotCalled(t, "UpdateGoal", mock.Anything, mock.Anything)
}

func TestUpdateGoal_OverwritesProgress(t *testing.T) {
	svc, goalRepo := newTestGoalService()
	ctx := context.Background()

	goalRepo.On("FindGoalByID", ctx, "g-1").
		Return(&domain.Goal{GoalID: "g-1", UserID: testUserID, Name: "Bike", Target: 500, Collected: 100}, nil)
	goalRepo.On("UpdateGoal", ctx, mock.MatchedBy(func(g domain.Goal) bool {
		return g.Collected == 400 && g.Target == 500 && g.LastUpdatedBy == testUserID
	})).Return(nil)

	goal, err := svc.UpdateGoal(ctx, "g-1", dto.CreateGoalRequest{Name: "Bike", Target: 500, Collected: 400}, testUserID)

	require.NoError(t, err)
	assert.Equal(t, int64(400), goal.Collected)
	goalRepo.AssertExpectations(t)
}

func TestDeleteGoal_OtherUsersGoalHidden(t *testing.T) {
	svc, goalRepo := newTestGoalService()
	ctx := context.Background()

	goalRepo.On("FindGoalByID", ctx, "g-1").
		Return(&domain.Goal{GoalID: "g-1", UserID: "someone-else"}, nil)

	err := svc.DeleteGoal(ctx, "g-1", testUserID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	goalRepo.AssertNotCalled(t, "DeleteGoal", mock.Anything, mock.Anything)
}

func TestListGoals_PassesSearchAndPaging(t *testing.T) {
	svc, goalRepo := newTestGoalService()
	ctx := context.Background()

	goalRepo.On("ListGoals", ctx, testUserID, "fund", 10, 20).
		Return([]domain.Goal{{GoalID: "g-1", Name: "Emergency fund"}}, nil)

	goals, err := svc.ListGoals(ctx, testUserID, dto.ListParams{Query: "fund", Limit: 10, Offset: 20})

	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Emergency fund", goals[0].Name)
}
