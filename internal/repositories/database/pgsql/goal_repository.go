package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dompetku-app/dompetku_backend/internal/apperrors"
	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku-app/dompetku_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSQLGoalRepository implements savings goal persistence backed by PostgreSQL.
type PGSQLGoalRepository struct {
	BaseRepository
}

// NewPGSQLGoalRepository creates a new goal repository instance.
func NewPGSQLGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepository {
	return &PGSQLGoalRepository{BaseRepository: NewBaseRepository(pool)}
}

const goalColumns = `goal_id, user_id, name, target, collected, due_date, created_at, created_by, last_updated_at, last_updated_by`

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var g domain.Goal
	err := row.Scan(&g.GoalID, &g.UserID, &g.Name, &g.Target, &g.Collected, &g.DueDate,
		&g.CreatedAt, &g.CreatedBy, &g.LastUpdatedAt, &g.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning goal: %w", err)
	}
	return &g, nil
}

func (r *PGSQLGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	query := `INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.Pool.Exec(ctx, query,
		goal.GoalID, goal.UserID, goal.Name, goal.Target, goal.Collected, goal.DueDate,
		goal.CreatedAt, goal.CreatedBy, goal.LastUpdatedAt, goal.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *PGSQLGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1`
	return scanGoal(r.Pool.QueryRow(ctx, query, goalID))
}

func (r *PGSQLGoalRepository) ListGoals(ctx context.Context, userID string, query string, limit, offset int) ([]domain.Goal, error) {
	sql := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1`
	args := []any{userID}
	if query != "" {
		sql += ` AND name ILIKE $2`
		args = append(args, "%"+query+"%")
	}
	sql += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	goals := make([]domain.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func (r *PGSQLGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	query := `UPDATE goals SET name = $2, target = $3, collected = $4, due_date = $5, last_updated_at = $6, last_updated_by = $7
		WHERE goal_id = $1`
	tag, err := r.Pool.Exec(ctx, query,
		goal.GoalID, goal.Name, goal.Target, goal.Collected, goal.DueDate, goal.LastUpdatedAt, goal.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PGSQLGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1`, goalID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
