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

// PGSQLCategoryRepository implements category persistence backed by PostgreSQL.
type PGSQLCategoryRepository struct {
	BaseRepository
}

// NewPGSQLCategoryRepository creates a new category repository instance.
func NewPGSQLCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PGSQLCategoryRepository{BaseRepository: NewBaseRepository(pool)}
}

const categoryColumns = `category_id, user_id, name, color, type, parent_id, image_url, image_variant, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.CategoryID, &c.UserID, &c.Name, &c.Color, &c.Type, &c.ParentID,
		&c.ImageURL, &c.ImageVariant,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	return &c, nil
}

func (r *PGSQLCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.UserID, category.Name, category.Color,
		category.Type, category.ParentID, category.ImageURL, category.ImageVariant,
		category.CreatedAt, category.CreatedBy, category.LastUpdatedAt, category.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (r *PGSQLCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1`
	return scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
}

func (r *PGSQLCategoryRepository) ListCategories(ctx context.Context, userID string, parentID *string, categoryType, query string, limit, offset int) ([]domain.Category, error) {
	sql := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1`
	args := []any{userID}
	if parentID == nil {
		sql += ` AND parent_id IS NULL`
	} else {
		sql += fmt.Sprintf(` AND parent_id = $%d`, len(args)+1)
		args = append(args, *parentID)
	}
	if categoryType != "" {
		sql += fmt.Sprintf(` AND type = $%d`, len(args)+1)
		args = append(args, categoryType)
	}
	if query != "" {
		sql += fmt.Sprintf(` AND name ILIKE $%d`, len(args)+1)
		args = append(args, "%"+query+"%")
	}
	sql += fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *PGSQLCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `UPDATE categories
		SET name = $2, color = $3, type = $4, parent_id = $5, image_url = $6, image_variant = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE category_id = $1`
	tag, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.Name, category.Color, category.Type, category.ParentID,
		category.ImageURL, category.ImageVariant, category.LastUpdatedAt, category.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PGSQLCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1`, categoryID)
	if err != nil {
		if isPgErrCode(err, foreignKeyViolation) {
			return fmt.Errorf("%w: category is still used by transactions or budget items", apperrors.ErrConflict)
		}
		return fmt.Errorf("deleting category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
