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

// PGSQLWishlistRepository implements wishlist persistence backed by PostgreSQL.
type PGSQLWishlistRepository struct {
	BaseRepository
}

// NewPGSQLWishlistRepository creates a new wishlist repository instance.
func NewPGSQLWishlistRepository(pool *pgxpool.Pool) portsrepo.WishlistRepository {
	return &PGSQLWishlistRepository{BaseRepository: NewBaseRepository(pool)}
}

const wishlistColumns = `wishlist_id, user_id, name, price, image_url, created_at, created_by, last_updated_at, last_updated_by`

func scanWishlist(row pgx.Row) (*domain.Wishlist, error) {
	var w domain.Wishlist
	err := row.Scan(&w.WishlistID, &w.UserID, &w.Name, &w.Price, &w.ImageURL,
		&w.CreatedAt, &w.CreatedBy, &w.LastUpdatedAt, &w.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning wishlist item: %w", err)
	}
	return &w, nil
}

func (r *PGSQLWishlistRepository) SaveWishlist(ctx context.Context, item domain.Wishlist) error {
	query := `INSERT INTO wishlists (` + wishlistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.Pool.Exec(ctx, query,
		item.WishlistID, item.UserID, item.Name, item.Price, item.ImageURL,
		item.CreatedAt, item.CreatedBy, item.LastUpdatedAt, item.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("inserting wishlist item: %w", err)
	}
	return nil
}

func (r *PGSQLWishlistRepository) FindWishlistByID(ctx context.Context, wishlistID string) (*domain.Wishlist, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlists WHERE wishlist_id = $1`
	return scanWishlist(r.Pool.QueryRow(ctx, query, wishlistID))
}

func (r *PGSQLWishlistRepository) ListWishlists(ctx context.Context, userID string, query string, limit, offset int) ([]domain.Wishlist, error) {
	sql := `SELECT ` + wishlistColumns + ` FROM wishlists WHERE user_id = $1`
	args := []any{userID}
	if query != "" {
		sql += ` AND name ILIKE $2`
		args = append(args, "%"+query+"%")
	}
	sql += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying wishlist items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Wishlist, 0)
	for rows.Next() {
		w, err := scanWishlist(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *w)
	}
	return items, rows.Err()
}

func (r *PGSQLWishlistRepository) UpdateWishlist(ctx context.Context, item domain.Wishlist) error {
	query := `UPDATE wishlists SET name = $2, price = $3, image_url = $4, last_updated_at = $5, last_updated_by = $6
		WHERE wishlist_id = $1`
	tag, err := r.Pool.Exec(ctx, query,
		item.WishlistID, item.Name, item.Price, item.ImageURL, item.LastUpdatedAt, item.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("updating wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PGSQLWishlistRepository) DeleteWishlist(ctx context.Context, wishlistID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM wishlists WHERE wishlist_id = $1`, wishlistID)
	if err != nil {
		return fmt.Errorf("deleting wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
