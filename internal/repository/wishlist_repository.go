package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bazaar/internal/domain"

	"github.com/google/uuid"
)

// WishlistRepository manages the user-product wishlist join table. The table's
// composite primary key rules out duplicate memberships; Add and Remove report
// whether they changed anything instead of failing.
type WishlistRepository interface {
	Add(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error)
}

type wishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository creates a new instance of WishlistRepository
func NewWishlistRepository(db *sql.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// Add inserts a membership, ignoring duplicates. Returns true when the row
// was newly added.
func (r *wishlistRepository) Add(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO wishlist_items (user_id, product_id, added_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

// Remove deletes a membership if present. Returns true when a row was removed.
func (r *wishlistRepository) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

// List retrieves the user's wishlist products, most recently added first
func (r *wishlistRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.category, p.image, p.status, p.seller_id, p.created_at
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.added_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.Category,
			&product.Image,
			&product.Status,
			&product.SellerID,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist: %w", err)
	}

	return products, nil
}
