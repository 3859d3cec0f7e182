package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bazaar/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access. Reads join the
// product so the caller always sees the seller who may advance the order.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// SwapStatus moves the order from one status to another in a single
	// conditional update and reports whether the swap happened.
	SwapStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, buyer_id, product_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		order.ID,
		order.BuyerID,
		order.ProductID,
		order.Status,
		order.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// FindByID retrieves an order with the seller of its product
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT o.id, o.buyer_id, o.product_id, p.seller_id, o.status, o.created_at
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.id = $1
	`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.BuyerID,
		&order.ProductID,
		&order.SellerID,
		&order.Status,
		&order.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	return order, nil
}

// SwapStatus performs a compare-and-swap on the order status
func (r *orderRepository) SwapStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error) {
	query := `UPDATE orders SET status = $3 WHERE id = $1 AND status = $2`

	result, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

// ListBySeller retrieves orders placed against the seller's products
func (r *orderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Order, error) {
	query := `
		SELECT o.id, o.buyer_id, o.product_id, p.seller_id, o.status, o.created_at
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE p.seller_id = $1
		ORDER BY o.created_at DESC
	`

	return r.list(ctx, query, sellerID)
}

// ListByBuyer retrieves orders the buyer placed
func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error) {
	query := `
		SELECT o.id, o.buyer_id, o.product_id, p.seller_id, o.status, o.created_at
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.buyer_id = $1
		ORDER BY o.created_at DESC
	`

	return r.list(ctx, query, buyerID)
}

func (r *orderRepository) list(ctx context.Context, query string, id uuid.UUID) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.BuyerID,
			&order.ProductID,
			&order.SellerID,
			&order.Status,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
