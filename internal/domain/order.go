package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the closed set of order states.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the move from s to next is legal.
// pending -> shipped | cancelled, shipped -> completed | cancelled;
// completed and cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderShipped || next == OrderCancelled
	case OrderShipped:
		return next == OrderCompleted || next == OrderCancelled
	}
	return false
}

// Order is a purchase of a product by a buyer. SellerID is derived from the
// product at read time; only that seller may advance the status.
type Order struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	BuyerID   uuid.UUID   `json:"buyer_id" db:"buyer_id"`
	ProductID uuid.UUID   `json:"product_id" db:"product_id"`
	SellerID  uuid.UUID   `json:"seller_id" db:"-"`
	Status    OrderStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
