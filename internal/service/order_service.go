package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bazaar/internal/authz"
	"bazaar/internal/domain"
	"bazaar/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSelfPurchase      = errors.New("you cannot buy your own product")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrStatusConflict    = errors.New("order status changed concurrently")
)

// OrderService defines the interface for the purchase workflow
type OrderService interface {
	Buy(ctx context.Context, buyerID, productID uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, orderID uuid.UUID, status domain.OrderStatus) error
	ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Order, error)
	ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Buy places an order for a product. Buyers cannot order their own listings,
// and a product that has already been marked purchased cannot be ordered.
func (s *orderService) Buy(ctx context.Context, buyerID, productID uuid.UUID) (*domain.Order, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == buyerID {
		return nil, ErrSelfPurchase
	}
	if product.Status != domain.ProductAvailable {
		return nil, ErrProductUnavailable
	}

	order := &domain.Order{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		ProductID: product.ID,
		SellerID:  product.SellerID,
		Status:    domain.OrderPending,
		CreatedAt: time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// UpdateStatus advances an order along the transition table. Only the seller
// of the order's product may do this; the buyer has no mutation rights after
// creation. The write is a compare-and-swap on the previous status, so a
// concurrent update loses cleanly instead of silently overwriting.
func (s *orderService) UpdateStatus(ctx context.Context, actor domain.Actor, orderID uuid.UUID, status domain.OrderStatus) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := authz.RequireOwner(actor, order.SellerID); err != nil {
		return err
	}

	if !status.Valid() {
		return ErrInvalidStatus
	}
	if !order.Status.CanTransitionTo(status) {
		return ErrInvalidTransition
	}

	swapped, err := s.orderRepo.SwapStatus(ctx, orderID, order.Status, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if !swapped {
		return ErrStatusConflict
	}

	return nil
}

// ListForSeller retrieves orders placed against the seller's products
func (s *orderService) ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListForBuyer retrieves the buyer's own orders
func (s *orderService) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
