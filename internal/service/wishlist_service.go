package service

import (
	"context"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/repository"

	"github.com/google/uuid"
)

// WishlistService defines the interface for wishlist membership. Add and
// Remove never fail on duplicates or absences; they only report whether
// anything changed.
type WishlistService interface {
	Add(ctx context.Context, userID, productID uuid.UUID) (added bool, err error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (removed bool, err error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService creates a new instance of WishlistService
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Add puts a product on the user's wishlist. Adding an already-present
// product reports added=false and is not an error.
func (s *wishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return false, err
	}

	added, err := s.wishlistRepo.Add(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to add to wishlist: %w", err)
	}

	return added, nil
}

// Remove takes a product off the user's wishlist. Removing an absent product
// reports removed=false and is not an error.
func (s *wishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return false, err
	}

	removed, err := s.wishlistRepo.Remove(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to remove from wishlist: %w", err)
	}

	return removed, nil
}

// List retrieves the user's wishlist
func (s *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error) {
	products, err := s.wishlistRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return products, nil
}
