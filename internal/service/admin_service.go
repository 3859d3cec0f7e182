package service

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/authz"
	"bazaar/internal/domain"
	"bazaar/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrAdminUndeletable = errors.New("admin users cannot be deleted")
)

// Dashboard is the admin overview view model
type Dashboard struct {
	Products []*domain.Product `json:"products"`
	Users    []*domain.User    `json:"users"`
}

// AdminService defines the interface for admin-only operations
type AdminService interface {
	Dashboard(ctx context.Context, actor domain.Actor) (*Dashboard, error)
	DeleteUser(ctx context.Context, actor domain.Actor, userID uuid.UUID) error
}

type adminService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

// NewAdminService creates a new instance of AdminService
func NewAdminService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// Dashboard returns every product and user for the admin overview
func (s *adminService) Dashboard(ctx context.Context, actor domain.Actor) (*Dashboard, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &Dashboard{Products: products, Users: users}, nil
}

// DeleteUser removes an account and everything it owns (products, reviews,
// messages, orders, wishlist entries cascade in the schema). Admin accounts
// cannot be deleted, not even by other admins.
func (s *adminService) DeleteUser(ctx context.Context, actor domain.Actor, userID uuid.UUID) error {
	if err := authz.RequireAdmin(actor); err != nil {
		return err
	}

	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if target.IsAdmin {
		return ErrAdminUndeletable
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
