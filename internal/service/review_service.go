package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrEmptyContent  = errors.New("content must not be empty")
)

// ReviewService defines the interface for the review subsystem
type ReviewService interface {
	Add(ctx context.Context, authorID, productID uuid.UUID, content string, rating int) (*domain.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// Add appends an immutable review. Any authenticated user may review any
// product, the seller included. Ratings outside [1,5] are rejected outright.
func (s *reviewService) Add(ctx context.Context, authorID, productID uuid.UUID, content string, rating int) (*domain.Review, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, ErrInvalidRating
	}
	if content == "" {
		return nil, ErrEmptyContent
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:        uuid.New(),
		ProductID: productID,
		AuthorID:  authorID,
		Content:   content,
		Rating:    rating,
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}
