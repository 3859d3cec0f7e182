package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"bazaar/internal/authz"
	"bazaar/internal/domain"
	"bazaar/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory    = errors.New("unknown product category")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrProductUnavailable = errors.New("product is no longer available")
)

// ImageStore is the file-storage collaborator for product images
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(name string) error
}

// ImageUpload carries an uploaded product image into the service
type ImageUpload struct {
	Filename string
	Data     io.Reader
}

// CreateProductInput carries the validated listing fields
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    domain.Category
	Image       *ImageUpload
}

// ProductDetail is the product page view model
type ProductDetail struct {
	Product *domain.Product  `json:"product"`
	Reviews []*domain.Review `json:"reviews"`
}

// CatalogService defines the interface for catalog management
type CatalogService interface {
	Create(ctx context.Context, sellerID uuid.UUID, in CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDetail, error)
	List(ctx context.Context) ([]*domain.Product, error)
	MarkPurchased(ctx context.Context, actor domain.Actor, productID uuid.UUID) error
	Delete(ctx context.Context, actor domain.Actor, productID uuid.UUID) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	images      ImageStore
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	images ImageStore,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		images:      images,
	}
}

// Create lists a new product for the seller. The image, if any, goes through
// the image store, which enforces the extension allow-list.
func (s *catalogService) Create(ctx context.Context, sellerID uuid.UUID, in CreateProductInput) (*domain.Product, error) {
	if !in.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if in.Price < 0 {
		return nil, ErrInvalidPrice
	}

	var storedImage string
	if in.Image != nil {
		name, err := s.images.Save(ctx, in.Image.Filename, in.Image.Data)
		if err != nil {
			return nil, err
		}
		storedImage = name
	}

	product := &domain.Product{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       storedImage,
		Status:      domain.ProductAvailable,
		SellerID:    sellerID,
		CreatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// Get retrieves a product with its reviews
func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*ProductDetail, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	return &ProductDetail{Product: product, Reviews: reviews}, nil
}

// List retrieves all products
func (s *catalogService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// MarkPurchased moves a product to purchased. Only the seller may do this;
// the write is conditional so two racing calls cannot both succeed.
func (s *catalogService) MarkPurchased(ctx context.Context, actor domain.Actor, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := authz.RequireOwner(actor, product.SellerID); err != nil {
		return err
	}

	swapped, err := s.productRepo.SwapStatus(ctx, productID, domain.ProductAvailable, domain.ProductPurchased)
	if err != nil {
		return fmt.Errorf("failed to mark product purchased: %w", err)
	}
	if !swapped {
		return ErrProductUnavailable
	}

	return nil
}

// Delete removes a product. Sellers may delete their own listings; admins may
// delete any. Dependent reviews, orders, and wishlist entries cascade.
func (s *catalogService) Delete(ctx context.Context, actor domain.Actor, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := authz.RequireOwnerOrAdmin(actor, product.SellerID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if product.Image != "" {
		// Best effort: the listing is gone either way.
		_ = s.images.Remove(product.Image)
	}

	return nil
}
