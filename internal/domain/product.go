package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is the fixed set of product categories
type Category string

const (
	CategoryBooks       Category = "books"
	CategoryElectronics Category = "electronics"
	CategoryClothes     Category = "clothes"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBooks, CategoryElectronics, CategoryClothes:
		return true
	}
	return false
}

// ProductStatus is the listing state of a product
type ProductStatus string

const (
	ProductAvailable ProductStatus = "available"
	ProductPurchased ProductStatus = "purchased"
)

// Product represents a listing in the catalog. SellerID is set at creation
// and never changes.
type Product struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	Price       float64       `json:"price" db:"price"`
	Category    Category      `json:"category" db:"category"`
	Image       string        `json:"image,omitempty" db:"image"`
	Status      ProductStatus `json:"status" db:"status"`
	SellerID    uuid.UUID     `json:"seller_id" db:"seller_id"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
