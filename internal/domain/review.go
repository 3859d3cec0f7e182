package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for reviews. The stored value is always within them.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is an immutable comment-plus-rating left on a product. Anyone who is
// logged in may review any product, the seller included.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
