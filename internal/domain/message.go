package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is one directed message between two users. Messages are immutable
// and never deleted.
type Message struct {
	ID         uuid.UUID `json:"id" db:"id"`
	SenderID   uuid.UUID `json:"sender_id" db:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id" db:"receiver_id"`
	Content    string    `json:"content" db:"content"`
	SentAt     time.Time `json:"sent_at" db:"sent_at"`
}
