package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Actor is the authenticated identity performing an operation. It is always
// passed explicitly into services; there is no process-wide current user.
type Actor struct {
	ID    uuid.UUID
	Admin bool
}

// ActorFor builds the acting identity for a user.
func ActorFor(u *User) Actor {
	return Actor{ID: u.ID, Admin: u.IsAdmin}
}
