// Package authz holds the capability checks applied before every mutating
// operation. The predicates are pure functions over the acting identity and
// the owner of the resource; they carry no state of their own.
package authz

import (
	"errors"

	"bazaar/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
)

// RequireOwner permits only the owner of the resource.
func RequireOwner(actor domain.Actor, ownerID uuid.UUID) error {
	if actor.ID != ownerID {
		return ErrForbidden
	}
	return nil
}

// RequireOwnerOrAdmin permits the owner of the resource or any admin.
func RequireOwnerOrAdmin(actor domain.Actor, ownerID uuid.UUID) error {
	if actor.ID == ownerID || actor.Admin {
		return nil
	}
	return ErrForbidden
}

// RequireAdmin permits admins only.
func RequireAdmin(actor domain.Actor) error {
	if !actor.Admin {
		return ErrForbidden
	}
	return nil
}
