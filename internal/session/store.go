// Package session keeps the server-side session records that bind an opaque
// token to an authenticated user id. Redis is the only store for this state;
// a session that is not in Redis does not exist.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Store persists sessions in Redis with a TTL
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store with the given session lifetime
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create establishes a new session for the user and returns its opaque token
func (s *Store) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.New().String()

	if err := s.client.Set(ctx, keyPrefix+token, userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return token, nil
}

// Get resolves a session token to the user it belongs to
func (s *Store) Get(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return uuid.Nil, ErrSessionNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get session: %w", err)
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session record: %w", err)
	}

	return userID, nil
}

// Delete removes a session. Deleting a missing session is not an error, so
// logout stays idempotent.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
