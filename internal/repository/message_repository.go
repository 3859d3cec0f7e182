package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bazaar/internal/domain"

	"github.com/google/uuid"
)

// MessageRepository defines the interface for direct-message data access.
// Messages are write-once and never deleted.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListReceived(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error)
	ListSent(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error)
}

type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new instance of MessageRepository
func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create persists one directed message
func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, receiver_id, content, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		message.ID,
		message.SenderID,
		message.ReceiverID,
		message.Content,
		message.SentAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// ListReceived retrieves messages addressed to the user, newest first
func (r *messageRepository) ListReceived(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, content, sent_at
		FROM messages
		WHERE receiver_id = $1
		ORDER BY sent_at DESC
	`

	return r.list(ctx, query, userID)
}

// ListSent retrieves messages the user sent, newest first
func (r *messageRepository) ListSent(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, content, sent_at
		FROM messages
		WHERE sender_id = $1
		ORDER BY sent_at DESC
	`

	return r.list(ctx, query, userID)
}

func (r *messageRepository) list(ctx context.Context, query string, userID uuid.UUID) ([]*domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []*domain.Message{}
	for rows.Next() {
		message := &domain.Message{}
		err := rows.Scan(
			&message.ID,
			&message.SenderID,
			&message.ReceiverID,
			&message.Content,
			&message.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
