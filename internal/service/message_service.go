package service

import (
	"context"
	"fmt"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/repository"

	"github.com/google/uuid"
)

// MessageHistory is the messages page view model: everything the user has
// sent and received, newest first.
type MessageHistory struct {
	Received []*domain.Message `json:"received"`
	Sent     []*domain.Message `json:"sent"`
}

// MessageService defines the interface for direct messaging
type MessageService interface {
	Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*domain.Message, error)
	History(ctx context.Context, userID uuid.UUID) (*MessageHistory, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService creates a new instance of MessageService
func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Send persists one directed message with a server-side timestamp. The
// receiver must exist.
func (s *messageService) Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*domain.Message, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	receiver, err := s.userRepo.FindByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	message := &domain.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Content:    content,
		SentAt:     time.Now(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return message, nil
}

// History retrieves the user's full send and receive history
func (s *messageService) History(ctx context.Context, userID uuid.UUID) (*MessageHistory, error) {
	received, err := s.messageRepo.ListReceived(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received messages: %w", err)
	}

	sent, err := s.messageRepo.ListSent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent messages: %w", err)
	}

	return &MessageHistory{Received: received, Sent: sent}, nil
}
