package transport

import (
	"net/http"

	"bazaar/internal/middleware"
	"bazaar/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MessageRequest represents the direct-message payload
type MessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// MessageHandler handles HTTP requests for direct messaging
type MessageHandler struct {
	messageService service.MessageService
	logger         *zap.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService service.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		logger:         logger,
	}
}

// RegisterRoutes registers all messaging routes
func (h *MessageHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/api/messages", h.History)
		r.Post("/api/users/{id}/messages", h.Send)
	})
}

// History returns everything the caller has sent and received, newest first
func (h *MessageHandler) History(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	history, err := h.messageService.History(r.Context(), actor.ID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, history)
}

// Send delivers one message to the user in the path
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	receiverID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req MessageRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}

	message, err := h.messageService.Send(r.Context(), actor.ID, receiverID, req.Content)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Message sent",
		zap.String("sender_id", actor.ID.String()),
		zap.String("receiver_id", receiverID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, message)
}
