package transport

import (
	"net/http"

	"bazaar/internal/domain"
	"bazaar/internal/middleware"
	"bazaar/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderStatusRequest represents the status update payload
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending shipped completed cancelled"`
}

// OrderHandler handles HTTP requests for the purchase workflow
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/products/{id}/buy", h.Buy)
		r.Patch("/api/orders/{id}/status", h.UpdateStatus)
		r.Get("/api/orders", h.List)
	})
}

// Buy places an order for a product
func (h *OrderHandler) Buy(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	productID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Buy(r.Context(), actor.ID, productID)
	if err != nil {
		h.logger.Debug("Buy failed", zap.Error(err))
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("buyer_id", actor.ID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// UpdateStatus advances an order's status (seller only)
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	orderID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req OrderStatusRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}

	err := h.orderService.UpdateStatus(r.Context(), actor, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "order status updated"})
}

// List returns the caller's orders, as buyer by default or as seller with
// ?role=seller
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var (
		orders []*domain.Order
		err    error
	)

	if r.URL.Query().Get("role") == "seller" {
		orders, err = h.orderService.ListForSeller(r.Context(), actor.ID)
	} else {
		orders, err = h.orderService.ListForBuyer(r.Context(), actor.ID)
	}

	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}
