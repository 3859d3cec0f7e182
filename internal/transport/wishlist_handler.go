package transport

import (
	"net/http"

	"bazaar/internal/middleware"
	"bazaar/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WishlistHandler handles HTTP requests for wishlist membership
type WishlistHandler struct {
	wishlistService service.WishlistService
	logger          *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// RegisterRoutes registers all wishlist routes
func (h *WishlistHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Put("/{productID}", h.Add)
		r.Delete("/{productID}", h.Remove)
	})
}

// List returns the caller's wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	products, err := h.wishlistService.List(r.Context(), actor.ID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Add puts a product on the caller's wishlist. A duplicate add reports the
// existing membership instead of failing.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	productID, ok := parseID(w, r, "productID")
	if !ok {
		return
	}

	added, err := h.wishlistService.Add(r.Context(), actor.ID, productID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	message := "product already in wishlist"
	if added {
		message = "product added to wishlist"
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"added":   added,
		"message": message,
	})
}

// Remove takes a product off the caller's wishlist. Removing an absent
// product reports that instead of failing.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	productID, ok := parseID(w, r, "productID")
	if !ok {
		return
	}

	removed, err := h.wishlistService.Remove(r.Context(), actor.ID, productID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	message := "product was not in wishlist"
	if removed {
		message = "product removed from wishlist"
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"removed": removed,
		"message": message,
	})
}
