package transport

import (
	"net/http"

	"bazaar/internal/middleware"
	"bazaar/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminHandler handles HTTP requests for the admin surface
type AdminHandler struct {
	adminService service.AdminService
	logger       *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// RegisterRoutes registers all admin routes behind both the auth and the
// admin-role middleware.
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Get("/dashboard", h.Dashboard)
		r.Delete("/users/{id}", h.DeleteUser)
	})
}

// Dashboard returns the admin overview of all products and users
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	dashboard, err := h.adminService.Dashboard(r.Context(), actor)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, dashboard)
}

// DeleteUser removes a non-admin account and everything it owns
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	userID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), actor, userID); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("User deleted",
		zap.String("user_id", userID.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
