package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireAdmin middleware gates a route group to admin users. Finer-grained
// ownership checks live in the authz package and run inside the services.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isAdmin, ok := r.Context().Value(IsAdminKey).(bool)
			if !ok || !isAdmin {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("path", r.URL.Path),
				)
				respondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
