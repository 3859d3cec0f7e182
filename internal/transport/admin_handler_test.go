package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazaar/internal/domain"
	custommiddleware "bazaar/internal/middleware"
	"bazaar/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAdminService struct {
	dashboard  func(ctx context.Context, actor domain.Actor) (*service.Dashboard, error)
	deleteUser func(ctx context.Context, actor domain.Actor, userID uuid.UUID) error
}

func (s *stubAdminService) Dashboard(ctx context.Context, actor domain.Actor) (*service.Dashboard, error) {
	return s.dashboard(ctx, actor)
}

func (s *stubAdminService) DeleteUser(ctx context.Context, actor domain.Actor, userID uuid.UUID) error {
	return s.deleteUser(ctx, actor, userID)
}

func newAdminRouter(svc service.AdminService) chi.Router {
	handler := NewAdminHandler(svc, zap.NewNop())
	router := chi.NewRouter()
	handler.RegisterRoutes(router,
		custommiddleware.AuthMiddleware(testSecret, zap.NewNop()),
		custommiddleware.RequireAdmin(zap.NewNop()),
	)
	return router
}

func TestAdminHandler_DashboardRequiresAdmin(t *testing.T) {
	// The stub would panic if reached; the role middleware stops the request.
	router := newAdminRouter(&stubAdminService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.New(), false))
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminHandler_DashboardRequiresAuth(t *testing.T) {
	router := newAdminRouter(&stubAdminService{})

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminHandler_Dashboard(t *testing.T) {
	adminID := uuid.New()
	svc := &stubAdminService{
		dashboard: func(ctx context.Context, actor domain.Actor) (*service.Dashboard, error) {
			assert.Equal(t, adminID, actor.ID)
			assert.True(t, actor.Admin)
			return &service.Dashboard{
				Products: []*domain.Product{{ID: uuid.New(), Name: "Paperback"}},
				Users:    []*domain.User{{ID: uuid.New(), Username: "alice"}},
			}, nil
		},
	}
	router := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", bearerToken(t, adminID, true))
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var dashboard service.Dashboard
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dashboard))
	assert.Len(t, dashboard.Products, 1)
	assert.Len(t, dashboard.Users, 1)
}

func TestAdminHandler_DeleteUser(t *testing.T) {
	targetID := uuid.New()
	svc := &stubAdminService{
		deleteUser: func(ctx context.Context, actor domain.Actor, userID uuid.UUID) error {
			assert.Equal(t, targetID, userID)
			return nil
		},
	}
	router := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+targetID.String(), nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.New(), true))
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminHandler_DeleteAdminAccount(t *testing.T) {
	svc := &stubAdminService{
		deleteUser: func(ctx context.Context, actor domain.Actor, userID uuid.UUID) error {
			return service.ErrAdminUndeletable
		},
	}
	router := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+uuid.New().String(), nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.New(), true))
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
