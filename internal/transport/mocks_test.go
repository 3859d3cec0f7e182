package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bazaar/internal/domain"
	custommiddleware "bazaar/internal/middleware"
	"bazaar/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// Function-field stubs for the service interfaces. A nil field means the test
// does not expect that call; reaching it panics and fails loudly.

type stubUserService struct {
	register func(ctx context.Context, username, email, password string) (*domain.User, error)
	login    func(ctx context.Context, email, password string) (string, string, *domain.User, error)
	logout   func(ctx context.Context, sessionToken string) error
	refresh  func(ctx context.Context, sessionToken string) (string, error)
	getByID  func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	list     func(ctx context.Context) ([]*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.register(ctx, username, email, password)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (string, string, *domain.User, error) {
	return s.login(ctx, email, password)
}

func (s *stubUserService) Logout(ctx context.Context, sessionToken string) error {
	return s.logout(ctx, sessionToken)
}

func (s *stubUserService) Refresh(ctx context.Context, sessionToken string) (string, error) {
	return s.refresh(ctx, sessionToken)
}

func (s *stubUserService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.getByID(ctx, userID)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.list(ctx)
}

type stubCatalogService struct {
	create        func(ctx context.Context, sellerID uuid.UUID, in service.CreateProductInput) (*domain.Product, error)
	get           func(ctx context.Context, id uuid.UUID) (*service.ProductDetail, error)
	list          func(ctx context.Context) ([]*domain.Product, error)
	markPurchased func(ctx context.Context, actor domain.Actor, productID uuid.UUID) error
	delete        func(ctx context.Context, actor domain.Actor, productID uuid.UUID) error
}

func (s *stubCatalogService) Create(ctx context.Context, sellerID uuid.UUID, in service.CreateProductInput) (*domain.Product, error) {
	return s.create(ctx, sellerID, in)
}

func (s *stubCatalogService) Get(ctx context.Context, id uuid.UUID) (*service.ProductDetail, error) {
	return s.get(ctx, id)
}

func (s *stubCatalogService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.list(ctx)
}

func (s *stubCatalogService) MarkPurchased(ctx context.Context, actor domain.Actor, productID uuid.UUID) error {
	return s.markPurchased(ctx, actor, productID)
}

func (s *stubCatalogService) Delete(ctx context.Context, actor domain.Actor, productID uuid.UUID) error {
	return s.delete(ctx, actor, productID)
}

type stubReviewService struct {
	add func(ctx context.Context, authorID, productID uuid.UUID, content string, rating int) (*domain.Review, error)
}

func (s *stubReviewService) Add(ctx context.Context, authorID, productID uuid.UUID, content string, rating int) (*domain.Review, error) {
	return s.add(ctx, authorID, productID, content, rating)
}

type stubOrderService struct {
	buy           func(ctx context.Context, buyerID, productID uuid.UUID) (*domain.Order, error)
	updateStatus  func(ctx context.Context, actor domain.Actor, orderID uuid.UUID, status domain.OrderStatus) error
	listForSeller func(ctx context.Context, sellerID uuid.UUID) ([]*domain.Order, error)
	listForBuyer  func(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error)
}

func (s *stubOrderService) Buy(ctx context.Context, buyerID, productID uuid.UUID) (*domain.Order, error) {
	return s.buy(ctx, buyerID, productID)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, actor domain.Actor, orderID uuid.UUID, status domain.OrderStatus) error {
	return s.updateStatus(ctx, actor, orderID, status)
}

func (s *stubOrderService) ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Order, error) {
	return s.listForSeller(ctx, sellerID)
}

func (s *stubOrderService) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error) {
	return s.listForBuyer(ctx, buyerID)
}

// newTestRouter wires a handler onto a fresh router with the real auth
// middleware, the same way the server does.
func newTestRouter(register func(r chi.Router, authMiddleware func(http.Handler) http.Handler)) chi.Router {
	router := chi.NewRouter()
	register(router, custommiddleware.AuthMiddleware(testSecret, zap.NewNop()))
	return router
}

func bearerToken(t *testing.T, userID uuid.UUID, isAdmin bool) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  userID.String(),
		"is_admin": isAdmin,
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doRequest(router chi.Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
