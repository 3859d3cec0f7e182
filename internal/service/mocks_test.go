package service

import (
	"context"
	"sort"
	"sync"

	"bazaar/internal/domain"
	"bazaar/internal/repository"

	"github.com/google/uuid"
)

// Map-backed repository fakes shared by the service tests.

type mockUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uuid.UUID]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

type mockProductRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		copied := *p
		products = append(products, &copied)
	}
	return products, nil
}

func (m *mockProductRepository) SwapStatus(ctx context.Context, id uuid.UUID, from, to domain.ProductStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	return true, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

type mockReviewRepository struct {
	mu      sync.Mutex
	reviews []*domain.Review
}

func newMockReviewRepository() *mockReviewRepository {
	return &mockReviewRepository{}
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reviews := []*domain.Review{}
	for _, r := range m.reviews {
		if r.ProductID == productID {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

type mockMessageRepository struct {
	mu       sync.Mutex
	messages []*domain.Message
}

func newMockMessageRepository() *mockMessageRepository {
	return &mockMessageRepository{}
}

func (m *mockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockMessageRepository) ListReceived(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error) {
	return m.list(func(msg *domain.Message) bool { return msg.ReceiverID == userID }), nil
}

func (m *mockMessageRepository) ListSent(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error) {
	return m.list(func(msg *domain.Message) bool { return msg.SenderID == userID }), nil
}

// list mirrors the SQL ordering: newest first.
func (m *mockMessageRepository) list(match func(*domain.Message) bool) []*domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	messages := []*domain.Message{}
	for _, msg := range m.messages {
		if match(msg) {
			messages = append(messages, msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].SentAt.After(messages[j].SentAt)
	})
	return messages
}

type mockOrderRepository struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.Order

	// afterFind, when set, runs after a FindByID snapshot is taken. Tests use
	// it to interleave a concurrent write between a read and its update.
	afterFind func()
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	o, ok := m.orders[id]
	if !ok {
		m.mu.Unlock()
		return nil, repository.ErrOrderNotFound
	}
	copied := *o
	m.mu.Unlock()
	if m.afterFind != nil {
		m.afterFind()
	}
	return &copied, nil
}

func (m *mockOrderRepository) SwapStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (m *mockOrderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Order, error) {
	return m.listWhere(func(o *domain.Order) bool { return o.SellerID == sellerID }), nil
}

func (m *mockOrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error) {
	return m.listWhere(func(o *domain.Order) bool { return o.BuyerID == buyerID }), nil
}

func (m *mockOrderRepository) listWhere(match func(*domain.Order) bool) []*domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := []*domain.Order{}
	for _, o := range m.orders {
		if match(o) {
			copied := *o
			orders = append(orders, &copied)
		}
	}
	return orders
}

type mockWishlistRepository struct {
	mu      sync.Mutex
	entries map[uuid.UUID]map[uuid.UUID]bool
}

func newMockWishlistRepository() *mockWishlistRepository {
	return &mockWishlistRepository{entries: make(map[uuid.UUID]map[uuid.UUID]bool)}
}

func (m *mockWishlistRepository) Add(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries[userID] == nil {
		m.entries[userID] = make(map[uuid.UUID]bool)
	}
	if m.entries[userID][productID] {
		return false, nil
	}
	m.entries[userID][productID] = true
	return true, nil
}

func (m *mockWishlistRepository) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.entries[userID][productID] {
		return false, nil
	}
	delete(m.entries[userID], productID)
	return true, nil
}

func (m *mockWishlistRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := []*domain.Product{}
	for productID := range m.entries[userID] {
		products = append(products, &domain.Product{ID: productID})
	}
	return products, nil
}

func (m *mockWishlistRepository) count(userID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries[userID])
}

type mockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]uuid.UUID
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]uuid.UUID)}
}

func (m *mockSessionStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := uuid.New().String()
	m.sessions[token] = userID
	return token, nil
}

func (m *mockSessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if userID, ok := m.sessions[token]; ok {
		return userID, nil
	}
	return uuid.Nil, repository.ErrUserNotFound
}

func (m *mockSessionStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}
