package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/internal/authz"
	"bazaar/internal/domain"
	"bazaar/internal/repository"
	"bazaar/internal/storage"
)

func newTestOrderService(t *testing.T) (OrderService, CatalogService, *mockOrderRepository, *mockProductRepository) {
	t.Helper()
	orderRepo := newMockOrderRepository()
	productRepo := newMockProductRepository()
	reviewRepo := newMockReviewRepository()
	images := storage.NewImageStore(t.TempDir(), 1<<20)
	orders := NewOrderService(orderRepo, productRepo)
	catalog := NewCatalogService(productRepo, reviewRepo, images)
	return orders, catalog, orderRepo, productRepo
}

func listProduct(t *testing.T, catalog CatalogService, sellerID uuid.UUID) *domain.Product {
	t.Helper()
	product, err := catalog.Create(context.Background(), sellerID, CreateProductInput{
		Name: "Headphones", Price: 45, Category: domain.CategoryElectronics,
	})
	require.NoError(t, err)
	return product
}

func TestOrderService_BuyCreatesPendingOrder(t *testing.T) {
	orders, catalog, _, _ := newTestOrderService(t)
	ctx := context.Background()

	sellerID := uuid.New()
	buyerID := uuid.New()
	product := listProduct(t, catalog, sellerID)

	order, err := orders.Buy(ctx, buyerID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, buyerID, order.BuyerID)
	assert.Equal(t, sellerID, order.SellerID)
	assert.Equal(t, product.ID, order.ProductID)
}

func TestOrderService_BuyOwnProductFails(t *testing.T) {
	orders, catalog, orderRepo, _ := newTestOrderService(t)
	ctx := context.Background()

	sellerID := uuid.New()
	product := listProduct(t, catalog, sellerID)

	_, err := orders.Buy(ctx, sellerID, product.ID)
	assert.ErrorIs(t, err, ErrSelfPurchase)

	// The rejected purchase must not have created an order.
	placed, err := orderRepo.ListByBuyer(ctx, sellerID)
	require.NoError(t, err)
	assert.Empty(t, placed)
}

func TestOrderService_BuyPurchasedProductFails(t *testing.T) {
	orders, catalog, _, _ := newTestOrderService(t)
	ctx := context.Background()

	sellerID := uuid.New()
	product := listProduct(t, catalog, sellerID)

	require.NoError(t, catalog.MarkPurchased(ctx, domain.Actor{ID: sellerID}, product.ID))

	_, err := orders.Buy(ctx, uuid.New(), product.ID)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestOrderService_BuyMissingProductFails(t *testing.T) {
	orders, _, _, _ := newTestOrderService(t)

	_, err := orders.Buy(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

// Two users trade: the seller lists, the buyer orders, the seller ships, and
// the buyer's attempt to mutate the order is refused.
func TestOrderService_PurchaseLifecycle(t *testing.T) {
	orders, catalog, orderRepo, _ := newTestOrderService(t)
	ctx := context.Background()

	sellerID := uuid.New()
	buyerID := uuid.New()
	seller := domain.Actor{ID: sellerID}
	buyer := domain.Actor{ID: buyerID}

	product := listProduct(t, catalog, sellerID)

	order, err := orders.Buy(ctx, buyerID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, order.Status)

	// The seller advances the order.
	require.NoError(t, orders.UpdateStatus(ctx, seller, order.ID, domain.OrderShipped))

	stored, err := orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, stored.Status)

	// The buyer may not, even toward a legal status.
	err = orders.UpdateStatus(ctx, buyer, order.ID, domain.OrderCancelled)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	stored, err = orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, stored.Status)

	// Both sides see the order in their listing.
	asSeller, err := orders.ListForSeller(ctx, sellerID)
	require.NoError(t, err)
	require.Len(t, asSeller, 1)

	asBuyer, err := orders.ListForBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, asBuyer, 1)
	assert.Equal(t, order.ID, asBuyer[0].ID)
}

func TestOrderService_UpdateStatusRejectsUnknownStatus(t *testing.T) {
	orders, catalog, _, _ := newTestOrderService(t)
	ctx := context.Background()

	sellerID := uuid.New()
	product := listProduct(t, catalog, sellerID)

	order, err := orders.Buy(ctx, uuid.New(), product.ID)
	require.NoError(t, err)

	err = orders.UpdateStatus(ctx, domain.Actor{ID: sellerID}, order.ID, "delivered")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrderService_UpdateStatusRejectsIllegalTransitions(t *testing.T) {
	orders, catalog, _, _ := newTestOrderService(t)
	ctx := context.Background()

	sellerID := uuid.New()
	seller := domain.Actor{ID: sellerID}
	product := listProduct(t, catalog, sellerID)

	order, err := orders.Buy(ctx, uuid.New(), product.ID)
	require.NoError(t, err)

	// pending cannot skip straight to completed.
	err = orders.UpdateStatus(ctx, seller, order.ID, domain.OrderCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, orders.UpdateStatus(ctx, seller, order.ID, domain.OrderShipped))
	require.NoError(t, orders.UpdateStatus(ctx, seller, order.ID, domain.OrderCompleted))

	// Completed is terminal.
	err = orders.UpdateStatus(ctx, seller, order.ID, domain.OrderCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderService_UpdateStatusLosesRace(t *testing.T) {
	orders, catalog, orderRepo, _ := newTestOrderService(t)
	ctx := context.Background()

	sellerID := uuid.New()
	product := listProduct(t, catalog, sellerID)

	order, err := orders.Buy(ctx, uuid.New(), product.ID)
	require.NoError(t, err)

	// Another writer moves the order between our read and our write.
	orderRepo.afterFind = func() {
		orderRepo.afterFind = nil
		swapped, err := orderRepo.SwapStatus(ctx, order.ID, domain.OrderPending, domain.OrderCancelled)
		require.NoError(t, err)
		require.True(t, swapped)
	}

	// The stale update targeted pending -> shipped; the compare-and-swap
	// refuses it instead of overwriting the cancellation.
	err = orders.UpdateStatus(ctx, domain.Actor{ID: sellerID}, order.ID, domain.OrderShipped)
	assert.ErrorIs(t, err, ErrStatusConflict)

	stored, err := orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, stored.Status)
}

func TestOrderService_UpdateStatusMissingOrder(t *testing.T) {
	orders, _, _, _ := newTestOrderService(t)

	err := orders.UpdateStatus(context.Background(), domain.Actor{ID: uuid.New()}, uuid.New(), domain.OrderShipped)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}
