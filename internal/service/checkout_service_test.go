package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moulipolnati/Anika/internal/domain"
	"github.com/Moulipolnati/Anika/internal/events"
	"github.com/Moulipolnati/Anika/internal/repository"
)

func validShipping() domain.ShippingDetails {
	return domain.ShippingDetails{
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		Phone:      "+91 98765 43210",
		Address:    "14 MG Road",
		City:       "Bengaluru",
		PostalCode: "560001",
	}
}

func newTestCheckout() (*CheckoutService, *CartService, *mockOrderRepository, *mockCartRepository, *mockProductRepository) {
	cartRepo := &mockCartRepository{}
	products := testProducts()
	cartSvc := NewCartService(cartRepo, products, &mockCartCache{})
	orders := newMockOrderRepository()
	checkout := NewCheckoutService(orders, cartSvc, events.NopPublisher{})
	return checkout, cartSvc, orders, cartRepo, products
}

func TestSubmitOrder_RequiresShopper(t *testing.T) {
	checkout, _, orders, _, _ := newTestCheckout()

	_, err := checkout.SubmitOrder(context.Background(), "", "", validShipping())

	assert.ErrorIs(t, err, ErrShopperRequired)
	assert.Empty(t, orders.orders)
}

func TestSubmitOrder_EmptyCartRejectedBeforePersistence(t *testing.T) {
	checkout, _, orders, _, _ := newTestCheckout()

	_, err := checkout.SubmitOrder(context.Background(), testShopper, "asha@example.com", validShipping())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.orders, "no order row may exist for an empty-cart submission")
}

func TestSubmitOrder_MissingShippingFieldRejectedBeforeAnyCall(t *testing.T) {
	checkout, cartSvc, orders, _, _ := newTestCheckout()
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, testShopper, "p1", 1)
	require.NoError(t, err)

	shipping := validShipping()
	shipping.City = ""

	_, err = checkout.SubmitOrder(ctx, testShopper, "asha@example.com", shipping)

	assert.ErrorIs(t, err, ErrInvalidShipping)
	assert.Empty(t, orders.orders)

	cart, err := cartSvc.GetCart(ctx, testShopper)
	require.NoError(t, err)
	assert.False(t, cart.IsEmpty(), "a rejected submission must not touch the cart")
}

func TestSubmitOrder_CreatesPendingOrderAndClearsCart(t *testing.T) {
	checkout, cartSvc, orders, _, _ := newTestCheckout()
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, testShopper, "p1", 2)
	require.NoError(t, err)
	cart, err := cartSvc.AddItem(ctx, testShopper, "p2", 1)
	require.NoError(t, err)
	expectedTotal := cart.TotalPaise()

	order, err := checkout.SubmitOrder(ctx, testShopper, "asha@example.com", validShipping())
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPaymentPending, order.Status)
	assert.Equal(t, expectedTotal, order.TotalPaise)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "asha@example.com", order.CustomerEmail)
	require.Len(t, order.Items, 2)
	assert.Equal(t, validShipping(), order.Items[0].Shipping)

	require.Len(t, orders.orders, 1, "exactly one order row")

	after, err := cartSvc.GetCart(ctx, testShopper)
	require.NoError(t, err)
	assert.True(t, after.IsEmpty(), "cart must be cleared after the order is confirmed persisted")
}

func TestSubmitOrder_PersistenceFailureLeavesCartIntact(t *testing.T) {
	checkout, cartSvc, orders, _, _ := newTestCheckout()
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, testShopper, "p1", 2)
	require.NoError(t, err)

	orders.createErr = errors.New("connection reset")

	_, err = checkout.SubmitOrder(ctx, testShopper, "asha@example.com", validShipping())
	require.Error(t, err)

	cart, err := cartSvc.GetCart(ctx, testShopper)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1, "a failed write must not lose the shopper's selection")
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestSubmitOrder_SnapshotSurvivesProductEdits(t *testing.T) {
	checkout, cartSvc, _, _, products := newTestCheckout()
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, testShopper, "p1", 1)
	require.NoError(t, err)

	order, err := checkout.SubmitOrder(ctx, testShopper, "asha@example.com", validShipping())
	require.NoError(t, err)

	// The catalog changes after the purchase.
	products.m.Lock()
	products.products["p1"].Name = "Renamed Saree"
	products.products["p1"].PricePaise = 100
	products.products["p1"].DiscountPricePaise = nil
	products.m.Unlock()

	fetched, err := checkout.GetOrderForShopper(ctx, testShopper, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Silk Saree", fetched.Items[0].Name)
	assert.Equal(t, int64(399900), fetched.Items[0].UnitPricePaise)
}

func TestSubmitOrder_FallsBackToFormEmail(t *testing.T) {
	checkout, cartSvc, _, _, _ := newTestCheckout()
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, testShopper, "p1", 1)
	require.NoError(t, err)

	order, err := checkout.SubmitOrder(ctx, testShopper, "", validShipping())
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", order.CustomerEmail)
}

func TestUpdateOrderStatus_PendingToPaid(t *testing.T) {
	checkout, cartSvc, _, _, _ := newTestCheckout()
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, testShopper, "p1", 1)
	require.NoError(t, err)
	order, err := checkout.SubmitOrder(ctx, testShopper, "asha@example.com", validShipping())
	require.NoError(t, err)

	updated, err := checkout.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusPaid)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, updated.Status)
}

func TestUpdateOrderStatus_TerminalStatesRejectTransitions(t *testing.T) {
	checkout, cartSvc, _, _, _ := newTestCheckout()
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, testShopper, "p1", 1)
	require.NoError(t, err)
	order, err := checkout.SubmitOrder(ctx, testShopper, "asha@example.com", validShipping())
	require.NoError(t, err)

	_, err = checkout.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusCancelled)
	require.NoError(t, err)

	_, err = checkout.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusPaid)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	checkout, _, _, _, _ := newTestCheckout()

	_, err := checkout.UpdateOrderStatus(context.Background(), uuid.New(), domain.OrderStatusPaid)

	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestGetOrderForShopper_HidesForeignOrders(t *testing.T) {
	checkout, cartSvc, _, _, _ := newTestCheckout()
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, testShopper, "p1", 1)
	require.NoError(t, err)
	order, err := checkout.SubmitOrder(ctx, testShopper, "asha@example.com", validShipping())
	require.NoError(t, err)

	_, err = checkout.GetOrderForShopper(ctx, "someone-else", order.ID)

	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}
