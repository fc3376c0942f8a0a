package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Moulipolnati/Anika/internal/domain"
	"github.com/Moulipolnati/Anika/internal/events"
	"github.com/Moulipolnati/Anika/internal/repository"
)

const orderCurrency = "INR"

// CheckoutService drives the order lifecycle: a cart snapshot becomes one
// order row in payment_pending_confirmation, which an administrator later
// moves to paid or cancelled. This is a manual-payment flow; the order is
// created on the shopper's self-reported confirmation and reconciled by an
// administrator, not by a gateway callback.
type CheckoutService struct {
	orders    repository.OrderRepository
	cart      *CartService
	publisher events.OrderPublisher
}

func NewCheckoutService(orders repository.OrderRepository, cart *CartService, publisher events.OrderPublisher) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		cart:      cart,
		publisher: publisher,
	}
}

// SubmitOrder validates the shipping form, snapshots the cart into a new
// pending order, and clears the cart only after the order row is confirmed
// persisted. A persistence failure leaves the cart untouched so the shopper
// does not lose their selection.
func (s *CheckoutService) SubmitOrder(ctx context.Context, shopperID, identityEmail string, shipping domain.ShippingDetails) (*domain.Order, error) {
	if shopperID == "" {
		return nil, ErrShopperRequired
	}

	// The identity email takes precedence for order contact; the form email
	// is the fallback for identities without one.
	contactEmail := identityEmail
	if contactEmail == "" {
		contactEmail = shipping.Email
	}
	if shipping.Email == "" {
		shipping.Email = identityEmail
	}

	// Validation happens before any remote call.
	if err := shipping.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShipping, err)
	}

	cart, err := s.cart.GetCart(ctx, shopperID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	now := time.Now()
	order := &domain.Order{
		ID:            uuid.New(),
		ShopperID:     shopperID,
		CustomerEmail: contactEmail,
		TotalPaise:    cart.TotalPaise(),
		Currency:      orderCurrency,
		Status:        domain.OrderStatusPaymentPending,
		Items:         domain.SnapshotItems(cart, shipping),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		// The cart must survive a failed submission.
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// The order row is confirmed; clearing the cart may now proceed. A clear
	// failure does not undo the order, the shopper just sees a stale cart.
	if err := s.cart.Clear(ctx, shopperID); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("failed to clear cart after order placement")
	}

	s.publishAsync(func(ctx context.Context) error {
		return s.publisher.OrderPlaced(ctx, order)
	})

	return order, nil
}

// UpdateOrderStatus is the administrator transition. Only
// payment_pending_confirmation -> paid | cancelled is legal; both targets
// are terminal.
func (s *CheckoutService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if !domain.CanTransitionTo(previous, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, previous, next)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, previous, next); err != nil {
		return nil, err
	}

	order.Status = next
	s.publishAsync(func(ctx context.Context) error {
		return s.publisher.OrderStatusChanged(ctx, order, previous)
	})

	return order, nil
}

// GetOrderForShopper fetches one order, hiding other shoppers' orders behind
// not-found.
func (s *CheckoutService) GetOrderForShopper(ctx context.Context, shopperID string, orderID uuid.UUID) (*domain.Order, error) {
	if shopperID == "" {
		return nil, ErrShopperRequired
	}

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ShopperID != shopperID {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, shopperID string) ([]*domain.Order, error) {
	if shopperID == "" {
		return nil, ErrShopperRequired
	}
	return s.orders.ListOrdersByShopper(ctx, shopperID)
}

// ListAllOrders backs the admin console listing.
func (s *CheckoutService) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.ListOrders(ctx)
}

// publishAsync emits an event without tying its fate to the request. The
// order row is the source of truth; a lost event is logged, not retried.
func (s *CheckoutService) publishAsync(publish func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := publish(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to publish order event")
		}
	}()
}
