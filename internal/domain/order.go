package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	// OrderStatusPaymentPending is the only status an order is ever created
	// in. The shopper self-reports that payment was sent; an administrator
	// reconciles it later.
	OrderStatusPaymentPending OrderStatus = "payment_pending_confirmation"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus maps a wire string to a known status.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case OrderStatusPaymentPending, OrderStatusPaid, OrderStatusCancelled:
		return OrderStatus(raw), nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// CanTransitionTo encodes the lifecycle: pending moves to paid or cancelled,
// terminal states move nowhere.
func CanTransitionTo(from, to OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	return from == OrderStatusPaymentPending && (to == OrderStatusPaid || to == OrderStatusCancelled)
}

// ShippingDetails is the checkout form, embedded verbatim into each order
// item snapshot.
type ShippingDetails struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes,omitempty"`
}

// Validate checks that every required field is a non-empty string. Notes is
// optional.
func (s ShippingDetails) Validate() error {
	required := []struct {
		field, value string
	}{
		{"name", s.Name},
		{"email", s.Email},
		{"phone", s.Phone},
		{"address", s.Address},
		{"city", s.City},
		{"postal_code", s.PostalCode},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("shipping field %q is required", r.field)
		}
	}
	return nil
}

// OrderItem is one snapshot line. It copies product data rather than
// referencing it so later catalog edits never alter a historical order.
type OrderItem struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	UnitPricePaise int64           `json:"unit_price_paise"`
	Quantity       int             `json:"quantity"`
	Image          string          `json:"image"`
	Shipping       ShippingDetails `json:"shipping"`
}

type Order struct {
	ID            uuid.UUID   `json:"id"`
	ShopperID     string      `json:"shopper_id"`
	CustomerEmail string      `json:"customer_email"`
	TotalPaise    int64       `json:"total_paise"`
	Currency      string      `json:"currency"`
	Status        OrderStatus `json:"status"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// SnapshotItems freezes the cart's lines into order items, charging the
// discount price when present and carrying the shipping form on every item.
func SnapshotItems(cart *Cart, shipping ShippingDetails) []OrderItem {
	items := make([]OrderItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		items = append(items, OrderItem{
			ProductID:      l.ProductID,
			Name:           l.Name,
			UnitPricePaise: l.UnitPricePaise(),
			Quantity:       l.Quantity,
			Image:          l.Image,
			Shipping:       shipping,
		})
	}
	return items
}
