package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Moulipolnati/Anika/internal/domain"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrLineNotFound    = errors.New("line not found in cart")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrStatusConflict  = errors.New("order status changed concurrently")
)

// CartRepository defines the cart data operations. Consumers define this
// interface, not the MongoDB implementation.
type CartRepository interface {
	GetCart(ctx context.Context, shopperID string) (*domain.Cart, error)
	// AddLine creates the shopper's cart document if absent. When a line for
	// the same product already exists its quantity is incremented by
	// line.Quantity and its display fields refreshed; otherwise the line is
	// appended.
	AddLine(ctx context.Context, shopperID string, line domain.CartLine) error
	UpdateLineQuantity(ctx context.Context, shopperID, productID string, quantity int) error
	// RemoveLine deletes one line. Returns ErrLineNotFound when the line is
	// already absent so callers can treat it as benign.
	RemoveLine(ctx context.Context, shopperID, productID string) error
	DeleteCart(ctx context.Context, shopperID string) error
}

// WishlistRepository defines the wishlist entry operations.
type WishlistRepository interface {
	GetWishlist(ctx context.Context, shopperID string) (*domain.Wishlist, error)
	// AddEntry inserts an entry; inserting one that already exists is a
	// no-op success (unique-index violations are swallowed).
	AddEntry(ctx context.Context, entry domain.WishlistEntry) error
	RemoveEntry(ctx context.Context, shopperID, productID string) error
	DeleteWishlist(ctx context.Context, shopperID string) error
}

// OrderRepository defines the order persistence operations. Orders are never
// deleted.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByShopper(ctx context.Context, shopperID string) ([]*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	// UpdateStatus is conditional on the expected current status so a
	// concurrent admin update loses cleanly with ErrStatusConflict.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error
}

// ProductRepository is the read side of the catalog used by the storefront
// and by cart denormalization.
type ProductRepository interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
}

// ProductFilter narrows a catalog listing. Zero value lists everything.
type ProductFilter struct {
	Category string
	SaleOnly bool
	Search   string
}
