package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Moulipolnati/Anika/internal/cache"
	"github.com/Moulipolnati/Anika/internal/domain"
	"github.com/Moulipolnati/Anika/internal/repository"
)

// mockCartRepository emulates the documented CartRepository contract,
// including the merge-on-add behavior of the Mongo implementation.
type mockCartRepository struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockCartRepository) GetCart(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, repository.ErrCartNotFound
	}
	return m.cart, nil
}

func (m *mockCartRepository) AddLine(_ context.Context, shopperID string, line domain.CartLine) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.cart == nil {
		m.cart = &domain.Cart{ShopperID: shopperID, Lines: []domain.CartLine{line}}
		return nil
	}
	for i := range m.cart.Lines {
		if m.cart.Lines[i].ProductID == line.ProductID {
			m.cart.Lines[i].Quantity += line.Quantity
			m.cart.Lines[i].Name = line.Name
			m.cart.Lines[i].PricePaise = line.PricePaise
			m.cart.Lines[i].DiscountPricePaise = line.DiscountPricePaise
			m.cart.Lines[i].Image = line.Image
			m.cart.Lines[i].Category = line.Category
			return nil
		}
	}
	m.cart.Lines = append(m.cart.Lines, line)
	return nil
}

func (m *mockCartRepository) UpdateLineQuantity(_ context.Context, _ string, productID string, quantity int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.cart == nil {
		return repository.ErrCartNotFound
	}
	for i := range m.cart.Lines {
		if m.cart.Lines[i].ProductID == productID {
			m.cart.Lines[i].Quantity = quantity
			return nil
		}
	}
	return repository.ErrLineNotFound
}

func (m *mockCartRepository) RemoveLine(_ context.Context, _ string, productID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.cart == nil {
		return repository.ErrCartNotFound
	}
	for i, line := range m.cart.Lines {
		if line.ProductID == productID {
			m.cart.Lines = append(m.cart.Lines[:i], m.cart.Lines[i+1:]...)
			return nil
		}
	}
	return repository.ErrLineNotFound
}

func (m *mockCartRepository) DeleteCart(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.cart == nil {
		return repository.ErrCartNotFound
	}
	m.cart = nil
	return nil
}

type mockProductRepository struct {
	m        sync.RWMutex
	products map[string]*domain.Product
	err      error
}

func (m *mockProductRepository) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepository) ListProducts(context.Context, repository.ProductFilter) ([]*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type mockCartCache struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockCartCache) Get(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.cart, nil
}

func (m *mockCartCache) Set(_ context.Context, _ string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = cart
	return m.err
}

func (m *mockCartCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = nil
	return m.err
}

// mockWishlistRepository emulates the unique (shopper, product) index:
// duplicate adds succeed without creating a second entry.
type mockWishlistRepository struct {
	m       sync.RWMutex
	entries []domain.WishlistEntry
	err     error
}

func (m *mockWishlistRepository) GetWishlist(_ context.Context, shopperID string) (*domain.Wishlist, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	entries := make([]domain.WishlistEntry, len(m.entries))
	copy(entries, m.entries)
	return &domain.Wishlist{ShopperID: shopperID, Entries: entries}, nil
}

func (m *mockWishlistRepository) AddEntry(_ context.Context, entry domain.WishlistEntry) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, e := range m.entries {
		if e.ShopperID == entry.ShopperID && e.ProductID == entry.ProductID {
			return nil
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockWishlistRepository) RemoveEntry(_ context.Context, shopperID, productID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, e := range m.entries {
		if e.ShopperID == shopperID && e.ProductID == productID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockWishlistRepository) DeleteWishlist(_ context.Context, shopperID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.ShopperID != shopperID {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

type mockOrderRepository struct {
	m         sync.RWMutex
	orders    map[uuid.UUID]*domain.Order
	createErr error
	err       error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *mockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	stored := *order
	stored.Items = make([]domain.OrderItem, len(order.Items))
	copy(stored.Items, order.Items)
	m.orders[order.ID] = &stored
	return nil
}

func (m *mockOrderRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (m *mockOrderRepository) ListOrdersByShopper(_ context.Context, shopperID string) ([]*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Order
	for _, o := range m.orders {
		if o.ShopperID == shopperID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockOrderRepository) ListOrders(context.Context) ([]*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Order
	for _, o := range m.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockOrderRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	order, ok := m.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	if order.Status != from {
		return repository.ErrStatusConflict
	}
	order.Status = to
	return nil
}
