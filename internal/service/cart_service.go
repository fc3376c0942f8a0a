package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/Moulipolnati/Anika/internal/cache"
	"github.com/Moulipolnati/Anika/internal/domain"
	"github.com/Moulipolnati/Anika/internal/repository"
)

// CartService holds a shopper's in-progress selection. Every mutation
// persists first, then invalidates the cache and rereads the authoritative
// state, so the returned cart never runs ahead of what was actually stored.
type CartService struct {
	repo     repository.CartRepository
	products repository.ProductRepository
	cache    cache.CartCache
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, products repository.ProductRepository, cache cache.CartCache) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		cache:    cache,
	}
}

func (s *CartService) GetCart(ctx context.Context, shopperID string) (*domain.Cart, error) {
	if shopperID == "" {
		return nil, ErrShopperRequired
	}

	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(shopperID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, shopperID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Msg("cart cache get failed")
		}

		cart, errGet := s.loadCart(ctx, shopperID)
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(setCtx, shopperID, cart); errSet != nil {
				log.Warn().Err(errSet).Msg("cart cache set failed")
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// loadCart reads the authoritative cart, mapping not-found to an empty cart.
func (s *CartService) loadCart(ctx context.Context, shopperID string) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, shopperID)
	if errors.Is(err, repository.ErrCartNotFound) {
		now := time.Now()
		return &domain.Cart{
			ShopperID: shopperID,
			Lines:     nil,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity of a product to the cart, merging into an existing
// line. Display fields are denormalized from the catalog at add time. The
// merge is read-modify-write against the store; acceptable for a
// single-shopper cart, a concurrent multi-device add can lose an increment.
func (s *CartService) AddItem(ctx context.Context, shopperID, productID string, quantity int) (*domain.Cart, error) {
	if shopperID == "" {
		return nil, ErrShopperRequired
	}
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	line := domain.NewLineFromProduct(product, quantity)
	if err := s.repo.AddLine(ctx, shopperID, line); err != nil {
		return nil, err
	}

	return s.refresh(ctx, shopperID)
}

// UpdateQuantity sets a line's quantity. A quantity below one removes the
// line. Updating an already-absent line is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, shopperID, productID string, quantity int) (*domain.Cart, error) {
	if shopperID == "" {
		return nil, ErrShopperRequired
	}
	if quantity < 1 {
		return s.RemoveItem(ctx, shopperID, productID)
	}

	err := s.repo.UpdateLineQuantity(ctx, shopperID, productID, quantity)
	if err != nil && !errors.Is(err, repository.ErrLineNotFound) && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, err
	}

	return s.refresh(ctx, shopperID)
}

// RemoveItem deletes a line. Removing an absent line is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, shopperID, productID string) (*domain.Cart, error) {
	if shopperID == "" {
		return nil, ErrShopperRequired
	}

	err := s.repo.RemoveLine(ctx, shopperID, productID)
	if err != nil && !errors.Is(err, repository.ErrLineNotFound) && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, err
	}

	return s.refresh(ctx, shopperID)
}

// Clear deletes all of the shopper's lines.
func (s *CartService) Clear(ctx context.Context, shopperID string) error {
	if shopperID == "" {
		return ErrShopperRequired
	}

	err := s.repo.DeleteCart(ctx, shopperID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return err
	}

	s.invalidateCache(shopperID)
	return nil
}

// refresh invalidates the cache and rereads the persisted cart, so the
// caller sees the authoritative state rather than a locally patched one.
func (s *CartService) refresh(ctx context.Context, shopperID string) (*domain.Cart, error) {
	s.invalidateCache(shopperID)
	return s.loadCart(ctx, shopperID)
}

func (s *CartService) invalidateCache(shopperID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, shopperID); err != nil {
		log.Warn().Err(err).Msg("cart cache invalidate failed")
	}
}
