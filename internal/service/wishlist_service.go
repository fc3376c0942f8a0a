package service

import (
	"context"
	"errors"
	"time"

	"github.com/Moulipolnati/Anika/internal/domain"
	"github.com/Moulipolnati/Anika/internal/repository"
)

// WishlistService holds a shopper's saved-for-later product set. Duplicate
// adds are benign, removes of absent entries are no-ops.
type WishlistService struct {
	repo     repository.WishlistRepository
	products repository.ProductRepository
}

func NewWishlistService(repo repository.WishlistRepository, products repository.ProductRepository) *WishlistService {
	return &WishlistService{
		repo:     repo,
		products: products,
	}
}

func (s *WishlistService) GetWishlist(ctx context.Context, shopperID string) (*domain.Wishlist, error) {
	if shopperID == "" {
		return nil, ErrShopperRequired
	}
	return s.repo.GetWishlist(ctx, shopperID)
}

// GetWishlistProducts resolves the wishlist into renderable products. A
// product that has since been deleted degrades to placeholder display data
// instead of failing the whole page.
func (s *WishlistService) GetWishlistProducts(ctx context.Context, shopperID string) ([]*domain.Product, error) {
	wishlist, err := s.GetWishlist(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(wishlist.Entries))
	for _, entry := range wishlist.Entries {
		product, err := s.products.GetProduct(ctx, entry.ProductID)
		if errors.Is(err, repository.ErrProductNotFound) {
			fallback := &domain.Product{ID: entry.ProductID, Name: "Unavailable product"}
			fallback.Normalize()
			products = append(products, fallback)
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// AddItem saves a product. Adding one that is already saved succeeds without
// creating a duplicate entry.
func (s *WishlistService) AddItem(ctx context.Context, shopperID, productID string) error {
	if shopperID == "" {
		return ErrShopperRequired
	}

	// Verify the product exists before saving a reference to it.
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return err
	}

	return s.repo.AddEntry(ctx, domain.WishlistEntry{
		ShopperID: shopperID,
		ProductID: productID,
		AddedAt:   time.Now(),
	})
}

// RemoveItem deletes the entry; removing an absent entry is a no-op.
func (s *WishlistService) RemoveItem(ctx context.Context, shopperID, productID string) error {
	if shopperID == "" {
		return ErrShopperRequired
	}
	return s.repo.RemoveEntry(ctx, shopperID, productID)
}

// Toggle adds the product when absent and removes it when present. Returns
// whether the product is wishlisted after the call.
func (s *WishlistService) Toggle(ctx context.Context, shopperID, productID string) (bool, error) {
	if shopperID == "" {
		return false, ErrShopperRequired
	}

	wishlist, err := s.repo.GetWishlist(ctx, shopperID)
	if err != nil {
		return false, err
	}

	if wishlist.Contains(productID) {
		if err := s.RemoveItem(ctx, shopperID, productID); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := s.AddItem(ctx, shopperID, productID); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes every entry for the shopper.
func (s *WishlistService) Clear(ctx context.Context, shopperID string) error {
	if shopperID == "" {
		return ErrShopperRequired
	}
	return s.repo.DeleteWishlist(ctx, shopperID)
}
