package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Moulipolnati/Anika/internal/domain"
)

// WishlistStore is the slice of the wishlist service this handler consumes.
type WishlistStore interface {
	GetWishlist(ctx context.Context, shopperID string) (*domain.Wishlist, error)
	GetWishlistProducts(ctx context.Context, shopperID string) ([]*domain.Product, error)
	AddItem(ctx context.Context, shopperID, productID string) error
	RemoveItem(ctx context.Context, shopperID, productID string) error
	Toggle(ctx context.Context, shopperID, productID string) (bool, error)
	Clear(ctx context.Context, shopperID string) error
}

type WishlistHandler struct {
	store   WishlistStore
	timeout time.Duration
}

func NewWishlistHandler(store WishlistStore, timeout time.Duration) *WishlistHandler {
	return &WishlistHandler{
		store:   store,
		timeout: timeout,
	}
}

type AddWishlistRequestDTO struct {
	ProductID string `json:"product_id"`
}

type WishlistResponseDTO struct {
	ShopperID string            `json:"shopper_id"`
	Products  []*domain.Product `json:"products"`
}

type ToggleResponseDTO struct {
	ProductID  string `json:"product_id"`
	Wishlisted bool   `json:"wishlisted"`
}

func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to view your wishlist")
		return
	}

	products, err := h.store.GetWishlistProducts(ctx, shopperID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}

	respondJSON(w, http.StatusOK, WishlistResponseDTO{ShopperID: shopperID, Products: products})
}

func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to save items")
		return
	}

	var req AddWishlistRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	// A duplicate add is a success: the product is saved either way.
	if err := h.store.AddItem(ctx, shopperID, req.ProductID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to save items")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	wishlisted, err := h.store.Toggle(ctx, shopperID, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ToggleResponseDTO{ProductID: productID, Wishlisted: wishlisted})
}

func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to update your wishlist")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	if err := h.store.RemoveItem(ctx, shopperID, productID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to update your wishlist")
		return
	}

	if err := h.store.Clear(ctx, shopperID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
