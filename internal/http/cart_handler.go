package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Moulipolnati/Anika/internal/domain"
)

// CartStore is the slice of the cart service this handler consumes.
type CartStore interface {
	GetCart(ctx context.Context, shopperID string) (*domain.Cart, error)
	AddItem(ctx context.Context, shopperID, productID string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, shopperID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, shopperID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, shopperID string) error
}

type CartHandler struct {
	store   CartStore
	timeout time.Duration
}

func NewCartHandler(store CartStore, timeout time.Duration) *CartHandler {
	return &CartHandler{
		store:   store,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// CartResponseDTO carries the cart plus the derived figures the storefront
// renders: the badge count and the total, both computed server-side in paise.
type CartResponseDTO struct {
	ShopperID    string            `json:"shopper_id"`
	Lines        []domain.CartLine `json:"lines"`
	ItemCount    int               `json:"item_count"`
	TotalPaise   int64             `json:"total_paise"`
	TotalDisplay string            `json:"total_display"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func toCartResponse(cart *domain.Cart) CartResponseDTO {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return CartResponseDTO{
		ShopperID:    cart.ShopperID,
		Lines:        lines,
		ItemCount:    cart.ItemCount(),
		TotalPaise:   cart.TotalPaise(),
		TotalDisplay: domain.FormatINR(cart.TotalPaise()),
		UpdatedAt:    cart.UpdatedAt,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to view your cart")
		return
	}

	cart, err := h.store.GetCart(ctx, shopperID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to add items to your cart")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	cart, err := h.store.AddItem(ctx, shopperID, req.ProductID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCartResponse(cart))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to update your cart")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	// Quantity below one removes the line, same as an explicit delete.
	cart, err := h.store.UpdateQuantity(ctx, shopperID, productID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to update your cart")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	cart, err := h.store.RemoveItem(ctx, shopperID, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to update your cart")
		return
	}

	if err := h.store.Clear(ctx, shopperID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
