package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Moulipolnati/Anika/internal/domain"
)

// Checkout is the slice of the checkout service these handlers consume.
type Checkout interface {
	SubmitOrder(ctx context.Context, shopperID, identityEmail string, shipping domain.ShippingDetails) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) (*domain.Order, error)
	GetOrderForShopper(ctx context.Context, shopperID string, orderID uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, shopperID string) ([]*domain.Order, error)
	ListAllOrders(ctx context.Context) ([]*domain.Order, error)
}

type OrdersHandler struct {
	checkout Checkout
	timeout  time.Duration
}

func NewOrdersHandler(checkout Checkout, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

type CheckoutRequestDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

type OrderResponseDTO struct {
	ID            string             `json:"id"`
	ShopperID     string             `json:"shopper_id"`
	CustomerEmail string             `json:"customer_email"`
	TotalPaise    int64              `json:"total_paise"`
	TotalDisplay  string             `json:"total_display"`
	Currency      string             `json:"currency"`
	Status        string             `json:"status"`
	Items         []domain.OrderItem `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func toOrderResponse(order *domain.Order) OrderResponseDTO {
	return OrderResponseDTO{
		ID:            order.ID.String(),
		ShopperID:     order.ShopperID,
		CustomerEmail: order.CustomerEmail,
		TotalPaise:    order.TotalPaise,
		TotalDisplay:  domain.FormatINR(order.TotalPaise),
		Currency:      order.Currency,
		Status:        order.Status.String(),
		Items:         order.Items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func toOrderResponses(orders []*domain.Order) []OrderResponseDTO {
	resp := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}

// SubmitOrder creates the order in payment_pending_confirmation on the
// shopper's self-reported payment confirmation. No gateway is involved; an
// administrator reconciles the order later.
func (h *OrdersHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to check out")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	shipping := domain.ShippingDetails{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Notes:      req.Notes,
	}

	order, err := h.checkout.SubmitOrder(ctx, shopperID, getShopperEmailFromContext(r.Context()), shipping)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to view your orders")
		return
	}

	orders, err := h.checkout.ListOrders(ctx, shopperID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopperID := getShopperIDFromContext(r.Context())
	if shopperID == "" {
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to view your orders")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	order, err := h.checkout.GetOrderForShopper(ctx, shopperID, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

// ListAllOrders backs the admin console. The route is mounted behind the
// admin guard.
func (h *OrdersHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.checkout.ListAllOrders(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponses(orders))
}

// UpdateStatus is the administrator transition to paid or cancelled.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}

	order, err := h.checkout.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}
