package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Moulipolnati/Anika/internal/repository"
	"github.com/Moulipolnati/Anika/internal/service"
)

// SignInPath is where a 401 response points the client. Overridden from
// config at startup.
var SignInPath = "/auth/login"

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   string `json:"details,omitempty"`
	SignInURL string `json:"sign_in_url,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	resp := ErrorResponse{
		Error: message,
		Code:  code,
	}
	if status == http.StatusUnauthorized {
		resp.SignInURL = SignInPath
	}
	respondJSON(w, status, resp)
}

// handleServiceError maps the service error taxonomy to HTTP. Anything
// unrecognized is a transient upstream failure: the operation was not
// applied and may be retried.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrShopperRequired):
		respondError(w, http.StatusUnauthorized, "authentication_required", "sign in to continue")
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
	case errors.Is(err, service.ErrInvalidShipping):
		respondError(w, http.StatusBadRequest, "invalid_shipping", err.Error())
	case errors.Is(err, service.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
	case errors.Is(err, repository.ErrStatusConflict):
		respondError(w, http.StatusConflict, "status_conflict", "order status changed, reload and retry")
	default:
		log.Error().Err(err).Msg("storefront operation failed")
		respondError(w, http.StatusBadGateway, "upstream_unavailable", "temporary failure, please retry")
	}
}
