package http

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type contextKey string

const (
	shopperIDKey    contextKey = "shopper_id"
	shopperEmailKey contextKey = "shopper_email"
	requestIDKey    contextKey = "request_id"
)

// ShopperAuthMiddleware lifts the identity headers set by the upstream auth
// proxy into the request context. Routes stay reachable; handlers that need
// an identified shopper reject requests without one.
func ShopperAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if shopperID := r.Header.Get("X-Shopper-ID"); shopperID != "" {
			ctx = context.WithValue(ctx, shopperIDKey, shopperID)
		}
		if email := r.Header.Get("X-Shopper-Email"); email != "" {
			ctx = context.WithValue(ctx, shopperEmailKey, email)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuthMiddleware gates the admin console routes behind a shared token.
// An empty configured token disables the admin surface entirely.
func AdminAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || r.Header.Get("X-Admin-Token") != token {
				respondError(w, http.StatusForbidden, "forbidden", "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func getShopperIDFromContext(ctx context.Context) string {
	if shopperID, ok := ctx.Value(shopperIDKey).(string); ok {
		return shopperID
	}
	return ""
}

func getShopperEmailFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(shopperEmailKey).(string); ok {
		return email
	}
	return ""
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}
