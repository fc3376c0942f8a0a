package service

import "errors"

var (
	// ErrShopperRequired is returned by every store operation attempted
	// without an identified shopper. Nothing is mutated.
	ErrShopperRequired = errors.New("authentication required")

	// ErrEmptyCart rejects a checkout before any persistence attempt.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidShipping wraps the first missing shipping field.
	ErrInvalidShipping = errors.New("invalid shipping details")

	// ErrIllegalTransition is returned when an order status update is not
	// allowed from the order's current status.
	ErrIllegalTransition = errors.New("illegal order status transition")
)
