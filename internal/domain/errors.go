package domain

import "errors"

var (
	// ErrUnknownProduct is returned when a product id cannot be resolved
	// against the catalog. Callers decide whether that is fatal.
	ErrUnknownProduct = errors.New("product not found")

	// ErrInvalidQuantity is returned when a cart mutation is asked to add
	// fewer than one unit. The UI is expected to pre-validate; the cart
	// re-validates defensively.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidShipping is returned when a negative shipping fee is supplied.
	ErrInvalidShipping = errors.New("shipping fee cannot be negative")

	// ErrEmptyCart rejects checkout of a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoSavedCart is returned by load when no snapshot exists yet.
	ErrNoSavedCart = errors.New("no saved cart found")
)
