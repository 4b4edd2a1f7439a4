package repository

import "errors"

// Sentinel errors for the cart/order stock rules. Services translate these
// into user-facing messages; anything else is an internal failure.
var (
	ErrProductNotFound = errors.New("product not found or inactive")

	// ErrInsufficientStock: requested quantity alone exceeds stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInsufficientStockAdd: existing line plus requested quantity
	// exceeds stock. Distinct so the user sees why the add failed.
	ErrInsufficientStockAdd = errors.New("insufficient stock for combined quantity")
)
