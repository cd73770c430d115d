package product

import "errors"

// Error kinds surfaced by the storage layer. Handlers map these onto HTTP
// statuses; the repositories wrap them with %w so callers use errors.Is.
var (
	// ErrNotFound: the operation targeted a product id that does not exist.
	ErrNotFound = errors.New("product not found")

	// ErrInvalidInput: structurally invalid fields or a malformed adjustment.
	// Raised before any transaction is opened, so it has no side effects.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientStock: an "out" movement would drive quantity below zero
	// while the negative-stock floor is enforced.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrTxFailed: the engine failed to commit. The transaction was rolled
	// back; no partial effect is left behind. Never retried here.
	ErrTxFailed = errors.New("transaction failed")
)
