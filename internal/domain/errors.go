package domain

import "errors"

// Error kinds surfaced by the resolvers. Callers match them with errors.Is;
// the concrete error always wraps one of these with request-specific context.
var (
	// ErrNotFound is returned when a referenced wallet, transaction, stock,
	// asset, budget plan, note or task does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for requests that can never succeed as sent
	// (same wallet on both sides of a transfer, stock trade on a non-Stock wallet, unknown enum)
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientFunds is returned when a stock purchase or transfer exceeds the
	// cash or balance available on the source side
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStorageUnavailable is returned when the persistence layer fails
	ErrStorageUnavailable = errors.New("storage unavailable")
)
