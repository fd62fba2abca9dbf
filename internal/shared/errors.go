package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated indicates the caller has no logged-in actor.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUnauthorized indicates the actor lacks the required permission tier.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidVariantPath indicates the selected ids do not form a parent chain of one product.
	ErrInvalidVariantPath = errors.New("invalid variant path")
	// ErrNotPriceable indicates the selection does not end on a priced leaf variant.
	ErrNotPriceable = errors.New("variant not priceable")
	// ErrInvalidQuantity indicates a quantity below one.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrStorageUnavailable wraps persistence failures.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a caller-supplied value failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict indicates a uniqueness violation on create.
	ErrConflict = errors.New("already exists")
)

// Storage wraps a persistence failure so callers can match ErrStorageUnavailable
// while the cause stays visible in the message.
func Storage(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStorageUnavailable, err)
}

// Retryable reports whether a caller-side retry policy may repeat the call.
func Retryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
