/*
Package product errors. Sentinels support errors.Is(); the constructors
attach entity/field context and capture the stack at the raise site.
*/
package product

import (
	"errors"
	"fmt"

	"github.com/turkcell/product-service/domain/shared"
)

var (
	ErrInvalidID              = errors.New("invalid product id format")
	ErrInvalidName            = errors.New("product name must be between 2 and 128 characters")
	ErrInvalidDescription     = errors.New("product description cannot exceed 1000 characters")
	ErrInvalidPrice           = errors.New("product price must be set and non-negative")
	ErrInvalidStock           = errors.New("stock quantity must be non-negative")
	ErrInvalidStatus          = errors.New("invalid product status")
	ErrDuplicateName          = errors.New("product name already exists")
	ErrConcurrentModification = errors.New("product was modified by another writer, please re-fetch and retry")
)

func NewInvalidIDError(raw string) error {
	return &productError{
		sentinel: ErrInvalidID,
		field:    "id",
		message:  "invalid product id format: " + raw,
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidStatusError(raw string) error {
	return &productError{
		sentinel: ErrInvalidStatus,
		field:    "status",
		message:  "invalid product status: " + raw,
		stack:    shared.CaptureStack(3),
	}
}

// NewValidationError wraps a field invariant violation. sentinel must be
// one of the field sentinels above.
func NewValidationError(sentinel error, field, reason string) error {
	return &productError{
		sentinel: sentinel,
		field:    field,
		message:  reason,
		stack:    shared.CaptureStack(3),
	}
}

func NewNotFoundError(id string) error {
	return &productError{
		sentinel: shared.ErrNotFound,
		message:  "product not found: " + id,
		stack:    shared.CaptureStack(3),
	}
}

func NewDuplicateNameError(name string) error {
	return &productError{
		sentinel: ErrDuplicateName,
		field:    "name",
		message:  fmt.Sprintf("product with name '%s' already exists", name),
		stack:    shared.CaptureStack(3),
	}
}

// NewVersionConflictError reports a stale write rejected by the
// optimistic-concurrency gate.
func NewVersionConflictError(id string, expected, got int64) error {
	return &productError{
		sentinel: ErrConcurrentModification,
		message: fmt.Sprintf("product %s version mismatch: expected %d, got %d; re-fetch and retry",
			id, expected, got),
		stack: shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError reports a compare-and-swap miss at the
// storage boundary.
func NewConcurrentModificationError(id string) error {
	return &productError{
		sentinel: ErrConcurrentModification,
		message:  "product " + id + " was modified by another writer, please re-fetch and retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewPersistenceError wraps an opaque store failure. The cause is kept on
// the chain for logging; callers only interpret it as a generic failure.
func NewPersistenceError(op string, cause error) error {
	return &productError{
		sentinel: cause,
		message:  "persistence failure during " + op,
		stack:    shared.CaptureStack(3),
	}
}

type productError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *productError) Error() string   { return e.message }
func (e *productError) Unwrap() error   { return e.sentinel }
func (e *productError) Field() string   { return e.field }
func (e *productError) Stack() []string { return shared.FormatStack(e.stack) }

// IsValidationError reports whether err is one of the construction-time
// field invariant violations.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidDescription) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidStock) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidID)
}
