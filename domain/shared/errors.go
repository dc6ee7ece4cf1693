/*
Package shared holds domain building blocks used across aggregates:
sentinel errors, the structured DomainError type, and the Money value
object.

Error design:
 1. Sentinel errors support type-safe errors.Is() checks.
 2. DomainError captures the stack at creation time but formats it lazily.
 3. Domain errors carry no transport concepts (HTTP status codes live in
    the API layer).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors. Used with errors.Is(); they carry no context themselves.
var (
	// ErrNotFound signals a lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a resource conflict (concurrent modification,
	// unique constraint violation).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput signals failed validation of caller-supplied data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCurrencyMismatch signals arithmetic or comparison between Money
	// values of different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// DomainError is a structured error carrying business context and the
// stack of the point where it was raised.
type DomainError struct {
	// Err is the underlying sentinel, for errors.Is() checks.
	Err error

	// Entity names the aggregate or value object involved (e.g. "product").
	Entity string

	// Message is the human-readable description.
	Message string

	// Field optionally names the offending field for validation errors.
	Field string

	// stack holds raw frames captured at creation, formatted on demand.
	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap supports errors.Is() and errors.As() against the sentinel.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack on demand, one frame per element.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack captures the current call stack. skip is the number of
// frames to drop (typically 3: Callers, CaptureStack, the constructor).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, filtering runtime internals and
// keeping at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError creates a "not found" domain error for the given entity.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a conflict domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a field-scoped validation error.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewCurrencyMismatchError creates an error for cross-currency operations.
func NewCurrencyMismatchError(left, right string) error {
	return &DomainError{
		Err:     ErrCurrencyMismatch,
		Entity:  "money",
		Field:   "currency",
		Message: fmt.Sprintf("cannot operate on different currencies: %s and %s", left, right),
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that carry a formatted stack; the API
// layer uses it to log the point of failure.
type Stacker interface {
	Stack() []string
}
