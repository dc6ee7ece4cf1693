/*
Package errors defines application-level error codes and the mapping
from domain errors onto them. Codes are transport-neutral; the API layer
maps them to HTTP statuses.
*/
package errors

import (
	"errors"
	"fmt"

	"github.com/turkcell/product-service/domain/product"
	"github.com/turkcell/product-service/domain/shared"
)

// ErrorCode identifies a failure class to API consumers.
type ErrorCode string

const (
	// Generic codes.
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest ErrorCode = "BAD_REQUEST"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeConflict   ErrorCode = "CONFLICT"
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// Product codes.
	CodeProductNotFound  ErrorCode = "PRODUCT_NOT_FOUND"
	CodeDuplicateName    ErrorCode = "DUPLICATE_PRODUCT_NAME"
	CodeVersionConflict  ErrorCode = "VERSION_CONFLICT"
	CodeCurrencyMismatch ErrorCode = "CURRENCY_MISMATCH"
)

// AppError couples a code with a user-facing message and an optional
// wrapped cause that is logged but never sent to clients.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a cause to an application error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError { return New(CodeBadRequest, message) }
func NotFound(message string) *AppError   { return New(CodeNotFound, message) }
func Conflict(message string) *AppError   { return New(CodeConflict, message) }
func Internal(message string) *AppError   { return New(CodeInternal, message) }
func Validation(message string) *AppError { return New(CodeValidation, message) }

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// fielder is implemented by domain errors that know their field.
type fielder interface {
	Field() string
}

// FromDomainError maps a domain error to an application error. Mapping is
// by sentinel (errors.Is), never by message text.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	mapped := &AppError{Message: err.Error(), Err: err}
	if f, ok := err.(fielder); ok {
		mapped.Field = f.Field()
	}

	switch {
	case errors.Is(err, product.ErrDuplicateName):
		mapped.Code = CodeDuplicateName
	case errors.Is(err, product.ErrConcurrentModification):
		mapped.Code = CodeVersionConflict
		mapped.Message = "the product has been modified by another writer; re-fetch and retry"
	case errors.Is(err, shared.ErrCurrencyMismatch):
		mapped.Code = CodeCurrencyMismatch
	case errors.Is(err, shared.ErrNotFound):
		mapped.Code = CodeProductNotFound
	case product.IsValidationError(err), errors.Is(err, shared.ErrInvalidInput):
		mapped.Code = CodeValidation
	case errors.Is(err, shared.ErrConflict):
		mapped.Code = CodeConflict
	default:
		mapped.Code = CodeInternal
		mapped.Message = "internal server error"
	}
	return mapped
}
