package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a portfolio error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInvalidCatalog ErrorCode = "INVALID_CATALOG" // 422
	ErrUpstream       ErrorCode = "UPSTREAM"        // 502
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// PortfolioError represents a structured error with code, status, and details.
type PortfolioError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *PortfolioError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *PortfolioError {
	return &PortfolioError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an unknown catalog entry.
func NewNotFound(kind, identifier string) *PortfolioError {
	return &PortfolioError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewInvalidCatalog creates a 422 error listing every catalog problem found at load time.
func NewInvalidCatalog(problems []string) *PortfolioError {
	return &PortfolioError{
		Code:    ErrInvalidCatalog,
		Status:  422,
		Message: fmt.Sprintf("invalid catalog: %s", strings.Join(problems, "; ")),
		Details: map[string]any{"problems": problems},
	}
}

// NewUpstream creates a 502 error for a failed activity provider call.
func NewUpstream(provider string, err error) *PortfolioError {
	msg := "upstream error"
	if err != nil {
		msg = err.Error()
	}
	return &PortfolioError{
		Code:    ErrUpstream,
		Status:  502,
		Message: fmt.Sprintf("%s: %s", provider, msg),
		Details: map[string]any{"provider": provider},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *PortfolioError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &PortfolioError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if err (or anything it wraps) is a PortfolioError with the given code.
func Is(err error, code ErrorCode) bool {
	var pErr *PortfolioError
	if stderrors.As(err, &pErr) {
		return pErr.Code == code
	}
	return false
}

// As extracts a PortfolioError from err, wrapping unknown errors as internal.
func As(err error) *PortfolioError {
	var pErr *PortfolioError
	if stderrors.As(err, &pErr) {
		return pErr
	}
	return NewInternal(err)
}
