// Package errors defines the service error taxonomy and its mapping to HTTP
// status codes. Validation errors surface as 400, persistence errors as 500,
// provider errors as 502; notification errors are logged and never surfaced.
package errors

import (
	"fmt"
	"net/http"

	"github.com/burn-exchange/internal/types"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	// CategoryValidation represents missing or malformed input (4xx)
	CategoryValidation ErrorCategory = "validation"
	// CategoryPersistence represents store read/write failures (5xx)
	CategoryPersistence ErrorCategory = "persistence"
	// CategoryProvider represents external collaborator failures
	CategoryProvider ErrorCategory = "provider"
	// CategoryNotification represents best-effort notification failures
	CategoryNotification ErrorCategory = "notification"
	// CategoryNotFound represents missing resources
	CategoryNotFound ErrorCategory = "not_found"
	// CategorySystem represents everything else (5xx)
	CategorySystem ErrorCategory = "system"
)

// CategorizedError is an error with category and HTTP status code
type CategorizedError struct {
	Category   ErrorCategory
	StatusCode int
	Code       string
	Message    string
	Details    map[string]interface{}
	Cause      error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *CategorizedError) Unwrap() error {
	return e.Cause
}

// ToServiceError converts to a ServiceError
func (e *CategorizedError) ToServiceError() *types.ServiceError {
	return &types.ServiceError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}

// NewValidationError creates a missing/malformed-input error
func NewValidationError(field string, reason string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    fmt.Sprintf("invalid field '%s': %s", field, reason),
		Details: map[string]interface{}{
			"field":  field,
			"reason": reason,
		},
	}
}

// NewMissingFieldsError is the rejection for request bodies with absent
// required fields. The message is part of the API contract.
func NewMissingFieldsError() *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    "Missing required fields",
	}
}

// NewInvalidAddressError creates an invalid wallet address error
func NewInvalidAddressError(address string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       "INVALID_ADDRESS",
		Message:    fmt.Sprintf("invalid address format: %s", address),
		Details: map[string]interface{}{
			"address": address,
		},
	}
}

// NewPersistenceError creates a store read/write error
func NewPersistenceError(operation string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryPersistence,
		StatusCode: http.StatusInternalServerError,
		Code:       "PERSISTENCE_ERROR",
		Message:    fmt.Sprintf("persistence error during %s", operation),
		Cause:      cause,
		Details: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewProviderError creates an external collaborator error
func NewProviderError(provider string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryProvider,
		StatusCode: http.StatusBadGateway,
		Code:       "PROVIDER_ERROR",
		Message:    fmt.Sprintf("provider error: %s", provider),
		Cause:      cause,
		Details: map[string]interface{}{
			"provider": provider,
		},
	}
}

// NewNotificationError creates a best-effort notification error. Callers log
// it and move on; it never becomes a response status.
func NewNotificationError(cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryNotification,
		StatusCode: http.StatusInternalServerError,
		Code:       "NOTIFICATION_ERROR",
		Message:    "failed to send notification",
		Cause:      cause,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string, id string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryNotFound,
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found: %s", resource, id),
		Details: map[string]interface{}{
			"resource": resource,
			"id":       id,
		},
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategorySystem,
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		Cause:      cause,
	}
}

// Categorize categorizes an existing error
func Categorize(err error) *CategorizedError {
	if err == nil {
		return nil
	}

	if catErr, ok := err.(*CategorizedError); ok {
		return catErr
	}

	if svcErr, ok := err.(*types.ServiceError); ok {
		return &CategorizedError{
			Category:   CategorySystem,
			StatusCode: http.StatusInternalServerError,
			Code:       svcErr.Code,
			Message:    svcErr.Message,
			Details:    svcErr.Details,
		}
	}

	return NewInternalError("unexpected error", err)
}

// GetHTTPStatusCode returns the HTTP status code for an error
func GetHTTPStatusCode(err error) int {
	if catErr := Categorize(err); catErr != nil {
		return catErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsValidation reports whether an error is a validation error
func IsValidation(err error) bool {
	catErr := Categorize(err)
	return catErr != nil && catErr.Category == CategoryValidation
}

// IsNotification reports whether an error is a swallowed notification error
func IsNotification(err error) bool {
	catErr := Categorize(err)
	return catErr != nil && catErr.Category == CategoryNotification
}
