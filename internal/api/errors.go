package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/burn-exchange/internal/errors"
	"github.com/burn-exchange/internal/types"
)

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Success bool               `json:"success"`
	Error   types.ServiceError `json:"error"`
}

// SuccessResponse wraps successful API responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, statusCode int, code, message string, details map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error: types.ServiceError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	json.NewEncoder(w).Encode(response)
}

// respondJSON sends a JSON success response wrapped in the standard envelope.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(SuccessResponse{Success: true, Data: data})
}

// parseJSONBody parses JSON request body.
func parseJSONBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(v)
}

// Common error codes
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeProviderError      = "PROVIDER_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// respondServiceError maps a service error onto the HTTP response. Validation
// errors keep their message so clients can correct the request; everything
// else gets a generic message and the detail stays in the logs.
func respondServiceError(w http.ResponseWriter, err error) {
	catErr := apperrors.Categorize(err)

	switch catErr.Category {
	case apperrors.CategoryValidation:
		respondError(w, catErr.StatusCode, catErr.Code, catErr.Message, catErr.Details)
	case apperrors.CategoryNotFound:
		respondError(w, http.StatusNotFound, ErrCodeNotFound, catErr.Message, catErr.Details)
	case apperrors.CategoryProvider:
		respondError(w, http.StatusBadGateway, ErrCodeProviderError, "Upstream provider unavailable", nil)
	default:
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "An internal error occurred", nil)
	}
}
