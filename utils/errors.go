package utils

import (
	"errors"
	"net/http"

	"github.com/raushankrgupta/stylewise/analysis"
	"github.com/raushankrgupta/stylewise/store"
)

var (
	// ErrUnauthorized marks a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited marks an upstream quota rejection.
	ErrRateLimited = errors.New("quota exceeded, please try again later")
	// ErrNotConfigured marks an optional integration that has no credentials.
	ErrNotConfigured = errors.New("integration not configured")
)

// APIError is an error with the HTTP status it should be reported with.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func BadRequest(message string) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: message}
}

// StatusFor maps an error to the HTTP status it should be reported with.
func StatusFor(err error) int {
	var apiErr *APIError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &apiErr):
		return apiErr.Code
	case errors.Is(err, analysis.ErrInvalidMeasurement),
		errors.Is(err, analysis.ErrUnsupportedUnit),
		errors.Is(err, analysis.ErrInvalidAnswer),
		errors.Is(err, analysis.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
