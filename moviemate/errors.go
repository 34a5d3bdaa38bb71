package moviemate

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid moviemate configuration")
	// ErrNoConnection indicates the request did not produce a response
	ErrNoConnection = errors.New("failed to reach movie API")
	// ErrInvalidResponse indicates a body that could not be decoded
	ErrInvalidResponse = errors.New("invalid response from movie API")
	// ErrCircuitOpen indicates the circuit breaker rejected the request
	ErrCircuitOpen = errors.New("movie API circuit open")
)

// APIError represents a non-2xx answer from the movie API
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("movie API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict checks if the server refused the request because the resource
// already exists. The API answers duplicates with 400.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict || e.StatusCode == http.StatusBadRequest
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsClientError reports a 4xx status
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsNotFound reports whether err carries a 404 APIError
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}

// IsConflict reports whether err carries a duplicate-resource APIError
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsConflict()
}
