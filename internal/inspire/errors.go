package inspire

import (
	"errors"
	"fmt"
)

// Common errors returned by the INSPIRE client.
var (
	// ErrNotFound indicates no record matched the texkey.
	ErrNotFound = errors.New("not found in INSPIRE")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("INSPIRE rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with INSPIRE")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from INSPIRE")
)

// APIError represents an error response from the INSPIRE literature API.
type APIError struct {
	StatusCode int
	Texkey     string
}

func (e *APIError) Error() string {
	if e.Texkey != "" {
		return fmt.Sprintf("INSPIRE API error (status %d, texkey %s)", e.StatusCode, e.Texkey)
	}
	return fmt.Sprintf("INSPIRE API error (status %d)", e.StatusCode)
}

// IsNotFound returns true if the error indicates no matching record.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}
