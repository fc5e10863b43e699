package ads

import (
	"errors"
	"fmt"
)

// Common errors returned by the ADS client.
var (
	// ErrNotFound indicates no record matched the bibcode or query.
	ErrNotFound = errors.New("not found in ADS")

	// ErrAuthError indicates an authentication error (missing/invalid API token).
	ErrAuthError = errors.New("ADS authentication error")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("ADS rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with ADS")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from ADS")
)

// APIError represents an error response from the ADS API.
type APIError struct {
	StatusCode int
	Bibcode    string
}

func (e *APIError) Error() string {
	if e.Bibcode != "" {
		return fmt.Sprintf("ADS API error (status %d, bibcode %s)", e.StatusCode, e.Bibcode)
	}
	return fmt.Sprintf("ADS API error (status %d)", e.StatusCode)
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

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}
