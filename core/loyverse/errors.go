package loyverse

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound matches an APIError with status 404.
	ErrNotFound = errors.New("loyverse: not found")
	// ErrRateLimited matches an APIError with status 429.
	ErrRateLimited = errors.New("loyverse: rate limited")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("loyverse api error %d on %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// Is maps status codes to the sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}
