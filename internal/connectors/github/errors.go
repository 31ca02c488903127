package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

// GitHub-specific errors.
var (
	// ErrInvalidRepo indicates a repository name is not in owner/name form.
	ErrInvalidRepo = errors.New("github: repository must be in owner/name form")
)

// RateLimitError is returned without contacting GitHub when the API quota
// is known to be exhausted until ResetAt.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("GitHub API rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Is matches domain.ErrRateLimited and domain.ErrRemoteAccess.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited || target == domain.ErrRemoteAccess
}

// APIError represents a non-success GitHub API response.
// Body holds the raw response body as received.
type APIError struct {
	StatusCode  int
	Message     string
	Body        string
	URL         string
	RateLimited bool
}

func (e *APIError) Error() string {
	details := e.Body
	if details == "" {
		details = e.Message
	}
	if e.StatusCode == http.StatusForbidden {
		return "GitHub API rate limit exceeded or access forbidden. Response: " + details
	}
	return fmt.Sprintf("GitHub API error %d: %s", e.StatusCode, details)
}

// Is matches domain.ErrRemoteAccess, and domain.ErrRateLimited for
// primary and secondary rate limit responses.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrRemoteAccess:
		return true
	case domain.ErrRateLimited:
		return e.RateLimited
	}
	return false
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, domain.ErrRateLimited)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
