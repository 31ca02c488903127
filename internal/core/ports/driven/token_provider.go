package driven

import (
	"context"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

// TokenProvider provides access tokens for authenticated API calls.
type TokenProvider interface {
	// GetToken returns the access token.
	// Returns empty string for anonymous access.
	GetToken(ctx context.Context) (string, error)

	// AuthMethod returns the authentication method (token, none).
	AuthMethod() domain.AuthMethod
}
