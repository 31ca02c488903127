package auth

import (
	"context"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
)

// Ensure NullTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*NullTokenProvider)(nil)

// NullTokenProvider is used when no token is configured.
// Requests to the remote source are sent anonymously.
type NullTokenProvider struct{}

// NewNullTokenProvider creates a token provider for anonymous access.
func NewNullTokenProvider() *NullTokenProvider {
	return &NullTokenProvider{}
}

// GetToken returns an empty string since no authentication is needed.
func (p *NullTokenProvider) GetToken(_ context.Context) (string, error) {
	return "", nil
}

// AuthMethod returns AuthMethodNone.
func (p *NullTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodNone
}
