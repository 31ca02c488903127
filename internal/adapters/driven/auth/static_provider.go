package auth

import (
	"context"
	"strings"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider provides a fixed personal access token.
// Tokens don't expire and don't require refresh.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a token provider for a fixed token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: strings.TrimSpace(token)}
}

// GetToken returns the configured token.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	return p.token, nil
}

// AuthMethod returns AuthMethodToken.
func (p *StaticTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodToken
}

// ForToken returns a StaticTokenProvider for a non-empty token and a
// NullTokenProvider otherwise.
func ForToken(token string) driven.TokenProvider {
	if strings.TrimSpace(token) == "" {
		return NewNullTokenProvider()
	}
	return NewStaticTokenProvider(token)
}
