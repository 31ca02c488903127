package github

import (
	"context"
	"time"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.DocsSource = (*Connector)(nil)

// Connector serves documentation straight from a GitHub repository.
type Connector struct {
	client *Client
	config *Config
	now    func() time.Time
}

// New creates a GitHub documentation connector.
func New(client *Client, cfg *Config) *Connector {
	return &Connector{
		client: client,
		config: cfg,
		now:    time.Now,
	}
}

// DefaultRepo returns the configured repository.
func (c *Connector) DefaultRepo() string {
	return c.config.Repo
}

// Locate maps an identifier onto a repository address.
func (c *Connector) Locate(identifier string) domain.Locator {
	return ParseLocator(identifier, c.config.Repo)
}

// SearchCode runs a code search restricted to repo.
func (c *Connector) SearchCode(ctx context.Context, query, repo string, perPage int) ([]domain.CodeHit, error) {
	return c.client.SearchCode(ctx, query, repo, perPage)
}

// FetchFile downloads and decodes a single file.
func (c *Connector) FetchFile(ctx context.Context, loc domain.Locator) (*domain.Document, error) {
	return FetchFile(ctx, c.client, loc, c.now())
}
