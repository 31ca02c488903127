package driving

import (
	"context"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

// DocsService provides search and fetch over the documentation corpus.
// It is implemented once per backend (local index or GitHub).
type DocsService interface {
	// Search returns at most limit matches for query, best first.
	// A non-positive limit selects domain.DefaultSearchLimit.
	Search(ctx context.Context, query string, limit int) ([]domain.Match, error)

	// Fetch returns the full document addressed by identifier
	// (a slug, a local path or a URL).
	Fetch(ctx context.Context, identifier string) (*domain.Document, error)
}

// CatalogService exposes the entries of the local index.
// Only the index backend provides it.
type CatalogService interface {
	// Entries returns every entry in index order.
	Entries() []domain.Entry

	// Read returns the full document for a slug.
	Read(ctx context.Context, slug string) (*domain.Document, error)
}

// IndexBuildService builds the local index from markdown sources.
type IndexBuildService interface {
	// Build ingests every eligible markdown file and writes the index.
	// It returns the number of indexed documents.
	Build(ctx context.Context) (int, error)
}
