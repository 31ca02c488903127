package driven

import (
	"context"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

// MarkdownStore reads the markdown bodies of the local index.
type MarkdownStore interface {
	// ReadMarkdown returns the content of a file relative to the data directory.
	// Failures wrap domain.ErrLocalIO.
	ReadMarkdown(ctx context.Context, relPath string) (string, error)
}

// DocsSource is the remote documentation repository.
type DocsSource interface {
	// Locate maps a slug, path or URL onto a repository address.
	Locate(identifier string) domain.Locator

	// DefaultRepo returns the repository searched when none is given.
	DefaultRepo() string

	// SearchCode runs a code search restricted to repo.
	SearchCode(ctx context.Context, query, repo string, perPage int) ([]domain.CodeHit, error)

	// FetchFile downloads and decodes a single file.
	FetchFile(ctx context.Context, loc domain.Locator) (*domain.Document, error)
}

// MarkdownFile is one source file handed to the index builder.
type MarkdownFile struct {
	// Path is relative to the repository root, using forward slashes.
	Path string

	// Content is the raw markdown.
	Content string
}

// MarkdownSource enumerates the markdown files of a documentation checkout.
type MarkdownSource interface {
	// ListMarkdown returns the paths of every markdown file, in lexical order.
	ListMarkdown(ctx context.Context) ([]string, error)

	// ReadFile returns a single file by path.
	ReadFile(ctx context.Context, path string) (*MarkdownFile, error)

	// WebURL returns the browsable URL of a file.
	WebURL(path string) string
}

// IndexWriter persists the output of an index build.
type IndexWriter interface {
	// WriteMarkdown stores a document body and returns its path
	// relative to the data directory.
	WriteMarkdown(ctx context.Context, slug, content string) (string, error)

	// WriteIndex replaces the index file with entries.
	WriteIndex(ctx context.Context, entries []domain.Entry) error
}
