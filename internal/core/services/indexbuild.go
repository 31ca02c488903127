package services

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
	"github.com/custodia-labs/b24docs/internal/core/ports/driving"
	"github.com/custodia-labs/b24docs/internal/logger"
)

// Ensure IndexBuilder implements the interface.
var _ driving.IndexBuildService = (*IndexBuilder)(nil)

// DefaultIncludePrefixes are the repository directories ingested by default.
var DefaultIncludePrefixes = []string{"api-reference", "tutorials"}

// IndexBuilder converts a markdown checkout into the flat-file index.
type IndexBuilder struct {
	source     driven.MarkdownSource
	normaliser driven.Normaliser
	writer     driven.IndexWriter
	include    []string
	now        func() time.Time
}

// NewIndexBuilder creates an index builder. An empty include list selects
// DefaultIncludePrefixes.
func NewIndexBuilder(
	source driven.MarkdownSource,
	normaliser driven.Normaliser,
	writer driven.IndexWriter,
	include []string,
) *IndexBuilder {
	if len(include) == 0 {
		include = DefaultIncludePrefixes
	}
	return &IndexBuilder{
		source:     source,
		normaliser: normaliser,
		writer:     writer,
		include:    include,
		now:        time.Now,
	}
}

// SetClock overrides the build timestamp source. Used in tests.
func (b *IndexBuilder) SetClock(now func() time.Time) {
	b.now = now
}

// Build ingests every markdown file under the include prefixes and
// replaces the index. It returns the number of indexed documents.
func (b *IndexBuilder) Build(ctx context.Context) (int, error) {
	logger.Section("Index Build")

	paths, err := b.source.ListMarkdown(ctx)
	if err != nil {
		return 0, fmt.Errorf("list markdown: %w", err)
	}

	selected := make([]string, 0, len(paths))
	for _, p := range paths {
		if b.included(p) {
			selected = append(selected, p)
		}
	}
	sort.Strings(selected)
	logger.Debug("Selected %d of %d markdown files", len(selected), len(paths))

	retrievedAt := b.now().UTC().Format(time.RFC3339)
	entries := make([]domain.Entry, 0, len(selected))

	for _, p := range selected {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		entry, err := b.ingest(ctx, p, retrievedAt)
		if err != nil {
			return 0, err
		}
		entries = append(entries, *entry)
	}

	// The index must load back; reject slug collisions before writing it.
	if _, err := domain.NewCatalog(entries); err != nil {
		return 0, fmt.Errorf("validate index: %w", err)
	}

	if err := b.writer.WriteIndex(ctx, entries); err != nil {
		return 0, fmt.Errorf("write index: %w", err)
	}

	logger.Info("Indexed %d documents", len(entries))
	return len(entries), nil
}

func (b *IndexBuilder) ingest(ctx context.Context, p, retrievedAt string) (*domain.Entry, error) {
	file, err := b.source.ReadFile(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}

	slug := SlugFromPath(p)
	result, err := b.normaliser.Normalise(ctx, file, slug)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", p, err)
	}

	markdownPath, err := b.writer.WriteMarkdown(ctx, slug, file.Content)
	if err != nil {
		return nil, fmt.Errorf("write markdown %s: %w", slug, err)
	}

	return &domain.Entry{
		Slug:         slug,
		URL:          b.source.WebURL(p),
		Title:        result.Title,
		TextPreview:  result.Preview,
		MarkdownPath: markdownPath,
		RetrievedAt:  retrievedAt,
	}, nil
}

func (b *IndexBuilder) included(p string) bool {
	if path.Ext(p) != ".md" {
		return false
	}
	for _, prefix := range b.include {
		prefix = strings.Trim(prefix, "/")
		if strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// SlugFromPath derives an index slug from a repository path:
// the extension is dropped and every '/' and '.' becomes '_'.
func SlugFromPath(p string) string {
	p = strings.TrimSuffix(p, path.Ext(p))
	return strings.NewReplacer("/", "_", ".", "_").Replace(p)
}
