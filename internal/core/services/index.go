package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
	"github.com/custodia-labs/b24docs/internal/core/ports/driving"
	"github.com/custodia-labs/b24docs/internal/logger"
)

// Ensure IndexService implements the interfaces.
var (
	_ driving.DocsService    = (*IndexService)(nil)
	_ driving.CatalogService = (*IndexService)(nil)
)

// Scoring weights of the local index search.
const (
	titleWeight   = 3
	previewWeight = 1
)

// IndexService searches and fetches documents of the local index.
type IndexService struct {
	catalog *domain.Catalog
	store   driven.MarkdownStore
}

// NewIndexService creates an index-backed documentation service.
func NewIndexService(catalog *domain.Catalog, store driven.MarkdownStore) *IndexService {
	return &IndexService{
		catalog: catalog,
		store:   store,
	}
}

// Search scores every entry by token presence: +3 per token occurring as a
// word of the title, +1 per token occurring as a word of the preview.
// Entries scoring zero are dropped and ties keep index order.
func (s *IndexService) Search(_ context.Context, query string, limit int) ([]domain.Match, error) {
	logger.Section("Index Search")
	logger.Debug("Query: %q", query)

	tokens := domain.Tokenize(query)
	if len(tokens) == 0 {
		logger.Debug("Empty query, returning no results")
		return []domain.Match{}, nil
	}
	limit = domain.ClampLimit(limit)

	matches := make([]domain.Match, 0)
	for _, entry := range s.catalog.Entries() {
		title := strings.ToLower(entry.Title)
		preview := strings.ToLower(entry.TextPreview)

		score := 0
		for _, token := range tokens {
			if domain.ContainsWord(title, token) {
				score += titleWeight
			}
			if domain.ContainsWord(preview, token) {
				score += previewWeight
			}
		}
		if score == 0 {
			continue
		}

		matches = append(matches, domain.Match{
			Slug:    entry.Slug,
			Title:   entry.Title,
			URL:     entry.URL,
			Snippet: domain.Excerpt(entry.TextPreview, tokens),
			Score:   float64(score),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	logger.Debug("Scored %d of %d entries", len(matches), s.catalog.Len())
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Fetch resolves identifier as a slug or an entry URL and reads its markdown.
func (s *IndexService) Fetch(ctx context.Context, identifier string) (*domain.Document, error) {
	entry, ok := s.catalog.Lookup(identifier)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, identifier)
	}
	return s.read(ctx, entry)
}

// Entries returns every index entry in load order.
func (s *IndexService) Entries() []domain.Entry {
	return s.catalog.Entries()
}

// Read returns the document of a slug.
func (s *IndexService) Read(ctx context.Context, slug string) (*domain.Document, error) {
	entry, ok := s.catalog.Get(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, slug)
	}
	return s.read(ctx, entry)
}

func (s *IndexService) read(ctx context.Context, entry domain.Entry) (*domain.Document, error) {
	content, err := s.store.ReadMarkdown(ctx, entry.MarkdownPath)
	if err != nil {
		logger.Warn("Read markdown for %s failed: %v", entry.Slug, err)
		return nil, err
	}

	return &domain.Document{
		Slug:        entry.Slug,
		Title:       entry.Title,
		Path:        entry.MarkdownPath,
		URL:         entry.URL,
		Content:     content,
		RetrievedAt: entry.RetrievedAt,
	}, nil
}
