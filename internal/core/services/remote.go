package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
	"github.com/custodia-labs/b24docs/internal/core/ports/driving"
	"github.com/custodia-labs/b24docs/internal/logger"
)

// Ensure RemoteService implements the interface.
var _ driving.DocsService = (*RemoteService)(nil)

// RemoteService searches and fetches documents directly from the remote
// documentation repository.
type RemoteService struct {
	source driven.DocsSource
}

// NewRemoteService creates a repository-backed documentation service.
func NewRemoteService(source driven.DocsSource) *RemoteService {
	return &RemoteService{source: source}
}

// Search runs a code search and downloads every hit to build its snippet.
// Downloads run one after another; the first failure aborts the search.
func (s *RemoteService) Search(ctx context.Context, query string, limit int) ([]domain.Match, error) {
	logger.Section("Remote Search")
	logger.Debug("Query: %q", query)

	if strings.TrimSpace(query) == "" {
		return []domain.Match{}, nil
	}
	limit = domain.ClampLimit(limit)
	repo := s.source.DefaultRepo()

	hits, err := s.source.SearchCode(ctx, query, repo, limit)
	if err != nil {
		return nil, fmt.Errorf("search code: %w", err)
	}
	logger.Debug("Code search returned %d hits", len(hits))

	if len(hits) > limit {
		hits = hits[:limit]
	}

	matches := make([]domain.Match, 0, len(hits))
	for _, hit := range hits {
		doc, err := s.source.FetchFile(ctx, domain.Locator{Repo: repo, Path: hit.Path})
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", hit.Path, err)
		}

		url := doc.URL
		if url == "" {
			url = hit.HTMLURL
		}
		matches = append(matches, domain.Match{
			Slug:    hit.Path,
			Title:   doc.Title,
			URL:     url,
			Snippet: domain.Snippet(doc.Content, query, domain.SnippetWidth),
			Score:   hit.Score,
		})
	}

	return matches, nil
}

// Fetch normalises identifier into a repository address and downloads it.
func (s *RemoteService) Fetch(ctx context.Context, identifier string) (*domain.Document, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("%w: empty identifier", domain.ErrInvalidInput)
	}

	loc := s.source.Locate(identifier)
	logger.Debug("Fetching %s", loc)

	doc, err := s.source.FetchFile(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", loc, err)
	}
	return doc, nil
}
