package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
)

// mockMarkdownStore implements driven.MarkdownStore for testing.
type mockMarkdownStore struct {
	files map[string]string
	err   error
	reads []string
}

func (m *mockMarkdownStore) ReadMarkdown(_ context.Context, relPath string) (string, error) {
	m.reads = append(m.reads, relPath)
	if m.err != nil {
		return "", m.err
	}
	content, ok := m.files[relPath]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrLocalIO, relPath)
	}
	return content, nil
}

// mockDocsSource implements driven.DocsSource for testing.
type mockDocsSource struct {
	repo      string
	hits      []domain.CodeHit
	docs      map[string]*domain.Document
	searchErr error
	fetchErr  map[string]error

	searchQuery   string
	searchRepo    string
	searchPerPage int
	fetched       []domain.Locator
}

func (m *mockDocsSource) Locate(identifier string) domain.Locator {
	return domain.Locator{Repo: m.repo, Path: identifier}
}

func (m *mockDocsSource) DefaultRepo() string {
	return m.repo
}

func (m *mockDocsSource) SearchCode(_ context.Context, query, repo string, perPage int) ([]domain.CodeHit, error) {
	m.searchQuery = query
	m.searchRepo = repo
	m.searchPerPage = perPage
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.hits, nil
}

func (m *mockDocsSource) FetchFile(_ context.Context, loc domain.Locator) (*domain.Document, error) {
	m.fetched = append(m.fetched, loc)
	if err, ok := m.fetchErr[loc.Path]; ok {
		return nil, err
	}
	doc, ok := m.docs[loc.Path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRemoteAccess, loc.Path)
	}
	return doc, nil
}

// mockMarkdownSource implements driven.MarkdownSource for testing.
type mockMarkdownSource struct {
	files   map[string]string
	listErr error
	readErr error
}

func (m *mockMarkdownSource) ListMarkdown(_ context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	// Reverse order so the builder's own sorting is exercised.
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

func (m *mockMarkdownSource) ReadFile(_ context.Context, p string) (*driven.MarkdownFile, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	content, ok := m.files[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, p)
	}
	return &driven.MarkdownFile{Path: p, Content: content}, nil
}

func (m *mockMarkdownSource) WebURL(p string) string {
	return "https://github.com/bitrix24/b24restdocs/blob/main/" + p
}

// stubNormaliser implements driven.Normaliser for testing.
type stubNormaliser struct {
	err error
}

func (s *stubNormaliser) Normalise(_ context.Context, file *driven.MarkdownFile, fallback string) (*driven.NormaliseResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	title := fallback
	if len(file.Content) > 2 && file.Content[:2] == "# " {
		title = file.Content[2:]
	}
	return &driven.NormaliseResult{Title: title, Preview: file.Content}, nil
}

// mockIndexWriter implements driven.IndexWriter for testing.
type mockIndexWriter struct {
	markdown map[string]string
	entries  []domain.Entry
	writeErr error
	indexErr error
	indexed  bool
}

func (m *mockIndexWriter) WriteMarkdown(_ context.Context, slug, content string) (string, error) {
	if m.writeErr != nil {
		return "", m.writeErr
	}
	if m.markdown == nil {
		m.markdown = make(map[string]string)
	}
	m.markdown[slug] = content
	return "processed/markdown/" + slug + ".md", nil
}

func (m *mockIndexWriter) WriteIndex(_ context.Context, entries []domain.Entry) error {
	if m.indexErr != nil {
		return m.indexErr
	}
	m.entries = entries
	m.indexed = true
	return nil
}
