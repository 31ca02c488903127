package mcp

import (
	"context"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

// mockDocsService is a mock implementation of driving.DocsService.
type mockDocsService struct {
	matches []domain.Match
	doc     *domain.Document
	err     error
	panic   any

	searchCalls int
	fetchCalls  int
	lastQuery   string
	lastLimit   int
	lastID      string
}

func (m *mockDocsService) Search(_ context.Context, query string, limit int) ([]domain.Match, error) {
	m.searchCalls++
	m.lastQuery = query
	m.lastLimit = limit
	if m.panic != nil {
		panic(m.panic)
	}
	return m.matches, m.err
}

func (m *mockDocsService) Fetch(_ context.Context, identifier string) (*domain.Document, error) {
	m.fetchCalls++
	m.lastID = identifier
	if m.panic != nil {
		panic(m.panic)
	}
	return m.doc, m.err
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	entries []domain.Entry
	docs    map[string]*domain.Document
	err     error
	panic   any
}

func (m *mockCatalogService) Entries() []domain.Entry {
	return m.entries
}

func (m *mockCatalogService) Read(_ context.Context, slug string) (*domain.Document, error) {
	if m.panic != nil {
		panic(m.panic)
	}
	if m.err != nil {
		return nil, m.err
	}
	doc, ok := m.docs[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func intPtr(v int) *int {
	return &v
}
