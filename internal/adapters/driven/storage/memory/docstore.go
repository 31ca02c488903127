package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interfaces.
var (
	_ driven.MarkdownStore = (*DocumentStore)(nil)
	_ driven.IndexWriter   = (*DocumentStore)(nil)
)

// DocumentStore is an in-memory markdown store and index writer.
// It backs dry runs of the index builder and tests.
type DocumentStore struct {
	mu       sync.RWMutex
	markdown map[string]string
	entries  []domain.Entry
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		markdown: make(map[string]string),
	}
}

// PutMarkdown stores content under a data-relative path.
func (s *DocumentStore) PutMarkdown(relPath, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markdown[relPath] = content
}

// ReadMarkdown returns the content stored under relPath.
func (s *DocumentStore) ReadMarkdown(_ context.Context, relPath string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.markdown[relPath]
	if !ok {
		return "", fmt.Errorf("%w: %s: no such file", domain.ErrLocalIO, relPath)
	}
	return content, nil
}

// WriteMarkdown stores a document body and returns its data-relative path.
func (s *DocumentStore) WriteMarkdown(_ context.Context, slug, content string) (string, error) {
	rel := "processed/markdown/" + slug + ".md"
	s.PutMarkdown(rel, content)
	return rel, nil
}

// WriteIndex replaces the stored entries.
func (s *DocumentStore) WriteIndex(_ context.Context, entries []domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]domain.Entry, len(entries))
	copy(s.entries, entries)
	return nil
}

// Entries returns a copy of the last written index.
func (s *DocumentStore) Entries() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
