// Package file implements the flat-file index: a JSON array of entries plus
// a tree of markdown files resolved relative to the data directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.MarkdownStore = (*Store)(nil)
	_ driven.IndexWriter   = (*Store)(nil)
)

// MarkdownDir is the directory, relative to the data directory, that holds
// the markdown bodies written by the index builder.
const MarkdownDir = "processed/markdown"

// Store reads and writes the flat-file index.
type Store struct {
	mu        sync.Mutex
	indexPath string
	dataDir   string
}

// New creates a store for the index file at indexPath.
// The data directory is the parent of the index file's directory.
func New(indexPath string) (*Store, error) {
	abs, err := filepath.Abs(indexPath)
	if err != nil {
		return nil, fmt.Errorf("resolve index path %q: %w", indexPath, err)
	}
	return &Store{
		indexPath: abs,
		dataDir:   filepath.Dir(filepath.Dir(abs)),
	}, nil
}

// IndexPath returns the absolute path of the index file.
func (s *Store) IndexPath() string {
	return s.indexPath
}

// DataDir returns the absolute data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

// LoadIndex reads and parses the index file.
func (s *Store) LoadIndex(_ context.Context) ([]domain.Entry, error) {
	raw, err := os.ReadFile(s.indexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read index: %w", domain.ErrLocalIO, err)
	}

	var entries []domain.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse index %s: %w", s.indexPath, err)
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return entries, nil
}

// LoadCatalog reads the index file and builds a catalog from it.
func (s *Store) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	entries, err := s.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := domain.NewCatalog(entries)
	if err != nil {
		return nil, fmt.Errorf("load index %s: %w", s.indexPath, err)
	}
	return catalog, nil
}

// ReadMarkdown reads a markdown file. Relative paths are resolved against
// the data directory.
func (s *Store) ReadMarkdown(_ context.Context, relPath string) (string, error) {
	content, err := os.ReadFile(s.resolve(relPath))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrLocalIO, err)
	}
	return string(content), nil
}

// WriteMarkdown writes a document body under MarkdownDir.
func (s *Store) WriteMarkdown(_ context.Context, slug, content string) (string, error) {
	rel := filepath.ToSlash(filepath.Join(MarkdownDir, slug+".md"))
	target := s.resolve(rel)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrLocalIO, err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrLocalIO, err)
	}
	return rel, nil
}

// WriteIndex replaces the index file. The new content is written to a
// temporary file first and renamed over the old one.
func (s *Store) WriteIndex(_ context.Context, entries []domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.indexPath), 0o755); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLocalIO, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.indexPath), ".index-*.json")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLocalIO, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", domain.ErrLocalIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLocalIO, err)
	}
	if err := os.Rename(tmp.Name(), s.indexPath); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLocalIO, err)
	}
	return nil
}

func (s *Store) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.dataDir, filepath.FromSlash(p))
}
