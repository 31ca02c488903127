package github

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
	"github.com/custodia-labs/b24docs/internal/logger"
)

// Ensure TreeSource implements the interface.
var _ driven.MarkdownSource = (*TreeSource)(nil)

// TreeSource lists the markdown files of a repository through the
// recursive Trees API and reads them as blobs.
type TreeSource struct {
	client *Client
	config *Config

	mu     sync.Mutex
	branch string
	shas   map[string]string
}

// NewTreeSource creates a markdown source over a GitHub repository.
func NewTreeSource(client *Client, cfg *Config) *TreeSource {
	return &TreeSource{
		client: client,
		config: cfg,
		branch: cfg.Branch,
	}
}

// ListMarkdown returns the paths of every markdown blob, in lexical order.
func (s *TreeSource) ListMarkdown(ctx context.Context) ([]string, error) {
	owner, name, err := SplitRepo(s.config.Repo)
	if err != nil {
		return nil, err
	}

	branch, err := s.resolveBranch(ctx, owner, name)
	if err != nil {
		return nil, err
	}

	tree, err := s.client.GetTree(ctx, owner, name, branch)
	if err != nil {
		return nil, err
	}
	if tree.GetTruncated() {
		logger.Warn("Tree of %s is truncated; some files will be missing", s.config.Repo)
	}

	shas := make(map[string]string, len(tree.Entries))
	paths := make([]string, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" || path.Ext(entry.GetPath()) != ".md" {
			continue
		}
		shas[entry.GetPath()] = entry.GetSHA()
		paths = append(paths, entry.GetPath())
	}
	sort.Strings(paths)

	s.mu.Lock()
	s.shas = shas
	s.mu.Unlock()

	logger.Debug("Tree of %s@%s has %d markdown files", s.config.Repo, branch, len(paths))
	return paths, nil
}

// ReadFile fetches a file listed by the last ListMarkdown call.
func (s *TreeSource) ReadFile(ctx context.Context, p string) (*driven.MarkdownFile, error) {
	s.mu.Lock()
	sha, ok := s.shas[p]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("github: %s is not in the listed tree", p)
	}

	owner, name, err := SplitRepo(s.config.Repo)
	if err != nil {
		return nil, err
	}

	content, err := fetchBlobContent(ctx, s.client, owner, name, sha)
	if err != nil {
		return nil, err
	}
	return &driven.MarkdownFile{Path: p, Content: string(content)}, nil
}

// WebURL returns the blob URL of a file on the walked branch.
func (s *TreeSource) WebURL(p string) string {
	s.mu.Lock()
	branch := s.branch
	s.mu.Unlock()
	return BlobURL(s.config.Repo, branch, p)
}

func (s *TreeSource) resolveBranch(ctx context.Context, owner, name string) (string, error) {
	s.mu.Lock()
	branch := s.branch
	s.mu.Unlock()
	if branch != "" {
		return branch, nil
	}

	repo, err := s.client.GetRepository(ctx, owner, name)
	if err != nil {
		return "", err
	}
	branch = repo.GetDefaultBranch()
	if branch == "" {
		branch = "main"
	}

	s.mu.Lock()
	s.branch = branch
	s.mu.Unlock()
	return branch, nil
}
