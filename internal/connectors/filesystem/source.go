// Package filesystem reads documentation markdown from a local checkout of
// the documentation repository.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
	"github.com/custodia-labs/b24docs/internal/logger"
)

// DefaultDebounce is how long Watch waits for the tree to settle before
// reporting a batch of changes.
const DefaultDebounce = 500 * time.Millisecond

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("filesystem: source is closed")

// Ensure Source implements the interface.
var _ driven.MarkdownSource = (*Source)(nil)

// Source walks a local checkout of the documentation repository.
type Source struct {
	rootPath string
	webURL   func(path string) string
	debounce time.Duration

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// New creates a source rooted at rootPath. webURL maps a forward-slash
// path relative to the root onto its canonical web address.
func New(rootPath string, webURL func(path string) string) *Source {
	return &Source{
		rootPath: rootPath,
		webURL:   webURL,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides the Watch settle interval.
func (s *Source) SetDebounce(d time.Duration) {
	s.debounce = d
}

// Root returns the checkout directory.
func (s *Source) Root() string {
	return s.rootPath
}

// ListMarkdown returns the forward-slash paths of every markdown file under
// the root, skipping hidden files and directories, in lexical order.
func (s *Source) ListMarkdown(ctx context.Context) ([]string, error) {
	if err := s.checkRoot(); err != nil {
		return nil, err
	}

	var paths []string
	err := filepath.WalkDir(s.rootPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(s.rootPath, p)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		if isHidden(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdown(p) {
			return nil
		}

		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: walk %s: %w", domain.ErrLocalIO, s.rootPath, err)
	}

	sort.Strings(paths)
	logger.Debug("Found %d markdown files under %s", len(paths), s.rootPath)
	return paths, nil
}

// ReadFile reads a file by its forward-slash path relative to the root.
func (s *Source) ReadFile(_ context.Context, p string) (*driven.MarkdownFile, error) {
	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLocalIO, err)
	}
	return &driven.MarkdownFile{Path: p, Content: string(data)}, nil
}

// WebURL returns the canonical web address of a file.
func (s *Source) WebURL(p string) string {
	if s.webURL == nil {
		return p
	}
	return s.webURL(p)
}

// Watch reports batches of changed markdown paths until ctx is cancelled.
// Events are coalesced until the tree has been quiet for the debounce
// interval. The channel is closed when watching stops.
func (s *Source) Watch(ctx context.Context) (<-chan []string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.mu.Unlock()

	if err := s.checkRoot(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := s.addTree(watcher, s.rootPath); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	s.mu.Lock()
	s.watchers = append(s.watchers, watcher)
	s.mu.Unlock()

	out := make(chan []string)
	go s.watchLoop(ctx, watcher, out)
	return out, nil
}

func (s *Source) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- []string) {
	defer close(out)
	defer s.removeWatcher(watcher)

	pending := make(map[string]struct{})
	timer := time.NewTimer(s.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if rel, relevant := s.handleFsEvent(watcher, event); relevant {
				pending[rel] = struct{}{}
				timer.Reset(s.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error under %s: %v", s.rootPath, err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			sort.Strings(batch)
			clear(pending)

			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handleFsEvent returns the relative path of a markdown change worth
// reporting. New directories are added to the watcher.
func (s *Source) handleFsEvent(watcher *fsnotify.Watcher, event fsnotify.Event) (string, bool) {
	rel, err := filepath.Rel(s.rootPath, event.Name)
	if err != nil || isHidden(rel) {
		return "", false
	}

	if event.Has(fsnotify.Create) {
		if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
			if watcher != nil {
				if addErr := s.addTree(watcher, event.Name); addErr != nil {
					logger.Warn("Failed to watch %s: %v", event.Name, addErr)
				}
			}
			return "", false
		}
	}

	if !isMarkdown(event.Name) {
		return "", false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// addTree watches dir and every non-hidden directory below it.
func (s *Source) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if rel, relErr := filepath.Rel(s.rootPath, p); relErr == nil && rel != "." && isHidden(rel) {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

func (s *Source) removeWatcher(watcher *fsnotify.Watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.watchers {
		if w == watcher {
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			break
		}
	}
	_ = watcher.Close()
}

// Close stops every active watch. It is safe to call more than once.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for _, w := range s.watchers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.watchers = nil
	return errors.Join(errs...)
}

func (s *Source) checkRoot() error {
	info, err := os.Stat(s.rootPath)
	if err != nil {
		return fmt.Errorf("%w: root path error: %w", domain.ErrLocalIO, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: root path error: %s is not a directory", domain.ErrLocalIO, s.rootPath)
	}
	return nil
}

// resolve maps a relative path onto the filesystem, refusing paths that
// leave the root.
func (s *Source) resolve(p string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(p))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside %s", domain.ErrInvalidInput, p, s.rootPath)
	}
	return filepath.Join(s.rootPath, clean), nil
}

func isMarkdown(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".md")
}

// isHidden reports whether any path segment starts with a dot.
// "." and ".." are not hidden.
func isHidden(p string) bool {
	for _, part := range strings.Split(filepath.ToSlash(p), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
