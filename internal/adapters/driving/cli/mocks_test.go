package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/custodia-labs/b24docs/internal/config"
	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driving"
)

// mockDocsService is a mock implementation of driving.DocsService.
type mockDocsService struct {
	matches []domain.Match
	doc     *domain.Document
	err     error

	lastQuery string
	lastLimit int
	lastID    string
}

func (m *mockDocsService) Search(_ context.Context, query string, limit int) ([]domain.Match, error) {
	m.lastQuery = query
	m.lastLimit = limit
	return m.matches, m.err
}

func (m *mockDocsService) Fetch(_ context.Context, identifier string) (*domain.Document, error) {
	m.lastID = identifier
	return m.doc, m.err
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct{}

func (mockCatalogService) Entries() []domain.Entry { return nil }

func (mockCatalogService) Read(_ context.Context, _ string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

var _ driving.CatalogService = mockCatalogService{}

// useBackend replaces the backend factory for the duration of the test.
// The config handed to the factory is recorded in *seen.
func useBackend(t *testing.T, b *backend, seen **config.Config) {
	t.Helper()
	original := openBackend
	openBackend = func(_ context.Context, cfg *config.Config) (*backend, error) {
		if seen != nil {
			*seen = cfg
		}
		return b, nil
	}
	t.Cleanup(func() { openBackend = original })
}

// execute runs the root command with args, isolated from the caller's
// environment, and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)
	resetFlags(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// isolateEnv clears every variable the config loader reads and points
// --env-file at a file that does not exist.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"MCP_TRANSPORT", "MCP_HTTP_PATH", "MCP_HTTP_PORT", "MCP_BACKEND", "MCP_INDEX_PATH",
		"MCP_METRICS", "MCP_LOG_LEVEL", "MCP_LOG_FORMAT",
		"GITHUB_REPO", "GITHUB_BRANCH", "GITHUB_TOKEN", "GITHUB_RPS",
	} {
		for _, key := range []string{name, config.EnvPrefix + "_" + name} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
	t.Setenv(config.EnvPrefix+"_MCP_LOG_LEVEL", "error")
}

// resetFlags restores package-level flag values between executions.
func resetFlags(t *testing.T) {
	t.Helper()
	configFile = ""
	envFile = t.TempDir() + "/missing.env"
	verbose = false
	appConfig = nil

	searchLimit = domain.DefaultSearchLimit
	searchJSON = false

	indexSource = ""
	indexWatch = false
	indexDryRun = false
	indexInclude = nil

	for _, name := range []string{"transport", "port", "path", "backend"} {
		if f := serveCmd.Flags().Lookup(name); f != nil {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
}
