package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/b24docs/internal/adapters/driven/auth"
	"github.com/custodia-labs/b24docs/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/b24docs/internal/config"
	"github.com/custodia-labs/b24docs/internal/connectors/github"
	"github.com/custodia-labs/b24docs/internal/core/ports/driving"
	"github.com/custodia-labs/b24docs/internal/core/services"
	"github.com/custodia-labs/b24docs/internal/logger"
)

// backend is the docs service selected by the configuration.
type backend struct {
	docs driving.DocsService

	// catalog is nil for the github backend.
	catalog driving.CatalogService
}

// openBackend builds the configured backend. Replaced in tests.
var openBackend = func(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Backend {
	case config.BackendIndex:
		return openIndexBackend(ctx, cfg)
	case config.BackendGitHub:
		return openGitHubBackend(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidConfig, cfg.Backend)
	}
}

func openIndexBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	store, err := file.New(cfg.IndexPath)
	if err != nil {
		return nil, err
	}
	catalog, err := store.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load index %s: %w", cfg.IndexPath, err)
	}
	logger.Info("Loaded %d documents from %s", catalog.Len(), cfg.IndexPath)

	svc := services.NewIndexService(catalog, store)
	return &backend{docs: svc, catalog: svc}, nil
}

func openGitHubBackend(cfg *config.Config) (*backend, error) {
	ghCfg, err := newGitHubConfig(cfg)
	if err != nil {
		return nil, err
	}
	client := newGitHubClient(cfg)
	logger.Info("Using GitHub backend for %s", ghCfg.Repo)

	return &backend{docs: services.NewRemoteService(github.New(client, ghCfg))}, nil
}

func newGitHubConfig(cfg *config.Config) (*github.Config, error) {
	ghCfg, err := github.ParseConfig(cfg.GitHub.Repo, cfg.GitHub.Branch)
	if err != nil {
		return nil, fmt.Errorf("github config: %w", err)
	}
	return ghCfg, nil
}

func newGitHubClient(cfg *config.Config) *github.Client {
	return github.NewClient(auth.ForToken(cfg.GitHub.Token), cfg.GitHub.RequestsPerSecond)
}

// remoteHint suggests a fix for GitHub failures the user can act on.
func remoteHint(err error) string {
	switch {
	case github.IsRateLimited(err):
		return "GitHub rate limit reached. Set BITRIX24_GITHUB_TOKEN for a higher quota or retry later."
	case github.IsUnauthorized(err):
		return "GitHub rejected the token. Check BITRIX24_GITHUB_TOKEN."
	case github.IsForbidden(err):
		return "GitHub denied access. Code search requires a token in BITRIX24_GITHUB_TOKEN."
	case github.IsNotFound(err):
		return "The path does not exist in the repository."
	}
	return ""
}

// printHint writes the hint for err, if any, to stderr.
func printHint(cmd *cobra.Command, err error) {
	if hint := remoteHint(err); hint != "" {
		cmd.PrintErrln(hint)
	}
}
