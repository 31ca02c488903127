package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/b24docs/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/b24docs/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/b24docs/internal/config"
	"github.com/custodia-labs/b24docs/internal/connectors/filesystem"
	"github.com/custodia-labs/b24docs/internal/connectors/github"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
	"github.com/custodia-labs/b24docs/internal/core/services"
	"github.com/custodia-labs/b24docs/internal/logger"
	"github.com/custodia-labs/b24docs/internal/normalisers/markdown"
)

// defaultLocalBranch names the branch in blob URLs of a local checkout
// when no branch is configured.
const defaultLocalBranch = "main"

var (
	indexSource  string
	indexWatch   bool
	indexDryRun  bool
	indexInclude []string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the local documentation index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the local index",
	Long: `Builds the flat-file index used by the index backend.

Markdown files under the include prefixes are normalised into
processed/markdown/<slug>.md next to the index and listed in the index
JSON. Without --source the files are read from the GitHub repository;
with --source they are read from a local checkout.

Examples:
  # From GitHub
  b24docs index build

  # From a local checkout, rebuilding on change
  b24docs index build --source ../b24restdocs --watch`,
	Args: cobra.NoArgs,
	RunE: runIndexBuild,
}

func init() {
	indexBuildCmd.Flags().StringVar(&indexSource, "source", "", "local checkout of the documentation repository")
	indexBuildCmd.Flags().BoolVar(&indexWatch, "watch", false, "rebuild when markdown files change (requires --source)")
	indexBuildCmd.Flags().BoolVar(&indexDryRun, "dry-run", false, "build without writing to disk")
	indexBuildCmd.Flags().StringSliceVar(&indexInclude, "include", nil,
		"repository directories to ingest (default api-reference,tutorials)")
	indexCmd.AddCommand(indexBuildCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexBuild(cmd *cobra.Command, _ []string) error {
	if indexWatch && indexSource == "" {
		return errors.New("--watch requires --source")
	}
	cfg := currentConfig()

	source, closeSource, err := newMarkdownSource(cfg, indexSource)
	if err != nil {
		return err
	}
	defer closeSource()

	writer, target, err := newIndexWriter(cfg, indexDryRun)
	if err != nil {
		return err
	}

	builder := services.NewIndexBuilder(source, markdown.New(markdown.DefaultPreviewLimit), writer, indexInclude)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := buildOnce(ctx, cmd, builder, target); err != nil {
		return err
	}
	if !indexWatch {
		return nil
	}

	fs, ok := source.(*filesystem.Source)
	if !ok {
		return errors.New("--watch requires a local source")
	}
	return watchAndRebuild(ctx, cmd, fs, builder, target)
}

func buildOnce(ctx context.Context, cmd *cobra.Command, builder *services.IndexBuilder, target string) error {
	n, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}
	cmd.Printf("Indexed %d documents into %s\n", n, target)
	return nil
}

// watchAndRebuild rebuilds the index on every batch of markdown changes
// until ctx is cancelled. Failed rebuilds are logged and skipped.
func watchAndRebuild(
	ctx context.Context,
	cmd *cobra.Command,
	source *filesystem.Source,
	builder *services.IndexBuilder,
	target string,
) error {
	changes, err := source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", source.Root(), err)
	}
	cmd.Printf("Watching %s for changes\n", source.Root())

	for batch := range changes {
		logger.Info("Detected %d changed markdown files, rebuilding", len(batch))
		if err := buildOnce(ctx, cmd, builder, target); err != nil {
			logger.Warn("Rebuild failed: %v", err)
		}
	}
	return nil
}

// newMarkdownSource returns a local checkout source when root is set and
// the GitHub tree source otherwise.
func newMarkdownSource(cfg *config.Config, root string) (driven.MarkdownSource, func(), error) {
	ghCfg, err := newGitHubConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	if root == "" {
		return github.NewTreeSource(newGitHubClient(cfg), ghCfg), func() {}, nil
	}

	branch := ghCfg.Branch
	if branch == "" {
		branch = defaultLocalBranch
	}
	fs := filesystem.New(root, func(p string) string {
		return github.BlobURL(ghCfg.Repo, branch, p)
	})
	return fs, func() {
		if err := fs.Close(); err != nil {
			logger.Warn("Closing source: %v", err)
		}
	}, nil
}

// newIndexWriter returns the on-disk store, or an in-memory one for dry
// runs, and a description of where the index goes.
func newIndexWriter(cfg *config.Config, dryRun bool) (driven.IndexWriter, string, error) {
	if dryRun {
		return memory.NewDocumentStore(), "memory (dry run)", nil
	}
	store, err := file.New(cfg.IndexPath)
	if err != nil {
		return nil, "", err
	}
	target := fmt.Sprintf("%s (markdown under %s)",
		store.IndexPath(), filepath.Join(store.DataDir(), filepath.FromSlash(file.MarkdownDir)))
	return store, target, nil
}
