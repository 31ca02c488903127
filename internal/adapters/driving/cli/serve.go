package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/b24docs/internal/adapters/driving/mcp"
	"github.com/custodia-labs/b24docs/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default the server communicates over stdio. Use --transport http to
serve the streamable HTTP transport instead.

Examples:
  # Stdio mode, local index
  b24docs serve

  # HTTP mode on port 8000, live GitHub backend
  b24docs serve --transport http --port 8000 --backend github

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "bitrix24-docs": {
        "command": "/path/to/b24docs",
        "args": ["serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServer runs the MCP server until ctx is cancelled. Replaced in tests.
var runServer = func(ctx context.Context, server *mcp.Server, cfg *config.Config) error {
	if cfg.Transport == config.TransportHTTP {
		return server.RunHTTP(ctx, fmt.Sprintf(":%d", cfg.HTTPPort), cfg.HTTPPath)
	}
	return server.Run(ctx)
}

func init() {
	serveCmd.Flags().String("transport", "", "transport: stdio or http")
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port")
	serveCmd.Flags().String("path", "", "HTTP endpoint path")
	serveCmd.Flags().String("backend", "", "docs backend: index or github")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := serveConfig(cmd)
	if err != nil {
		return err
	}

	b, err := openBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Docs: b.docs, Catalog: b.catalog}, mcp.Options{
		Version: version,
		Backend: cfg.Backend,
		Metrics: cfg.MetricsEnabled,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServer(ctx, server, cfg)
}

// serveConfig applies the serve flags to a copy of the loaded config.
func serveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := *currentConfig()
	flags := cmd.Flags()

	if flags.Changed("transport") {
		cfg.Transport, _ = flags.GetString("transport")
	}
	if flags.Changed("port") {
		cfg.HTTPPort, _ = flags.GetInt("port")
	}
	if flags.Changed("path") {
		cfg.HTTPPath, _ = flags.GetString("path")
	}
	if flags.Changed("backend") {
		cfg.Backend, _ = flags.GetString("backend")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
