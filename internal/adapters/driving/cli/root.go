// Package cli provides the b24docs command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/b24docs/internal/config"
	"github.com/custodia-labs/b24docs/internal/logger"
)

var (
	version = "dev"

	configFile string
	envFile    string
	verbose    bool

	// appConfig is populated by the root pre-run hook.
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "b24docs",
	Short: "Bitrix24 REST documentation MCP server",
	Long: `b24docs serves the Bitrix24 REST API documentation to AI assistants
over the Model Context Protocol.

Documents come either from a local pre-built index or live from the
GitHub repository of the documentation.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (TOML, or YAML by extension)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by the CLI and the MCP server.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		EnvFile:    envFile,
	})
	if err != nil {
		return err
	}

	if err := logger.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	logger.SetVerbose(verbose)

	appConfig = &cfg
	return nil
}

// currentConfig returns the loaded configuration, or the defaults when
// the pre-run hook did not run.
func currentConfig() *config.Config {
	if appConfig == nil {
		cfg := config.Default()
		return &cfg
	}
	return appConfig
}
