// Package config loads the server configuration from defaults, an optional
// TOML or YAML file, an optional .env file and BITRIX24_* environment
// variables, in that order.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Backends.
const (
	BackendIndex  = "index"
	BackendGitHub = "github"
)

// Defaults.
const (
	DefaultTransport         = TransportStdio
	DefaultHTTPPath          = "/mcp"
	DefaultHTTPPort          = 8000
	DefaultBackend           = BackendIndex
	DefaultIndexPath         = "data/index/simple_index.json"
	DefaultGitHubRepo        = "bitrix24/b24restdocs"
	DefaultRequestsPerSecond = 5.0
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "auto"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete server configuration. It is loaded once and
// treated as immutable afterwards.
type Config struct {
	Transport      string       `toml:"transport" yaml:"transport"`
	HTTPPath       string       `toml:"http_path" yaml:"http_path"`
	HTTPPort       int          `toml:"http_port" yaml:"http_port"`
	Backend        string       `toml:"backend" yaml:"backend"`
	IndexPath      string       `toml:"index_path" yaml:"index_path"`
	MetricsEnabled bool         `toml:"metrics" yaml:"metrics"`
	GitHub         GitHubConfig `toml:"github" yaml:"github"`
	Log            LogConfig    `toml:"log" yaml:"log"`
}

// GitHubConfig configures the GitHub backend and the tree index source.
type GitHubConfig struct {
	Repo              string  `toml:"repo" yaml:"repo"`
	Branch            string  `toml:"branch" yaml:"branch"` // empty: repository default
	Token             string  `toml:"token" yaml:"token"`
	RequestsPerSecond float64 `toml:"requests_per_second" yaml:"requests_per_second"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // auto, console, json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Transport:      DefaultTransport,
		HTTPPath:       DefaultHTTPPath,
		HTTPPort:       DefaultHTTPPort,
		Backend:        DefaultBackend,
		IndexPath:      DefaultIndexPath,
		MetricsEnabled: true,
		GitHub: GitHubConfig{
			Repo:              DefaultGitHubRepo,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Validate checks the configuration for correctness.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("%w: transport must be %q or %q, got %q",
			ErrInvalidConfig, TransportStdio, TransportHTTP, c.Transport)
	}

	switch c.Backend {
	case BackendIndex, BackendGitHub:
	default:
		return fmt.Errorf("%w: backend must be %q or %q, got %q",
			ErrInvalidConfig, BackendIndex, BackendGitHub, c.Backend)
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port must be between 1 and 65535, got %d", ErrInvalidConfig, c.HTTPPort)
	}
	if !strings.HasPrefix(c.HTTPPath, "/") {
		return fmt.Errorf("%w: http_path must start with /, got %q", ErrInvalidConfig, c.HTTPPath)
	}
	if c.Backend == BackendIndex && strings.TrimSpace(c.IndexPath) == "" {
		return fmt.Errorf("%w: index_path is required for the index backend", ErrInvalidConfig)
	}

	owner, name, ok := strings.Cut(c.GitHub.Repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%w: github.repo must be owner/name, got %q", ErrInvalidConfig, c.GitHub.Repo)
	}
	if c.GitHub.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: github.requests_per_second must be positive", ErrInvalidConfig)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level must be debug, info, warn or error, got %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Log.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("%w: log.format must be auto, console or json, got %q", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}
