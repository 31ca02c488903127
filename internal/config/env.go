package config

import (
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "BITRIX24"

// EnvConfig holds environment-based overrides. Unset variables leave the
// corresponding field at its zero value and do not override anything.
// When a prefixed variable is unset envconfig also consults the bare name,
// so GITHUB_TOKEN is honoured when BITRIX24_GITHUB_TOKEN is absent.
type EnvConfig struct {
	// Env: BITRIX24_MCP_TRANSPORT
	Transport string `envconfig:"MCP_TRANSPORT"`

	// Env: BITRIX24_MCP_HTTP_PATH
	HTTPPath string `envconfig:"MCP_HTTP_PATH"`

	// Env: BITRIX24_MCP_HTTP_PORT
	HTTPPort int `envconfig:"MCP_HTTP_PORT"`

	// Env: BITRIX24_MCP_BACKEND
	Backend string `envconfig:"MCP_BACKEND"`

	// Env: BITRIX24_MCP_INDEX_PATH
	IndexPath string `envconfig:"MCP_INDEX_PATH"`

	// Env: BITRIX24_MCP_METRICS
	MetricsEnabled *bool `envconfig:"MCP_METRICS"`

	// Env: BITRIX24_MCP_LOG_LEVEL
	LogLevel string `envconfig:"MCP_LOG_LEVEL"`

	// Env: BITRIX24_MCP_LOG_FORMAT
	LogFormat string `envconfig:"MCP_LOG_FORMAT"`

	// Env: BITRIX24_GITHUB_REPO
	GitHubRepo string `envconfig:"GITHUB_REPO"`

	// Env: BITRIX24_GITHUB_BRANCH
	GitHubBranch string `envconfig:"GITHUB_BRANCH"`

	// Env: BITRIX24_GITHUB_TOKEN
	GitHubToken string `envconfig:"GITHUB_TOKEN"`

	// Env: BITRIX24_GITHUB_RPS
	GitHubRPS float64 `envconfig:"GITHUB_RPS"`
}

// LoadFromEnv reads BITRIX24_* environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return EnvConfig{}, err
	}
	return env, nil
}

// ApplyTo overlays the set variables onto cfg.
func (e EnvConfig) ApplyTo(cfg *Config) {
	if e.Transport != "" {
		cfg.Transport = e.Transport
	}
	if e.HTTPPath != "" {
		cfg.HTTPPath = e.HTTPPath
	}
	if e.HTTPPort != 0 {
		cfg.HTTPPort = e.HTTPPort
	}
	if e.Backend != "" {
		cfg.Backend = e.Backend
	}
	if e.IndexPath != "" {
		cfg.IndexPath = e.IndexPath
	}
	if e.MetricsEnabled != nil {
		cfg.MetricsEnabled = *e.MetricsEnabled
	}
	if e.LogLevel != "" {
		cfg.Log.Level = e.LogLevel
	}
	if e.LogFormat != "" {
		cfg.Log.Format = e.LogFormat
	}
	if e.GitHubRepo != "" {
		cfg.GitHub.Repo = e.GitHubRepo
	}
	if e.GitHubBranch != "" {
		cfg.GitHub.Branch = e.GitHubBranch
	}
	if e.GitHubToken != "" {
		cfg.GitHub.Token = e.GitHubToken
	}
	if e.GitHubRPS != 0 {
		cfg.GitHub.RequestsPerSecond = e.GitHubRPS
	}
}
