package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadOptions selects the optional files Load reads.
type LoadOptions struct {
	// ConfigFile is a TOML (or .yaml/.yml) file. Empty skips it.
	ConfigFile string

	// EnvFile is a .env file. Empty means ".env"; a missing file is ignored.
	EnvFile string
}

// Load builds the configuration: defaults, then the config file, then the
// .env file, then BITRIX24_* variables. The result is validated.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if opts.ConfigFile != "" {
		if err := LoadFile(opts.ConfigFile, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := LoadDotEnv(opts.EnvFile); err != nil {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	env, err := LoadFromEnv()
	if err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}
	env.ApplyTo(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. If path is empty, it loads ".env" in the current directory.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}
