// Package config resolves invoify settings from the environment.
//
// Values come from, in order of precedence: command-line flags (applied by
// the CLI on top of the result), process environment, a .env file, and the
// defaults below.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDB         = "INVOIFY_DB"
	EnvAPIURL     = "INVOIFY_API_URL"
	EnvAPITimeout = "INVOIFY_API_TIMEOUT"
	EnvOutDir     = "INVOIFY_OUT_DIR"
)

// Defaults.
const (
	DefaultAPIURL     = "http://localhost:3000/api"
	DefaultAPITimeout = 60 * time.Second
	DefaultOutDir     = "."
	defaultDBName     = "invoices.db"
	defaultDataDir    = ".invoify"
)

// Config holds resolved settings.
type Config struct {
	DBPath     string
	APIURL     string
	APITimeout time.Duration
	OutDir     string
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then resolves the config.
// An empty envFile means ".env".
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv resolves the config using getenv for lookups.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		DBPath:     getenv(EnvDB),
		APIURL:     getenv(EnvAPIURL),
		APITimeout: DefaultAPITimeout,
		OutDir:     getenv(EnvOutDir),
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.DBPath = filepath.Join(home, defaultDataDir, defaultDBName)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	if raw := getenv(EnvAPITimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvAPITimeout, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("%s must be positive, got %s", EnvAPITimeout, raw)
		}
		cfg.APITimeout = d
	}

	return cfg, nil
}
