// Package config loads the depscout configuration: a yaml file with
// defaults for everything, plus a small set of environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	scerrors "github.com/depscout/depscout/internal/errors"
	"github.com/depscout/depscout/internal/search"
)

// Config is the complete depscout configuration.
type Config struct {
	Version   int             `yaml:"version" json:"version"`
	Index     IndexConfig     `yaml:"index" json:"index"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
	Facets    FacetsConfig    `yaml:"facets" json:"facets"`
}

// IndexConfig locates the document index.
type IndexConfig struct {
	Path string `yaml:"path" json:"path"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	File      string `yaml:"file" json:"file"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
	Stderr    bool   `yaml:"stderr" json:"stderr"`
}

// TelemetryConfig configures local query metrics.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// FacetsConfig carries the curated dependency-facet exclusion set. It is
// configuration, not code, so the set can change without touching
// aggregation logic.
type FacetsConfig struct {
	ExcludedDependencies []string `yaml:"excluded_dependencies" json:"excluded_dependencies"`
}

// DataDir returns the depscout data directory (~/.depscout), falling back
// to the temp directory when the home directory is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".depscout")
	}
	return filepath.Join(home, ".depscout")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	dataDir := DataDir()
	return &Config{
		Version: 1,
		Index: IndexConfig{
			Path: filepath.Join(dataDir, "index"),
		},
		Logging: LoggingConfig{
			Level:     "info",
			File:      filepath.Join(dataDir, "logs", "depscout.log"),
			MaxSizeMB: 10,
			MaxFiles:  5,
			Stderr:    false,
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
			Path:    filepath.Join(dataDir, "telemetry.db"),
		},
		Facets: FacetsConfig{
			ExcludedDependencies: search.DefaultExcludedDependencies,
		},
	}
}

// Load reads the configuration from path, applying defaults for anything
// unset and environment overrides on top. A missing file is not an error;
// defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, scerrors.ConfigError(fmt.Sprintf("read config %s", path), err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, scerrors.ConfigError(fmt.Sprintf("parse config %s", path), err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies DEPSCOUT_* environment overrides, which take priority
// over both defaults and the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("DEPSCOUT_INDEX_PATH"); v != "" {
		c.Index.Path = v
	}
	if v := os.Getenv("DEPSCOUT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DEPSCOUT_TELEMETRY"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Telemetry.Enabled = enabled
		}
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return scerrors.ConfigError(fmt.Sprintf("unknown log level %q", c.Logging.Level), nil)
	}
	if c.Index.Path == "" {
		return scerrors.ConfigError("index path must not be empty", nil)
	}
	return nil
}
