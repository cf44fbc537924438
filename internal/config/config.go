// Package config handles loading and parsing application configuration.
// It supports three sources (later ones override earlier ones):
//  1. Defaults declared with env-default:"..." tags
//  2. A YAML file, from CONFIG_PATH or the --config flag
//  3. Environment variables (a .env file is loaded into the environment
//     by the CLI before this package runs)
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Storage driver names accepted by Storage.Driver.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// Clock formats accepted by Config.Clock.
const (
	Clock12h = "12h"
	Clock24h = "24h"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	// Storage selects where the buddy list lives.
	Storage Storage `yaml:"storage"`

	// ZoneInfoDir is the zoneinfo tree walked to list supported timezones.
	ZoneInfoDir string `yaml:"zoneinfo_dir" env:"ZONEINFO_DIR" env-default:"/usr/share/zoneinfo"`

	// Clock picks how local times are printed: "12h" (3:04 PM) or "24h" (15:04).
	Clock string `yaml:"clock" env:"CLOCK" env-default:"12h" validate:"oneof=12h 24h"`

	Log Log `yaml:"log"`

	// HTTPServer is embedded (not a pointer) so its fields are accessible
	// directly on Config:  cfg.HTTPServer.Addr  or after promotion cfg.Addr
	HTTPServer `yaml:"http_server"`
}

// Storage holds the key-value backend settings.
type Storage struct {
	// Driver is "sqlite" (default) or "file".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite" validate:"oneof=sqlite file"`

	// Path is the SQLite .db file or the JSON document, depending on Driver.
	// Empty means a file under the user's config directory.
	Path string `yaml:"path" env:"STORAGE_PATH"`

	// Namespace prefixes every key written to the store.
	Namespace string `yaml:"namespace" env:"STORAGE_NAMESPACE" env-default:"timezone-buddy" validate:"required"`
}

// Log configures where log records go. With an empty File, logs go to stderr.
type Log struct {
	File       string `yaml:"file" env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" env-default:"5"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"3"`
}

// HTTPServer holds settings specific to the `serve` command.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
}

// Load reads, normalizes, and validates the config.
//
// With an empty path only the environment (and defaults) are used, so
// the CLI works out of the box. A non-empty path must exist.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
	} else {
		// Verify the file exists before trying to read it, so the user
		// gets a clear message rather than a cryptic open error.
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: invalid config: %w", err)
	}

	return &cfg, nil
}

// Normalize fills values that cannot be expressed as static defaults.
func (c *Config) Normalize() error {
	if c.Storage.Path != "" {
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("config.Normalize: user config dir: %w", err)
	}

	name := "buddies.db"
	if c.Storage.Driver == DriverFile {
		name = "buddies.json"
	}
	c.Storage.Path = filepath.Join(dir, "timezone-buddy", name)

	return nil
}

// Uses24h reports whether times should be printed on a 24-hour clock.
func (c *Config) Uses24h() bool {
	return c.Clock == Clock24h
}
