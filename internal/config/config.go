package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the top-level application configuration.
type Config struct {
	Extract ExtractConfig `toml:"extract"`
	Render  RenderConfig  `toml:"render"`
	Store   StoreConfig   `toml:"store"`
}

// ExtractConfig holds settings for API surface extraction.
type ExtractConfig struct {
	IncludeDependencies       bool     `toml:"include_dependencies"`
	IncludeInternalsVisibleTo bool     `toml:"include_internals_visible_to"`
	Exclude                   []string `toml:"exclude"`
	Concurrency               int      `toml:"concurrency"`
	Language                  string   `toml:"language"`
}

// RenderConfig holds settings for rendering code files.
type RenderConfig struct {
	Format    string `toml:"format"`
	PageTitle string `toml:"page_title"`
}

// StoreConfig selects the revision database.
type StoreConfig struct {
	Driver    string `toml:"driver"`
	DSN       string `toml:"dsn"`
	DSNSource string `toml:"dsn_source"`
	DSNEnv    string `toml:"dsn_env"`
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			IncludeDependencies:       true,
			IncludeInternalsVisibleTo: true,
			Language:                  "csharp",
		},
		Render: RenderConfig{
			Format: "auto",
		},
		Store: StoreConfig{
			Driver:    "sqlite",
			DSNSource: "config",
			DSNEnv:    "APIVIEW_STORE_DSN",
		},
	}
}

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "apiview"), nil
}

// DefaultPath returns the path of the per-user config file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the TOML file at path over the defaults. A missing file yields
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}
