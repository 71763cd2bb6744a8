package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"coldcall"`
	}

	Data struct {
		// Dir overrides the default per-user data directory.
		Dir  string `envconfig:"DATA_DIR" default:""`
		File string `envconfig:"DATA_FILE" default:"coldcall.db"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:""`
	}
}

// DatabasePath resolves where the SQLite file lives, creating the data
// directory if needed. Without DATA_DIR it uses the OS user config dir.
func (c *Config) DatabasePath() (string, error) {
	dir := c.Data.Dir

	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolving config dir: %w", err)
		}

		dir = filepath.Join(base, c.App.Name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}

	return filepath.Join(dir, c.Data.File), nil
}

// ExportDir resolves where exports land, defaulting to the working
// directory.
func (c *Config) ExportDir() string {
	if c.Export.Dir != "" {
		return c.Export.Dir
	}

	return "."
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
