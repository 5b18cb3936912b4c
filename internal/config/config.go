// Package config loads avictl settings from TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full avictl configuration.
type Config struct {
	Logging Logging `toml:"logging"`
	Write   Write   `toml:"write"`
	Frames  Frames  `toml:"frames"`
}

// Logging selects the diagnostics level and handler.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Write controls how edited files are written.
type Write struct {
	Atomic bool   `toml:"atomic"`
	Lock   bool   `toml:"lock"`
	Mode   uint32 `toml:"mode"`
}

// Frames holds defaults for the frames command.
type Frames struct {
	KeyframesOnly bool `toml:"keyframes_only"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: Logging{Level: "info", Format: "text"},
		Write:   Write{Atomic: true, Lock: true, Mode: 0o644},
	}
}

const defaultConfigPath = "~/.config/avikit/config.toml"

// DefaultConfigPath returns the absolute path of the default config file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads and validates the config at path. An empty path uses the
// default location, where a missing file means defaults; an explicit path
// must exist. It returns the resolved path and whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, "", false, err
	}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		if err := cfg.Validate(); err != nil {
			return nil, "", false, err
		}
		return &cfg, resolved, false, nil
	default:
		return nil, "", false, fmt.Errorf("open config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, true, nil
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = "info"
	case "warning":
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Write.Mode == 0 {
		c.Write.Mode = 0o644
	}
}

// FileMode returns Write.Mode as a permission.
func (c *Config) FileMode() os.FileMode {
	return os.FileMode(c.Write.Mode).Perm()
}

func expandPath(pathValue string) (string, error) {
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
