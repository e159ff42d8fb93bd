// Package config loads xlfpack settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Logging contains configuration for log output.
type Logging struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// Format is console, json or auto (console on a terminal, json otherwise).
	Format string `toml:"format" yaml:"format"`
}

// Limits bounds the files embedded in an envelope.
type Limits struct {
	MaxFileSize int64 `toml:"max_file_size" yaml:"max_file_size"`
}

// Build holds defaults for the build command.
type Build struct {
	// OriginalFormat is applied when no --original-format flag is given.
	OriginalFormat string `toml:"original_format" yaml:"original_format"`
}

// Config encapsulates all configuration values.
type Config struct {
	Logging Logging `toml:"logging" yaml:"logging"`
	Limits  Limits  `toml:"limits" yaml:"limits"`
	Build   Build   `toml:"build" yaml:"build"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Logging: Logging{Level: "info", Format: "auto"},
		Limits:  Limits{MaxFileSize: 100 * 1024 * 1024},
	}
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "xlfpack", "config.toml"), nil
}

// Load parses the file at path over the defaults. An empty path means the
// default location; a missing file yields the defaults. The returned bool
// reports whether a file was read.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, false, err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			if err := cfg.normalize(); err != nil {
				return nil, false, err
			}
			return &cfg, false, nil
		}
		return nil, false, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := decode(file, filepath.Ext(path), &cfg); err != nil {
		return nil, false, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, true, nil
}

func decode(r io.Reader, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err := yaml.NewDecoder(r).Decode(cfg)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	case ".toml", "":
		return toml.NewDecoder(r).Decode(cfg)
	default:
		return fmt.Errorf("unsupported config extension %q", ext)
	}
}

func (c *Config) normalize() error {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "auto"
	}
	c.Build.OriginalFormat = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Build.OriginalFormat)), ".")
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Limits.MaxFileSize <= 0 {
		return fmt.Errorf("limits.max_file_size: must be positive, got %d", c.Limits.MaxFileSize)
	}
	return nil
}
