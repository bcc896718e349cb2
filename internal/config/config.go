// Package config handles the gref configuration file and its environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matsen/gref/internal/logging"
)

// Config represents configuration stored in ~/.config/gref/config.yml.
type Config struct {
	Template      string `yaml:"template,omitempty"`       // Path to a custom prompt template
	Standalone    *bool  `yaml:"standalone,omitempty"`     // Standalone-number heuristic, default on
	PreviewLength int    `yaml:"preview_length,omitempty"` // Section preview length in bytes
	LogLevel      string `yaml:"log_level,omitempty"`      // debug, info, warn, error
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "gref"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// Environment variables that override the config file.
const (
	EnvTemplate      = "GREF_TEMPLATE"
	EnvStandalone    = "GREF_STANDALONE"
	EnvPreviewLength = "GREF_PREVIEW_LENGTH"
	EnvLogLevel      = "GREF_LOG_LEVEL"
)

// Keys lists the settable configuration keys.
var Keys = []string{"template", "standalone", "preview-length", "log-level"}

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/gref/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the config file and applies environment overrides.
// A missing file is not an error.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg, err := LoadFile(Path())
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	configCache = cfg
	return cfg, nil
}

// ResetCache clears the cached config.
// Useful for testing.
func ResetCache() {
	configCache = nil
}

// LoadFile reads a config file without environment overrides.
// Returns an empty config if path is empty or the file doesn't exist.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Template != "" {
		cfg.Template = ExpandTilde(cfg.Template)
	}

	return &cfg, nil
}

// Save writes the config file, creating its directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from GREF_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvTemplate); v != "" {
		c.Template = ExpandTilde(v)
	}
	if v := os.Getenv(EnvStandalone); v != "" {
		if err := c.Set("standalone", v); err != nil {
			return fmt.Errorf("%s: %w", EnvStandalone, err)
		}
	}
	if v := os.Getenv(EnvPreviewLength); v != "" {
		if err := c.Set("preview-length", v); err != nil {
			return fmt.Errorf("%s: %w", EnvPreviewLength, err)
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		if err := c.Set("log-level", v); err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	return nil
}

// StandaloneEnabled reports whether the standalone-number heuristic is on.
func (c *Config) StandaloneEnabled() bool {
	return c.Standalone == nil || *c.Standalone
}

// Get returns the string form of a configuration value.
func (c *Config) Get(key string) (string, error) {
	switch NormalizeKey(key) {
	case "template":
		return c.Template, nil
	case "standalone":
		return strconv.FormatBool(c.StandaloneEnabled()), nil
	case "preview-length":
		if c.PreviewLength == 0 {
			return "", nil
		}
		return strconv.Itoa(c.PreviewLength), nil
	case "log-level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// Set validates and stores a configuration value.
func (c *Config) Set(key, value string) error {
	switch NormalizeKey(key) {
	case "template":
		c.Template = ExpandTilde(value)
	case "standalone":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid standalone value %q (want true or false)", value)
		}
		c.Standalone = &b
	case "preview-length":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid preview_length %q (want a non-negative integer)", value)
		}
		c.PreviewLength = n
	case "log-level":
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
		c.LogLevel = strings.ToLower(strings.TrimSpace(value))
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// NormalizeKey converts key formats (preview-length, preview_length, PREVIEW_LENGTH)
// to a consistent format.
func NormalizeKey(key string) string {
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "_", "-")
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
