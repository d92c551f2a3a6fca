// Package config handles refsift global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/refsift/config.yml.
type Config struct {
	FuzzyThreshold float64  `yaml:"fuzzy_threshold,omitempty"`
	SearchFields   []string `yaml:"search_fields,omitempty"`
	StorePath      string   `yaml:"store_path,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "refsift"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// StoreFile is the default dataset store file name.
	StoreFile = "store.db"

	// DefaultFuzzyThreshold is the similarity cutoff used when the config
	// doesn't set one.
	DefaultFuzzyThreshold = 0.90
)

// DefaultSearchFields are searched when the config doesn't restrict them.
var DefaultSearchFields = []string{"title", "abstract", "keywords"}

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/refsift/config.yml.
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

// Load reads the configuration file. Returns an empty config (not an error)
// if the file doesn't exist.
func Load() (*Config, error) {
	path := Path()
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
	if cfg.FuzzyThreshold < 0 || cfg.FuzzyThreshold > 1 {
		return nil, fmt.Errorf("fuzzy_threshold %v out of range [0, 1]", cfg.FuzzyThreshold)
	}
	return &cfg, nil
}

// Save writes the configuration file, creating its directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Threshold returns the configured fuzzy threshold, or the default.
func (c *Config) Threshold() float64 {
	if c.FuzzyThreshold > 0 {
		return c.FuzzyThreshold
	}
	return DefaultFuzzyThreshold
}

// Fields returns the configured search fields, or the defaults.
func (c *Config) Fields() []string {
	if len(c.SearchFields) > 0 {
		return c.SearchFields
	}
	return DefaultSearchFields
}

/// Store returns the dataset store path. Priority: REFSIFT_STORE environment
// variable, then the configured store_path, then the default under
// XDG_DATA_HOME (falling back to ~/.local/share).
func (c *Config) Store() string {
	if env := os.Getenv("REFSIFT_STORE"); env != "" {
		return env
	}
	if c.StorePath != "" {
		return c.StorePath
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return StoreFile
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDir, StoreFile)
}
