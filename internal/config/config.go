// Package config handles global configuration and credential sourcing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/autobib/config.yml.
type Config struct {
	ADSAPIKey  string `yaml:"ads_api_key,omitempty"`
	Source     string `yaml:"source,omitempty"`      // Default fetch strategy: ads, inspire, auto
	MaxAuthors int    `yaml:"max_authors,omitempty"` // Default author truncation; 0 disables
	BibFile    string `yaml:"bib_file,omitempty"`    // Default .bib file path
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "autobib"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// Path returns the path to the global config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/autobib/config.yml.
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

// Load reads the global configuration file. Returns an empty config (not an
// error) if the file doesn't exist.
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

	return &cfg, nil
}

// Save writes the global configuration file, creating the config directory
// if needed.
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

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ResolveAPIKey returns the ADS API token with flag > environment > config
// file precedence. A .env file in the working directory is loaded first so
// ADS_API_KEY can live next to the LaTeX project.
func ResolveAPIKey(flagValue string, cfg *Config) string {
	if flagValue != "" {
		return flagValue
	}

	_ = godotenv.Load()
	if key := os.Getenv("ADS_API_KEY"); key != "" {
		return key
	}

	if cfg != nil {
		return cfg.ADSAPIKey
	}
	return ""
}
