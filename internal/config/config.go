// Package config resolves LabFlow settings from an optional YAML file and
// environment variables. Environment always wins over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config selects the record store and ambient settings.
//
// When ServerURL is set, LabFlow talks to the remote collection API;
// otherwise it uses the local SQLite database at DBPath.
type Config struct {
	ServerURL string `yaml:"server_url"`
	Token     string `yaml:"token"`
	DBPath    string `yaml:"db_path"`
	LogPath   string `yaml:"log_path"`
}

// Remote reports whether a remote record store is configured.
func (c Config) Remote() bool { return c.ServerURL != "" }

// DefaultPath returns the default config file location (~/.labflow/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".labflow", "config.yaml"), nil
}

// Load reads the config file at path (missing file is not an error) and
// applies environment overrides. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No file: env and defaults only.
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("LABFLOW_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("LABFLOW_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("LABFLOW_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LABFLOW_LOG"); v != "" {
		cfg.LogPath = v
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".labflow", "labflow.db")
	}
	return cfg, nil
}
