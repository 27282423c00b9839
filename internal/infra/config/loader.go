// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// ConfigFileName is the file name looked up inside the config directory.
const ConfigFileName = "config.toml"

// envPrefix is the prefix of environment variable overrides.
const envPrefix = "SCOPEPLAN_"

// Loader loads configuration with the precedence
// default <- config file <- environment (later takes precedence).
// Explicit command-line flags are applied by the caller on top.
type Loader struct {
	confDir string
}

// NewLoader creates a Loader reading from the default config directory,
// $XDG_CONFIG_HOME/scopeplan (or ~/.config/scopeplan).
func NewLoader() *Loader {
	return &Loader{confDir: defaultConfigDir()}
}

// NewLoaderWithDir creates a Loader with a custom config directory. This is
// useful for testing.
func NewLoaderWithDir(dir string) *Loader {
	return &Loader{confDir: dir}
}

func defaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "scopeplan")
}

// Load returns the merged configuration.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if l.confDir != "" {
		path := filepath.Join(l.confDir, ConfigFileName)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// No file is fine, defaults apply.
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overlays SCOPEPLAN_* environment variables onto cfg. An unset or
// empty variable leaves the current value alone.
func applyEnv(cfg *domain.Config) {
	setString := func(name string, dst *string) {
		if v := os.Getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) {
		if v := os.Getenv(envPrefix + name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString("PROVIDER", &cfg.Oracle.Provider)
	setString("ORACLE_COMMAND", &cfg.Oracle.Command)
	setString("BASE_URL", &cfg.Oracle.BaseURL)
	setString("API_KEY", &cfg.Oracle.APIKey)
	setString("MODEL", &cfg.Oracle.Model)
	setInt("ORACLE_TIMEOUT", &cfg.Oracle.TimeoutSeconds)
	setString("PLAN", &cfg.Plan.Path)
	setString("CHECKPOINT", &cfg.Plan.CheckpointPath)
	setInt("MAX_DEPTH", &cfg.Plan.MaxDepth)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FILE", &cfg.Log.File)
	setString("EDITOR", &cfg.Editor)
}
