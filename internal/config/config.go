package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.reelrc, $XDG_CONFIG_HOME/reel/config.toml, ~/.config/reel/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := FindConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// FindConfigFile returns the first existing config file path.
func FindConfigFile() string {
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath returns where a new config file is written.
func DefaultPath() string {
	paths := searchPaths()
	if len(paths) == 0 {
		return ""
	}
	return paths[len(paths)-1]
}

func searchPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	paths := []string{
		filepath.Join(home, ".reelrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "reel", "config.toml"))

	return paths
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Playback
	if v := os.Getenv("REEL_PLAYBACK_FPS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Playback.FPS = i
		}
	}
	if v := os.Getenv("REEL_PLAYBACK_DEFAULT_SPEED"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Playback.DefaultSpeed = f
		}
	}
	if v := os.Getenv("REEL_PLAYBACK_MAX_SPEED"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Playback.MaxSpeed = f
		}
	}

	// TUI
	if v := os.Getenv("REEL_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("REEL_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Server
	if v := os.Getenv("REEL_SERVER_BASE_URL"); v != "" {
		cfg.Server.BaseURL = v
	}

	// Log
	if v := os.Getenv("REEL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("REEL_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
