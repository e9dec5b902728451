// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for plume.
//
// Configuration lives in TOML at ~/.plume/config.toml with built-in
// defaults; a missing file is not an error. Environment variables
// PLUME_SERVER_URL and PLUME_DATA_DIR override the file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete plume configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Storage configuration
	Storage StorageConfig `toml:"storage"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// ServerConfig describes the chat backend.
type ServerConfig struct {
	// URL is the base URL of the chat backend.
	URL string `toml:"url"`
	// TimeoutSecs is the per-request timeout for chat requests.
	TimeoutSecs int `toml:"timeout_secs"`
}

// StorageConfig controls where session data lives.
type StorageConfig struct {
	// DataDir holds the state blob, feedback journal, and diagnostics
	// log. Empty means ~/.plume.
	DataDir string `toml:"data_dir"`
}

// UIConfig contains terminal UI tuning knobs.
type UIConfig struct {
	// ComposerMaxLines caps how far the input box auto-grows.
	ComposerMaxLines int `toml:"composer_max_lines"`
	// SidebarWidth is the chat list width in cells.
	SidebarWidth int `toml:"sidebar_width"`
	// CodeHighlight enables syntax highlighting of fenced code blocks
	// in assistant messages.
	CodeHighlight bool `toml:"code_highlight"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:         "http://localhost:5000",
			TimeoutSecs: 60,
		},
		Storage: StorageConfig{},
		UI: UIConfig{
			ComposerMaxLines: 8,
			SidebarWidth:     28,
			CodeHighlight:    true,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultPath returns the default config file location, ~/.plume/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".plume", "config.toml")
	}
	return filepath.Join(home, ".plume", "config.toml")
}

// Load reads the config file at path, applies environment overrides,
// and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PLUME_SERVER_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("PLUME_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
}

// Validate checks the configuration for obvious mistakes and clamps
// out-of-range UI values to usable bounds.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url: %q", c.Server.URL)
	}
	if c.Server.TimeoutSecs <= 0 {
		c.Server.TimeoutSecs = 60
	}
	if c.UI.ComposerMaxLines < 1 {
		c.UI.ComposerMaxLines = 1
	}
	if c.UI.SidebarWidth < 16 {
		c.UI.SidebarWidth = 16
	}
	return nil
}

// DataDir resolves the effective data directory.
func (c *Config) DataDir() string {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".plume"
	}
	return filepath.Join(home, ".plume")
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// Global returns the process-wide configuration, loading defaults on
// first use.
func Global() *Config {
	globalMu.RLock()
	if globalCfg != nil {
		defer globalMu.RUnlock()
		return globalCfg
	}
	globalMu.RUnlock()

	cfg, err := Load("")
	if err != nil {
		cfg = DefaultConfig()
	}
	SetGlobal(cfg)
	return cfg
}

// SetGlobal replaces the process-wide configuration. The config watcher
// calls this on reload.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}
