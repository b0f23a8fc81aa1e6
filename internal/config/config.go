// Package config handles loading and managing quicksearch configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// APIConfig holds TrueTickets API connection configuration.
type APIConfig struct {
	URL            string `toml:"url"`             // API base URL
	APIKey         string `toml:"api_key"`         // API authentication key
	AllowInsecure  bool   `toml:"allow_insecure"`  // Permit plain HTTP (trusted networks only)
	TimeoutSeconds int    `toml:"timeout_seconds"` // Per-request timeout (default: 30)
}

// SearchConfig holds resolver tuning.
type SearchConfig struct {
	DebounceMs      int `toml:"debounce_ms"`       // Keystroke settle time (default: 300)
	LookbackBlocks  int `toml:"lookback_blocks"`   // Extra thousand-blocks probed for suffix shorthand (default: 1)
	TextResultLimit int `toml:"text_result_limit"` // Rows shown for text searches (default: 15)
}

// DemoConfig holds fixture server configuration.
type DemoConfig struct {
	ListenAddr string `toml:"listen_addr"` // Bind address (default: 127.0.0.1:8423)
	APIKey     string `toml:"api_key"`     // Key the fixture server requires, if any
}

// Config represents the quicksearch configuration.
type Config struct {
	API    APIConfig    `toml:"api"`
	Search SearchConfig `toml:"search"`
	Demo   DemoConfig   `toml:"demo"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// DefaultHome returns the default quicksearch home directory.
// Respects QUICKSEARCH_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("QUICKSEARCH_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quicksearch"
	}
	return filepath.Join(home, ".quicksearch")
}

// Load reads the configuration from the specified file.
// If path is empty, uses the default location (~/.quicksearch/config.toml).
func Load(path string) (*Config, error) {
	homeDir := DefaultHome()

	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		// Defaults
		API: APIConfig{
			TimeoutSeconds: 30,
		},
		Search: SearchConfig{
			DebounceMs:      300,
			LookbackBlocks:  1,
			TextResultLimit: 15,
		},
		Demo: DemoConfig{
			ListenAddr: "127.0.0.1:8423",
		},
	}

	// Config file is optional - use defaults if not present
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// ConfigPath returns the path to the config file under the home directory.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.HomeDir, "config.toml")
}

// Timeout returns the per-request API timeout.
func (c *Config) Timeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Debounce returns the keystroke settle window.
func (c *Config) Debounce() time.Duration {
	if c.Search.DebounceMs <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}

// Save writes the configuration to its home-directory path, creating the
// directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.HomeDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.OpenFile(c.ConfigPath(), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
