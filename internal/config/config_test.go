package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("QUICKSEARCH_HOME", tmpDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HomeDir != tmpDir {
		t.Errorf("HomeDir = %q, want %q", cfg.HomeDir, tmpDir)
	}
	if cfg.API.URL != "" {
		t.Errorf("API.URL = %q, want empty", cfg.API.URL)
	}
	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("API.TimeoutSeconds = %d, want 30", cfg.API.TimeoutSeconds)
	}
	if cfg.Search.DebounceMs != 300 {
		t.Errorf("Search.DebounceMs = %d, want 300", cfg.Search.DebounceMs)
	}
	if cfg.Search.LookbackBlocks != 1 {
		t.Errorf("Search.LookbackBlocks = %d, want 1", cfg.Search.LookbackBlocks)
	}
	if cfg.Search.TextResultLimit != 15 {
		t.Errorf("Search.TextResultLimit = %d, want 15", cfg.Search.TextResultLimit)
	}
	if cfg.Demo.ListenAddr != "127.0.0.1:8423" {
		t.Errorf("Demo.ListenAddr = %q, want 127.0.0.1:8423", cfg.Demo.ListenAddr)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("QUICKSEARCH_HOME", tmpDir)

	configContent := `
[api]
url = "https://tickets.example.com"
api_key = "test-secret-key"
allow_insecure = true
timeout_seconds = 10

[search]
debounce_ms = 150
lookback_blocks = 2
`
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.URL != "https://tickets.example.com" {
		t.Errorf("API.URL = %q, want https://tickets.example.com", cfg.API.URL)
	}
	if cfg.API.APIKey != "test-secret-key" {
		t.Errorf("API.APIKey = %q, want test-secret-key", cfg.API.APIKey)
	}
	if !cfg.API.AllowInsecure {
		t.Error("API.AllowInsecure = false, want true")
	}
	if cfg.Search.DebounceMs != 150 {
		t.Errorf("Search.DebounceMs = %d, want 150", cfg.Search.DebounceMs)
	}
	if cfg.Search.LookbackBlocks != 2 {
		t.Errorf("Search.LookbackBlocks = %d, want 2", cfg.Search.LookbackBlocks)
	}
	// Unset sections keep their defaults
	if cfg.Search.TextResultLimit != 15 {
		t.Errorf("Search.TextResultLimit = %d, want default 15", cfg.Search.TextResultLimit)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.toml")
	if err := os.WriteFile(configPath, []byte("[api]\nurl = \"https://x.example.com\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.URL != "https://x.example.com" {
		t.Errorf("API.URL = %q, want https://x.example.com", cfg.API.URL)
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := &Config{
		API:    APIConfig{TimeoutSeconds: 5},
		Search: SearchConfig{DebounceMs: 150},
	}
	if got := cfg.Timeout(); got != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", got)
	}
	if got := cfg.Debounce(); got != 150*time.Millisecond {
		t.Errorf("Debounce() = %v, want 150ms", got)
	}

	// Zero and negative values fall back to defaults
	zero := &Config{}
	if got := zero.Timeout(); got != 30*time.Second {
		t.Errorf("Timeout() = %v, want default 30s", got)
	}
	if got := zero.Debounce(); got != 300*time.Millisecond {
		t.Errorf("Debounce() = %v, want default 300ms", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("QUICKSEARCH_HOME", tmpDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.API.URL = "https://tickets.example.com"
	cfg.API.APIKey = "saved-key"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := Load("")
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if reloaded.API.URL != "https://tickets.example.com" {
		t.Errorf("reloaded API.URL = %q, want saved value", reloaded.API.URL)
	}
	if reloaded.API.APIKey != "saved-key" {
		t.Errorf("reloaded API.APIKey = %q, want saved-key", reloaded.API.APIKey)
	}
}

func TestDefaultHomeEnvOverride(t *testing.T) {
	t.Setenv("QUICKSEARCH_HOME", "/srv/quicksearch")
	if got := DefaultHome(); got != "/srv/quicksearch" {
		t.Errorf("DefaultHome() = %q, want /srv/quicksearch", got)
	}
}
