package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./moviex.db" {
			t.Errorf("expected database path ./moviex.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.API.BaseURL != "https://www.omdbapi.com/" {
			t.Errorf("expected OMDb base URL, got %s", config.API.BaseURL)
		}

		if config.API.Plot != "short" {
			t.Errorf("expected short plot, got %s", config.API.Plot)
		}

		if config.UI.Theme != "light" {
			t.Errorf("expected light theme, got %s", config.UI.Theme)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[api]
key = "abc123"
plot = "full"
timeout_seconds = 3

[database]
path = "/custom/path.db"

[server]
host = "0.0.0.0"
port = 8080
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.Key != "abc123" {
			t.Errorf("expected api key abc123, got %s", config.API.Key)
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Addr())
		}
		if config.Timeout() != 3*time.Second {
			t.Errorf("expected 3s timeout, got %s", config.Timeout())
		}
		if config.API.BaseURL != "https://www.omdbapi.com/" {
			t.Errorf("expected missing keys to keep defaults, got base_url %q", config.API.BaseURL)
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api\nkey = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		config := DefaultConfig()
		if err := config.Validate(); !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("expected placeholder key to be rejected, got %v", err)
		}

		config.API.Key = "a0a60565"
		if err := config.Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}

		config.API.Plot = "medium"
		if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected invalid plot to be rejected, got %v", err)
		}
	})

	t.Run("Timeout Default", func(t *testing.T) {
		config := DefaultConfig()
		config.API.TimeoutSeconds = 0
		if config.Timeout() != 10*time.Second {
			t.Errorf("expected 10s default timeout, got %s", config.Timeout())
		}
	})
}
