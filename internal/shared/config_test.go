package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./latke.db" {
			t.Errorf("expected database path ./latke.db, got %s", config.Database.Path)
		}

		if config.API.BaseURL != "https://api.ibroadcast.com/s/JSON" {
			t.Errorf("expected iBroadcast base URL, got %s", config.API.BaseURL)
		}

		if config.API.RateQuota != 60 {
			t.Errorf("expected rate quota 60, got %d", config.API.RateQuota)
		}

		if config.Credentials.Service != "latke" {
			t.Errorf("expected credential service latke, got %s", config.Credentials.Service)
		}
	})

	t.Run("duration helpers", func(t *testing.T) {
		config := DefaultConfig()

		if got := config.API.Timeout(); got != 30*time.Second {
			t.Errorf("expected 30s timeout, got %v", got)
		}
		if got := config.API.RateWindow(); got != time.Minute {
			t.Errorf("expected 1m rate window, got %v", got)
		}
		if got := config.API.RetryDelay(); got != time.Second {
			t.Errorf("expected 1s retry delay, got %v", got)
		}
		if got := config.API.RefreshThreshold(); got != 5*time.Minute {
			t.Errorf("expected 5m refresh threshold, got %v", got)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "http://localhost:9090/s/JSON"
timeout_seconds = 5
rate_quota = 10
rate_window_seconds = 30
max_retries = 1
retry_delay_seconds = 0.5
refresh_threshold_seconds = 60

[credentials]
service = "latke"
email = "user@example.com"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.API.BaseURL != "http://localhost:9090/s/JSON" {
			t.Errorf("expected custom base URL, got %s", config.API.BaseURL)
		}

		if config.API.RetryDelay() != 500*time.Millisecond {
			t.Errorf("expected 500ms retry delay, got %v", config.API.RetryDelay())
		}

		if config.Credentials.Email != "user@example.com" {
			t.Errorf("expected configured email, got %s", config.Credentials.Email)
		}
	})
}
