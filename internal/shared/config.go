package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API         APIConfig         `toml:"api"`
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
}

// APIConfig contains settings for the iBroadcast session engine.
type APIConfig struct {
	BaseURL                 string  `toml:"base_url"`
	TimeoutSeconds          int     `toml:"timeout_seconds"`
	RateQuota               int     `toml:"rate_quota"`
	RateWindowSeconds       int     `toml:"rate_window_seconds"`
	MaxRetries              int     `toml:"max_retries"`
	RetryDelaySeconds       float64 `toml:"retry_delay_seconds"`
	RefreshThresholdSeconds int     `toml:"refresh_threshold_seconds"`
}

// Timeout returns the per-request HTTP timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// RateWindow returns the rate limiter window duration.
func (a APIConfig) RateWindow() time.Duration {
	return time.Duration(a.RateWindowSeconds) * time.Second
}

// RetryDelay returns the base backoff delay between retries.
func (a APIConfig) RetryDelay() time.Duration {
	return time.Duration(a.RetryDelaySeconds * float64(time.Second))
}

// RefreshThreshold returns how far before token expiry a refresh is triggered.
func (a APIConfig) RefreshThreshold() time.Duration {
	return time.Duration(a.RefreshThresholdSeconds) * time.Second
}

// CredentialsConfig identifies the stored credential entry for this client.
type CredentialsConfig struct {
	Service string `toml:"service"`
	Email   string `toml:"email"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", ErrInvalidConfig, path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
