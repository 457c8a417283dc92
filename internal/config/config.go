// Package config loads and saves flowcast preferences from an XDG TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all flowcast configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Forecast   ForecastConfig   `toml:"forecast"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	HorizonDays int    `toml:"horizon_days"`
	DBPath      string `toml:"db_path,omitempty"`
}

// ForecastConfig tunes the projection.
type ForecastConfig struct {
	// StaleAfterHours is how long a confirmed balance stays fresh.
	StaleAfterHours int `toml:"stale_after_hours"`
	// Currency is the ISO 4217 code used for display only; amounts are
	// always stored in minor units.
	Currency string `toml:"currency"`
}

// DaemonConfig holds background service settings.
type DaemonConfig struct {
	ListenAddr   string `toml:"listen_addr,omitempty"`
	PollInterval int    `toml:"poll_interval_secs"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			HorizonDays: 30,
		},
		Forecast: ForecastConfig{
			StaleAfterHours: 24,
			Currency:        "USD",
		},
		Daemon: DaemonConfig{
			PollInterval: 5,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// StaleAfter returns the staleness policy as a duration.
func (c Config) StaleAfter() time.Duration {
	if c.Forecast.StaleAfterHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Forecast.StaleAfterHours) * time.Hour
}

// DBPath returns the configured database path, or the XDG data default.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), "flowcast.db")
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "flowcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "flowcast")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "flowcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "flowcast")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
