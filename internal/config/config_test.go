package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.HorizonDays != 30 {
		t.Errorf("horizon = %d, want 30", cfg.General.HorizonDays)
	}
	if cfg.Forecast.Currency != "USD" || cfg.StaleAfter() != 24*time.Hour {
		t.Errorf("forecast defaults = %+v", cfg.Forecast)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.HorizonDays = 90
	cfg.Forecast.StaleAfterHours = 72
	cfg.Appearance.Theme = "flexoki-light"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.HorizonDays != 90 || got.StaleAfter() != 72*time.Hour || got.Appearance.Theme != "flexoki-light" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "flowcast", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("general = not toml"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("malformed config should error")
	}
}

func TestDBPathFallsBackToDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg := DefaultConfig()
	want := filepath.Join("/tmp/xdg-data", "flowcast", "flowcast.db")
	if got := cfg.DBPath(); got != want {
		t.Errorf("DBPath = %q, want %q", got, want)
	}

	cfg.General.DBPath = "/elsewhere/f.db"
	if got := cfg.DBPath(); got != "/elsewhere/f.db" {
		t.Errorf("explicit DBPath = %q", got)
	}
}
