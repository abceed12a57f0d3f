package model

import (
	"path/filepath"
	"testing"
)

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &AppConfig{
		Remote: RemoteConfig{
			BaseURL:    "https://boards.internal.example.com",
			BoardID:    "ops-floor",
			Username:   "tester",
			TimeoutSec: 15,
		},
		Display: DisplayConfig{
			Theme:       "dark",
			FuelTickSec: 30,
		},
	}

	if err := SaveConfig(path, want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *got != *want {
		t.Fatalf("config round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Remote.TimeoutSec != 30 || cfg.Display.Theme != "default" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}
