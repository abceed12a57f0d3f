package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// RemoteConfig holds the connection settings for the board data service.
// The API token itself lives in the system keyring, never in this file.
type RemoteConfig struct {
	// BaseURL is the root URL of the data service.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// BoardID selects which board this client edits.
	BoardID string `mapstructure:"board_id" yaml:"board_id"`

	// Username is the identity recorded as the author of comments
	// and answers posted from this client.
	Username string `mapstructure:"username" yaml:"username"`

	// TimeoutSec bounds a single request; 0 means the default.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is the default background theme name. The last chosen
	// theme in the prefs store takes precedence over this value.
	Theme string `mapstructure:"theme" yaml:"theme"`

	// FuelTickSec is how often (in seconds) due-date countdowns
	// are recomputed without reloading the board.
	FuelTickSec int `mapstructure:"fuel_tick_sec" yaml:"fuel_tick_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Remote  RemoteConfig  `mapstructure:"remote" yaml:"remote"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/opsboard/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "opsboard", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Remote: RemoteConfig{
			TimeoutSec: 30,
		},
		Display: DisplayConfig{
			Theme:       "default",
			FuelTickSec: 60,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("remote.timeout_sec", 30)
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.fuel_tick_sec", 60)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Remote.TimeoutSec <= 0 {
		cfg.Remote.TimeoutSec = 30
	}
	if cfg.Display.FuelTickSec <= 0 {
		cfg.Display.FuelTickSec = 60
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("remote", cfg.Remote)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
