// Package config loads and saves wayfare settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
)

// Config holds all wayfare configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Calendar   CalendarConfig   `toml:"calendar"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency string `toml:"currency"`
	DataDir  string `toml:"data_dir,omitempty"`
	LogLevel string `toml:"log_level"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	DarkMode bool `toml:"dark_mode"`
}

// CalendarConfig holds calendar layout settings.
type CalendarConfig struct {
	WeekStart    string `toml:"week_start"` // "sunday" or "monday"
	ShowAdjacent bool   `toml:"show_adjacent"`
}

// envOverrides are read from the environment after the file.
type envOverrides struct {
	DataDir  string `env:"WAYFARE_DATA_DIR"`
	Currency string `env:"WAYFARE_CURRENCY"`
	LogLevel string `env:"WAYFARE_LOG_LEVEL"`
	DarkMode string `env:"WAYFARE_DARK_MODE"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "USD",
			LogLevel: "info",
		},
		Appearance: AppearanceConfig{
			DarkMode: true,
		},
		Calendar: CalendarConfig{
			WeekStart:    "monday",
			ShowAdjacent: true,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wayfare")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wayfare")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "wayfare")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "wayfare")
}

// Load reads the config file, returning defaults if it doesn't exist,
// then applies environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if o.DataDir != "" {
		cfg.General.DataDir = o.DataDir
	}
	if o.Currency != "" {
		cfg.General.Currency = strings.ToUpper(o.Currency)
	}
	if o.LogLevel != "" {
		cfg.General.LogLevel = o.LogLevel
	}
	if o.DarkMode != "" {
		dark, err := strconv.ParseBool(o.DarkMode)
		if err != nil {
			return fmt.Errorf("WAYFARE_DARK_MODE: %w", err)
		}
		cfg.Appearance.DarkMode = dark
	}
	return nil
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

// DataDir returns the configured data directory or the default.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return DefaultDataDir()
}

// DBPath returns the database file path.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir(), "wayfare.db")
}

// LogPath returns the log file path.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir(), "wayfare.log")
}

// FirstWeekday returns the configured week start. Anything other than
// "sunday" means Monday.
func (c Config) FirstWeekday() time.Weekday {
	if strings.EqualFold(strings.TrimSpace(c.Calendar.WeekStart), "sunday") {
		return time.Sunday
	}
	return time.Monday
}
