// Package config loads and validates pulse configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/pulse/internal/countdown"
	"github.com/theirongolddev/pulse/internal/stream"

	"github.com/BurntSushi/toml"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all pulse configuration.
type Config struct {
	Stream     StreamConfig     `toml:"stream"`
	Countdown  CountdownConfig  `toml:"countdown"`
	Log        LogConfig        `toml:"log"`
	Account    AccountConfig    `toml:"account"`
	Appearance AppearanceConfig `toml:"appearance"`
	Logging    LoggingConfig    `toml:"logging"`
}

// StreamConfig controls the utilization sample stream.
type StreamConfig struct {
	PeriodMs      int    `toml:"period_ms"`
	Capacity      int    `toml:"capacity"`
	ProjectedTail int    `toml:"projected_tail"`
	Seed          uint64 `toml:"seed,omitempty"` // 0 seeds from the clock
}

// CountdownConfig holds the expiry target. Target is "DD/MM/YYYY"; an
// empty target counts down to the end of the current day.
type CountdownConfig struct {
	Target   string `toml:"target,omitempty"`
	EndOfDay string `toml:"end_of_day,omitempty"`
}

// LogConfig controls the event log.
type LogConfig struct {
	Capacity    int    `toml:"capacity,omitempty"` // 0 keeps every entry
	ArchivePath string `toml:"archive_path,omitempty"`
}

// AccountConfig holds the static account/profile fields shown on the dashboard.
type AccountConfig struct {
	Name   string `toml:"name"`
	Email  string `toml:"email,omitempty"`
	Plan   string `toml:"plan"`
	Status string `toml:"status"`
	Region string `toml:"region,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LoggingConfig controls the structured log output.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Stream: StreamConfig{
			PeriodMs:      int(stream.DefaultPeriod / time.Millisecond),
			Capacity:      stream.DefaultCapacity,
			ProjectedTail: stream.DefaultTail,
		},
		Countdown: CountdownConfig{
			EndOfDay: countdown.EndOfDay.String(),
		},
		Account: AccountConfig{
			Name:   "Operator",
			Plan:   "Standard",
			Status: "Active",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pulse")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pulse")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory used for logs and the
// event archive.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "pulse")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "pulse")
}

// Load reads the default config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // config path is chosen by the local user
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

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to path, creating parent directories.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-chosen path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
