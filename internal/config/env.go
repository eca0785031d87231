package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvTarget   = "PULSE_TARGET"
	EnvPeriodMs = "PULSE_PERIOD_MS"
	EnvTheme    = "PULSE_THEME"
	EnvLogLevel = "PULSE_LOG_LEVEL"
	EnvArchive  = "PULSE_ARCHIVE"
)

// LoadEnvFile loads KEY=VALUE pairs from paths into the process
// environment without overriding variables that are already set. With no
// paths, ".env" is used. A missing default file is not an error.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		paths = []string{".env"}
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with any PULSE_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvTarget); v != "" {
		cfg.Countdown.Target = v
	}
	if v := os.Getenv(EnvPeriodMs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, EnvPeriodMs, v)
		}
		cfg.Stream.PeriodMs = n
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Appearance.Theme = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvArchive); v != "" {
		cfg.Log.ArchivePath = v
	}
	return nil
}
