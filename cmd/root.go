// Package cmd implements the pulse CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/pulse/internal/config"
	"github.com/theirongolddev/pulse/internal/dashboard"
	"github.com/theirongolddev/pulse/internal/logging"
	"github.com/theirongolddev/pulse/internal/metrics"
	"github.com/theirongolddev/pulse/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig   string
	flagEnvFile  string
	flagPeriod   time.Duration
	flagCapacity int
	flagTail     int
	flagTarget   string
	flagTheme    string
	flagLogLevel string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Live account dashboard",
	Long: "Watch a live utilization stream with a projected tail, count down to the\n" +
		"account expiry and keep a running event log.",
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "Config file (default "+config.Path()+")")
	pf.StringVar(&flagEnvFile, "env-file", "", "Load PULSE_* variables from a dotenv file")
	pf.DurationVar(&flagPeriod, "period", 0, "Stream sampling period (e.g. 800ms)")
	pf.IntVar(&flagCapacity, "capacity", 0, "Samples kept in the stream window")
	pf.IntVar(&flagTail, "tail", 0, "Newest samples drawn as the projected tail")
	pf.StringVarP(&flagTarget, "target", "t", "", "Expiry date as DD/MM/YYYY")
	pf.StringVar(&flagTheme, "theme", "", "Color theme")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
}

// loadConfig resolves the effective configuration: file, then environment,
// then flags. The result is validated before anything is built from it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var envFiles []string
	if flagEnvFile != "" {
		envFiles = append(envFiles, flagEnvFile)
	}
	if err := config.LoadEnvFile(envFiles...); err != nil {
		return config.Config{}, err
	}

	path := flagConfig
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("period") {
		cfg.Stream.PeriodMs = int(flagPeriod / time.Millisecond)
	}
	if flags.Changed("capacity") {
		cfg.Stream.Capacity = flagCapacity
	}
	if flags.Changed("tail") {
		cfg.Stream.ProjectedTail = flagTail
	}
	if flags.Changed("target") {
		cfg.Countdown.Target = flagTarget
	}
	if flags.Changed("theme") {
		cfg.Appearance.Theme = flagTheme
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
	if flagQuiet {
		cfg.Logging.Level = "warn"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the logger for a command. Interactive runs default to a
// file under the cache dir because the TUI owns the terminal.
func newLogger(cfg config.Config, interactive bool) (*zap.Logger, error) {
	file := cfg.Logging.File
	if file == "" && interactive {
		file = filepath.Join(config.CacheDir(), "pulse.log")
	}
	return logging.New(cfg.Logging.Level, file)
}

// session bundles a dashboard with the resources it borrowed.
type session struct {
	dash    *dashboard.Dashboard
	archive *store.Archive
	logger  *zap.Logger
}

func (s *session) Close() {
	if s.archive != nil {
		if err := s.archive.Close(); err != nil {
			s.logger.Warn("closing archive", zap.Error(err))
		}
	}
	_ = s.logger.Sync()
}

// openSession builds the dashboard and, when configured, its archive.
func openSession(cfg config.Config, logger *zap.Logger, m *metrics.Metrics, extra ...dashboard.Option) (*session, error) {
	s := &session{logger: logger}
	opts := []dashboard.Option{dashboard.WithLogger(logger)}
	if m != nil {
		opts = append(opts, dashboard.WithMetrics(m))
	}

	if cfg.Log.ArchivePath != "" {
		a, err := store.Open(cfg.Log.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("opening event archive: %w", err)
		}
		s.archive = a
		opts = append(opts, dashboard.WithArchiver(a))
	}

	d, err := dashboard.New(cfg, append(opts, extra...)...)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.dash = d
	return s, nil
}
