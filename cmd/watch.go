package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/metrics"
	"github.com/theirongolddev/pulse/internal/scheduler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagFrames      int
	flagMetricsFile string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the dashboard headless, one line per sample",
	Long: "Drive the stream and countdown without the TUI and print a compact frame\n" +
		"for every sample. Ctrl-C stops cleanly.",
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&flagFrames, "frames", "n", 0, "Stop after this many samples (0 runs until interrupted)")
	watchCmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus textfile metrics here after each sample")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}

	m := metrics.New()
	s, err := openSession(cfg, logger, m)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	sched := scheduler.New(logger)
	frames := 0

	writeMetrics := func() {
		if flagMetricsFile == "" {
			return
		}
		if err := m.WriteFile(flagMetricsFile); err != nil {
			logger.Warn("metrics write failed", zap.String("path", flagMetricsFile), zap.Error(err))
		}
	}

	err = sched.Every("stream", s.dash.Period(), func(time.Time) {
		s.dash.TickStream()
		fmt.Fprintln(out, cli.RenderFrameLine(s.dash.Frame()))
		writeMetrics()
		frames++
		if flagFrames > 0 && frames >= flagFrames {
			sched.Stop()
		}
	})
	if err != nil {
		return err
	}
	if err := sched.Every("countdown", time.Second, func(now time.Time) {
		s.dash.TickCountdown(now)
	}); err != nil {
		return err
	}

	logger.Info("watch started", zap.Duration("period", s.dash.Period()), zap.Int("frames", flagFrames))
	if err := sched.Run(ctx); err != nil {
		return err
	}
	writeMetrics()
	logger.Info("watch stopped", zap.Int("frames", frames))
	return nil
}
