package cmd

import (
	"fmt"

	"github.com/theirongolddev/pulse/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := flagConfig
	if path == "" {
		path = config.Path()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Config file: %s\n", path)
	if config.Exists() || flagConfig != "" {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Stream]")
	fmt.Fprintf(out, "    Period:         %dms\n", cfg.Stream.PeriodMs)
	fmt.Fprintf(out, "    Capacity:       %d\n", cfg.Stream.Capacity)
	fmt.Fprintf(out, "    Projected tail: %d\n", cfg.Stream.ProjectedTail)
	if cfg.Stream.Seed != 0 {
		fmt.Fprintf(out, "    Seed:           %d\n", cfg.Stream.Seed)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Countdown]")
	if cfg.Countdown.Target != "" {
		fmt.Fprintf(out, "    Target:      %s\n", cfg.Countdown.Target)
	} else {
		fmt.Fprintln(out, "    Target:      end of today")
	}
	fmt.Fprintf(out, "    End of day:  %s\n", cfg.Countdown.EndOfDay)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Log]")
	if cfg.Log.Capacity > 0 {
		fmt.Fprintf(out, "    Capacity: %d\n", cfg.Log.Capacity)
	} else {
		fmt.Fprintln(out, "    Capacity: unbounded")
	}
	if cfg.Log.ArchivePath != "" {
		fmt.Fprintf(out, "    Archive:  %s\n", cfg.Log.ArchivePath)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Account]")
	fmt.Fprintf(out, "    Name:   %s\n", cfg.Account.Name)
	if cfg.Account.Email != "" {
		fmt.Fprintf(out, "    Email:  %s\n", cfg.Account.Email)
	}
	fmt.Fprintf(out, "    Plan:   %s\n", cfg.Account.Plan)
	fmt.Fprintf(out, "    Status: %s\n", cfg.Account.Status)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Logging]")
	fmt.Fprintf(out, "    Level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		fmt.Fprintf(out, "    File:  %s\n", cfg.Logging.File)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `pulse setup` to reconfigure.")
	return nil
}
