package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/config"
	"github.com/theirongolddev/pulse/internal/store"

	"github.com/spf13/cobra"
)

var flagLimit int

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "List event log entries evicted to the archive",
	RunE:  runArchive,
}

func init() {
	archiveCmd.Flags().IntVarP(&flagLimit, "limit", "l", 20, "Entries to show, newest first")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Log.ArchivePath == "" {
		return errors.New("no archive configured: set [log] archive_path or " + config.EnvArchive)
	}

	a, err := store.Open(cfg.Log.ArchivePath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx := cmd.Context()
	total, err := a.Count(ctx)
	if err != nil {
		return err
	}
	entries, err := a.Recent(ctx, flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("Event archive · %s entries", cli.FormatNumber(int64(total)))))
	fmt.Fprintln(out)
	if len(entries) == 0 {
		fmt.Fprintln(out, "  Nothing archived yet.")
		return nil
	}

	t := cli.Table{Headers: []string{"Event", "Detail", "At"}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{e.Title, e.Subtitle, e.At.Local().Format("2006-01-02 15:04:05")})
	}
	fmt.Fprint(out, cli.RenderTable(t))
	return nil
}
