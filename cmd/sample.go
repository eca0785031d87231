package cmd

import (
	"fmt"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/stream"

	"github.com/spf13/cobra"
)

var (
	flagTicks int
	flagSeed  uint64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Run the stream deterministically and print the window",
	RunE:  runSample,
}

func init() {
	sampleCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Samples to produce (default: one full window)")
	sampleCmd.Flags().Uint64Var(&flagSeed, "seed", 1, "Random seed")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := stream.New(cfg.StreamOptions(), stream.NewSource(flagSeed))
	if err != nil {
		return err
	}

	ticks := flagTicks
	if ticks <= 0 {
		ticks = eng.Capacity()
	}
	for i := 0; i < ticks; i++ {
		eng.Tick()
	}

	out := cmd.OutOrStdout()
	sp := eng.Split()
	st := eng.Stats()

	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("pulse sample · seed %d", flagSeed)))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.SplitTable(sp)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", cli.RenderSparkline(sp))
	fmt.Fprintf(out, "  %s\n", cli.RenderFillBar(st.Len, st.Capacity, 20))
	fmt.Fprintf(out, "  ticks %s · evicted %s · range %d-%d · mean %.1f\n",
		cli.FormatNumber(int64(st.Ticks)),
		cli.FormatNumber(int64(st.Evicted)),
		st.Min, st.Max, st.Mean,
	)
	return nil
}
