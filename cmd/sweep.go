package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/switch-sim/sim/sweep"
)

var (
	sweepMinPorts   int
	sweepMaxPorts   int
	sweepSlots      int64
	sweepSeed       uint64
	sweepWorkers    int
	sweepOutput     string
	sweepConfigPath string
	sweepLogLevel   string
)

// sweepCmd simulates one switch per port count and writes the throughput table.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep port counts and write the throughput table as CSV",
	Long: "Simulate one independently seeded switch per port count in [min-ports, max-ports] " +
		"(seed = base seed + ports) and write ports,avg_packets_per_slot,avg_throughput_percent rows.",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(sweepLogLevel)

		file, err := resolveSweepFile(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		rows, err := sweep.Run(ctx, file.Sweep)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		for _, r := range rows {
			fmt.Println(formatSweepRow(r))
		}
		if err := writeSweepTable(file.Output, rows); err != nil {
			logrus.Fatalf("Unable to write sweep table: %v", err)
		}
	},
}

// resolveSweepFile merges flag defaults, the optional --config file and
// explicitly set flags, in increasing order of precedence.
func resolveSweepFile(cmd *cobra.Command) (SweepFile, error) {
	file := SweepFile{
		Sweep: sweep.Config{
			MinPorts: sweepMinPorts,
			MaxPorts: sweepMaxPorts,
			Slots:    sweepSlots,
			BaseSeed: sweepSeed,
			Workers:  sweepWorkers,
		},
		Output: sweepOutput,
	}
	if sweepConfigPath != "" {
		loaded, err := loadSweepFile(sweepConfigPath, file)
		if err != nil {
			return SweepFile{}, err
		}
		file = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("min-ports") {
		file.Sweep.MinPorts = sweepMinPorts
	}
	if flags.Changed("max-ports") {
		file.Sweep.MaxPorts = sweepMaxPorts
	}
	if flags.Changed("slots") {
		file.Sweep.Slots = sweepSlots
	}
	if flags.Changed("seed") {
		file.Sweep.BaseSeed = sweepSeed
	}
	if flags.Changed("workers") {
		file.Sweep.Workers = sweepWorkers
	}
	if flags.Changed("output") {
		file.Output = sweepOutput
	}
	if err := file.Sweep.Validate(); err != nil {
		return SweepFile{}, err
	}
	return file, nil
}

// formatSweepRow renders the console summary line of one sweep row with six
// significant digits, matching slotPrinter.
func formatSweepRow(r sweep.Row) string {
	return fmt.Sprintf("ports=%d avg=%.6g (%.6g%%)", r.Ports, r.Result.AvgPacketsPerSlot, r.Result.AvgPercent)
}

// writeSweepTable writes rows to path, or to stdout when path is "-".
func writeSweepTable(path string, rows []sweep.Row) error {
	if path == "-" {
		return sweep.WriteCSV(os.Stdout, rows)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := sweep.WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	logrus.Infof("Wrote %d rows to %s", len(rows), path)
	return f.Close()
}

func init() {
	sweepCmd.Flags().IntVar(&sweepMinPorts, "min-ports", 4, "Smallest port count to simulate")
	sweepCmd.Flags().IntVar(&sweepMaxPorts, "max-ports", 8, "Largest port count to simulate")
	sweepCmd.Flags().Int64Var(&sweepSlots, "slots", 131913, "Number of time slots per port count")
	sweepCmd.Flags().Uint64Var(&sweepSeed, "seed", defaultSeed, "Base seed; the switch with p ports uses seed+p")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "Concurrent simulations (0 = one per port count)")
	sweepCmd.Flags().StringVar(&sweepOutput, "output", "throughput_vs_ports.csv", "CSV output path (- for stdout)")
	sweepCmd.Flags().StringVar(&sweepConfigPath, "config", "", "YAML sweep config; explicitly set flags take precedence")
	sweepCmd.Flags().StringVar(&sweepLogLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
