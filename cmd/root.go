package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/switch-sim/sim"
	"github.com/inference-sim/switch-sim/sim/trace"
)

// defaultSeed is the seed of a single run and the base seed of a sweep.
const defaultSeed uint64 = 20260206

var (
	// CLI flags for a single switch run
	ports       int    // Number of switch ports
	slots       int64  // Number of time slots to simulate
	seed        uint64 // Seed for arrival destinations
	verbose     bool   // Print per-slot throughput
	traceLevel  string // Decision trace level
	resultsPath string // Optional YAML results file
	logLevel    string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "switch-sim",
	Short: "Slot-level simulator of a crossbar switch scheduler",
}

// runCmd executes a single switch simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single switch simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		sw, err := sim.NewSwitch(ports, seed)
		if err != nil {
			logrus.Fatalf("Unable to build switch: %v", err)
		}

		var st *trace.SimulationTrace
		if trace.TraceLevel(traceLevel) == trace.TraceLevelDecisions {
			st = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
		}

		logrus.Infof("Starting simulation with %d ports, %d slots, seed=%d", ports, slots, seed)
		startTime := time.Now()

		res, err := sw.Run(sim.RunConfig{
			Slots:    slots,
			Verbose:  verbose,
			Observer: slotPrinter(os.Stdout),
			Trace:    st,
		})
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		fmt.Println()
		res.Print(os.Stdout)
		if st != nil {
			printTraceSummary(os.Stdout, trace.Summarize(st))
		}
		if resultsPath != "" {
			if err := saveResults(resultsPath, res); err != nil {
				logrus.Fatalf("Unable to save results: %v", err)
			}
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// setupLogging parses the --log flag and applies it to logrus.
func setupLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

// displayCadence decides which slots are printed in verbose mode:
// every slot up to 20, then every 10,000th.
func displayCadence(slot int64) bool {
	return slot <= 20 || slot%10000 == 0
}

// slotPrinter returns an observer printing per-slot throughput on the display cadence.
func slotPrinter(w io.Writer) sim.SlotObserver {
	return func(r sim.SlotReport) {
		if !displayCadence(r.Slot) {
			return
		}
		fmt.Fprintf(w, "Slot %d | sent=%d | throughput=%.6g%%\n", r.Slot, r.Sent, r.Percent)
	}
}

// printTraceSummary prints the decision trace statistics.
func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Scheduling Decisions ===")
	fmt.Fprintf(w, "Slots Traced         : %d\n", s.TotalSlots)
	fmt.Fprintf(w, "Matching Changes     : %d\n", s.MatchingChanges)
	for _, src := range []string{trace.SourceHold, trace.SourceSwap, trace.SourceCyclic} {
		fmt.Fprintf(w, "  %-19s: %d\n", src, s.SourceDistribution[src])
	}
	fmt.Fprintf(w, "Mean Matching Weight : %.4f\n", s.MeanWeight)
	fmt.Fprintf(w, "Max Matching Weight  : %d\n", s.MaxWeight)
}

// saveResults writes the run result as YAML to path.
func saveResults(path string, res sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := res.WriteYAML(f); err != nil {
		_ = f.Close()
		return err
	}
	logrus.Debugf("Successfully wrote results to '%s'", path)
	return f.Close()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().IntVar(&ports, "ports", 4, "Number of input (and output) ports")
	runCmd.Flags().Int64Var(&slots, "slots", 1000, "Number of time slots to simulate")
	runCmd.Flags().Uint64Var(&seed, "seed", defaultSeed, "Seed for arrival generation")
	runCmd.Flags().BoolVar(&verbose, "verbose", true, "Print per-slot throughput (slots 1-20, then every 10000th)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Write the run result as YAML to this file")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach `run` and `sweep` as subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
