// Command gridsim runs a grid task simulation from a scenario file or
// command-line flags, either to completion (batch) or interactively in the
// terminal (--watch).
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridsim"
	"github.com/pdrpinto/gridsim/grid"
	"github.com/pdrpinto/gridsim/internal/ctxlog"
	"github.com/pdrpinto/gridsim/scenario"
)

type options struct {
	scenarioPath string
	columns      int
	rows         int
	tasks        int
	barriers     int
	seed         int64
	startCol     int
	startRow     int
	algorithm    string
	logLevel     string
	logFormat    string
	watch        bool
	delay        time.Duration
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "gridsim",
		Short:         "Simulate an agent clearing tasks on a barrier grid with A* or IDA*",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), out, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenarioPath, "scenario", "s", "", "path to an HCL scenario file")
	cmd.Flags().IntVar(&opts.columns, "columns", 20, "grid columns (ignored with --scenario)")
	cmd.Flags().IntVar(&opts.rows, "rows", 15, "grid rows (ignored with --scenario)")
	cmd.Flags().IntVar(&opts.tasks, "tasks", 5, "number of random tasks (ignored with --scenario)")
	cmd.Flags().IntVar(&opts.barriers, "barriers", 15, "number of random barriers (ignored with --scenario)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (ignored with --scenario)")
	cmd.Flags().IntVar(&opts.startCol, "start-col", 0, "agent start column (ignored with --scenario)")
	cmd.Flags().IntVar(&opts.startRow, "start-row", 0, "agent start row (ignored with --scenario)")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "search algorithm: astar or idastar (overrides the scenario)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "logging level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "text", "log output format: text or json")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "step the run interactively in the terminal")
	cmd.Flags().DurationVar(&opts.delay, "delay", 200*time.Millisecond, "step cadence in watch mode")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(opts.logLevel, opts.logFormat, os.Stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	sim, err := buildSimulation(opts)
	if err != nil {
		return err
	}
	if opts.algorithm != "" {
		algo, err := gridsim.ParseAlgorithm(opts.algorithm)
		if err != nil {
			return err
		}
		if err := sim.SelectAlgorithm(algo); err != nil {
			return err
		}
	}
	logger.Info("run configured",
		"algorithm", sim.Algorithm().String(),
		"columns", sim.Grid().Columns(),
		"rows", sim.Grid().Rows(),
		"tasks", sim.Grid().TaskCount(),
	)

	if opts.watch {
		return runWatch(ctx, out, sim, opts.delay)
	}
	return runBatch(ctx, out, sim)
}

func buildSimulation(opts options) (*gridsim.Simulation, error) {
	if opts.scenarioPath != "" {
		sc, err := scenario.Load(opts.scenarioPath)
		if err != nil {
			return nil, err
		}
		return sc.Build()
	}
	return gridsim.New(gridsim.Config{
		Columns:      opts.columns,
		Rows:         opts.rows,
		TaskCount:    opts.tasks,
		BarrierCount: opts.barriers,
		Seed:         opts.seed,
		Start:        grid.Position{Col: opts.startCol, Row: opts.startRow},
	})
}

// runBatch steps the simulation to completion and prints a rendered grid
// plus a summary. A stalled run (unreachable tasks left over) is an error.
func runBatch(ctx context.Context, out io.Writer, sim *gridsim.Simulation) error {
	logger := ctxlog.FromContext(ctx)
	for !sim.Done() {
		if err := sim.Step(ctx); err != nil {
			return err
		}
	}
	snap := sim.Snapshot()
	fmt.Fprintln(out, renderGrid(snap))
	fmt.Fprintln(out, renderSummary(snap, sim.Algorithm()))
	if snap.Stalled {
		logger.Warn("run stalled", "tasks_left", len(snap.Tasks), "cost", snap.Cost)
		return fmt.Errorf("run stalled with %d unreachable task(s)", len(snap.Tasks))
	}
	logger.Info("run complete", "completed", len(snap.Completed), "cost", snap.Cost)
	return nil
}

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}
	return slog.New(handler)
}
