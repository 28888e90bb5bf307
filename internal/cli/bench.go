package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpath/pkg/metric"
	"github.com/matzehuels/gridpath/pkg/observability"
	"github.com/matzehuels/gridpath/pkg/pipeline"
	"github.com/matzehuels/gridpath/pkg/search"
)

// benchOpts holds the command-line flags for the bench command.
type benchOpts struct {
	ks            []string // exponents; empty runs each file's own k
	algorithms    []string // concrete algorithms to compare
	repeat        int      // timed runs per cell
	workers       int      // concurrent searches
	maxExpansions int
	maxPasses     int
	metricsFile   string // Prometheus text exposition output
	json          bool
}

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var opts benchOpts

	cmd := &cobra.Command{
		Use:   "bench <file>...",
		Short: "Time A* and Bellman-Ford and cross-check their distances",
		Long: `Bench loads each instance once and runs every algorithm on every requested
exponent, in parallel. Rows whose distance differs from another algorithm's
on the same instance and k are flagged.`,
		Example: `  gridpath bench 100.txt 400.txt --k 0,1,2,inf
  gridpath bench 100.txt --repeat 5 --metrics-file bench.prom`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") && c.Config.Bench.Workers > 0 {
				opts.workers = c.Config.Bench.Workers
			}
			if !cmd.Flags().Changed("repeat") && c.Config.Bench.Repeat > 0 {
				opts.repeat = c.Config.Bench.Repeat
			}
			return c.runBench(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.ks, "k", "k", nil, "exponents to run (comma-separated, accepts inf)")
	cmd.Flags().StringSliceVarP(&opts.algorithms, "algorithm", "a", nil, "algorithms to compare (default astar,bellman-ford)")
	cmd.Flags().IntVar(&opts.repeat, "repeat", pipeline.DefaultRepeat, "timed runs per cell")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "concurrent searches (default GOMAXPROCS)")
	cmd.Flags().IntVar(&opts.maxExpansions, "max-expansions", 0, "abort A* after this many expansions (0 = unlimited)")
	cmd.Flags().IntVar(&opts.maxPasses, "max-passes", 0, "abort Bellman-Ford after this many passes (0 = n-1)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")

	return cmd
}

// toPipeline parses the string flags into pipeline bench options.
func (o benchOpts) toPipeline(paths []string) (pipeline.BenchOptions, error) {
	out := pipeline.BenchOptions{
		Paths:         paths,
		Repeat:        o.repeat,
		Workers:       o.workers,
		MaxExpansions: o.maxExpansions,
		MaxPasses:     o.maxPasses,
	}
	for _, s := range o.ks {
		k, err := metric.ParseExponent(s)
		if err != nil {
			return out, fmt.Errorf("--k: %w", err)
		}
		out.Ks = append(out.Ks, k)
	}
	for _, s := range o.algorithms {
		a, err := search.ParseAlgorithm(s)
		if err != nil {
			return out, fmt.Errorf("--algorithm: %w", err)
		}
		out.Algorithms = append(out.Algorithms, a)
	}
	return out, nil
}

func (c *CLI) runBench(cmd *cobra.Command, paths []string, opts benchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	bopts, err := opts.toPipeline(paths)
	if err != nil {
		return err
	}
	bopts.Logger = logger

	var reg *prometheus.Registry
	if opts.metricsFile != "" {
		reg = prometheus.NewRegistry()
		hooks, err := observability.NewPrometheusHooks(reg)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		observability.SetSearchHooks(hooks)
		observability.SetCacheHooks(hooks)
		defer observability.Reset()
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if !opts.json {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Benchmarking %d instance(s)...", len(paths)))
		spinner.Start()
	}
	report, err := runner.Bench(ctx, bopts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(opts.metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Info("wrote metrics", "file", opts.metricsFile)
	}

	if opts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintln(cmd.OutOrStdout(), benchTable(report).String())
	printSuccess("Ran %d cells in %s", len(report.Rows), report.Elapsed.Round(time.Millisecond))
	printDetail("Run %s", report.RunID)
	if report.Mismatches > 0 {
		printWarning("%d cell(s) disagree on the distance", report.Mismatches)
	}
	if opts.metricsFile != "" {
		printFile(opts.metricsFile)
	}
	return nil
}

var (
	styleTableHeader = StyleTitle.Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
	styleTableBad    = lipgloss.NewStyle().Padding(0, 1).Foreground(colorRed)
)

var benchHeaders = []string{"instance", "n", "m", "k", "algorithm", "distance", "visited", "best", "mean", "agree"}

// benchTable lays the report out as a lipgloss table. Rows that disagree or
// failed are drawn in red.
func benchTable(report *pipeline.BenchReport) *table.Table {
	rows := make([][]string, len(report.Rows))
	bad := make(map[int]bool)
	for i, r := range report.Rows {
		dist := "inf"
		if r.Reachable {
			dist = strconv.FormatFloat(r.Distance, 'f', 4, 64)
		}
		agree := "yes"
		switch {
		case r.Err != "":
			dist, agree = "error", r.Err
			bad[i] = true
		case !r.Agree:
			agree = "no"
			bad[i] = true
		}
		rows[i] = []string{
			r.Path,
			strconv.Itoa(r.Vertices),
			strconv.Itoa(r.Edges),
			r.KText,
			string(r.Algorithm),
			dist,
			strconv.Itoa(r.Visited),
			r.Best.Round(time.Microsecond).String(),
			r.Mean.Round(time.Microsecond).String(),
			agree,
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(benchHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleTableHeader
			case bad[row]:
				return styleTableBad
			default:
				return styleTableCell
			}
		})
}
