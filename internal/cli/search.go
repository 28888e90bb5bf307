package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	gridio "github.com/matzehuels/gridpath/pkg/io"
	"github.com/matzehuels/gridpath/pkg/metric"
	"github.com/matzehuels/gridpath/pkg/pipeline"
)

// maxPathPrint is the number of path vertices shown before eliding.
const maxPathPrint = 24

// searchFlags holds the flags shared by search and render.
type searchFlags struct {
	algorithm     string // astar, bellman-ford or auto
	k             string // exponent override, parsed with metric.ParseExponent
	source        string
	target        string
	maxExpansions int
	maxPasses     int
	strict        bool
	noCache       bool
	refresh       bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "algorithm: astar, bellman-ford, auto (default from config, else auto)")
	cmd.Flags().StringVarP(&f.k, "k", "k", "", "override the exponent from the file (accepts inf, -inf)")
	cmd.Flags().StringVar(&f.source, "source", "", "override the source vertex")
	cmd.Flags().StringVar(&f.target, "target", "", "override the target vertex")
	cmd.Flags().IntVar(&f.maxExpansions, "max-expansions", 0, "abort A* after this many expansions (0 = unlimited)")
	cmd.Flags().IntVar(&f.maxPasses, "max-passes", 0, "abort Bellman-Ford after this many passes (0 = n-1)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "refuse A* when the heuristic is not consistent for k")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results and recompute")
}

// options converts the flags into pipeline options. Config values fill in
// flags the user did not set.
func (f *searchFlags) options(cmd *cobra.Command, path string, cfg Config) (pipeline.Options, error) {
	opts := pipeline.Options{
		Path:          path,
		Algorithm:     f.algorithm,
		Source:        f.source,
		Target:        f.target,
		MaxExpansions: f.maxExpansions,
		MaxPasses:     f.maxPasses,
		Strict:        f.strict,
		Refresh:       f.refresh,
		TTL:           cfg.Cache.TTLDuration(),
	}
	flags := cmd.Flags()
	if !flags.Changed("algorithm") {
		opts.Algorithm = cfg.Search.Algorithm
	}
	if !flags.Changed("max-expansions") {
		opts.MaxExpansions = cfg.Search.MaxExpansions
	}
	if !flags.Changed("max-passes") {
		opts.MaxPasses = cfg.Search.MaxPasses
	}
	if !flags.Changed("strict") {
		opts.Strict = cfg.Search.Strict
	}
	if f.k != "" {
		k, err := metric.ParseExponent(f.k)
		if err != nil {
			return opts, fmt.Errorf("--k: %w", err)
		}
		opts.K = &k
	}
	return opts, nil
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var flags searchFlags
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <file>",
		Short: "Find a shortest path in an instance file",
		Long: `Search reads an instance file and finds a shortest path from its source
to its target with A* or Bellman-Ford.

The edge weight of (u,v) is D(u,v,k): Euclidean for k=2, Chebyshev for
k=inf or k<0, and a unit cost per edge for k=0. With the default algorithm "auto",
A* is used unless 0<k<1, where its heuristic may overestimate.`,
		Example: `  gridpath search 100.txt
  gridpath search 100.txt --k inf --algorithm bellman-ford
  gridpath search 100.txt --source 0 --target 42 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args[0], c.Config)
			if err != nil {
				return err
			}
			return c.runSearch(cmd, opts, flags.noCache, jsonOut)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) runSearch(cmd *cobra.Command, opts pipeline.Options, noCache, jsonOut bool) error {
	ctx := cmd.Context()
	result, err := c.execute(ctx, opts, noCache)
	if err != nil {
		return err
	}

	if jsonOut {
		return gridio.WriteResultJSON(cmd.OutOrStdout(), result.Search)
	}
	printSearchResult(result)
	return nil
}

// execute runs the pipeline and closes the cache afterwards.
func (c *CLI) execute(ctx context.Context, opts pipeline.Options, noCache bool) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Searched %s", opts.Path))
	return result, nil
}

func printSearchResult(result *pipeline.Result) {
	res := result.Search
	if res.Reachable() {
		printSuccess("Path found from %s to %s", result.Graph.Source(), result.Graph.Target())
	} else {
		printWarning("Target %s is unreachable from %s", result.Graph.Target(), result.Graph.Source())
	}
	for _, kv := range searchDetails(result) {
		printKeyValue(kv[0], kv[1])
	}
	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.CacheInfo.SearchHit)
}

// searchDetails returns the key-value lines of a search summary. A cached
// result has no search time of its own, so elapsed is left out.
func searchDetails(result *pipeline.Result) [][2]string {
	res := result.Search
	distance := "inf"
	if res.Reachable() {
		distance = formatDistance(res.Distance)
	}
	rows := [][2]string{
		{"distance", distance},
		{"algorithm", string(res.Algorithm)},
		{"k", metric.FormatExponent(result.Graph.K())},
	}
	if res.Reachable() {
		rows = append(rows,
			[2]string{"path", formatPath(res.Path, maxPathPrint)},
			[2]string{"hops", strconv.Itoa(len(res.Path) - 1)})
	}
	rows = append(rows, [2]string{"visited", strconv.Itoa(res.Visited)})
	if !result.CacheInfo.SearchHit {
		rows = append(rows, [2]string{"elapsed", result.Stats.SearchTime.String()})
	}
	return rows
}

func formatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// formatPath joins path with arrows, eliding the middle of long paths.
func formatPath(path []string, limit int) string {
	sep := " " + iconArrow + " "
	if len(path) <= limit {
		return strings.Join(path, sep)
	}
	half := limit / 2
	return strings.Join(path[:half], sep) + sep + "…" + sep + strings.Join(path[len(path)-half:], sep)
}
