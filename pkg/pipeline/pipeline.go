// Package pipeline runs the load → search pipeline for gridpath.
//
// This package implements the complete load → index → search pipeline used by
// the CLI commands. By centralizing this logic, search, bench and render share
// one code path for loading instances, caching results, and emitting hooks.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Read and validate an instance file, hash its content, and build
//     the adjacency index
//  2. Search: Apply k/source/target overrides and run the selected algorithm,
//     consulting the result cache first
//
// [Runner.Bench] fans many searches over already-loaded instances out to a
// bounded worker pool and cross-checks A* against Bellman-Ford.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:      "100.txt",
//	    Algorithm: "astar",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Search.Distance)
//
// Run individual stages:
//
//	inst, err := runner.Load(ctx, "100.txt")
//	res, err := runner.Search(ctx, inst, opts)
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridpath/pkg/cache"
	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/graph"
	"github.com/matzehuels/gridpath/pkg/metric"
	"github.com/matzehuels/gridpath/pkg/search"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultAlgorithm picks A* unless the exponent makes its heuristic
	// inconsistent.
	DefaultAlgorithm = search.AlgorithmAuto

	// DefaultRepeat is the number of timed runs per benchmark cell.
	DefaultRepeat = 1

	// KeyTypeSearch labels search results in cache hooks.
	KeyTypeSearch = "search"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a single search.
// This struct supports JSON serialization so runs can be recorded.
type Options struct {
	// Load options
	Path string `json:"path"`

	// Search options
	Algorithm     string   `json:"algorithm,omitempty"`
	K             *float64 `json:"-"` // overrides the file's exponent
	Source        string   `json:"source,omitempty"`
	Target        string   `json:"target,omitempty"`
	MaxExpansions int      `json:"max_expansions,omitempty"`
	MaxPasses     int      `json:"max_passes,omitempty"`
	Strict        bool     `json:"strict,omitempty"`

	// Cache options
	Refresh bool          `json:"refresh,omitempty"`
	TTL     time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	algorithm search.Algorithm
	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Instance is a loaded instance file.
type Instance struct {
	Path  string
	Hash  string // SHA-256 of the file content
	Graph *graph.Graph[string]
	Index *graph.Index[string]
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Instance is the loaded instance.
	Instance *Instance

	// Graph is the instance graph after k/source/target overrides.
	Graph *graph.Graph[string]

	// Search is the search outcome.
	Search *search.Result[string]

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	LoadTime    time.Duration
	SearchTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SearchHit bool // Whether the search result came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "instance path is required")
	}
	if err := o.ValidateForSearch(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSearch checks the search fields and applies defaults. It does
// not require Path, so it can be used with an already loaded Instance.
func (o *Options) ValidateForSearch() error {
	if o.Algorithm == "" {
		o.Algorithm = string(DefaultAlgorithm)
	}
	algo, err := search.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return err
	}
	o.algorithm = algo
	o.Algorithm = string(algo)

	if o.K != nil && math.IsNaN(*o.K) {
		return errors.New(errors.ErrCodeInvalidInput, "k must not be NaN")
	}
	if o.MaxExpansions < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max expansions must be non-negative, got %d", o.MaxExpansions)
	}
	if o.MaxPasses < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max passes must be non-negative, got %d", o.MaxPasses)
	}
	if o.TTL == 0 {
		o.TTL = cache.TTLSearch
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SearchAlgorithm returns the parsed algorithm. Valid after validation.
func (o *Options) SearchAlgorithm() search.Algorithm {
	if o.algorithm == "" {
		return DefaultAlgorithm
	}
	return o.algorithm
}

// SearchOptions returns the search engine options.
func (o *Options) SearchOptions() []search.Option {
	opts := []search.Option{
		search.WithMaxExpansions(o.MaxExpansions),
		search.WithMaxPasses(o.MaxPasses),
	}
	if o.Strict {
		opts = append(opts, search.WithStrictHeuristic())
	}
	return opts
}

// SearchKeyOpts returns cache key options for a search on g, which must
// already carry the effective k, source and target.
func (o *Options) SearchKeyOpts(g *graph.Graph[string]) cache.SearchKeyOpts {
	algo := o.SearchAlgorithm().Resolve(g.K())
	budget := o.MaxPasses
	if algo == search.AlgorithmAStar {
		budget = o.MaxExpansions
	}
	return cache.SearchKeyOpts{
		Algorithm: string(algo),
		K:         g.K(),
		Source:    g.Source(),
		Target:    g.Target(),
		Budget:    budget,
	}
}

// Apply returns g with the option's k, source and target overrides applied.
func (o *Options) Apply(g *graph.Graph[string]) (*graph.Graph[string], error) {
	k, s, t := g.K(), g.Source(), g.Target()
	if o.K != nil {
		k = *o.K
	}
	if o.Source != "" {
		s = o.Source
	}
	if o.Target != "" {
		t = o.Target
	}
	if k == g.K() && s == g.Source() && t == g.Target() {
		return g, nil
	}
	return g.WithEndpoints(k, s, t)
}

// warnInconsistent logs when A* will run with a heuristic that may
// overestimate.
func warnInconsistent(logger *log.Logger, algo search.Algorithm, k float64) {
	if algo == search.AlgorithmAStar && !metric.Consistent(k) {
		logger.Warn("heuristic is not consistent for this exponent; a* may return a suboptimal distance",
			"k", metric.FormatExponent(k))
	}
}
