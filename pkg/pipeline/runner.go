package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridpath/pkg/cache"
	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/graph"
	gridio "github.com/matzehuels/gridpath/pkg/io"
	"github.com/matzehuels/gridpath/pkg/observability"
	"github.com/matzehuels/gridpath/pkg/search"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → search pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	inst, err := r.Load(ctx, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Instance = inst
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.VertexCount = inst.Graph.N()
	result.Stats.EdgeCount = inst.Graph.M()

	r.Logger.Info("loaded instance",
		"vertices", inst.Graph.N(),
		"edges", inst.Graph.M(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Search
	g, err := opts.Apply(inst.Graph)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	result.Graph = g

	searchStart := time.Now()
	res, hit, err := r.SearchWithCacheInfo(ctx, inst, g, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	result.Search = res
	result.Stats.SearchTime = time.Since(searchStart)
	result.CacheInfo.SearchHit = hit

	r.Logger.Info("searched",
		"algorithm", res.Algorithm,
		"visited", res.Visited,
		"reachable", res.Reachable(),
		"cached", hit,
		"duration", result.Stats.SearchTime)

	return result, nil
}

// Load reads the instance file at path, hashes its content and builds the
// adjacency index.
func (r *Runner) Load(ctx context.Context, path string) (*Instance, error) {
	hooks := observability.Search()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	inst, err := load(path)
	if err != nil {
		hooks.OnLoadComplete(ctx, path, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, path, inst.Graph.N(), inst.Graph.M(), time.Since(start), nil)
	return inst, nil
}

func load(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	g, err := gridio.ReadInstance(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Instance{
		Path:  path,
		Hash:  cache.InstanceHash(data),
		Graph: g,
		Index: graph.NewIndex(g),
	}, nil
}

// SearchWithCacheInfo runs a search on g, a view of inst with overrides
// already applied, and reports whether the result came from the cache.
// Errors are never cached.
func (r *Runner) SearchWithCacheInfo(ctx context.Context, inst *Instance, g *graph.Graph[string], opts Options) (*search.Result[string], bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSearch(); err != nil {
		return nil, false, err
	}
	// A strict refusal does not depend on cached state.
	if opts.Strict && opts.SearchAlgorithm().Resolve(g.K()) == search.AlgorithmAStar {
		if err := search.CheckHeuristic(g.K()); err != nil {
			return nil, false, err
		}
	}

	cacheKey := r.Keyer.SearchKey(inst.Hash, opts.SearchKeyOpts(g))
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		if err == nil && hit {
			if res, err := gridio.UnmarshalResult[string](data); err == nil {
				hooks.OnCacheHit(ctx, KeyTypeSearch)
				return res, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		hooks.OnCacheMiss(ctx, KeyTypeSearch)
	}

	res, err := r.timedSearch(ctx, opts.SearchAlgorithm(), g, inst.Index, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := gridio.MarshalResult(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, opts.TTL); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, KeyTypeSearch, len(data))
		}
	}

	return res, false, nil
}

// Search is a convenience wrapper that applies the overrides in opts to
// inst and calls SearchWithCacheInfo, discarding the cache hit info.
func (r *Runner) Search(ctx context.Context, inst *Instance, opts Options) (*search.Result[string], error) {
	g, err := opts.Apply(inst.Graph)
	if err != nil {
		return nil, err
	}
	res, _, err := r.SearchWithCacheInfo(ctx, inst, g, opts)
	return res, err
}

// timedSearch runs one uncached search and emits search hooks.
func (r *Runner) timedSearch(ctx context.Context, algo search.Algorithm, g *graph.Graph[string], idx *graph.Index[string], opts Options) (*search.Result[string], error) {
	concrete := algo.Resolve(g.K())
	if !opts.Strict {
		warnInconsistent(opts.Logger, concrete, g.K())
	}

	hooks := observability.Search()
	hooks.OnSearchStart(ctx, string(concrete), g.N())
	start := time.Now()

	res, err := search.Run(ctx, concrete, g, idx, opts.SearchOptions()...)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnSearchComplete(ctx, string(concrete), 0, false, elapsed, err)
		return nil, err
	}
	hooks.OnSearchComplete(ctx, string(concrete), res.Visited, res.Reachable(), elapsed, nil)

	opts.Logger.Debug("search finished",
		"algorithm", concrete,
		"visited", res.Visited,
		"elapsed", elapsed)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
