package pipeline

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/graph"
	"github.com/matzehuels/gridpath/pkg/metric"
	"github.com/matzehuels/gridpath/pkg/search"
)

// BenchOptions configures Runner.Bench.
type BenchOptions struct {
	Paths []string `json:"paths"`
	// Ks overrides each file's exponent. Empty runs the file's own k.
	Ks         []float64          `json:"-"`
	Algorithms []search.Algorithm `json:"algorithms,omitempty"`
	Repeat     int                `json:"repeat,omitempty"`
	Workers    int                `json:"workers,omitempty"`

	MaxExpansions int `json:"max_expansions,omitempty"`
	MaxPasses     int `json:"max_passes,omitempty"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *BenchOptions) ValidateAndSetDefaults() error {
	if len(o.Paths) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one instance path is required")
	}
	for _, k := range o.Ks {
		if math.IsNaN(k) {
			return errors.New(errors.ErrCodeInvalidInput, "k must not be NaN")
		}
	}
	if len(o.Algorithms) == 0 {
		o.Algorithms = search.Algorithms
	}
	for _, a := range o.Algorithms {
		if a != search.AlgorithmAStar && a != search.AlgorithmBellmanFord {
			return errors.New(errors.ErrCodeInvalidInput, "bench needs concrete algorithms, got %q", a)
		}
	}
	if o.Repeat <= 0 {
		o.Repeat = DefaultRepeat
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.MaxExpansions < 0 || o.MaxPasses < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "budgets must be non-negative")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// BenchRow is one (instance, k, algorithm) cell of a benchmark.
type BenchRow struct {
	Path      string           `json:"path"`
	Vertices  int              `json:"vertices"`
	Edges     int              `json:"edges"`
	K         float64          `json:"-"`
	KText     string           `json:"k"`
	Algorithm search.Algorithm `json:"algorithm"`
	Reachable bool             `json:"reachable"`
	Distance  float64          `json:"-"`
	// Dist mirrors Distance for JSON output and is nil when unreachable.
	Dist    *float64 `json:"distance,omitempty"`
	Visited int      `json:"visited"`
	PathLen int      `json:"path_len"`
	// Best and Mean are taken over Repeat timed runs.
	Best time.Duration `json:"best_ns"`
	Mean time.Duration `json:"mean_ns"`
	// Agree is false when another algorithm found a different distance for
	// the same instance and k.
	Agree bool   `json:"agree"`
	Err   string `json:"error,omitempty"`
}

// BenchReport is the outcome of Runner.Bench.
type BenchReport struct {
	RunID      string        `json:"run_id"`
	Started    time.Time     `json:"started"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	Rows       []BenchRow    `json:"rows"`
	Mismatches int           `json:"mismatches"`
}

type benchJob struct {
	inst *Instance
	g    *graph.Graph[string]
	algo search.Algorithm
}

// Bench loads every instance once and runs each algorithm on each requested
// exponent, using up to opts.Workers concurrent searches. Search errors are
// recorded on their row; only load failures and cancellation abort the run.
func (r *Runner) Bench(ctx context.Context, opts BenchOptions) (*BenchReport, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	report := &BenchReport{RunID: uuid.NewString(), Started: time.Now()}
	logger := opts.Logger.With("run", report.RunID[:8])

	var jobs []benchJob
	for _, path := range opts.Paths {
		inst, err := r.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		ks := opts.Ks
		if len(ks) == 0 {
			ks = []float64{inst.Graph.K()}
		}
		for _, k := range ks {
			g, err := inst.Graph.WithEndpoints(k, inst.Graph.Source(), inst.Graph.Target())
			if err != nil {
				return nil, err
			}
			for _, algo := range opts.Algorithms {
				jobs = append(jobs, benchJob{inst: inst, g: g, algo: algo})
			}
		}
	}
	logger.Info("benchmark started", "cells", len(jobs), "workers", opts.Workers, "repeat", opts.Repeat)

	rows := make([]BenchRow, len(jobs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)
	for i, job := range jobs {
		eg.Go(func() error {
			row, err := r.benchCell(egCtx, job, opts)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report.Rows = rows
	report.Mismatches = crossCheck(report.Rows)
	report.Elapsed = time.Since(report.Started)
	if report.Mismatches > 0 {
		logger.Warn("algorithms disagree", "cells", report.Mismatches)
	}
	logger.Info("benchmark finished", "elapsed", report.Elapsed)
	return report, nil
}

// benchCell times opts.Repeat searches of one job. It returns an error only
// when the context is done.
func (r *Runner) benchCell(ctx context.Context, job benchJob, opts BenchOptions) (BenchRow, error) {
	row := BenchRow{
		Path:      job.inst.Path,
		Vertices:  job.g.N(),
		Edges:     job.g.M(),
		K:         job.g.K(),
		KText:     metric.FormatExponent(job.g.K()),
		Algorithm: job.algo,
		Distance:  math.Inf(1),
		Agree:     true,
	}
	searchOpts := Options{
		MaxExpansions: opts.MaxExpansions,
		MaxPasses:     opts.MaxPasses,
		Logger:        opts.Logger,
	}

	var total time.Duration
	for i := 0; i < opts.Repeat; i++ {
		start := time.Now()
		res, err := r.timedSearch(ctx, job.algo, job.g, job.inst.Index, searchOpts)
		elapsed := time.Since(start)
		if err != nil {
			if ctx.Err() != nil {
				return row, ctx.Err()
			}
			row.Err = errors.UserMessage(err)
			return row, nil
		}
		total += elapsed
		if i == 0 || elapsed < row.Best {
			row.Best = elapsed
		}
		row.Reachable = res.Reachable()
		row.Distance = res.Distance
		row.Visited = res.Visited
		row.PathLen = len(res.Path)
	}
	row.Mean = total / time.Duration(opts.Repeat)
	if row.Reachable {
		d := row.Distance
		row.Dist = &d
	}
	return row, nil
}

// crossCheck marks rows whose distance differs from another algorithm's on
// the same instance and exponent, and returns the number of marked rows.
func crossCheck(rows []BenchRow) int {
	type cell struct {
		path string
		k    string
	}
	groups := make(map[cell][]int)
	for i, row := range rows {
		if row.Err != "" {
			continue
		}
		c := cell{row.Path, row.KText}
		groups[c] = append(groups[c], i)
	}

	mismatches := 0
	for _, idx := range groups {
		for _, i := range idx {
			for _, j := range idx {
				if !search.SameDistance(rows[i].Distance, rows[j].Distance) {
					rows[i].Agree = false
				}
			}
			if !rows[i].Agree {
				mismatches++
			}
		}
	}
	return mismatches
}
