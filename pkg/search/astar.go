package search

import (
	"context"
	"math"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/graph"
	"github.com/matzehuels/gridpath/pkg/metric"
)

// checkEvery is the number of pops between context checks in A*.
const checkEvery = 1024

// AStar finds a shortest path from g.Source() to g.Target() with A*.
//
// idx may be nil, in which case it is built from g. The returned Result has
// Algorithm set to AlgorithmAStar.
//
// Errors:
//
//   - INCONSISTENT_HEURISTIC with WithStrictHeuristic and 0 < k < 1.
//   - SEARCH_ABORTED when ctx is done or the expansion budget is exhausted.
//   - INVALID_INPUT when a custom cost function has the wrong ID type.
func AStar[ID comparable](ctx context.Context, g *graph.Graph[ID], idx *graph.Index[ID], opts ...Option) (*Result[ID], error) {
	cfg := newOptions(opts)
	if cfg.StrictHeuristic && cfg.heuristic == nil {
		if err := CheckHeuristic(g.K()); err != nil {
			return nil, err
		}
	}
	c, err := resolveCosts(g, cfg)
	if err != nil {
		return nil, err
	}
	if idx == nil {
		idx = graph.NewIndex(g)
	}

	r := &astar[ID]{
		g:      g,
		idx:    idx,
		costs:  c,
		budget: cfg.MaxExpansions,
		score:  make(map[ID]float64, g.N()),
		prev:   make(map[ID]ID, g.N()),
		closed: make(map[ID]bool, g.N()),
		open:   newFrontier[ID](),
	}
	return r.run(ctx)
}

// astar holds the mutable state of one A* execution.
type astar[ID comparable] struct {
	g      *graph.Graph[ID]
	idx    *graph.Index[ID]
	costs  costs[ID]
	budget int

	score  map[ID]float64 // best known cost from the source; absent means +Inf
	prev   map[ID]ID
	closed map[ID]bool
	open   *frontier[ID]

	visited int
}

func (r *astar[ID]) scoreOf(id ID) float64 {
	if s, ok := r.score[id]; ok {
		return s
	}
	return math.Inf(1)
}

func (r *astar[ID]) run(ctx context.Context) (*Result[ID], error) {
	if err := ctx.Err(); err != nil {
		return nil, r.aborted(err)
	}
	source, target := r.g.Source(), r.g.Target()
	r.score[source] = 0
	r.open.push(source, r.costs.heuristic(source))

	for pops := 1; ; pops++ {
		e, ok := r.open.pop()
		if !ok {
			break
		}
		if pops%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, r.aborted(err)
			}
		}
		// Stale entry left behind by a later improvement.
		if r.closed[e.id] {
			continue
		}
		if r.budget > 0 && r.visited >= r.budget {
			return nil, errors.New(errors.ErrCodeSearchAborted,
				"a* expansion budget of %d exhausted", r.budget)
		}

		r.closed[e.id] = true
		r.visited++
		if e.id == target {
			return r.result(source, target)
		}
		r.expand(e.id)
	}

	res := unreachable[ID](AlgorithmAStar)
	res.Visited = r.visited
	return res, nil
}

// expand relaxes every open neighbor of u.
func (r *astar[ID]) expand(u ID) {
	gu := r.score[u]
	for _, v := range r.idx.Neighbors(u) {
		if r.closed[v] {
			continue
		}
		cand := gu + r.costs.weight(u, v)
		if cand < r.scoreOf(v) {
			r.score[v] = cand
			r.prev[v] = u
			r.open.push(v, cand+r.costs.heuristic(v))
		}
	}
}

func (r *astar[ID]) result(source, target ID) (*Result[ID], error) {
	path, err := walkBack(r.prev, source, target, r.g.N())
	if err != nil {
		return nil, err
	}
	return &Result[ID]{
		Distance:  r.score[target],
		Path:      path,
		Visited:   r.visited,
		Algorithm: AlgorithmAStar,
	}, nil
}

func (r *astar[ID]) aborted(cause error) error {
	return errors.Wrap(errors.ErrCodeSearchAborted, cause,
		"a* stopped after %d expansions", r.visited)
}

// CheckHeuristic returns INCONSISTENT_HEURISTIC when the metric heuristic
// is not consistent for k, that is for 0 < k < 1.
func CheckHeuristic(k float64) error {
	if metric.Consistent(k) {
		return nil
	}
	return errors.New(errors.ErrCodeInconsistentHeuristic,
		"heuristic is not consistent for k=%s; use bellman-ford", metric.FormatExponent(k))
}
