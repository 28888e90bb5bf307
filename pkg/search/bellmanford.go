package search

import (
	"context"
	"math"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/graph"
)

// BellmanFord finds a shortest path from g.Source() to g.Target() by edge
// relaxation. Each undirected edge is relaxed in both directions.
//
// It runs at most N-1 passes and stops early after a pass without updates.
// If it ran all N-1 passes, one more pass checks whether any edge can still
// be relaxed; if so the graph has a negative cycle reachable from the source.
//
// Result.Visited is the number of vertices with a finite distance.
//
// Errors:
//
//   - NEGATIVE_CYCLE when the extra pass still relaxes an edge.
//   - SEARCH_ABORTED when ctx is done or the pass budget is exhausted.
//   - INVALID_INPUT when a custom weight function has the wrong ID type.
func BellmanFord[ID comparable](ctx context.Context, g *graph.Graph[ID], opts ...Option) (*Result[ID], error) {
	cfg := newOptions(opts)
	c, err := resolveCosts(g, cfg)
	if err != nil {
		return nil, err
	}

	dist := make(map[ID]float64, g.N())
	for _, v := range g.Vertices() {
		dist[v] = math.Inf(1)
	}
	prev := make(map[ID]ID, g.N())
	source, target := g.Source(), g.Target()
	dist[source] = 0

	relax := func(u, v ID) bool {
		du := dist[u]
		if math.IsInf(du, 1) {
			return false
		}
		if cand := du + c.weight(u, v); cand < dist[v] {
			dist[v] = cand
			prev[v] = u
			return true
		}
		return false
	}
	sweep := func() bool {
		changed := false
		g.EachEdge(func(_ int, e graph.Edge[ID]) {
			if relax(e.U, e.V) {
				changed = true
			}
			if relax(e.V, e.U) {
				changed = true
			}
		})
		return changed
	}

	passes := g.N() - 1
	converged := false
	for pass := 0; pass < passes; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSearchAborted, err, "bellman-ford stopped after %d passes", pass)
		}
		if cfg.MaxPasses > 0 && pass >= cfg.MaxPasses {
			return nil, errors.New(errors.ErrCodeSearchAborted,
				"bellman-ford did not converge within %d passes", cfg.MaxPasses)
		}
		if !sweep() {
			converged = true
			break
		}
	}
	if !converged && sweep() {
		return nil, errors.New(errors.ErrCodeNegativeCycle,
			"negative cycle reachable from source %v", source)
	}

	visited := 0
	for _, d := range dist {
		if !math.IsInf(d, 1) {
			visited++
		}
	}

	if math.IsInf(dist[target], 1) {
		res := unreachable[ID](AlgorithmBellmanFord)
		res.Visited = visited
		return res, nil
	}
	path, err := walkBack(prev, source, target, g.N())
	if err != nil {
		return nil, err
	}
	return &Result[ID]{
		Distance:  dist[target],
		Path:      path,
		Visited:   visited,
		Algorithm: AlgorithmBellmanFord,
	}, nil
}
