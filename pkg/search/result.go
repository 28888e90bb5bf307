package search

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/graph"
	"github.com/matzehuels/gridpath/pkg/metric"
)

// Algorithm names a search algorithm.
type Algorithm string

const (
	AlgorithmAStar       Algorithm = "astar"
	AlgorithmBellmanFord Algorithm = "bellman-ford"
	// AlgorithmAuto selects A* for consistent exponents and Bellman-Ford otherwise.
	AlgorithmAuto Algorithm = "auto"
)

// Algorithms lists the concrete algorithms in a stable order.
var Algorithms = []Algorithm{AlgorithmAStar, AlgorithmBellmanFord}

// ParseAlgorithm accepts "astar", "a*", "bellman-ford", "bf" and "auto",
// case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "astar", "a*", "a-star":
		return AlgorithmAStar, nil
	case "bellman-ford", "bellmanford", "bf":
		return AlgorithmBellmanFord, nil
	case "auto", "":
		return AlgorithmAuto, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown algorithm %q (want astar, bellman-ford or auto)", s)
}

// Resolve returns the concrete algorithm used for exponent k.
func (a Algorithm) Resolve(k float64) Algorithm {
	if a != AlgorithmAuto {
		return a
	}
	if metric.Consistent(k) {
		return AlgorithmAStar
	}
	return AlgorithmBellmanFord
}

// Result is the outcome of a single search.
type Result[ID comparable] struct {
	// Distance is the path cost, or +Inf when the target is unreachable.
	Distance float64
	// Path lists the vertices from source to target inclusive. It is empty
	// when the target is unreachable and [source] when source == target.
	Path []ID
	// Visited is the number of vertices expanded (A*) or the number of
	// vertices with a finite distance (Bellman-Ford).
	Visited int
	// Algorithm is the algorithm that produced the result.
	Algorithm Algorithm
}

// Reachable reports whether a path was found.
func (r *Result[ID]) Reachable() bool {
	return !math.IsInf(r.Distance, 1)
}

// SameDistance reports whether two distances agree up to floating-point noise.
// Two infinite distances agree.
func SameDistance(a, b float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.IsInf(a, 1) && math.IsInf(b, 1)
	}
	const eps = 1e-9
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// Run dispatches to the algorithm selected by algo. idx may be nil, in which
// case it is built on demand for A*.
func Run[ID comparable](ctx context.Context, algo Algorithm, g *graph.Graph[ID], idx *graph.Index[ID], opts ...Option) (*Result[ID], error) {
	switch algo.Resolve(g.K()) {
	case AlgorithmAStar:
		return AStar(ctx, g, idx, opts...)
	case AlgorithmBellmanFord:
		return BellmanFord(ctx, g, opts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown algorithm %q", algo)
	}
}

// unreachable returns an empty result for algo.
func unreachable[ID comparable](algo Algorithm) *Result[ID] {
	return &Result[ID]{Distance: math.Inf(1), Path: []ID{}, Algorithm: algo}
}

// walkBack rebuilds the source-to-target path from predecessor links. limit
// bounds the walk so a corrupted predecessor map cannot loop forever.
func walkBack[ID comparable](prev map[ID]ID, source, target ID, limit int) ([]ID, error) {
	path := []ID{target}
	for cur := target; cur != source; {
		p, ok := prev[cur]
		if !ok || len(path) > limit {
			return nil, errors.New(errors.ErrCodeInternal, "broken predecessor chain at %v", cur)
		}
		path = append(path, p)
		cur = p
	}
	slices.Reverse(path)
	return path, nil
}
