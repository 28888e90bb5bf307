package search

import (
	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/graph"
)

type costs[ID comparable] struct {
	weight    func(u, v ID) float64
	heuristic func(u ID) float64
}

// resolveCosts picks the configured cost functions or falls back to the
// graph's metric.
func resolveCosts[ID comparable](g *graph.Graph[ID], cfg Options) (costs[ID], error) {
	c := costs[ID]{weight: g.Distance, heuristic: g.Heuristic}
	if cfg.weight != nil {
		fn, ok := cfg.weight.(func(u, v ID) float64)
		if !ok {
			return c, errors.New(errors.ErrCodeInvalidInput, "weight function has type %T, want func(u, v %T) float64", cfg.weight, g.Source())
		}
		c.weight = fn
	}
	if cfg.heuristic != nil {
		fn, ok := cfg.heuristic.(func(u ID) float64)
		if !ok {
			return c, errors.New(errors.ErrCodeInvalidInput, "heuristic has type %T, want func(u %T) float64", cfg.heuristic, g.Source())
		}
		c.heuristic = fn
	}
	return c, nil
}
