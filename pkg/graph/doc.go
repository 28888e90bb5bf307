// Package graph provides the immutable in-memory model of a weighted,
// undirected planar graph and its adjacency index.
//
// # Overview
//
// A [Graph] holds vertices (id → planar coordinate), an edge list of
// unordered id pairs, the metric exponent k and the designated source and
// target ids. Edge weights are never stored: they are computed on demand
// with [metric.Distance] from the endpoint coordinates, which keeps the edge
// weight and the A* heuristic on exactly the same formula.
//
// The graph is generic over an opaque, hashable vertex id type so that the
// same search engine serves integer ids, string tokens or any other
// comparable key. The text loader in [github.com/matzehuels/gridpath/pkg/io]
// produces Graph[string].
//
// # Basic Usage
//
// Build a graph in one call; all reference checks happen here, so a graph
// that exists is always well formed:
//
//	g, err := graph.Build(2, 0, 3,
//	    []graph.Vertex[int]{{ID: 0}, {ID: 1, Point: graph.Point{X: 1}}, ...},
//	    []graph.Edge[int]{{U: 0, V: 1}, ...},
//	)
//	idx := graph.NewIndex(g)
//	idx.Neighbors(0) // neighbors in edge-list order
//
// # Errors
//
// [Build] reports MALFORMED_INPUT for duplicate vertex ids, self-loops and
// NaN values, and UNDEFINED_VERTEX when an edge or the source/target names an
// id that was not declared. Codes are defined in
// [github.com/matzehuels/gridpath/pkg/errors].
//
// # Concurrency
//
// [Graph] and [Index] are never mutated after construction. Any number of
// goroutines may read them concurrently, for example to run many searches
// over one loaded instance.
//
// [metric.Distance]: github.com/matzehuels/gridpath/pkg/metric.Distance
package graph
