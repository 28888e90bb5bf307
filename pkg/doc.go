// Package pkg provides the libraries behind gridpath, a tool that compares A*
// and Bellman-Ford shortest-path search on planar graphs.
//
// # Overview
//
// Every vertex carries a planar coordinate. The weight of an edge (u, v) and
// the A* heuristic both come from one distance family D(u, v, k), whose
// exponent k picks unit costs, a power mean such as the Euclidean distance,
// or the Chebyshev distance. The pkg directory is organized into:
//
//  1. [metric] - the distance family and exponent parsing
//  2. [graph] - the immutable planar graph and its adjacency index
//  3. [search] - A* and Bellman-Ford over any comparable vertex id
//  4. [io] - the text instance format and result JSON
//  5. [gridgen] - square grid instance generation
//  6. [pipeline] - load, search and benchmark orchestration with caching
//  7. [render] - Graphviz drawings with the path highlighted
//  8. [cache], [observability], [errors], [buildinfo] - supporting infrastructure
//
// # Architecture
//
// The typical data flow through gridpath:
//
//	Instance file
//	     ↓
//	[io] package (parse and validate)
//	     ↓
//	[graph] package (immutable graph + neighbor index)
//	     ↓
//	[search] package (A* or Bellman-Ford)
//	     ↓
//	Result JSON / table / SVG
//
// # Quick Start
//
// Load an instance and search it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/gridpath/pkg/io"
//	    "github.com/matzehuels/gridpath/pkg/search"
//	)
//
//	g, _ := io.ImportInstance("100.txt")
//	res, _ := search.Run(context.Background(), search.AlgorithmAuto.Resolve(g.K()), g, nil)
//	fmt.Println(res.Distance, res.Path, res.Visited)
//
// Or go through the pipeline, which adds caching and hooks:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Path: "100.txt"})
package pkg
