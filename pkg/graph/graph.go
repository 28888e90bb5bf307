package graph

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/metric"
)

// Point is a planar vertex coordinate.
type Point = metric.Point

// Vertex is a vertex id with its coordinate.
type Vertex[ID comparable] struct {
	ID ID
	Point
}

// Edge is an unordered pair of vertex ids. U and V must differ.
// Parallel edges between the same pair are allowed.
type Edge[ID comparable] struct {
	U, V ID
}

// Graph is an immutable undirected graph with planar coordinates, a metric
// exponent and a designated source and target.
//
// The zero value is not usable - use Build to create a valid Graph.
type Graph[ID comparable] struct {
	k      float64
	source ID
	target ID
	points map[ID]Point
	order  []ID
	edges  []Edge[ID]
}

// Build validates the given parts and assembles an immutable Graph.
// The vertex and edge slices are copied; the caller may reuse them.
func Build[ID comparable](k float64, source, target ID, vertices []Vertex[ID], edges []Edge[ID]) (*Graph[ID], error) {
	if math.IsNaN(k) {
		return nil, errors.Malformed(0, "exponent k must not be NaN")
	}

	g := &Graph[ID]{
		k:      k,
		source: source,
		target: target,
		points: make(map[ID]Point, len(vertices)),
		order:  make([]ID, 0, len(vertices)),
		edges:  slices.Clone(edges),
	}

	for i, v := range vertices {
		if _, dup := g.points[v.ID]; dup {
			return nil, errors.Malformed(0, "vertex %d: duplicate id %v", i, v.ID)
		}
		if math.IsNaN(v.X) || math.IsNaN(v.Y) {
			return nil, errors.Malformed(0, "vertex %v: coordinate is NaN", v.ID)
		}
		g.points[v.ID] = v.Point
		g.order = append(g.order, v.ID)
	}

	for i, e := range g.edges {
		if e.U == e.V {
			return nil, errors.Malformed(0, "edge %d: self-loop on %v", i, e.U)
		}
		if !g.Has(e.U) {
			return nil, errors.UndefinedVertex(e.U, fmt.Sprintf("edge %d", i))
		}
		if !g.Has(e.V) {
			return nil, errors.UndefinedVertex(e.V, fmt.Sprintf("edge %d", i))
		}
	}

	if !g.Has(source) {
		return nil, errors.UndefinedVertex(source, "source")
	}
	if !g.Has(target) {
		return nil, errors.UndefinedVertex(target, "target")
	}
	return g, nil
}

// WithEndpoints returns a graph sharing this graph's vertices and edges but
// with a different exponent, source and target. The receiver is unchanged.
func (g *Graph[ID]) WithEndpoints(k float64, source, target ID) (*Graph[ID], error) {
	if math.IsNaN(k) {
		return nil, errors.Malformed(0, "exponent k must not be NaN")
	}
	if !g.Has(source) {
		return nil, errors.UndefinedVertex(source, "source")
	}
	if !g.Has(target) {
		return nil, errors.UndefinedVertex(target, "target")
	}
	c := *g
	c.k, c.source, c.target = k, source, target
	return &c, nil
}

// K returns the metric exponent.
func (g *Graph[ID]) K() float64 { return g.k }

// Source returns the source vertex id.
func (g *Graph[ID]) Source() ID { return g.source }

// Target returns the target vertex id.
func (g *Graph[ID]) Target() ID { return g.target }

// N returns the number of vertices.
func (g *Graph[ID]) N() int { return len(g.order) }

// M returns the number of edges, parallel edges included.
func (g *Graph[ID]) M() int { return len(g.edges) }

// Has reports whether id is a vertex of the graph.
func (g *Graph[ID]) Has(id ID) bool {
	_, ok := g.points[id]
	return ok
}

// Point returns the coordinate of id.
func (g *Graph[ID]) Point(id ID) (Point, bool) {
	p, ok := g.points[id]
	return p, ok
}

// Vertices returns the vertex ids in declaration order.
func (g *Graph[ID]) Vertices() []ID { return slices.Clone(g.order) }

// Edges returns a copy of the edge list in declaration order.
func (g *Graph[ID]) Edges() []Edge[ID] { return slices.Clone(g.edges) }

// EachEdge calls fn for every edge in declaration order without copying.
func (g *Graph[ID]) EachEdge(fn func(i int, e Edge[ID])) {
	for i, e := range g.edges {
		fn(i, e)
	}
}

// Distance returns D(u, v, k) for two vertices of the graph. It is the edge
// weight of (u, v) and, with v fixed to the target, the A* heuristic.
// A vertex is always at distance 0 from itself, also when k == 0.
func (g *Graph[ID]) Distance(u, v ID) float64 {
	if u == v {
		return 0
	}
	return metric.Distance(g.points[u], g.points[v], g.k)
}

// Heuristic returns D(u, t, k), the estimated remaining cost from u.
func (g *Graph[ID]) Heuristic(u ID) float64 {
	return g.Distance(u, g.target)
}
