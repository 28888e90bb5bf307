// Package gridgen generates square grid instances for benchmarking.
//
// A grid of side s has s*s vertices. Vertex (i, j), 0 <= i, j < s, gets id
// i*s + j and coordinate (i*span/(s-1), j*span/(s-1)) rounded to two
// decimals, so the grid spreads evenly over [0, span] on both axes.
//
// With Conn4 every vertex is joined to its right and lower neighbor, giving
// 2*s*(s-1) edges. Conn8 adds both diagonals of every cell.
package gridgen

import (
	"math"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/graph"
)

// Connectivity selects which neighbors are joined by edges.
type Connectivity int

const (
	// Conn4 joins orthogonal neighbors.
	Conn4 Connectivity = 4
	// Conn8 joins orthogonal and diagonal neighbors.
	Conn8 Connectivity = 8
)

// DefaultSpan is the coordinate range used when Options.Span is zero.
const DefaultSpan = 100.0

// Options configures Generate.
type Options struct {
	Side   int          `json:"side"`
	Span   float64      `json:"span,omitempty"`
	Conn   Connectivity `json:"conn,omitempty"`
	K      float64      `json:"k"`
	Source int          `json:"source"`
	// Target is the target vertex id. A negative value selects the last vertex.
	Target int `json:"target"`
}

// DefaultOptions returns a corner-to-corner Euclidean grid of the given side.
func DefaultOptions(side int) Options {
	return Options{Side: side, Span: DefaultSpan, Conn: Conn4, K: 2, Source: 0, Target: -1}
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Side < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "side must be at least 1, got %d", o.Side)
	}
	if o.Span == 0 {
		o.Span = DefaultSpan
	}
	if o.Span < 0 || math.IsNaN(o.Span) || math.IsInf(o.Span, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "span must be a positive finite number, got %v", o.Span)
	}
	if o.Conn == 0 {
		o.Conn = Conn4
	}
	if o.Conn != Conn4 && o.Conn != Conn8 {
		return errors.New(errors.ErrCodeInvalidInput, "connectivity must be 4 or 8, got %d", o.Conn)
	}
	n := o.Side * o.Side
	if o.Target < 0 {
		o.Target = n - 1
	}
	if o.Source < 0 || o.Source >= n {
		return errors.New(errors.ErrCodeInvalidInput, "source %d outside [0, %d)", o.Source, n)
	}
	if o.Target >= n {
		return errors.New(errors.ErrCodeInvalidInput, "target %d outside [0, %d)", o.Target, n)
	}
	return nil
}

// EdgeCount returns the number of edges Generate produces for a grid of the
// given side.
func EdgeCount(side int, conn Connectivity) int {
	if side < 2 {
		return 0
	}
	m := 2 * side * (side - 1)
	if conn == Conn8 {
		m += 2 * (side - 1) * (side - 1)
	}
	return m
}

// Generate builds the grid described by opts.
func Generate(opts Options) (*graph.Graph[int], error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s := opts.Side
	step := 0.0
	if s > 1 {
		step = opts.Span / float64(s-1)
	}

	vertices := make([]graph.Vertex[int], 0, s*s)
	for i := 0; i < s; i++ {
		for j := 0; j < s; j++ {
			vertices = append(vertices, graph.Vertex[int]{
				ID:    i*s + j,
				Point: graph.Point{X: round2(float64(i) * step), Y: round2(float64(j) * step)},
			})
		}
	}

	edges := make([]graph.Edge[int], 0, EdgeCount(s, opts.Conn))
	for i := 0; i < s; i++ {
		for j := 0; j < s; j++ {
			cur := i*s + j
			if j+1 < s {
				edges = append(edges, graph.Edge[int]{U: cur, V: cur + 1})
			}
			if i+1 < s {
				edges = append(edges, graph.Edge[int]{U: cur, V: cur + s})
			}
			if opts.Conn == Conn8 && i+1 < s {
				if j+1 < s {
					edges = append(edges, graph.Edge[int]{U: cur, V: cur + s + 1})
				}
				if j > 0 {
					edges = append(edges, graph.Edge[int]{U: cur, V: cur + s - 1})
				}
			}
		}
	}

	return graph.Build(opts.K, opts.Source, opts.Target, vertices, edges)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
