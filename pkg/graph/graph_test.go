package graph

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/gridpath/pkg/errors"
)

// square returns the unit square 0-1-3-2 with edges in the given order.
func square(t *testing.T, k float64, edges []Edge[int]) *Graph[int] {
	t.Helper()
	vertices := []Vertex[int]{
		{ID: 0, Point: Point{X: 0, Y: 0}},
		{ID: 1, Point: Point{X: 1, Y: 0}},
		{ID: 2, Point: Point{X: 0, Y: 1}},
		{ID: 3, Point: Point{X: 1, Y: 1}},
	}
	g, err := Build(k, 0, 3, vertices, edges)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return g
}

var squareEdges = []Edge[int]{{0, 1}, {0, 2}, {1, 3}, {2, 3}}

func TestBuild(t *testing.T) {
	g := square(t, 2, squareEdges)

	if g.N() != 4 {
		t.Errorf("N() = %d, want 4", g.N())
	}
	if g.M() != 4 {
		t.Errorf("M() = %d, want 4", g.M())
	}
	if g.K() != 2 || g.Source() != 0 || g.Target() != 3 {
		t.Errorf("parameters = (%v, %v, %v), want (2, 0, 3)", g.K(), g.Source(), g.Target())
	}
	if got := g.Vertices(); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("Vertices() = %v, want declaration order", got)
	}
	if p, ok := g.Point(3); !ok || p != (Point{X: 1, Y: 1}) {
		t.Errorf("Point(3) = %v, %v", p, ok)
	}
	if g.Has(9) {
		t.Error("Has(9) = true, want false")
	}
}

func TestBuildErrors(t *testing.T) {
	vertices := []Vertex[string]{{ID: "a"}, {ID: "b", Point: Point{X: 1}}}

	tests := []struct {
		name     string
		k        float64
		s, t     string
		vertices []Vertex[string]
		edges    []Edge[string]
		code     errors.Code
	}{
		{"duplicate vertex", 1, "a", "b", append(slices.Clone(vertices), Vertex[string]{ID: "a"}), nil, errors.ErrCodeMalformedInput},
		{"self loop", 1, "a", "b", vertices, []Edge[string]{{"a", "a"}}, errors.ErrCodeMalformedInput},
		{"nan exponent", math.NaN(), "a", "b", vertices, nil, errors.ErrCodeMalformedInput},
		{"nan coordinate", 1, "a", "b", []Vertex[string]{{ID: "a", Point: Point{X: math.NaN()}}, {ID: "b"}}, nil, errors.ErrCodeMalformedInput},
		{"undefined edge endpoint", 1, "a", "b", vertices, []Edge[string]{{"a", "z"}}, errors.ErrCodeUndefinedVertex},
		{"undefined source", 1, "z", "b", vertices, nil, errors.ErrCodeUndefinedVertex},
		{"undefined target", 1, "a", "z", vertices, nil, errors.ErrCodeUndefinedVertex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.k, tt.s, tt.t, tt.vertices, tt.edges)
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestBuildCopiesInput(t *testing.T) {
	edges := slices.Clone(squareEdges)
	g := square(t, 1, edges)
	edges[0] = Edge[int]{U: 2, V: 1}

	if got := g.Edges()[0]; got != (Edge[int]{U: 0, V: 1}) {
		t.Errorf("graph edge changed after caller mutation: %v", got)
	}
}

func TestDistanceAndHeuristic(t *testing.T) {
	g := square(t, 2, squareEdges)

	if d := g.Distance(0, 1); d != 1 {
		t.Errorf("Distance(0, 1) = %v, want 1", d)
	}
	if h := g.Heuristic(0); math.Abs(h-math.Sqrt2) > 1e-12 {
		t.Errorf("Heuristic(0) = %v, want sqrt(2)", h)
	}
	if h := g.Heuristic(3); h != 0 {
		t.Errorf("Heuristic(target) = %v, want 0", h)
	}
}

func TestDistanceUnitCost(t *testing.T) {
	vertices := []Vertex[int]{
		{ID: 0, Point: Point{X: 5, Y: 5}},
		{ID: 1, Point: Point{X: 5, Y: 5}},
	}
	g, err := Build(0, 0, 1, vertices, []Edge[int]{{0, 1}})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if d := g.Distance(0, 1); d != 1 {
		t.Errorf("Distance(0, 1) at shared coordinates = %v, want 1", d)
	}
	if d := g.Distance(1, 1); d != 0 {
		t.Errorf("Distance(1, 1) = %v, want 0", d)
	}
	if h := g.Heuristic(1); h != 0 {
		t.Errorf("Heuristic(target) = %v, want 0", h)
	}
	if h := g.Heuristic(0); h != 1 {
		t.Errorf("Heuristic(0) = %v, want 1", h)
	}
}

func TestWithEndpoints(t *testing.T) {
	g := square(t, 2, squareEdges)

	h, err := g.WithEndpoints(0, 3, 0)
	if err != nil {
		t.Fatalf("WithEndpoints() error: %v", err)
	}
	if h.K() != 0 || h.Source() != 3 || h.Target() != 0 {
		t.Errorf("WithEndpoints parameters = (%v, %v, %v)", h.K(), h.Source(), h.Target())
	}
	if g.K() != 2 || g.Source() != 0 {
		t.Error("WithEndpoints modified the receiver")
	}
	if _, err := g.WithEndpoints(1, 0, 42); !errors.Is(err, errors.ErrCodeUndefinedVertex) {
		t.Errorf("WithEndpoints(undefined) error = %v", err)
	}
}

func TestIndexNeighborOrder(t *testing.T) {
	g := square(t, 1, squareEdges)
	idx := NewIndex(g)

	tests := []struct {
		id   int
		want []int
	}{
		{0, []int{1, 2}},
		{1, []int{0, 3}},
		{2, []int{0, 3}},
		{3, []int{1, 2}},
	}

	for _, tt := range tests {
		if got := idx.Neighbors(tt.id); !slices.Equal(got, tt.want) {
			t.Errorf("Neighbors(%d) = %v, want %v", tt.id, got, tt.want)
		}
		if idx.Degree(tt.id) != len(tt.want) {
			t.Errorf("Degree(%d) = %d, want %d", tt.id, idx.Degree(tt.id), len(tt.want))
		}
	}
}

func TestIndexIsolatedVertex(t *testing.T) {
	g := square(t, 1, []Edge[int]{{0, 1}})
	idx := NewIndex(g)

	if n := idx.Neighbors(3); len(n) != 0 {
		t.Errorf("Neighbors(isolated) = %v, want empty", n)
	}
}

func TestIndexParallelEdges(t *testing.T) {
	g := square(t, 1, []Edge[int]{{0, 1}, {1, 0}})
	idx := NewIndex(g)

	if got := idx.Neighbors(0); !slices.Equal(got, []int{1, 1}) {
		t.Errorf("Neighbors(0) = %v, want [1 1]", got)
	}
}

func TestIndexNeighborSetsIndependentOfEdgeOrder(t *testing.T) {
	forward := NewIndex(square(t, 1, squareEdges))
	reversed := slices.Clone(squareEdges)
	slices.Reverse(reversed)
	for i, e := range reversed {
		reversed[i] = Edge[int]{U: e.V, V: e.U}
	}
	backward := NewIndex(square(t, 1, reversed))

	for id := 0; id < 4; id++ {
		a := slices.Sorted(slices.Values(forward.Neighbors(id)))
		b := slices.Sorted(slices.Values(backward.Neighbors(id)))
		if !slices.Equal(a, b) {
			t.Errorf("neighbor set of %d differs: %v vs %v", id, a, b)
		}
	}
}
