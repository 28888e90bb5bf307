package io

import (
	"bytes"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/graph"
	"github.com/matzehuels/gridpath/pkg/gridgen"
)

func TestWriteInstance(t *testing.T) {
	g, err := ReadInstance(strings.NewReader(strip))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteInstance(&buf, g); err != nil {
		t.Fatalf("WriteInstance() error: %v", err)
	}
	want := "2 1 2 a b\na 0 0\nb 3 4\na b\n"
	if buf.String() != want {
		t.Errorf("WriteInstance() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestInstanceRoundTrip(t *testing.T) {
	tests := []gridgen.Options{
		{Side: 4, K: 2, Target: -1},
		{Side: 5, Conn: gridgen.Conn8, K: -1, Source: 3, Target: 7},
		{Side: 3, K: 0.5, Target: -1},
	}

	for _, opts := range tests {
		g, err := gridgen.Generate(opts)
		if err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(t.TempDir(), "grid.txt")
		if err := ExportInstance(g, path); err != nil {
			t.Fatalf("ExportInstance() error: %v", err)
		}
		back, err := ImportInstance(path)
		if err != nil {
			t.Fatalf("ImportInstance() error: %v", err)
		}

		if back.N() != g.N() || back.M() != g.M() || back.K() != g.K() {
			t.Errorf("shape changed: %d/%d/%v -> %d/%d/%v", g.N(), g.M(), g.K(), back.N(), back.M(), back.K())
		}
		for _, id := range g.Vertices() {
			p, _ := g.Point(id)
			q, ok := back.Point(strconv.Itoa(id))
			if !ok || p != q {
				t.Errorf("vertex %d: %v -> %v", id, p, q)
			}
		}
		edges := back.Edges()
		for i, e := range g.Edges() {
			if edges[i] != (graph.Edge[string]{U: strconv.Itoa(e.U), V: strconv.Itoa(e.V)}) {
				t.Errorf("edge %d: %v -> %v", i, e, edges[i])
			}
		}
		if back.Source() != strconv.Itoa(g.Source()) || back.Target() != strconv.Itoa(g.Target()) {
			t.Errorf("endpoints changed")
		}
	}
}

func TestWriteInstanceRejectsBadIDs(t *testing.T) {
	g, err := graph.Build(1, "a b", "c",
		[]graph.Vertex[string]{{ID: "a b"}, {ID: "c", Point: graph.Point{X: 1}}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteInstance(&bytes.Buffer{}, g); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("WriteInstance() error = %v, want INVALID_INPUT", err)
	}
}

func TestVertexOrderPreserved(t *testing.T) {
	in := "3 0 1 z a\nz 0 0\nm 1 0\na 2 0\n"
	g, err := ReadInstance(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteInstance(&buf, g); err != nil {
		t.Fatal(err)
	}
	back, err := ReadInstance(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(back.Vertices(), []string{"z", "m", "a"}) {
		t.Errorf("Vertices() = %v", back.Vertices())
	}
}
