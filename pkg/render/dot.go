package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/gridpath/pkg/graph"
)

// DefaultWidth is the drawing width in inches when Options.Width is unset.
const DefaultWidth = 8.0

// Colors used for the highlighted route.
const (
	colorSource = "#2ca02c"
	colorTarget = "#d62728"
	colorPath   = "#ff7f0e"
	colorEdge   = "#b0b0b0"
)

// Options configures diagram generation.
type Options struct {
	// Labels prints vertex ids inside the nodes. When false, vertices are
	// drawn as points, which keeps large grids readable.
	Labels bool

	// Width is the larger drawing dimension in inches. Zero means DefaultWidth.
	Width float64
}

type pair struct{ a, b string }

func newPair(u, v string) pair {
	if v < u {
		u, v = v, u
	}
	return pair{u, v}
}

// ToDOT converts a graph to Graphviz DOT source for an undirected diagram
// with every vertex pinned at its coordinate. The vertices of path and the
// edges between consecutive path vertices are highlighted; path may be nil.
// The result can be rendered with [RenderSVG].
func ToDOT[ID comparable](g *graph.Graph[ID], path []ID, opts Options) string {
	scale := drawingScale(g, opts.Width)

	onPath := make(map[string]bool, len(path))
	pathEdges := make(map[pair]bool, len(path))
	for i, id := range path {
		onPath[fmt.Sprint(id)] = true
		if i > 0 {
			pathEdges[newPair(fmt.Sprint(path[i-1]), fmt.Sprint(id))] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  splines=false;\n")
	if opts.Labels {
		buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=true];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.06, color=\"#606060\"];\n")
	}
	fmt.Fprintf(&buf, "  edge [color=%q];\n", colorEdge)
	buf.WriteString("\n")

	src, dst := fmt.Sprint(g.Source()), fmt.Sprint(g.Target())
	for _, id := range g.Vertices() {
		name := fmt.Sprint(id)
		p, _ := g.Point(id)
		attrs := []string{fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(p.X*scale), fmtCoord(p.Y*scale))}
		if opts.Labels {
			attrs = append(attrs, fmt.Sprintf("label=%q", name))
		}
		attrs = append(attrs, vertexStyle(name, src, dst, onPath[name], opts.Labels)...)
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	g.EachEdge(func(_ int, e graph.Edge[ID]) {
		u, v := fmt.Sprint(e.U), fmt.Sprint(e.V)
		if pathEdges[newPair(u, v)] {
			fmt.Fprintf(&buf, "  %q -- %q [color=%q, penwidth=3];\n", u, v, colorPath)
			return
		}
		fmt.Fprintf(&buf, "  %q -- %q;\n", u, v)
	})

	buf.WriteString("}\n")
	return buf.String()
}

func vertexStyle(name, src, dst string, onPath, labels bool) []string {
	var color string
	switch {
	case name == src:
		color = colorSource
	case name == dst:
		color = colorTarget
	case onPath:
		color = colorPath
	default:
		return nil
	}
	if labels {
		return []string{fmt.Sprintf("fillcolor=%q", color), "fontcolor=white", fmt.Sprintf("color=%q", color)}
	}
	width := "0.1"
	if name == src || name == dst {
		width = "0.16"
	}
	return []string{fmt.Sprintf("color=%q", color), "width=" + width}
}

// drawingScale maps coordinate units to inches so the larger extent of the
// bounding box spans width inches.
func drawingScale[ID comparable](g *graph.Graph[ID], width float64) float64 {
	if width <= 0 {
		width = DefaultWidth
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, id := range g.Vertices() {
		p, _ := g.Point(id)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	extent := math.Max(maxX-minX, maxY-minY)
	if extent <= 0 || math.IsInf(extent, 0) {
		return 1
	}
	return width / extent
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
