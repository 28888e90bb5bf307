// Package render draws a planar graph and a shortest path as a Graphviz
// diagram.
//
// # Overview
//
// Vertices are pinned to their planar coordinates and laid out with the
// neato engine, so the picture matches the geometry the metric is computed
// on. Edges on the path, the path's interior vertices, the source and the
// target are styled so the route stands out against the rest of the grid.
//
// # Usage
//
// Convert a graph and a path to DOT, then render to SVG:
//
//	dot := render.ToDOT(g, res.Path, render.Options{Labels: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [Export] dispatches on a [Format], typically picked from the output path:
//
//	data, err := render.Export(ctx, dot, render.FormatFromPath("route.png"))
//
// # Options
//
//   - Labels: print vertex ids inside the nodes instead of drawing points
//   - Width: target drawing width in inches (default [DefaultWidth])
//
// # Dependencies
//
// SVG rendering uses github.com/goccy/go-graphviz, which bundles Graphviz as
// WebAssembly; no system install is needed. PDF and PNG conversion shell out
// to rsvg-convert from librsvg.
package render
