// Package nodelink renders quest layouts as Graphviz node-link diagrams.
//
// # Overview
//
// The layout engine already decides which column every quest belongs to.
// [ToDOT] carries that decision over to Graphviz: each column becomes a
// rank=same subgraph and the graph flows left to right, so the diagram
// keeps the same reading order as the native SVG.
//
// # Usage
//
//	dot := nodelink.ToDOT(result, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
//   - Detailed: node labels also show the trader and level
//
// # Dependencies
//
// Rendering runs in-process through [github.com/goccy/go-graphviz]; no
// external Graphviz installation is needed.
package nodelink
