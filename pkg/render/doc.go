// Package render turns a computed quest layout into visual output.
//
// # Overview
//
// Renderers consume a [layout.Result] and never re-run layout themselves.
// This package holds what they share:
//
//   - The output [Format] names accepted by the CLI and HTTP API
//   - The status [Palette] used to color quest boxes
//
// # SVG
//
// The [svg] subpackage draws the layout directly with ajstarks/svgo. Boxes
// and edge curves land exactly where the layout placed them.
//
//	data := svg.RenderSVG(result, svg.WithTitle("Quests"))
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage emits Graphviz DOT with one rank per layout
// column and renders it to SVG or PNG through goccy/go-graphviz.
//
//	dot := nodelink.ToDOT(result, nodelink.Options{})
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// [svg]: github.com/matzehuels/questgraph/pkg/render/svg
// [nodelink]: github.com/matzehuels/questgraph/pkg/render/nodelink
// [layout.Result]: github.com/matzehuels/questgraph/pkg/layout.Result
package render
