package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the trader and level under the quest name.
	Detailed bool

	// Palette colors nodes by status. The zero value uses render.DefaultPalette.
	Palette *render.Palette
}

// ToDOT converts a layout to Graphviz DOT source. Every layout column is
// emitted as one rank, in column order, so Graphviz keeps the leveling.
//
// An empty layout produces a graph with a single note node.
func ToDOT(r layout.Result, opts Options) string {
	pal := render.DefaultPalette
	if opts.Palette != nil {
		pal = *opts.Palette
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", pal.Background)
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=12, margin=\"0.2,0.1\"];\n")
	fmt.Fprintf(&buf, "  edge [color=%q, arrowsize=0.7];\n", pal.Edge)
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.3;\n")

	if r.Empty {
		fmt.Fprintf(&buf, "  empty [shape=plaintext, style=\"\", label=%q, fontcolor=%q];\n", "No quests to display", pal.Muted)
		buf.WriteString("}\n")
		return buf.String()
	}

	for _, col := range r.Columns {
		fmt.Fprintf(&buf, "\n  subgraph level_%d {\n", col.Level)
		buf.WriteString("    rank=same;\n")
		for _, n := range col.Nodes {
			attrs := fmtAttrs(n, fmtLabel(n, col.Level, opts.Detailed), pal)
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range r.Edges {
		if e.Kind == dag.EdgeUnlocks {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=%q];\n", e.From, e.To, pal.EdgeUnlock)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n layout.Node, level int, detailed bool) string {
	name := n.Name
	if name == "" {
		name = n.ID
	}
	if !detailed {
		return name
	}
	return fmt.Sprintf("%s\n%s · level %d", name, n.Trader, level)
}

func fmtAttrs(n layout.Node, label string, pal render.Palette) []string {
	sw := pal.Swatch(n.Status)
	stroke := sw.Stroke
	if n.Milestone {
		stroke = pal.Milestone
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", sw.Fill),
		fmt.Sprintf("color=%q", stroke),
		fmt.Sprintf("fontcolor=%q", sw.Text),
	}
	if n.Milestone {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to a PNG image using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from the
// origin; Graphviz emits pt units and a translated viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
