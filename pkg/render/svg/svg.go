// Package svg draws a quest layout as a standalone SVG document.
//
// Coordinates come straight from the [layout.Result]: every quest box sits
// at its placed position and every edge follows its routed cubic path.
//
// [layout.Result]: github.com/matzehuels/questgraph/pkg/layout.Result
package svg

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/render"
)

// EmptyMessage is drawn when the layout has no quests.
const EmptyMessage = "No quests to display"

const (
	fontFamily = "Inter, Helvetica, Arial, sans-serif"
	charWidth  = 7.2 // average glyph width at the node font size
	cornerR    = 8
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	palette render.Palette
	title   string
	badges  bool
}

// WithPalette overrides the default color palette.
func WithPalette(p render.Palette) Option { return func(r *renderer) { r.palette = p } }

// WithTitle sets the document <title>.
func WithTitle(t string) Option { return func(r *renderer) { r.title = t } }

// WithPrereqBadges draws the prerequisite count in the corner of each box.
func WithPrereqBadges() Option { return func(r *renderer) { r.badges = true } }

// RenderSVG draws res and returns the SVG document.
func RenderSVG(res layout.Result, opts ...Option) []byte {
	r := &renderer{palette: render.DefaultPalette}
	for _, opt := range opts {
		opt(r)
	}

	var buf bytes.Buffer
	w, h := int(math.Ceil(res.Canvas.Width)), int(math.Ceil(res.Canvas.Height))
	canvas := svg.New(&buf)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))
	if r.title != "" {
		canvas.Title(r.title)
	}
	r.defs(canvas)
	canvas.Rect(0, 0, w, h, "fill:"+r.palette.Background)

	if res.Empty {
		canvas.Text(w/2, h/2, EmptyMessage,
			fmt.Sprintf("text-anchor:middle;dominant-baseline:middle;font-family:%s;font-size:16px;fill:%s", fontFamily, r.palette.Muted))
		canvas.End()
		return buf.Bytes()
	}

	canvas.Gid("edges")
	for _, e := range res.Edges {
		r.edge(canvas, e)
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, col := range res.Columns {
		for _, n := range col.Nodes {
			r.node(canvas, n, res.PrereqCounts[n.ID])
		}
	}
	canvas.Gend()

	canvas.End()
	return buf.Bytes()
}

func (r *renderer) defs(canvas *svg.SVG) {
	canvas.Def()
	markers := []struct{ id, color string }{
		{"arrow", r.palette.Edge},
		{"arrow-unlock", r.palette.EdgeUnlock},
	}
	for _, m := range markers {
		canvas.Marker(m.id, 8, 4, 8, 8, `orient="auto"`, `markerUnits="strokeWidth"`)
		canvas.Path("M0,0 L8,4 L0,8 z", "fill:"+m.color)
		canvas.MarkerEnd()
	}
	canvas.DefEnd()
}

func (r *renderer) edge(canvas *svg.SVG, e layout.Edge) {
	if len(e.Path) != 4 {
		return
	}
	color, marker := r.palette.Edge, "arrow"
	if e.Kind == dag.EdgeUnlocks {
		color, marker = r.palette.EdgeUnlock, "arrow-unlock"
	}
	p := e.Path
	d := fmt.Sprintf("M %s %s C %s %s, %s %s, %s %s",
		num(p[0].X), num(p[0].Y), num(p[1].X), num(p[1].Y),
		num(p[2].X), num(p[2].Y), num(p[3].X), num(p[3].Y))
	canvas.Path(d,
		`class="edge"`,
		fmt.Sprintf(`data-from=%q`, e.From),
		fmt.Sprintf(`data-to=%q`, e.To),
		fmt.Sprintf(`marker-end="url(#%s)"`, marker),
		"fill:none;stroke:"+color+";stroke-width:1.5")
}

func (r *renderer) node(canvas *svg.SVG, n layout.Node, prereqs int) {
	sw := r.palette.Swatch(n.Status)
	x, y := int(math.Round(n.X)), int(math.Round(n.Y))
	w, h := int(math.Round(n.Width)), int(math.Round(n.Height))

	canvas.Group(fmt.Sprintf(`id=%q`, "quest-"+n.ID), `class="quest"`, fmt.Sprintf(`data-status=%q`, string(n.Status)))
	canvas.Title(n.Name)

	stroke := sw.Stroke
	if n.Milestone {
		stroke = r.palette.Milestone
	}
	canvas.Roundrect(x, y, w, h, cornerR, cornerR,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%s", sw.Fill, stroke, strokeWidth(n)))

	maxChars := int(float64(w-24) / charWidth)
	canvas.Text(x+12, y+h/2-4, truncate(n.Name, maxChars),
		fmt.Sprintf("font-family:%s;font-size:13px;font-weight:600;fill:%s", fontFamily, sw.Text))
	canvas.Text(x+12, y+h/2+14, truncate(n.Trader, maxChars),
		fmt.Sprintf("font-family:%s;font-size:11px;fill:%s", fontFamily, r.palette.Muted))

	if n.Milestone {
		canvas.Text(x+w-12, y+16, "★",
			fmt.Sprintf("text-anchor:end;font-size:13px;fill:%s", r.palette.Milestone))
	}
	if r.badges && prereqs > 0 {
		canvas.Text(x+w-12, y+h-8, strconv.Itoa(prereqs),
			fmt.Sprintf("text-anchor:end;font-family:%s;font-size:10px;fill:%s", fontFamily, r.palette.Muted))
	}
	canvas.Gend()
}

func strokeWidth(n layout.Node) string {
	if n.Milestone {
		return "2"
	}
	return "1.25"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if max < 2 || len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
