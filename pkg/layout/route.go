package layout

import (
	"math"

	"github.com/matzehuels/questgraph/pkg/dag"
)

// MinControlOffset is the smallest horizontal distance between an edge
// endpoint and its control point.
const MinControlOffset = 60

// Route computes a curve for every edge whose endpoints are both placed in
// r. Other edges are dropped. Output order follows edges.
func Route(edges []dag.Edge, r Result) []Edge {
	pos := r.positions()
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		from, ok := pos[e.From]
		if !ok {
			continue
		}
		to, ok := pos[e.To]
		if !ok {
			continue
		}
		out = append(out, Edge{
			From: e.From,
			To:   e.To,
			Kind: e.Kind,
			Path: Curve(from.OutPort(), to.InPort()),
		})
	}
	return out
}

// Curve returns the cubic Bézier from start to end as
// [start, control1, control2, end]. Control points are horizontally offset
// by max(MinControlOffset, |Δx|/2) in the direction of travel.
func Curve(start, end Point) []Point {
	dx := end.X - start.X
	offset := math.Max(MinControlOffset, math.Abs(dx)/2)
	dir := 1.0
	if dx < 0 {
		dir = -1
	}
	return []Point{
		start,
		{X: start.X + dir*offset, Y: start.Y},
		{X: end.X - dir*offset, Y: end.Y},
		end,
	}
}

// PrereqCounts returns the number of incoming edges of every node in g,
// including nodes with none.
func PrereqCounts(g *dag.DAG) map[string]int {
	counts := make(map[string]int, g.NodeCount())
	for _, n := range g.Nodes() {
		counts[n.ID] = g.InDegree(n.ID)
	}
	return counts
}
