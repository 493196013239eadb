package layout

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/dag/transform"
)

// Empty returns the result for a graph without nodes.
func Empty(cfg Config) Result {
	cfg = cfg.WithDefaults()
	return Result{
		Empty:        true,
		Columns:      []Column{},
		Edges:        []Edge{},
		Canvas:       Canvas{Width: cfg.EmptyWidth, Height: cfg.EmptyHeight},
		PrereqCounts: map[string]int{},
	}
}

// Build places the nodes of g in columns and sizes the canvas. Edges are not
// routed; see [Route].
//
// levels maps node id to level. A nil map is computed with
// [transform.AssignLevels]; a node missing from a non-nil map is placed at
// level 0.
func Build(g *dag.DAG, levels map[string]int, cfg Config) Result {
	cfg = cfg.WithDefaults()
	if g == nil || g.NodeCount() == 0 {
		return Empty(cfg)
	}
	if levels == nil {
		levels = transform.AssignLevels(g)
	}

	byLevel := make(map[int][]*dag.Node)
	for _, n := range g.Nodes() {
		lvl := levels[n.ID]
		byLevel[lvl] = append(byLevel[lvl], n)
	}

	order := slices.Sorted(maps.Keys(byLevel))
	maxRows := 0
	for _, lvl := range order {
		slices.SortFunc(byLevel[lvl], compareNodes)
		maxRows = max(maxRows, len(byLevel[lvl]))
	}

	colStep := cfg.NodeWidth + cfg.HGap
	rowStep := cfg.NodeHeight + cfg.VGap

	columns := make([]Column, len(order))
	for i, lvl := range order {
		members := byLevel[lvl]
		x := cfg.Padding + float64(i)*colStep
		y := cfg.Padding + float64(maxRows-len(members))*rowStep/2

		col := Column{Level: lvl, Nodes: make([]Node, len(members))}
		for j, n := range members {
			col.Nodes[j] = Node{
				ID:        n.ID,
				Name:      n.Name,
				Trader:    n.Trader,
				X:         x,
				Y:         y + float64(j)*rowStep,
				Width:     cfg.NodeWidth,
				Height:    cfg.NodeHeight,
				Milestone: n.MilestoneRequired,
			}
		}
		columns[i] = col
	}

	return Result{
		Columns: columns,
		Edges:   []Edge{},
		Canvas: Canvas{
			Width:  cfg.Padding*2 + float64(len(order)-1)*colStep + cfg.NodeWidth,
			Height: cfg.Padding*2 + float64(maxRows-1)*rowStep + cfg.NodeHeight,
		},
		PrereqCounts: map[string]int{},
	}
}

// compareNodes orders a column by trader, then name, then id.
func compareNodes(a, b *dag.Node) int {
	return cmp.Or(
		strings.Compare(a.Trader, b.Trader),
		strings.Compare(a.Name, b.Name),
		strings.Compare(a.ID, b.ID),
	)
}
