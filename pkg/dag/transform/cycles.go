package transform

import (
	"slices"

	"github.com/matzehuels/questgraph/pkg/dag"
)

// CycleEdges returns the back edges found by a depth-first search of g.
// Removing them would make g acyclic. The search starts from sources and then
// from any remaining node, both in ascending id order, so the result is
// stable for a given graph. g is not modified.
func CycleEdges(g *dag.DAG) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var back []dag.Edge

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				back = append(back, dag.Edge{From: node, To: child})
			}
		}
		color[node] = black
	}

	sources := dag.NodeIDs(g.Sources())
	slices.Sort(sources)
	for _, id := range sources {
		if color[id] == white {
			dfs(id)
		}
	}

	all := dag.NodeIDs(g.Nodes())
	slices.Sort(all)
	for _, id := range all {
		if color[id] == white {
			dfs(id)
		}
	}

	kinds := make(map[string]dag.EdgeKind, g.EdgeCount())
	for _, e := range g.Edges() {
		kinds[e.Key()] = e.Kind
	}
	for i := range back {
		back[i].Kind = kinds[back[i].Key()]
	}
	return back
}
