package transform

import (
	"slices"

	"github.com/matzehuels/questgraph/pkg/dag"
)

// AssignLevels computes the column depth of every node in g.
//
// AssignLevels uses a longest-path traversal via topological sort (Kahn's
// algorithm). Each node is placed at one plus the maximum level of any of its
// parents, so for every edge u→v on the acyclic part of the graph
// level(v) > level(u), and source nodes sit at level 0.
//
// The returned map has an entry for every node in g. The graph itself is not
// modified; use [ApplyLevels] to write the result back.
//
// # Cycles
//
// Nodes on a cycle never reach zero in-degree. They keep whatever level a
// processed parent pushed onto them, or 0 if none did. No error is reported;
// use [CycleEdges] or [StuckNodes] for diagnostics.
//
// # Determinism
//
// The initial queue is seeded in ascending id order. Because a level only ever
// increases to the longest path seen, the result does not depend on the order
// nodes or edges were inserted.
//
// Time complexity is O(V log V + E).
func AssignLevels(g *dag.DAG) map[string]int {
	levels, _ := Levels(dag.NodeIDs(g.Nodes()), g.Edges())
	return levels
}

// ApplyLevels writes levels onto the nodes of g.
func ApplyLevels(g *dag.DAG, levels map[string]int) {
	g.SetLevels(levels)
}

// StuckNodes returns, in ascending id order, the nodes of g that were never
// released by the traversal in [AssignLevels]. These are the cycle members
// and everything downstream of a cycle.
func StuckNodes(g *dag.DAG) []string {
	_, stuck := Levels(dag.NodeIDs(g.Nodes()), g.Edges())
	return stuck
}

// Levels is the traversal behind [AssignLevels], operating on raw ids and
// edges. Edges with an endpoint outside ids are ignored. It returns the level
// of every id and the sorted ids that never reached zero in-degree.
func Levels(ids []string, edges []dag.Edge) (map[string]int, []string) {
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	inDegree := make(map[string]int, len(known))
	children := make(map[string][]string, len(known))
	for _, e := range edges {
		_, okFrom := known[e.From]
		_, okTo := known[e.To]
		if !okFrom || !okTo {
			continue
		}
		children[e.From] = append(children[e.From], e.To)
		inDegree[e.To]++
	}

	sorted := make([]string, 0, len(known))
	for id := range known {
		sorted = append(sorted, id)
	}
	slices.Sort(sorted)

	levels := make(map[string]int, len(known))
	queue := make([]string, 0, len(known))
	for _, id := range sorted {
		if inDegree[id] == 0 {
			levels[id] = 0
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range children[curr] {
			if lvl, ok := levels[child]; !ok || levels[curr]+1 > lvl {
				levels[child] = levels[curr] + 1
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	var stuck []string
	for _, id := range sorted {
		if inDegree[id] > 0 {
			stuck = append(stuck, id)
		}
		if _, ok := levels[id]; !ok {
			levels[id] = 0
		}
	}
	return levels, stuck
}
