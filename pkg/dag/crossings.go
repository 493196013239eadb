package dag

import (
	"maps"
	"slices"
)

// CountCrossings returns the number of edge crossings in a column layout.
// orders maps a column index to its node ids in top-to-bottom order. Only
// edges between adjacent columns are counted; an edge spanning several
// columns is skipped, as are columns missing from orders.
//
//	orders := map[int][]string{
//	    0: {"debut", "shortage"},
//	    1: {"checking", "sanitary"},
//	}
//	n := dag.CountCrossings(g, orders)
//
// It runs in O(C × E log V) for C columns.
func CountCrossings(g *DAG, orders map[int][]string) int {
	cols := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for _, c := range cols {
		if next, ok := orders[c+1]; ok {
			crossings += CountLayerCrossings(g, orders[c], next)
		}
	}
	return crossings
}

// CountLayerCrossings counts crossings between two adjacent columns.
//
// Edges (u1,v1) and (u2,v2) cross exactly when pos(u1) < pos(u2) and
// pos(v1) > pos(v2), so the count is the number of inversions in the target
// positions once edges are sorted by source. A Fenwick tree counts them in
// O(E log V).
func CountLayerCrossings(g *DAG, left, right []string) int {
	if len(left) == 0 || len(right) == 0 {
		return 0
	}

	rightPos := PosMap(right)

	type edge struct{ from, to int }
	var edges []edge
	for i, id := range left {
		for _, child := range g.Children(id) {
			if pos, ok := rightPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.from != b.from {
			return a.from - b.from
		}
		return a.to - b.to
	})

	fenwick := make([]int, len(right)+1)
	crossings, seen := 0, 0
	for _, e := range edges {
		atMost := 0
		for q := e.to + 1; q > 0; q -= q & (-q) {
			atMost += fenwick[q]
		}
		crossings += seen - atMost

		seen++
		for q := e.to + 1; q < len(fenwick); q += q & (-q) {
			fenwick[q]++
		}
	}
	return crossings
}

// PosMap maps each id to its index in order.
func PosMap(order []string) map[string]int {
	m := make(map[string]int, len(order))
	for i, id := range order {
		m[id] = i
	}
	return m
}
