package transform

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/matzehuels/questgraph/pkg/dag"
)

func TestAssignLevels(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  map[string]int
	}{
		{
			name: "empty",
			want: map[string]int{},
		},
		{
			name: "isolated",
			ids:  []string{"a", "b"},
			want: map[string]int{"a": 0, "b": 0},
		},
		{
			name:  "chain",
			ids:   []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
			want:  map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name:  "diamond",
			ids:   []string{"A", "B", "C", "D"},
			edges: [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}},
			want:  map[string]int{"A": 0, "B": 1, "C": 1, "D": 2},
		},
		{
			name:  "longest path wins",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "d"}, {"a", "b"}, {"b", "c"}, {"c", "d"}},
			want:  map[string]int{"a": 0, "b": 1, "c": 2, "d": 3},
		},
		{
			name:  "two node cycle",
			ids:   []string{"X", "Y"},
			edges: [][2]string{{"X", "Y"}, {"Y", "X"}},
			want:  map[string]int{"X": 0, "Y": 0},
		},
		{
			name:  "cycle fed by source",
			ids:   []string{"s", "X", "Y"},
			edges: [][2]string{{"s", "X"}, {"X", "Y"}, {"Y", "X"}},
			want:  map[string]int{"s": 0, "X": 1, "Y": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignLevels(buildGraph(tt.ids, tt.edges))
			if len(got) != len(tt.want) {
				t.Fatalf("got %d levels, want %d: %v", len(got), len(tt.want), got)
			}
			for id, want := range tt.want {
				if got[id] != want {
					t.Errorf("level[%s] = %d, want %d", id, got[id], want)
				}
			}
		})
	}
}

func TestAssignLevels_EdgesRespectDirection(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	edges := [][2]string{{"a", "c"}, {"b", "c"}, {"c", "d"}, {"a", "e"}, {"e", "d"}, {"d", "f"}}
	g := buildGraph(ids, edges)

	levels := AssignLevels(g)
	for _, e := range g.Edges() {
		if levels[e.To] <= levels[e.From] {
			t.Errorf("edge %s->%s: level %d <= %d", e.From, e.To, levels[e.To], levels[e.From])
		}
	}
	for id, lvl := range levels {
		if lvl < 0 {
			t.Errorf("level[%s] = %d, want non-negative", id, lvl)
		}
	}
}

func TestAssignLevels_OrderIndependent(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "X", "Y"}
	edges := [][2]string{
		{"a", "b"}, {"b", "c"}, {"a", "d"}, {"d", "c"}, {"c", "e"},
		{"X", "Y"}, {"Y", "X"}, {"e", "X"},
	}
	want := AssignLevels(buildGraph(ids, edges))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffledIDs := slices.Clone(ids)
		shuffledEdges := slices.Clone(edges)
		rng.Shuffle(len(shuffledIDs), func(i, j int) { shuffledIDs[i], shuffledIDs[j] = shuffledIDs[j], shuffledIDs[i] })
		rng.Shuffle(len(shuffledEdges), func(i, j int) { shuffledEdges[i], shuffledEdges[j] = shuffledEdges[j], shuffledEdges[i] })

		got := AssignLevels(buildGraph(shuffledIDs, shuffledEdges))
		for id, lvl := range want {
			if got[id] != lvl {
				t.Fatalf("run %d: level[%s] = %d, want %d", i, id, got[id], lvl)
			}
		}
	}
}

func TestLevels_IgnoresUnknownEndpoints(t *testing.T) {
	levels, stuck := Levels(
		[]string{"a", "b"},
		[]dag.Edge{{From: "a", To: "b"}, {From: "ghost", To: "a"}, {From: "b", To: "nowhere"}},
	)

	if levels["a"] != 0 || levels["b"] != 1 {
		t.Errorf("levels = %v, want a:0 b:1", levels)
	}
	if _, ok := levels["ghost"]; ok {
		t.Error("unknown endpoint should not get a level")
	}
	if len(stuck) != 0 {
		t.Errorf("stuck = %v, want none", stuck)
	}
}

func TestStuckNodes(t *testing.T) {
	g := buildGraph([]string{"s", "X", "Y", "Z"}, [][2]string{{"s", "X"}, {"X", "Y"}, {"Y", "X"}, {"Y", "Z"}})

	if got := StuckNodes(g); !slices.Equal(got, []string{"X", "Y", "Z"}) {
		t.Errorf("StuckNodes() = %v, want [X Y Z]", got)
	}
}

func TestApplyLevels(t *testing.T) {
	g := buildGraph([]string{"a", "b"}, [][2]string{{"a", "b"}})
	ApplyLevels(g, AssignLevels(g))

	if n, _ := g.Node("b"); n.Level != 1 {
		t.Errorf("b.Level = %d, want 1", n.Level)
	}
}
