package dag

import "testing"

func crossGraph(edges [][2]string) *DAG {
	g := New()
	seen := map[string]bool{}
	for _, e := range edges {
		for _, id := range e {
			if !seen[id] {
				seen[id] = true
				_ = g.AddNode(Node{ID: id})
			}
		}
	}
	for _, e := range edges {
		_ = g.AddEdge(Edge{From: e[0], To: e[1], Kind: EdgeRequires})
	}
	return g
}

func TestCountLayerCrossings(t *testing.T) {
	tests := []struct {
		name        string
		edges       [][2]string
		left, right []string
		want        int
	}{
		{"parallel", [][2]string{{"a", "x"}, {"b", "y"}}, []string{"a", "b"}, []string{"x", "y"}, 0},
		{"crossed", [][2]string{{"a", "y"}, {"b", "x"}}, []string{"a", "b"}, []string{"x", "y"}, 1},
		{"shared target", [][2]string{{"a", "x"}, {"b", "x"}}, []string{"a", "b"}, []string{"x"}, 0},
		{"fan", [][2]string{{"a", "z"}, {"b", "x"}, {"c", "y"}}, []string{"a", "b", "c"}, []string{"x", "y", "z"}, 2},
		{"full reverse", [][2]string{{"a", "z"}, {"b", "y"}, {"c", "x"}}, []string{"a", "b", "c"}, []string{"x", "y", "z"}, 3},
		{"empty column", [][2]string{{"a", "x"}}, []string{"a"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := crossGraph(tt.edges)
			if got := CountLayerCrossings(g, tt.left, tt.right); got != tt.want {
				t.Errorf("CountLayerCrossings = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountCrossings(t *testing.T) {
	g := crossGraph([][2]string{
		{"a", "y"}, {"b", "x"}, // one crossing between columns 0 and 1
		{"x", "q"}, {"y", "p"}, // one crossing between columns 1 and 2
		{"a", "p"},             // spans two columns, ignored
	})
	orders := map[int][]string{
		0: {"a", "b"},
		1: {"x", "y"},
		2: {"p", "q"},
	}
	if got := CountCrossings(g, orders); got != 2 {
		t.Errorf("CountCrossings = %d, want 2", got)
	}

	delete(orders, 1)
	if got := CountCrossings(g, orders); got != 0 {
		t.Errorf("CountCrossings without middle column = %d, want 0", got)
	}
}

func TestPosMap(t *testing.T) {
	m := PosMap([]string{"a", "b", "c"})
	if m["a"] != 0 || m["c"] != 2 || len(m) != 3 {
		t.Errorf("PosMap = %v", m)
	}
}
