package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New()

	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty id: got %v, want %v", err, ErrInvalidNodeID)
	}
	if err := g.AddNode(Node{ID: "a", Name: "A"}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate: got %v, want %v", err, ErrDuplicateNodeID)
	}

	n, ok := g.Node("a")
	if !ok {
		t.Fatal("node a not found")
	}
	if n.Trader != UnknownTrader {
		t.Errorf("Trader = %q, want %q", n.Trader, UnknownTrader)
	}
	if n.Meta == nil {
		t.Error("Meta should be initialized")
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"valid", Edge{From: "a", To: "b", Kind: EdgeRequires}, nil},
		{"unknown source", Edge{From: "x", To: "b"}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
		{"self loop", Edge{From: "a", To: "a"}, ErrSelfLoop},
		{"duplicate other kind", Edge{From: "a", To: "b", Kind: EdgeUnlocks}, ErrDuplicateEdge},
		{"reverse direction", Edge{From: "b", To: "a"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge(%v) = %v, want %v", tt.edge, err, tt.want)
			}
		})
	}

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}
	if e := g.Edges()[0]; e.Kind != EdgeRequires {
		t.Errorf("first edge kind = %q, want %q", e.Kind, EdgeRequires)
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"z", "a", "m"} {
		_ = g.AddNode(Node{ID: id})
	}
	if got := NodeIDs(g.Nodes()); !slices.Equal(got, []string{"z", "a", "m"}) {
		t.Errorf("Nodes() order = %v", got)
	}
}

func TestLevels(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddNode(Node{ID: "c"})
	g.SetLevels(map[string]int{"a": 0, "b": 2, "c": 2, "ghost": 5})

	if got := g.Levels(); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("Levels() = %v, want [0 2]", got)
	}
	if got := NodeIDs(g.NodesInLevel(2)); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("NodesInLevel(2) = %v", got)
	}
}

func TestSources(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddNode(Node{ID: "c"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})

	if got := NodeIDs(g.Sources()); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Sources() = %v, want [a c]", got)
	}
}

func TestValidate(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "x"})
	_ = g.AddNode(Node{ID: "y"})
	_ = g.AddEdge(Edge{From: "x", To: "y"})
	if err := g.Validate(); err != nil {
		t.Fatalf("acyclic graph: %v", err)
	}

	_ = g.AddEdge(Edge{From: "y", To: "x"})
	if err := g.Validate(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("cyclic graph: got %v, want %v", err, ErrGraphHasCycle)
	}
}
