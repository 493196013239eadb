package graph

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/layout"
)

func sampleDAG() *dag.DAG {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "b", Name: "Checking", Trader: "Prapor", Level: 1})
	_ = g.AddNode(dag.Node{ID: "a", Name: "Debut", Trader: "Prapor", MilestoneRequired: true, Meta: dag.Metadata{"map": "Customs"}})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b", Kind: dag.EdgeUnlocks})
	return g
}

func TestFromDAG(t *testing.T) {
	out := FromDAG(sampleDAG())

	if len(out.Nodes) != 2 || out.Nodes[0].ID != "a" {
		t.Fatalf("nodes not sorted by id: %+v", out.Nodes)
	}
	if !out.Nodes[0].Milestone || out.Nodes[0].Meta["map"] != "Customs" {
		t.Errorf("node a = %+v", out.Nodes[0])
	}
	if out.Nodes[1].Meta != nil {
		t.Errorf("empty meta should be omitted, got %v", out.Nodes[1].Meta)
	}
	if out.Edges[0] != (Edge{From: "a", To: "b", Kind: "unlocks"}) {
		t.Errorf("edge = %+v", out.Edges[0])
	}
}

func TestRoundTrip(t *testing.T) {
	data, err := MarshalGraph(sampleDAG())
	if err != nil {
		t.Fatal(err)
	}
	g, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}

	n, ok := g.Node("b")
	if !ok || n.Level != 1 || n.Trader != "Prapor" {
		t.Errorf("node b = %+v", n)
	}
	if e := g.Edges()[0]; e.Kind != dag.EdgeUnlocks {
		t.Errorf("edge kind = %q", e.Kind)
	}
}

func TestToDAG_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   Graph
		want error
	}{
		{"duplicate node", Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}}, dag.ErrDuplicateNodeID},
		{"dangling edge", Graph{Nodes: []Node{{ID: "a"}}, Edges: []Edge{{From: "a", To: "z"}}}, dag.ErrUnknownTargetNode},
		{"self loop", Graph{Nodes: []Node{{ID: "a"}}, Edges: []Edge{{From: "a", To: "a"}}}, dag.ErrSelfLoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToDAG(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("ToDAG() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(sampleDAG(), path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := ReadGraph(f)
	if err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("read %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	g := sampleDAG()
	r, err := layout.Compute(g, map[string]int{"a": 0, "b": 1}, nil, layout.Config{})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(r, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if got.NodeCount() != 2 || len(got.Edges) != 1 || got.Canvas != r.Canvas {
		t.Errorf("layout changed in round trip: %+v", got)
	}
}

func TestUnmarshalLayout_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":   `{`,
		"no columns": `{"empty":false,"columns":[]}`,
		"short path": `{"columns":[{"level":0,"nodes":[{"id":"a"},{"id":"b"}]}],"edges":[{"from":"a","to":"b","path":[{"x":0,"y":0}]}]}`,
		"unplaced":   `{"columns":[{"level":0,"nodes":[{"id":"a"}]}],"edges":[{"from":"a","to":"z","path":[{},{},{},{}]}]}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(in)); err == nil {
				t.Error("expected error")
			}
		})
	}

	empty, err := UnmarshalLayout([]byte(`{"empty":true,"canvas":{"width":400,"height":200}}`))
	if err != nil || !empty.Empty {
		t.Errorf("empty layout = %+v, %v", empty, err)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{`[{"id":"a"}]`, KindQuests},
		{`  {"nodes":[],"edges":[]}`, KindGraph},
		{`{"empty":false,"columns":[]}`, KindLayout},
		{`{"empty":true,"canvas":{}}`, KindLayout},
		{`{"foo":1}`, KindUnknown},
		{`42`, KindUnknown},
		{``, KindUnknown},
	}
	for _, tt := range tests {
		if got := Detect([]byte(tt.in)); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
