package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/layout"
)

func computed(t *testing.T, edges [][2]string, ids ...string) layout.Result {
	t.Helper()
	g := dag.New()
	for _, id := range ids {
		_ = g.AddNode(dag.Node{ID: id, Name: "Quest " + id, Trader: "Therapist"})
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1], Kind: dag.EdgeRequires})
	}
	r, err := layout.Compute(g, nil, nil, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return r
}

func TestToDOT_Basic(t *testing.T) {
	r := computed(t, [][2]string{{"a", "b"}}, "a", "b")

	dot := ToDOT(r, Options{})

	for _, want := range []string{"digraph G", "rankdir=LR", `"a" [`, `"b" [`, `"a" -> "b";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
}

func TestToDOT_OneRankPerColumn(t *testing.T) {
	r := computed(t, [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}}, "A", "B", "C", "D")

	dot := ToDOT(r, Options{})

	if got := strings.Count(dot, "rank=same"); got != 3 {
		t.Errorf("rank groups = %d, want 3", got)
	}
	if got := strings.Count(dot, " -> "); got != 4 {
		t.Errorf("edges = %d, want 4", got)
	}
	if strings.Index(dot, "level_0") > strings.Index(dot, "level_1") {
		t.Error("columns out of order")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	r := computed(t, nil, "solo")

	dot := ToDOT(r, Options{Detailed: true})

	if !strings.Contains(dot, `Therapist · level 0`) {
		t.Errorf("ToDOT() detailed output missing trader/level, got:\n%s", dot)
	}
}

func TestToDOT_Unlocks(t *testing.T) {
	r := layout.Result{
		Columns: []layout.Column{
			{Level: 0, Nodes: []layout.Node{{ID: "a"}}},
			{Level: 1, Nodes: []layout.Node{{ID: "b", Milestone: true}}},
		},
		Edges: []layout.Edge{{From: "a", To: "b", Kind: dag.EdgeUnlocks}},
	}

	dot := ToDOT(r, Options{})

	if !strings.Contains(dot, "style=dashed") {
		t.Error("unlock edge should be dashed")
	}
	if !strings.Contains(dot, "penwidth=2") {
		t.Error("milestone node should be emphasized")
	}
	if !strings.Contains(dot, `label="a"`) {
		t.Error("nameless node should fall back to its id")
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(layout.Empty(layout.DefaultConfig()), Options{})

	if !strings.Contains(dot, "No quests to display") {
		t.Error("empty layout missing placeholder")
	}
	if strings.Contains(dot, "->") {
		t.Error("empty layout should have no edges")
	}
}

func TestRenderSVG(t *testing.T) {
	r := computed(t, [][2]string{{"a", "b"}}, "a", "b")

	svg, err := RenderSVG(context.Background(), ToDOT(r, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), `viewBox="0 0 `) {
		t.Error("RenderSVG() output not normalized")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %q, want %q", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Error("normalizeViewBox() should leave svgs without viewBox untouched")
	}
}
