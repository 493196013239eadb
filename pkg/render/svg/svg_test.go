package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/layout"
)

func diamond(t *testing.T) layout.Result {
	t.Helper()
	g := dag.New()
	for _, id := range []string{"A", "B", "C", "D"} {
		_ = g.AddNode(dag.Node{ID: id, Name: "Quest " + id, Trader: "Prapor", MilestoneRequired: id == "D"})
	}
	for _, e := range [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}} {
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1], Kind: dag.EdgeRequires})
	}
	res, err := layout.Compute(g, nil, nil, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return res
}

func TestRenderSVG_Elements(t *testing.T) {
	res := diamond(t)
	out := string(RenderSVG(res))

	if !strings.HasPrefix(out, "<?xml") {
		t.Error("RenderSVG() missing xml declaration")
	}
	if got := strings.Count(out, `class="quest"`); got != 4 {
		t.Errorf("quest groups = %d, want 4", got)
	}
	if got := strings.Count(out, `class="edge"`); got != 4 {
		t.Errorf("edge paths = %d, want 4", got)
	}
	if !strings.Contains(out, `id="quest-A"`) {
		t.Error("RenderSVG() missing node id")
	}
	if !strings.Contains(out, "M 260 118 C 320 118, 320 72, 380 72") {
		t.Error("RenderSVG() missing routed A->B curve")
	}
	if got := strings.Count(out, "★"); got != 1 {
		t.Errorf("milestone markers = %d, want 1", got)
	}
	if strings.Contains(out, EmptyMessage) {
		t.Error("non-empty layout rendered the empty message")
	}
}

func TestRenderSVG_Empty(t *testing.T) {
	out := string(RenderSVG(layout.Empty(layout.DefaultConfig())))

	if !strings.Contains(out, EmptyMessage) {
		t.Errorf("empty layout missing %q", EmptyMessage)
	}
	if !strings.Contains(out, `width="400"`) || !strings.Contains(out, `height="200"`) {
		t.Error("empty layout should use the empty canvas size")
	}
	if strings.Contains(out, `class="quest"`) {
		t.Error("empty layout rendered quest boxes")
	}
}

func TestRenderSVG_Status(t *testing.T) {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "a", Name: "A"})
	_ = g.AddNode(dag.Node{ID: "b", Name: "B"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b", Kind: dag.EdgeUnlocks})
	res, err := layout.Compute(g, nil, doneSet{"a": true}, layout.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	out := string(RenderSVG(res, WithTitle("Progress"), WithPrereqBadges()))

	for _, want := range []string{
		`data-status="completed"`,
		`data-status="available"`,
		"<title>Progress</title>",
		"url(#arrow-unlock)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
}

func TestRenderSVG_EscapesNames(t *testing.T) {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "q", Name: "Sales & <Stuff>"})
	res, _ := layout.Compute(g, nil, nil, layout.DefaultConfig())

	out := string(RenderSVG(res))
	if strings.Contains(out, "<Stuff>") {
		t.Error("quest name was not escaped")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer quest name", 8, "a longe…"},
		{"Провизия", 4, "Про…"},
		{"tiny", 1, "tiny"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

type doneSet map[string]bool

func (s doneSet) Has(id string) bool { return s[id] }
