package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/questgraph/pkg/progress"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"svg", "svg"},
		{"svg,dot", "svg,dot"},
		{" SVG , png ,svg,, ", "svg,png"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := strings.Join(parseFormats(tt.in), ","); got != tt.want {
			t.Errorf("parseFormats(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/quests.json", "data/quests"},
		{"out/graph.svg", "data/quests.json", "out/graph"},
		{"out/graph.png", "", "out/graph"},
		{"out/graph", "", "out/graph"},
		{"out/graph.v2", "", "out/graph.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct, filled int
	}{
		{0, 0}, {50, 10}, {100, 20}, {150, 20}, {-5, 0},
	}
	for _, tt := range tests {
		bar := progressBar(tt.pct, 20)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("progressBar(%d) filled = %d, want %d", tt.pct, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 20 {
			t.Errorf("progressBar(%d) width = %d", tt.pct, got)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	prev := out
	out = &buf
	defer func() { out = prev }()

	printSummary(progress.Summarize([]string{"a", "b", "c"}, progress.NewSet("a")))
	if !strings.Contains(buf.String(), "1 / 3 completed (33%)") {
		t.Errorf("summary = %q", buf.String())
	}
}
