package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/questgraph/pkg/layout"
)

// MarshalLayout serializes a layout to pretty-printed JSON bytes.
func MarshalLayout(r layout.Result) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalLayout deserializes and checks a layout.
//
// A non-empty layout must have at least one column, every edge must carry a
// four-point path, and every edge endpoint must be a placed node.
func UnmarshalLayout(data []byte) (layout.Result, error) {
	var r layout.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return layout.Result{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if r.Empty {
		return r, nil
	}
	if len(r.Columns) == 0 {
		return layout.Result{}, fmt.Errorf("layout must contain columns")
	}

	placed := make(map[string]bool, r.NodeCount())
	for _, n := range r.Nodes() {
		placed[n.ID] = true
	}
	for _, e := range r.Edges {
		if len(e.Path) != 4 {
			return layout.Result{}, fmt.Errorf("edge %s->%s: path has %d points, want 4", e.From, e.To, len(e.Path))
		}
		if !placed[e.From] || !placed[e.To] {
			return layout.Result{}, fmt.Errorf("edge %s->%s: endpoint not in layout", e.From, e.To)
		}
	}
	if r.PrereqCounts == nil {
		r.PrereqCounts = map[string]int{}
	}
	return r, nil
}

// WriteLayoutFile writes a layout to a JSON file.
func WriteLayoutFile(r layout.Result, path string) error {
	data, err := MarshalLayout(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a layout from a JSON file.
func ReadLayoutFile(path string) (layout.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
