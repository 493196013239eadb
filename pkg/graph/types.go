package graph

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/questgraph/pkg/dag"
)

// Graph is the node-link serialization of a quest graph.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a serialized quest node.
type Node struct {
	ID        string         `json:"id" bson:"id"`
	Name      string         `json:"name,omitempty" bson:"name,omitempty"`
	Trader    string         `json:"trader,omitempty" bson:"trader,omitempty"`
	Milestone bool           `json:"milestone,omitempty" bson:"milestone,omitempty"`
	Level     int            `json:"level" bson:"level"`
	Meta      map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Edge is a serialized dependency.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Kind string `json:"kind,omitempty" bson:"kind,omitempty"`
}

// FromDAG converts a DAG to its serialization format.
// Nodes are sorted by ID and edges by (from, to) for deterministic output.
func FromDAG(g *dag.DAG) Graph {
	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b *dag.Node) int { return strings.Compare(a.ID, b.ID) })

	edges := g.Edges()
	slices.SortFunc(edges, func(a, b dag.Edge) int {
		return cmp.Or(strings.Compare(a.From, b.From), strings.Compare(a.To, b.To))
	})

	out := Graph{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = Node{
			ID:        n.ID,
			Name:      n.Name,
			Trader:    n.Trader,
			Milestone: n.MilestoneRequired,
			Level:     n.Level,
			Meta:      cleanMeta(n.Meta),
		}
	}
	for i, e := range edges {
		out.Edges[i] = Edge{From: e.From, To: e.To, Kind: string(e.Kind)}
	}
	return out
}

// ToDAG converts a Graph to a DAG.
// Returns an error if a node or edge is rejected by the DAG.
func ToDAG(gj Graph) (*dag.DAG, error) {
	d := dag.New()

	for _, nj := range gj.Nodes {
		n := dag.Node{
			ID:                nj.ID,
			Name:              nj.Name,
			Trader:            nj.Trader,
			MilestoneRequired: nj.Milestone,
			Level:             nj.Level,
			Meta:              maps.Clone(nj.Meta),
		}
		if err := d.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nj.ID, err)
		}
	}

	for _, ej := range gj.Edges {
		e := dag.Edge{From: ej.From, To: ej.To, Kind: dag.EdgeKind(ej.Kind)}
		if err := d.AddEdge(e); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", ej.From, ej.To, err)
		}
	}

	return d, nil
}

// cleanMeta returns nil for empty metadata so it is omitted from output.
func cleanMeta(m dag.Metadata) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}
