package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [DAG.AddEdge] when From and To are equal.
	ErrSelfLoop = errors.New("self-loop edge")

	// ErrDuplicateEdge is returned by [DAG.AddEdge] when an edge between the
	// same ordered pair already exists, regardless of its kind.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
// Metadata maps are never nil once a node is in a graph.
type Metadata map[string]any

// EdgeKind records which reference field produced an edge. It is a render
// hint only; two edges with the same endpoints are never both kept.
type EdgeKind string

const (
	// EdgeRequires points from a prerequisite to the quest that requires it.
	EdgeRequires EdgeKind = "requires"
	// EdgeUnlocks points from a quest to the quest it unlocks.
	EdgeUnlocks EdgeKind = "unlocks"
)

// UnknownTrader is the grouping key used for quests without a trader.
const UnknownTrader = "Unknown"

// Node is one quest in the dependency graph.
//
// The zero value is not usable - ID must be set before adding to a DAG.
type Node struct {
	ID                string   // Unique identifier
	Name              string   // Display name
	Trader            string   // Grouping key (UnknownTrader when absent)
	MilestoneRequired bool     // Required for the milestone (gates a visual marker)
	Level             int      // Topological depth, set by SetLevels
	Meta              Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Edge is a directed dependency between two quests.
type Edge struct {
	From string   // Source node ID
	To   string   // Target node ID
	Kind EdgeKind // Reference field that produced the edge
}

// Key returns the kind-independent identity of the edge.
func (e Edge) Key() string { return EdgeKey(e.From, e.To) }

// EdgeKey returns the kind-independent identity of the edge from→to.
func EdgeKey(from, to string) string { return from + "->" + to }

// DAG is a directed graph of quests. Despite the name it tolerates cycles:
// quest data is hand-maintained and the layout must never fail on it.
// Self-loops and duplicate edges are rejected at insertion.
//
// Nodes keep their insertion order, so iteration is deterministic.
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	edgeKeys map[string]struct{}
	outgoing map[string][]string // nodeID -> target IDs
	incoming map[string][]string // nodeID -> source IDs
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		edgeKeys: make(map[string]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists. Trader defaults to
// UnknownTrader and Meta to an empty map.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Trader == "" {
		n.Trader = UnknownTrader
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode for dangling
// endpoints, ErrSelfLoop when From == To, and ErrDuplicateEdge when the
// pair From→To is already present under any kind.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.From == e.To {
		return ErrSelfLoop
	}
	key := e.Key()
	if _, dup := d.edgeKeys[key]; dup {
		return ErrDuplicateEdge
	}
	d.edgeKeys[key] = struct{}{}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// HasEdge reports whether an edge from→to exists, regardless of kind.
func (d *DAG) HasEdge(from, to string) bool {
	_, ok := d.edgeKeys[EdgeKey(from, to)]
	return ok
}

// SetLevels updates the level of every node present in levels.
// Nodes missing from the map keep their current level.
func (d *DAG) SetLevels(levels map[string]int) {
	for id, lvl := range levels {
		if n, ok := d.nodes[id]; ok {
			n.Level = lvl
		}
	}
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs, so modifications affect the graph.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of nodes this node has edges to.
// The returned slice should not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node
// (its prerequisites). The returned slice should not be modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Node returns the node with the given ID and true, or nil and false if not found.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// NodesInLevel returns the nodes assigned to the given level, in insertion order.
func (d *DAG) NodesInLevel(level int) []*Node {
	var result []*Node
	for _, id := range d.order {
		if n := d.nodes[id]; n.Level == level {
			result = append(result, n)
		}
	}
	return result
}

// Levels returns all distinct level values in ascending order.
func (d *DAG) Levels() []int {
	seen := make(map[int]struct{})
	for _, n := range d.nodes {
		seen[n.Level] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// Validate reports whether the graph is acyclic.
// It returns ErrGraphHasCycle if any directed cycle exists. Quest graphs may
// legitimately fail this check; the layout pipeline never calls it.
//
// Cycle detection runs in O(N+E) time using depth-first search.
func (d *DAG) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
			}
			if hasCycle {
				return
			}
		}
		color[id] = black
	}

	for _, id := range d.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
