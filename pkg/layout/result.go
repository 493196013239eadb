package layout

import "github.com/matzehuels/questgraph/pkg/dag"

// Status is the visual state of a quest.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusAvailable Status = "available" // every prerequisite is completed
	StatusLocked    Status = "locked"
)

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a placed quest.
type Node struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Trader    string  `json:"trader"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Milestone bool    `json:"milestone"`
	Completed bool    `json:"completed"`
	Status    Status  `json:"status,omitempty"`
}

// OutPort is the right-center of the node box, where edges leave.
func (n Node) OutPort() Point { return Point{X: n.X + n.Width, Y: n.Y + n.Height/2} }

// InPort is the left-center of the node box, where edges arrive.
func (n Node) InPort() Point { return Point{X: n.X, Y: n.Y + n.Height/2} }

// Column is one level of the layout.
type Column struct {
	Level int    `json:"level"`
	Nodes []Node `json:"nodes"`
}

// Edge is a routed dependency. Path holds the start point, two cubic
// control points and the end point.
type Edge struct {
	From string       `json:"from"`
	To   string       `json:"to"`
	Kind dag.EdgeKind `json:"kind"`
	Path []Point      `json:"path"`
}

// Canvas is the size of the drawing area.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result is a complete layout, ready for a renderer.
type Result struct {
	Empty        bool           `json:"empty"`
	Columns      []Column       `json:"columns"`
	Edges        []Edge         `json:"edges"`
	Canvas       Canvas         `json:"canvas"`
	PrereqCounts map[string]int `json:"prereqCounts"`
}

// Nodes returns all placed nodes, column by column.
func (r Result) Nodes() []Node {
	var out []Node
	for _, c := range r.Columns {
		out = append(out, c.Nodes...)
	}
	return out
}

// Node returns the placed node with the given id.
func (r Result) Node(id string) (Node, bool) {
	for _, c := range r.Columns {
		for _, n := range c.Nodes {
			if n.ID == id {
				return n, true
			}
		}
	}
	return Node{}, false
}

// NodeCount returns the number of placed nodes.
func (r Result) NodeCount() int {
	var n int
	for _, c := range r.Columns {
		n += len(c.Nodes)
	}
	return n
}

func (r Result) positions() map[string]Node {
	pos := make(map[string]Node, r.NodeCount())
	for _, c := range r.Columns {
		for _, n := range c.Nodes {
			pos[n.ID] = n
		}
	}
	return pos
}

// Crossings returns the number of edge crossings between adjacent columns.
// Edges that skip columns are not counted.
func (r Result) Crossings(g *dag.DAG) int {
	orders := make(map[int][]string, len(r.Columns))
	for _, c := range r.Columns {
		ids := make([]string, len(c.Nodes))
		for i, n := range c.Nodes {
			ids[i] = n.ID
		}
		orders[c.Level] = ids
	}
	return dag.CountCrossings(g, orders)
}
