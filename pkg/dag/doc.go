// Package dag provides the directed graph of quests used by the layered
// quest layout.
//
// # Overview
//
// Quests reference each other through "requires" and "unlocks" fields. This
// package holds the normalized result: one [Node] per quest and one [Edge]
// per distinct ordered pair of quests. Edges always point from the earlier
// quest to the later one, so a prerequisite is a parent and an unlocked quest
// is a child.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DAG.AddNode] and edges with
// [DAG.AddEdge]:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "debut", Trader: "Prapor"})
//	g.AddNode(dag.Node{ID: "shooting-cans", Trader: "Prapor"})
//	g.AddEdge(dag.Edge{From: "debut", To: "shooting-cans", Kind: dag.EdgeUnlocks})
//
// Query the structure with [DAG.Children], [DAG.Parents], [DAG.NodesInLevel]
// and related methods.
//
// # Tolerance
//
// Quest data is hand-maintained. The graph therefore accepts cycles, and
// [DAG.Validate] is a diagnostic rather than a precondition. [DAG.AddEdge]
// rejects the structural problems that can be detected locally (dangling
// endpoints, self-loops, duplicate pairs) with sentinel errors so builders
// can drop them and keep going.
//
// # Levels
//
// [Node.Level] is the column a quest is drawn in. The [transform] subpackage
// computes levels with a longest-path traversal and writes them back with
// [DAG.SetLevels].
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. A graph is built once per
// layout pass and only read afterwards.
//
// [transform]: github.com/matzehuels/questgraph/pkg/dag/transform
package dag
