package transform_test

import (
	"fmt"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/dag/transform"
)

func ExampleAssignLevels() {
	// Diamond: A unlocks B and C, both unlock D.
	g := dag.New()
	for _, id := range []string{"A", "B", "C", "D"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "A", To: "B"})
	_ = g.AddEdge(dag.Edge{From: "A", To: "C"})
	_ = g.AddEdge(dag.Edge{From: "B", To: "D"})
	_ = g.AddEdge(dag.Edge{From: "C", To: "D"})

	levels := transform.AssignLevels(g)
	fmt.Println(levels["A"], levels["B"], levels["C"], levels["D"])
	// Output:
	// 0 1 1 2
}

func ExampleCycleEdges() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "X"})
	_ = g.AddNode(dag.Node{ID: "Y"})
	_ = g.AddEdge(dag.Edge{From: "X", To: "Y", Kind: dag.EdgeRequires})
	_ = g.AddEdge(dag.Edge{From: "Y", To: "X", Kind: dag.EdgeRequires})

	for _, e := range transform.CycleEdges(g) {
		fmt.Printf("%s -> %s (%s)\n", e.From, e.To, e.Kind)
	}
	fmt.Println("stuck:", transform.StuckNodes(g))
	// Output:
	// Y -> X (requires)
	// stuck: [X Y]
}
