package quest

import (
	"github.com/matzehuels/questgraph/pkg/dag"
)

// Ref is a dropped reference, reported as the quest that held it and the id
// it pointed at.
type Ref struct {
	Quest  string `json:"quest"`
	Target string `json:"target"`
	Field  string `json:"field"`
}

// BuildReport describes what [BuildGraphWithReport] dropped while building.
type BuildReport struct {
	Nodes          int      `json:"nodes"`
	Edges          int      `json:"edges"`
	SkippedRecords int      `json:"skipped_records"` // records without an id
	OverwrittenIDs []string `json:"overwritten_ids,omitempty"`
	Dangling       []Ref    `json:"dangling,omitempty"`
	SelfRefs       []Ref    `json:"self_refs,omitempty"`
	DuplicateEdges int      `json:"duplicate_edges"`
}

// Clean reports whether nothing was dropped.
func (r BuildReport) Clean() bool {
	return r.SkippedRecords == 0 && len(r.OverwrittenIDs) == 0 &&
		len(r.Dangling) == 0 && len(r.SelfRefs) == 0 && r.DuplicateEdges == 0
}

// BuildGraph normalizes records into a quest graph.
func BuildGraph(records []Record) *dag.DAG {
	g, _ := BuildGraphWithReport(records)
	return g
}

// BuildGraphWithReport normalizes records into a quest graph.
//
// Nodes are added in order of first appearance of their id, but a later
// record with the same id replaces the earlier one's fields. References are
// then expanded record by record, requires before unlocks:
//   - X in R.requires yields X→R (kind requires)
//   - X in R.unlocks yields R→X (kind unlocks)
//
// Unknown ids and self references are skipped. Only the first edge for an
// ordered pair is kept; a later edge for the same pair is counted as a
// duplicate whatever its kind.
func BuildGraphWithReport(records []Record) (*dag.DAG, BuildReport) {
	var report BuildReport

	index := make(map[string]Record, len(records))
	var order []string
	for _, r := range records {
		if r.ID == "" {
			report.SkippedRecords++
			continue
		}
		if _, seen := index[r.ID]; seen {
			report.OverwrittenIDs = append(report.OverwrittenIDs, r.ID)
		} else {
			order = append(order, r.ID)
		}
		index[r.ID] = r
	}

	g := dag.New()
	for _, id := range order {
		r := index[id]
		_ = g.AddNode(dag.Node{
			ID:                r.ID,
			Name:              r.DisplayName(),
			Trader:            r.TraderName(),
			MilestoneRequired: r.KappaRequired,
		})
	}

	link := func(owner, target, field string, e dag.Edge) {
		ref := Ref{Quest: owner, Target: target, Field: field}
		if _, ok := index[target]; !ok {
			report.Dangling = append(report.Dangling, ref)
			return
		}
		if target == owner {
			report.SelfRefs = append(report.SelfRefs, ref)
			return
		}
		if g.HasEdge(e.From, e.To) {
			report.DuplicateEdges++
			return
		}
		_ = g.AddEdge(e)
	}

	for _, r := range records {
		if r.ID == "" {
			continue
		}
		for _, x := range r.Requires {
			link(r.ID, x, "requires", dag.Edge{From: x, To: r.ID, Kind: dag.EdgeRequires})
		}
		for _, x := range r.Unlocks {
			link(r.ID, x, "unlocks", dag.Edge{From: r.ID, To: x, Kind: dag.EdgeUnlocks})
		}
	}

	report.Nodes = g.NodeCount()
	report.Edges = g.EdgeCount()
	return g, report
}
