package layout

import "github.com/matzehuels/questgraph/pkg/dag"

// Completion answers membership queries against the set of completed quests.
type Completion interface {
	Has(id string) bool
}

// Compute builds the full layout of g: node placement, routed edges,
// prerequisite counts and per-node status. levels may be nil, in which case
// they are assigned as in [Build]. completed may be nil, in which
// case no quest counts as done.
//
// Compute fails only when cfg is invalid.
func Compute(g *dag.DAG, levels map[string]int, completed Completion, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	r := Build(g, levels, cfg)
	if r.Empty {
		return r, nil
	}

	r.Edges = Route(g.Edges(), r)
	r.PrereqCounts = PrereqCounts(g)
	Tag(g, &r, completed)
	return r, nil
}

// Tag sets Completed and Status on every node of r.
func Tag(g *dag.DAG, r *Result, completed Completion) {
	done := func(id string) bool { return completed != nil && completed.Has(id) }
	for ci := range r.Columns {
		nodes := r.Columns[ci].Nodes
		for ni := range nodes {
			n := &nodes[ni]
			n.Completed = done(n.ID)
			n.Status = status(g, n.ID, n.Completed, done)
		}
	}
}

func status(g *dag.DAG, id string, completed bool, done func(string) bool) Status {
	if completed {
		return StatusCompleted
	}
	for _, p := range g.Parents(id) {
		if !done(p) {
			return StatusLocked
		}
	}
	return StatusAvailable
}

// StatusOf returns the status of quest id in g without computing a layout.
func StatusOf(g *dag.DAG, id string, completed Completion) Status {
	done := func(id string) bool { return completed != nil && completed.Has(id) }
	return status(g, id, done(id), done)
}
