package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/dag/transform"
	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/pipeline"
	"github.com/matzehuels/questgraph/pkg/quest"
)

// checkCommand reports data problems in the quest file: references that
// were dropped while building the graph and prerequisite cycles.
func (c *CLI) checkCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [quests.json|graph.json]",
		Short: "Report dangling references and cycles in the quest data",
		Long: `Build the quest graph and report what had to be dropped or folded:

  - records without an id
  - ids defined more than once (the last definition wins)
  - references to quests that do not exist
  - quests referencing themselves
  - prerequisite cycles (their members are placed in the first column)

It also reports the number of columns and the edge crossings of the layout.
A graph file written by the graph command is checked for cycles only.

With --strict the command fails when anything is reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issues, err := c.runCheck(cmd.Context(), c.questsFile(args))
			if err != nil {
				return err
			}
			if strict && issues > 0 {
				return errors.New(errors.ErrCodeInvalidInput, "%d problems found", issues)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error if any problem is found")
	return cmd
}

// checkResult is what runCheck found.
type checkResult struct {
	report    quest.BuildReport
	cycles    int
	stuck     []string
	columns   int
	widest    int // level of the tallest column
	widestLen int
	crossings int
}

func (r checkResult) issues() int {
	n := r.report.SkippedRecords + len(r.report.OverwrittenIDs) + len(r.report.Dangling) + len(r.report.SelfRefs)
	return n + r.cycles
}

func (c *CLI) inspect(ctx context.Context, path string) (checkResult, error) {
	saved, err := readSaved(path)
	if err != nil {
		return checkResult{}, err
	}

	runner := c.plainRunner()
	var (
		g      *dag.DAG
		report quest.BuildReport
	)
	if saved.kind == graph.KindGraph {
		g = saved.graph
		report = quest.BuildReport{Nodes: g.NodeCount(), Edges: g.EdgeCount()}
	} else {
		res, err := runner.Prepare(ctx, pipeline.Options{QuestsPath: path, Logger: c.Logger})
		if err != nil {
			return checkResult{}, err
		}
		g, report = res.Graph, res.Report
	}

	r := checkResult{report: report}
	if g.Validate() != nil {
		r.cycles = len(transform.CycleEdges(g))
		r.stuck = transform.StuckNodes(g)
	}

	transform.ApplyLevels(g, transform.AssignLevels(g))
	for _, lvl := range g.Levels() {
		r.columns++
		if n := len(g.NodesInLevel(lvl)); n > r.widestLen {
			r.widest, r.widestLen = lvl, n
		}
	}

	l, err := runner.ComputeLayout(ctx, g, pipeline.Options{Logger: c.Logger})
	if err != nil {
		return checkResult{}, err
	}
	r.crossings = l.Crossings(g)
	return r, nil
}

func (c *CLI) runCheck(ctx context.Context, path string) (int, error) {
	r, err := c.inspect(ctx, path)
	if err != nil {
		return 0, err
	}

	printKeyValue("Quests", fmt.Sprint(r.report.Nodes))
	printKeyValue("Edges", fmt.Sprint(r.report.Edges))
	if r.report.DuplicateEdges > 0 {
		printDetail("%d duplicate references merged", r.report.DuplicateEdges)
	}
	if r.columns > 0 {
		printKeyValue("Columns", fmt.Sprintf("%d (widest: level %d, %d quests)", r.columns, r.widest, r.widestLen))
	}
	printKeyValue("Crossings", fmt.Sprint(r.crossings))
	printNewline()

	if r.issues() == 0 {
		printSuccess("No problems found")
		return 0, nil
	}

	if n := r.report.SkippedRecords; n > 0 {
		printWarning("%d records without an id were skipped", n)
	}
	for _, id := range r.report.OverwrittenIDs {
		printWarning("quest %s is defined more than once", id)
	}
	for _, ref := range r.report.Dangling {
		printWarning("%s.%s references unknown quest %s", ref.Quest, ref.Field, ref.Target)
	}
	for _, ref := range r.report.SelfRefs {
		printWarning("%s.%s references itself", ref.Quest, ref.Field)
	}
	if r.cycles > 0 {
		printWarning("%d edges close a prerequisite cycle", r.cycles)
		for _, id := range r.stuck {
			printDetail("in cycle: %s", id)
		}
	}
	return r.issues(), nil
}
