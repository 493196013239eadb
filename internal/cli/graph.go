package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/dag/transform"
	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/pipeline"
)

// graphCommand exports the built dependency graph, with levels assigned, as
// node-link JSON.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		kappa  bool
	)

	cmd := &cobra.Command{
		Use:   "graph [quests.json]",
		Short: "Export the quest dependency graph as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				QuestsPath: c.questsFile(args),
				KappaOnly:  kappa,
				Logger:     c.Logger,
			}
			return c.runGraph(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&kappa, "kappa", false, "only quests required for Kappa")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options, output string) error {
	runner := c.plainRunner()
	res, err := runner.Prepare(ctx, opts)
	if err != nil {
		return err
	}
	transform.ApplyLevels(res.Graph, transform.AssignLevels(res.Graph))

	if output == "" {
		return graph.WriteGraph(res.Graph, out)
	}
	if err := graph.WriteGraphFile(res.Graph, output); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	printSuccess("Exported %d quests, %d edges", res.Stats.NodeCount, res.Stats.EdgeCount)
	printFile(output)
	return nil
}
