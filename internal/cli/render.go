package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/pipeline"
	"github.com/matzehuels/questgraph/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		formats  string
		detailed bool
		flags    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render [quests.json]",
		Short: "Render the quest graph to SVG, DOT, JSON or PNG",
		Long: fmt.Sprintf(`Render the quest graph.

Formats: %s. Several formats may be given separated by commas; each is
written to <output>.<format>. SVG is drawn directly from the layout; DOT and
PNG go through Graphviz with one rank per column.

The input may also be a layout file written by the layout command, which is
rendered as saved, or a graph file written by the graph command, which is
laid out with the current progress.`, strings.Join(render.FormatNames(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd.Context(), args, flags)
			if err != nil {
				return err
			}
			opts.Formats = parseFormats(formats)
			opts.Detailed = detailed
			return c.runRender(cmd.Context(), opts, flags.noCache, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path stem (default: input without extension)")
	cmd.Flags().StringVarP(&formats, "format", "f", "svg", "output formats, comma separated")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include trader and level in DOT/PNG labels")
	flags.register(cmd)

	return cmd
}

// parseFormats splits a comma-separated list, dropping blanks and
// duplicates while keeping order.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, noCache bool, output string) error {
	saved, err := readSaved(opts.QuestsPath)
	if err != nil {
		return err
	}
	switch saved.kind {
	case graph.KindLayout:
		return c.renderLayoutFile(ctx, saved.layout, opts, output)
	case graph.KindGraph:
		if err := opts.ValidateForLayout(); err != nil {
			return err
		}
		l, err := c.plainRunner().ComputeLayout(ctx, saved.graph, opts)
		if err != nil {
			return err
		}
		return c.renderLayoutFile(ctx, l, opts, output)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sp := newSpinner(ctx, "Rendering "+strings.Join(opts.Formats, ", ")+"...")
	sp.Start()

	tm := newTimer(c.Logger)
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		sp.StopWithError("Render failed")
		return err
	}
	sp.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	tm.done("Rendered quest graph", "formats", len(res.Artifacts))

	base := basePath(output, opts.QuestsPath)
	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := base + render.Format(format).Ext()
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)

	if !res.Report.Clean() {
		printNewline()
		printWarning("Some references were dropped while building the graph")
		printNextStep("Details", appName+" check "+opts.QuestsPath)
	}
	return nil
}

func (c *CLI) renderLayoutFile(ctx context.Context, l layout.Result, opts pipeline.Options, output string) error {
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	c.Logger.Debug("rendering saved layout", "path", opts.QuestsPath)

	artifacts, err := pipeline.Render(ctx, l, opts)
	if err != nil {
		return err
	}

	base := basePath(output, opts.QuestsPath)
	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := base + render.Format(format).Ext()
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(l.NodeCount(), len(l.Edges), true)
	return nil
}
