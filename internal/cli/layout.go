package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/pipeline"
	"github.com/matzehuels/questgraph/pkg/progress"
)

// layoutFlags are the flags shared by layout and render.
type layoutFlags struct {
	kappa         bool
	hideCompleted bool
	noCache       bool
	refresh       bool
	noProgress    bool

	nodeWidth, nodeHeight float64
	hGap, vGap, padding   float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVar(&f.kappa, "kappa", false, "only quests required for Kappa")
	fl.BoolVar(&f.hideCompleted, "hide-completed", false, "leave completed quests out of the layout")
	fl.BoolVar(&f.noProgress, "no-progress", false, "ignore saved progress (every quest is not completed)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
	fl.Float64Var(&f.nodeWidth, "node-width", 0, "quest box width (default from config)")
	fl.Float64Var(&f.nodeHeight, "node-height", 0, "quest box height (default from config)")
	fl.Float64Var(&f.hGap, "h-gap", 0, "horizontal gap between columns (default from config)")
	fl.Float64Var(&f.vGap, "v-gap", 0, "vertical gap between quests (default from config)")
	fl.Float64Var(&f.padding, "padding", 0, "canvas padding (default from config)")
}

// options builds pipeline options from the config, the flags and the saved
// progress.
func (c *CLI) options(ctx context.Context, args []string, f layoutFlags) (pipeline.Options, error) {
	cfg := c.cfg.Layout
	if f.nodeWidth != 0 {
		cfg.NodeWidth = f.nodeWidth
	}
	if f.nodeHeight != 0 {
		cfg.NodeHeight = f.nodeHeight
	}
	if f.hGap != 0 {
		cfg.HGap = f.hGap
	}
	if f.vGap != 0 {
		cfg.VGap = f.vGap
	}
	if f.padding != 0 {
		cfg.Padding = f.padding
	}

	completed := progress.NewSet()
	if !f.noProgress {
		set, err := c.loadCompleted(ctx)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("load progress: %w", err)
		}
		completed = set
	}

	return pipeline.Options{
		QuestsPath:    c.questsFile(args),
		KappaOnly:     f.kappa,
		HideCompleted: f.hideCompleted,
		Completed:     completed,
		Config:        cfg,
		Refresh:       f.refresh,
		Logger:        c.Logger,
	}, nil
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [quests.json]",
		Short: "Compute the quest layout as JSON",
		Long: `Compute the column layout of the quest graph and write it as JSON.

Quests are placed in columns by dependency depth: quests without
prerequisites go in the first column and every other quest one column to the
right of its deepest prerequisite. Edges are routed as cubic curves between
the quest boxes.

Results are cached and reused until the quest file, the saved progress or the
geometry changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args, flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, args []string, flags layoutFlags, output string) error {
	opts, err := c.options(ctx, args, flags)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	sp := newSpinner(ctx, "Laying out quests...")
	sp.Start()

	tm := newTimer(c.Logger)
	res, err := runner.Prepare(ctx, opts)
	if err != nil {
		sp.StopWithError("Loading quests failed")
		return err
	}
	l, hit, err := runner.LayoutWithCacheInfo(ctx, res.Graph, res.QuestsHash, opts)
	if err != nil {
		sp.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	sp.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	tm.done("Laid out quests", "columns", len(l.Columns))

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", opts.QuestsPath) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, hit)
	printNewline()
	printNextStep("Render", appName+" render -f svg "+opts.QuestsPath)

	return nil
}

// basePath derives the output path stem. Without an explicit output it is
// the input without its extension; a known format extension on output is
// stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormats([]string{strings.TrimPrefix(ext, ".")}) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
