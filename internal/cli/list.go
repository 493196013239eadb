package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/progress"
	"github.com/matzehuels/questgraph/pkg/quest"
)

// listCommand prints quests grouped by trader with their status.
func (c *CLI) listCommand() *cobra.Command {
	var (
		kappa  bool
		all    bool
		trader string
	)

	cmd := &cobra.Command{
		Use:   "list [quests.json]",
		Short: "List quests by trader with their progress",
		Long: `List quests grouped by trader.

Each quest is shown as completed [x], available [ ] (every prerequisite is
completed) or locked [-]. A ★ marks quests required for Kappa. Completed
quests are hidden unless --all is given; the progress line always counts
them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := c.loadRecords(cmd.Context(), args)
			if err != nil {
				return err
			}
			completed, err := c.loadCompleted(cmd.Context())
			if err != nil {
				return fmt.Errorf("load progress: %w", err)
			}
			f := listFilter{kappa: kappa, trader: trader}
			sum := progress.Summarize(rowIDs(questRows(records, completed, f)), completed)
			f.hideCompleted = !all
			printQuestList(questRows(records, completed, f), sum)
			return nil
		},
	}

	cmd.Flags().BoolVar(&kappa, "kappa", false, "only quests required for Kappa")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed quests")
	cmd.Flags().StringVar(&trader, "trader", "", "only quests from this trader")

	return cmd
}

type listFilter struct {
	kappa         bool
	hideCompleted bool
	trader        string
}

// questRow is one line of a quest list.
type questRow struct {
	Record quest.Record
	Status layout.Status
}

// questRows computes the status of every record against the full graph and
// then applies f. Statuses use the unfiltered graph so a filtered-out
// prerequisite still locks its dependents.
func questRows(records []quest.Record, completed progress.Set, f listFilter) []questRow {
	g := quest.BuildGraph(records)

	byID := make(map[string]quest.Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	var rows []questRow
	for _, n := range g.Nodes() {
		r := byID[n.ID]
		if f.kappa && !r.KappaRequired {
			continue
		}
		if f.trader != "" && r.TraderName() != f.trader {
			continue
		}
		s := layout.StatusOf(g, n.ID, completed)
		if f.hideCompleted && s == layout.StatusCompleted {
			continue
		}
		rows = append(rows, questRow{Record: r, Status: s})
	}
	return rows
}

func rowIDs(rows []questRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Record.ID
	}
	return ids
}

// groupRows groups rows by trader in first-seen order.
func groupRows(rows []questRow) [][]questRow {
	records := make([]quest.Record, len(rows))
	status := make(map[string]layout.Status, len(rows))
	for i, r := range rows {
		records[i] = r.Record
		status[r.Record.ID] = r.Status
	}

	var groups [][]questRow
	for _, g := range quest.GroupByTrader(records) {
		group := make([]questRow, len(g.Records))
		for i, r := range g.Records {
			group[i] = questRow{Record: r, Status: status[r.ID]}
		}
		groups = append(groups, group)
	}
	return groups
}

func printQuestList(rows []questRow, sum progress.Summary) {
	printSummary(sum)
	if len(rows) == 0 {
		printNewline()
		printInfo("No quests to display")
		return
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	for _, group := range groupRows(rows) {
		printNewline()
		trader := group[0].Record.TraderName()
		done := 0
		for _, r := range group {
			if r.Status == layout.StatusCompleted {
				done++
			}
		}
		fmt.Fprintln(out, StyleTrader.Render(trader)+" "+StyleDim.Render(fmt.Sprintf("%d/%d", done, len(group))))

		data := make([][]string, len(group))
		for i, r := range group {
			data[i] = []string{statusIcon(r.Status), r.Record.DisplayName(), kappaMark(r.Record), levelCell(r.Record), r.Record.ID}
		}

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			Headers("", "Quest", "", "Lvl", "ID").
			Rows(data...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				base := lipgloss.NewStyle().PaddingRight(1)
				if col == 4 {
					return base.Foreground(colorDim)
				}
				if row >= 0 && row < len(group) && group[row].Status == layout.StatusLocked && col == 1 {
					return base.Foreground(colorGray)
				}
				return base
			})
		fmt.Fprintln(out, t.Render())
	}
}

func kappaMark(r quest.Record) string {
	if r.KappaRequired {
		return styleMilestone.Render(iconMilestone)
	}
	return ""
}

func levelCell(r quest.Record) string {
	if r.LevelRequired == 0 {
		return ""
	}
	return strconv.Itoa(r.LevelRequired)
}

// knownQuest validates id and checks that the quest file defines it.
func (c *CLI) knownQuest(ctx context.Context, id string) (quest.Record, *dag.DAG, error) {
	records, err := c.loadRecords(ctx, nil)
	if err != nil {
		return quest.Record{}, nil, err
	}
	r, err := quest.Find(records, id)
	if err != nil {
		return quest.Record{}, nil, err
	}
	return r, quest.BuildGraph(records), nil
}
