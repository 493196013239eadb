package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/quest"
)

// showCommand prints the details of one quest as rendered markdown.
func (c *CLI) showCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show quest details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateQuestID(args[0]); err != nil {
				return err
			}
			r, g, err := c.knownQuest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			completed, err := c.loadCompleted(cmd.Context())
			if err != nil {
				return fmt.Errorf("load progress: %w", err)
			}

			md := questMarkdown(r, g, layout.StatusOf(g, r.ID, completed))
			if raw {
				_, err := fmt.Fprint(out, md)
				return err
			}
			rendered, err := renderMarkdown(md)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(md)
}

// questMarkdown describes r as markdown. Prerequisites and unlocked quests
// are taken from g so dropped references do not appear.
func questMarkdown(r quest.Record, g *dag.DAG, status layout.Status) string {
	var b strings.Builder

	title := r.DisplayName()
	if r.KappaRequired {
		title += " " + iconMilestone
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	fmt.Fprintf(&b, "- **Trader:** %s\n", r.TraderName())
	fmt.Fprintf(&b, "- **Status:** %s\n", status)
	if r.Map != "" {
		fmt.Fprintf(&b, "- **Map:** %s\n", r.Map)
	}
	if r.LevelRequired > 0 {
		fmt.Fprintf(&b, "- **Level:** %d\n", r.LevelRequired)
	}
	if r.KappaRequired {
		b.WriteString("- **Required for Kappa**\n")
	}
	fmt.Fprintf(&b, "- **ID:** `%s`\n", r.ID)

	if r.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Description)
	}

	if len(r.Objectives) > 0 {
		b.WriteString("\n## Objectives\n\n")
		for _, o := range r.Objectives {
			fmt.Fprintf(&b, "- %s\n", o)
		}
	}

	writeRefs(&b, "Requires", g, g.Parents(r.ID))
	writeRefs(&b, "Unlocks", g, g.Children(r.ID))

	if lines := rewardLines(r.Rewards); len(lines) > 0 {
		b.WriteString("\n## Rewards\n\n")
		for _, l := range lines {
			fmt.Fprintf(&b, "- %s\n", l)
		}
	}

	if r.WikiLink != "" {
		fmt.Fprintf(&b, "\n[Wiki](%s)\n", r.WikiLink)
	}
	return b.String()
}

func writeRefs(b *strings.Builder, heading string, g *dag.DAG, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for _, id := range ids {
		name := id
		if n, ok := g.Node(id); ok && n.Name != "" {
			name = n.Name
		}
		fmt.Fprintf(b, "- %s (`%s`)\n", name, id)
	}
}

var (
	numbers     = message.NewPrinter(language.English)
	traderTitle = cases.Title(language.English)
)

// rewardLines formats rewards the way the quest log shows them: currency
// and experience with thousands separators on one line, then reputation,
// items and the achievement.
func rewardLines(rw *quest.Rewards) []string {
	if rw == nil {
		return nil
	}

	var lines []string
	var core []string
	if rw.Exp != 0 {
		core = append(core, numbers.Sprintf("%d EXP", rw.Exp))
	}
	if rw.Roubles != 0 {
		core = append(core, numbers.Sprintf("%d₽", rw.Roubles))
	}
	if rw.USD != 0 {
		core = append(core, numbers.Sprintf("%d$", rw.USD))
	}
	if rw.EUR != 0 {
		core = append(core, numbers.Sprintf("%d€", rw.EUR))
	}
	if len(core) > 0 {
		lines = append(lines, strings.Join(core, " · "))
	}

	var reps []string
	for _, t := range rw.RepTraders() {
		reps = append(reps, repLabel(t, rw.Reputation[t]))
	}
	if len(reps) > 0 {
		lines = append(lines, strings.Join(reps, " · "))
	}

	for _, item := range rw.Items {
		if l := quest.ItemLabel(item); l != "" {
			lines = append(lines, l)
		}
	}
	if rw.Achievement != "" {
		lines = append(lines, "Achievement: "+rw.Achievement)
	}
	return lines
}

// repLabel formats a reputation change, for example "Prapor Rep +0.02".
func repLabel(trader string, amount float64) string {
	sign := ""
	if amount > 0 {
		sign = "+"
	}
	return traderTitle.String(trader) + " Rep " + sign + strconv.FormatFloat(amount, 'f', -1, 64)
}
