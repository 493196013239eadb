package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/observability"
	"github.com/matzehuels/questgraph/pkg/progress"
	"github.com/matzehuels/questgraph/pkg/quest"
)

var (
	trackSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	trackNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	trackLockedStyle   = lipgloss.NewStyle().Foreground(colorGray)
	trackErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

func (c *CLI) trackCommand() *cobra.Command {
	var kappa bool

	cmd := &cobra.Command{
		Use:   "track [quests.json]",
		Short: "Interactively mark quests completed",
		Long: `Open an interactive quest list.

Keys: ↑/↓ move, space toggles completion, k toggles the Kappa filter,
c shows or hides completed quests, q quits. Every toggle is written to the
progress store immediately.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			records, err := c.loadRecords(ctx, args)
			if err != nil {
				return err
			}
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			completed, err := store.Load(ctx)
			if err != nil {
				return fmt.Errorf("load progress: %w", err)
			}

			m := newTrackModel(records, completed, func(id string) (bool, error) {
				done, err := store.Toggle(ctx, id)
				if err == nil {
					observability.Progress().OnProgressChange(ctx, id, done)
				}
				return done, err
			})
			m.kappa = kappa

			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			if err != nil && ctx.Err() == nil {
				return err
			}
			return ctx.Err()
		},
	}

	cmd.Flags().BoolVar(&kappa, "kappa", false, "start with the Kappa filter on")
	return cmd
}

// toggledMsg reports the result of a store toggle.
type toggledMsg struct {
	id   string
	done bool
	err  error
}

// trackModel is the bubbletea model behind "track".
type trackModel struct {
	records   []quest.Record
	completed progress.Set
	toggle    func(id string) (bool, error)

	rows          []questRow
	kappa         bool
	showCompleted bool

	Cursor int
	Offset int
	Height int

	err error
}

func newTrackModel(records []quest.Record, completed progress.Set, toggle func(string) (bool, error)) trackModel {
	if completed == nil {
		completed = progress.NewSet()
	}
	m := trackModel{
		records:       records,
		completed:     completed,
		toggle:        toggle,
		showCompleted: true,
		Height:        20,
	}
	m.refresh()
	return m
}

// refresh recomputes the visible rows and keeps the cursor on the same
// quest when it is still visible.
func (m *trackModel) refresh() {
	var current string
	if m.Cursor < len(m.rows) {
		current = m.rows[m.Cursor].Record.ID
	}
	m.rows = questRows(m.records, m.completed, listFilter{kappa: m.kappa, hideCompleted: !m.showCompleted})

	m.Cursor = min(m.Cursor, max(len(m.rows)-1, 0))
	for i, r := range m.rows {
		if r.Record.ID == current {
			m.Cursor = i
			break
		}
	}
	m.clampOffset()
}

func (m *trackModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	m.Offset = max(0, min(m.Offset, max(len(m.rows)-m.Height, 0)))
}

func (m trackModel) Init() tea.Cmd {
	return nil
}

func (m trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			if m.Cursor > 0 {
				m.Cursor--
				m.clampOffset()
			}
		case "down":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				m.clampOffset()
			}
		case " ", "space", "enter":
			if len(m.rows) == 0 {
				return m, nil
			}
			id := m.rows[m.Cursor].Record.ID
			toggle := m.toggle
			return m, func() tea.Msg {
				done, err := toggle(id)
				return toggledMsg{id: id, done: done, err: err}
			}
		case "k":
			m.kappa = !m.kappa
			m.refresh()
		case "c":
			m.showCompleted = !m.showCompleted
			m.refresh()
		}
	case toggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.done {
			m.completed.Add(msg.id)
		} else {
			m.completed.Remove(msg.id)
		}
		m.refresh()
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-7, 5)
		m.clampOffset()
	}
	return m, nil
}

func (m trackModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Quest Tracker"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.filterLabel()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  space toggle  k kappa  c completed  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(StyleDim.Render("  No quests to display"))
		b.WriteString("\n")
	}

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		style := trackNormalStyle
		if r.Status == layout.StatusLocked {
			style = trackLockedStyle
		}
		if i == m.Cursor {
			cursor = "▸ "
			style = trackSelectedStyle
		}
		line := cursor + statusIcon(r.Status) + " " + style.Render(r.Record.DisplayName())
		if r.Record.KappaRequired {
			line += " " + styleMilestone.Render(iconMilestone)
		}
		line += " " + StyleDim.Render(r.Record.TraderName())
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	ids := recordIDs(m.records)
	if m.kappa {
		ids = recordIDs(quest.KappaOnly(m.records))
	}
	b.WriteString(summaryLine(progress.Summarize(ids, m.completed)))
	if len(m.rows) > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(trackErrorStyle.Render(iconError + " " + m.err.Error()))
	}
	return b.String()
}

func (m trackModel) filterLabel() string {
	var parts []string
	if m.kappa {
		parts = append(parts, "kappa only")
	}
	if !m.showCompleted {
		parts = append(parts, "hiding completed")
	}
	if len(parts) == 0 {
		return "all quests"
	}
	return strings.Join(parts, ", ")
}

var _ tea.Model = trackModel{}

