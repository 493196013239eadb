package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/questgraph/pkg/progress"
	"github.com/matzehuels/questgraph/pkg/quest"
)

func trackRecords() []quest.Record {
	return []quest.Record{
		{ID: "a", Name: "Alpha", Trader: "Prapor", KappaRequired: true},
		{ID: "b", Name: "Beta", Trader: "Prapor", Requires: quest.RefList{"a"}},
		{ID: "c", Name: "Gamma", Trader: "Skier", KappaRequired: true},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m trackModel, msg tea.Msg) (trackModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(trackModel), cmd
}

func visibleIDs(m trackModel) string {
	ids := make([]string, len(m.rows))
	for i, r := range m.rows {
		ids[i] = r.Record.ID
	}
	return strings.Join(ids, ",")
}

func TestTrackToggle(t *testing.T) {
	store := progress.NewSet()
	toggle := func(id string) (bool, error) {
		if store.Has(id) {
			store.Remove(id)
			return false, nil
		}
		store.Add(id)
		return true, nil
	}
	m := newTrackModel(trackRecords(), nil, toggle)

	m, cmd := update(t, m, key(" "))
	if cmd == nil {
		t.Fatal("space should return a toggle command")
	}
	m, _ = update(t, m, cmd())
	if !m.completed.Has("a") || !store.Has("a") {
		t.Fatal("quest a should be completed after toggling")
	}
	if !strings.Contains(m.View(), "1 / 3 completed (33%)") {
		t.Errorf("view summary wrong:\n%s", m.View())
	}

	m, cmd = update(t, m, key(" "))
	m, _ = update(t, m, cmd())
	if m.completed.Has("a") {
		t.Error("second toggle should undo")
	}
}

func TestTrackNavigation(t *testing.T) {
	m := newTrackModel(trackRecords(), nil, nil)

	m, _ = update(t, m, key("up"))
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("down"))
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}
	if !strings.Contains(m.View(), "▸ ") {
		t.Error("view should mark the cursor row")
	}
}

func TestTrackFilters(t *testing.T) {
	m := newTrackModel(trackRecords(), progress.NewSet("c"), nil)
	if got := visibleIDs(m); got != "a,b,c" {
		t.Fatalf("rows = %s", got)
	}

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("k"))
	if got := visibleIDs(m); got != "a,c" {
		t.Errorf("kappa rows = %s, want a,c", got)
	}
	if m.Cursor >= len(m.rows) {
		t.Errorf("cursor = %d out of range after filtering out the selected quest", m.Cursor)
	}
	if !strings.Contains(m.View(), "kappa only") || !strings.Contains(m.View(), "1 / 2 completed") {
		t.Errorf("view:\n%s", m.View())
	}

	m, _ = update(t, m, key("c"))
	if got := visibleIDs(m); got != "a" {
		t.Errorf("rows without completed = %s, want a", got)
	}

	m, _ = update(t, m, key("k"))
	m, _ = update(t, m, key("c"))
	if got := visibleIDs(m); got != "a,b,c" {
		t.Errorf("rows after clearing filters = %s", got)
	}
}

func TestTrackToggleError(t *testing.T) {
	m := newTrackModel(trackRecords(), nil, func(string) (bool, error) {
		return false, errors.New("store offline")
	})
	m, cmd := update(t, m, key(" "))
	m, _ = update(t, m, cmd())
	if m.completed.Has("a") {
		t.Error("failed toggle must not change state")
	}
	if !strings.Contains(m.View(), "store offline") {
		t.Errorf("view should show the error:\n%s", m.View())
	}
}

func TestTrackQuit(t *testing.T) {
	m := newTrackModel(trackRecords(), nil, nil)
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestTrackEmpty(t *testing.T) {
	m := newTrackModel(nil, nil, nil)
	m, cmd := update(t, m, key(" "))
	if cmd != nil {
		t.Error("toggle on an empty list should do nothing")
	}
	if !strings.Contains(m.View(), "No quests to display") {
		t.Errorf("view:\n%s", m.View())
	}
}
