package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/quest"
)

func TestRewardLines(t *testing.T) {
	tests := []struct {
		name string
		in   *quest.Rewards
		want []string
	}{
		{"nil", nil, nil},
		{"empty", &quest.Rewards{}, nil},
		{
			name: "currencies",
			in:   &quest.Rewards{Exp: 12300, Roubles: 1250000, USD: 800, EUR: 1000},
			want: []string{"12,300 EXP · 1,250,000₽ · 800$ · 1,000€"},
		},
		{
			name: "reputation sorted by trader",
			in:   &quest.Rewards{Reputation: map[string]float64{"skier": -0.05, "prapor": 0.02}},
			want: []string{"Prapor Rep +0.02 · Skier Rep -0.05"},
		},
		{
			name: "items and achievement",
			in:   &quest.Rewards{Items: []string{"Mosin", "2× Salewa", " "}, Achievement: "Welcome to Tarkov"},
			want: []string{"1× Mosin", "2× Salewa", "Achievement: Welcome to Tarkov"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewardLines(tt.in)
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("rewardLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepLabel(t *testing.T) {
	tests := []struct {
		trader string
		amount float64
		want   string
	}{
		{"prapor", 0.02, "Prapor Rep +0.02"},
		{"peacekeeper", -0.1, "Peacekeeper Rep -0.1"},
		{"fence", 0, "Fence Rep 0"},
	}
	for _, tt := range tests {
		if got := repLabel(tt.trader, tt.amount); got != tt.want {
			t.Errorf("repLabel(%q, %v) = %q, want %q", tt.trader, tt.amount, got, tt.want)
		}
	}
}

func TestQuestMarkdown(t *testing.T) {
	records := []quest.Record{
		{ID: "a", Name: "Alpha", Trader: "Prapor"},
		{ID: "b", Name: "Beta", Map: "Customs", LevelRequired: 10, Requires: quest.RefList{"a", "ghost"},
			Objectives: []string{"Find the stash"}, WikiLink: "https://example.com/beta"},
	}
	g := quest.BuildGraph(records)
	r, _ := quest.Find(records, "b")

	md := questMarkdown(r, g, layout.StatusLocked)
	for _, want := range []string{
		"# Beta\n",
		"**Trader:** Unknown",
		"**Status:** locked",
		"**Map:** Customs",
		"**Level:** 10",
		"- Find the stash",
		"## Requires\n\n- Alpha (`a`)\n",
		"[Wiki](https://example.com/beta)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "ghost") || strings.Contains(md, "## Rewards") {
		t.Errorf("markdown should drop dangling refs and empty rewards:\n%s", md)
	}
}
