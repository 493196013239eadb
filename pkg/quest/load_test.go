package quest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/questgraph/pkg/errors"
)

const sampleQuests = `[
  {"id":"debut","name":"Debut","trader":"Prapor","kappa_required":true},
  {"id":"checking","name":"Checking","trader":"Prapor","requires":"debut"},
  {"id":"sanitary","name":"Sanitary Standards","trader":"Therapist","requires":["debut"]},
  {"id":"stray","name":"Stray"}
]`

func TestRead(t *testing.T) {
	records, err := Read(strings.NewReader(sampleQuests))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	if !records[0].KappaRequired {
		t.Error("debut should be kappa required")
	}
}

func TestRead_Malformed(t *testing.T) {
	_, err := Read(strings.NewReader(`{"id":`))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quests.json")
	if err := os.WriteFile(path, []byte(sampleQuests), 0o644); err != nil {
		t.Fatal(err)
	}
	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 4 {
		t.Errorf("got %d records", len(records))
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want FILE_NOT_FOUND", err)
	}
}

func TestFind(t *testing.T) {
	records := []Record{{ID: "a", Name: "first"}, {ID: "b"}, {ID: "a", Name: "second"}}

	r, err := Find(records, "a")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if r.Name != "second" {
		t.Errorf("Find returned %q, want last record", r.Name)
	}

	if _, err := Find(records, "zzz"); !errors.Is(err, errors.ErrCodeQuestNotFound) {
		t.Errorf("got %v, want QUEST_NOT_FOUND", err)
	}
}

func TestGroupByTrader(t *testing.T) {
	records, _ := Read(strings.NewReader(sampleQuests))
	groups := GroupByTrader(records)

	var traders []string
	for _, g := range groups {
		traders = append(traders, g.Trader)
	}
	want := []string{"Prapor", "Therapist", "Unknown"}
	if strings.Join(traders, ",") != strings.Join(want, ",") {
		t.Errorf("traders = %v, want %v", traders, want)
	}
	if len(groups[0].Records) != 2 {
		t.Errorf("Prapor has %d records, want 2", len(groups[0].Records))
	}
}

func TestKappaOnly(t *testing.T) {
	records, _ := Read(strings.NewReader(sampleQuests))
	if got := KappaOnly(records); len(got) != 1 || got[0].ID != "debut" {
		t.Errorf("KappaOnly() = %v", got)
	}
}
