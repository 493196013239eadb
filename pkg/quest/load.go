package quest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/questgraph/pkg/errors"
)

// Read decodes a JSON array of quest records from r.
func Read(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode quests")
	}
	return records, nil
}

// Load reads the quest file at path.
func Load(path string) ([]Record, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "quest file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Find returns the last record with the given id. Later records override
// earlier ones, matching graph construction.
func Find(records []Record, id string) (Record, error) {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].ID == id {
			return records[i], nil
		}
	}
	return Record{}, errors.New(errors.ErrCodeQuestNotFound, "unknown quest: %s", id)
}

// KappaOnly returns the records required for the Kappa container.
func KappaOnly(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if r.KappaRequired {
			out = append(out, r)
		}
	}
	return out
}

// TraderGroup is the records of one trader, in file order.
type TraderGroup struct {
	Trader  string
	Records []Record
}

// GroupByTrader groups records by trader. Groups appear in the order their
// trader is first seen.
func GroupByTrader(records []Record) []TraderGroup {
	var groups []TraderGroup
	index := make(map[string]int)
	for _, r := range records {
		t := r.TraderName()
		i, ok := index[t]
		if !ok {
			i = len(groups)
			index[t] = i
			groups = append(groups, TraderGroup{Trader: t})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}
