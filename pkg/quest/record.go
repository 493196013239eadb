package quest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Record is one quest as it appears in the quest file.
type Record struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Trader        string   `json:"trader,omitempty"`
	KappaRequired bool     `json:"kappa_required,omitempty"`
	Map           string   `json:"map,omitempty"`
	LevelRequired int      `json:"level_required,omitempty"`
	Description   string   `json:"description,omitempty"`
	Objectives    []string `json:"objectives,omitempty"`
	Requires      RefList  `json:"requires,omitempty"`
	Unlocks       RefList  `json:"unlocks,omitempty"`
	Rewards       *Rewards `json:"rewards,omitempty"`
	WikiLink      string   `json:"wiki_link,omitempty"`
}

// TraderName returns the trader, or "Unknown" when the record has none.
func (r Record) TraderName() string {
	if r.Trader == "" {
		return "Unknown"
	}
	return r.Trader
}

// DisplayName returns the name, falling back to the id.
func (r Record) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// RefList is a list of quest ids that decodes from null, a single value or
// an array. Strings are kept as ids and numbers as their literal text, so an
// unknown numeric id is reported as a dangling reference. Any other value is
// dropped instead of failing the whole file.
type RefList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *RefList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("reference list: %w", err)
	}

	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}
	var ids RefList
	for _, item := range items {
		switch x := item.(type) {
		case string:
			if x != "" {
				ids = append(ids, x)
			}
		case json.Number:
			ids = append(ids, x.String())
		}
	}
	*l = ids
	return nil
}

// Rewards lists what completing a quest grants. Reputation changes are keyed
// by lower-case trader name.
type Rewards struct {
	Exp         int64              `json:"exp,omitempty"`
	Roubles     int64              `json:"roubles,omitempty"`
	USD         int64              `json:"usd,omitempty"`
	EUR         int64              `json:"eur,omitempty"`
	Items       []string           `json:"items,omitempty"`
	Achievement string             `json:"achievement,omitempty"`
	Reputation  map[string]float64 `json:"-"`
}

const repSuffix = "_rep"

type rewardsAlias Rewards

// UnmarshalJSON implements json.Unmarshaler. Keys ending in "_rep" are
// collected into Reputation.
func (r *Rewards) UnmarshalJSON(data []byte) error {
	var base rewardsAlias
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		trader, ok := strings.CutSuffix(k, repSuffix)
		if !ok || trader == "" {
			continue
		}
		var amount float64
		if err := json.Unmarshal(v, &amount); err != nil {
			return fmt.Errorf("reward %s: %w", k, err)
		}
		if base.Reputation == nil {
			base.Reputation = make(map[string]float64)
		}
		base.Reputation[trader] = amount
	}
	*r = Rewards(base)
	return nil
}

// MarshalJSON implements json.Marshaler, writing Reputation back as flat
// "<trader>_rep" keys.
func (r Rewards) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(rewardsAlias(r))
	if err != nil {
		return nil, err
	}
	if len(r.Reputation) == 0 {
		return base, nil
	}
	out := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	for trader, amount := range r.Reputation {
		v, err := json.Marshal(amount)
		if err != nil {
			return nil, err
		}
		out[trader+repSuffix] = v
	}
	return json.Marshal(out)
}

// RepTraders returns the traders with a reputation reward, sorted.
func (r Rewards) RepTraders() []string {
	return slices.Sorted(maps.Keys(r.Reputation))
}

// ItemLabel returns an item reward as shown to the user. Items without a
// leading quantity get a "1× " prefix.
func ItemLabel(item string) string {
	s := strings.TrimSpace(item)
	if s == "" {
		return s
	}
	switch c := s[0]; {
	case c >= '0' && c <= '9', c == 'x', c == 'X':
		return s
	}
	return "1× " + s
}
