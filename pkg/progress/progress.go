// Package progress stores which quests a user has completed.
//
// The completion set is a plain set of quest ids. Layout only reads it
// through [Set.Has]; the CLI and HTTP API change it through a [Store].
// Three backends exist: [FileStore] in this package, and the postgres and
// mongo subpackages.
package progress

import (
	"context"
	"errors"
	"math"
	"slices"
)

// ErrUnknownBackend is returned when a configured store backend is not one
// of "file", "postgres" or "mongo".
var ErrUnknownBackend = errors.New("unknown progress backend")

// Store persists the completion set.
//
// Mark and Unmark are idempotent. Toggle flips the state of id and reports
// whether the quest is completed afterwards.
type Store interface {
	Load(ctx context.Context) (Set, error)
	Mark(ctx context.Context, id string) error
	Unmark(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) (bool, error)
	Close() error
}

// Set is a set of completed quest ids. The zero value is an empty set that
// answers Has but cannot be added to; use NewSet.
type Set map[string]struct{}

// NewSet returns a set holding ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is completed.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add marks id completed.
func (s Set) Add(id string) { s[id] = struct{}{} }

// Remove marks id not completed.
func (s Set) Remove(id string) { delete(s, id) }

// Len returns the number of completed ids.
func (s Set) Len() int { return len(s) }

// IDs returns the completed ids in ascending order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Summary is the progress line shown above quest lists.
type Summary struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// Summarize counts how many of ids are completed. Percent is rounded to the
// nearest integer and is 0 when ids is empty.
func Summarize(ids []string, s Set) Summary {
	sum := Summary{Total: len(ids)}
	for _, id := range ids {
		if s.Has(id) {
			sum.Done++
		}
	}
	if sum.Total > 0 {
		sum.Percent = int(math.Round(float64(sum.Done) / float64(sum.Total) * 100))
	}
	return sum
}
