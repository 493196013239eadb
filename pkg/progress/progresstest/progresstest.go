// Package progresstest checks that a progress.Store behaves like the
// reference file store.
package progresstest

import (
	"context"
	"slices"
	"testing"

	"github.com/matzehuels/questgraph/pkg/progress"
)

// Run exercises store through mark, unmark, toggle and reload. The store must
// start empty.
func Run(t *testing.T, store progress.Store) {
	t.Helper()
	ctx := context.Background()

	set, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("new store holds %v", set.IDs())
	}

	for _, id := range []string{"debut", "checking", "debut"} {
		if err := store.Mark(ctx, id); err != nil {
			t.Fatalf("Mark(%s): %v", id, err)
		}
	}
	expect(t, store, "debut", "checking")

	if err := store.Unmark(ctx, "debut"); err != nil {
		t.Fatalf("Unmark: %v", err)
	}
	if err := store.Unmark(ctx, "never-done"); err != nil {
		t.Fatalf("Unmark of unknown id: %v", err)
	}
	expect(t, store, "checking")

	done, err := store.Toggle(ctx, "shortage")
	if err != nil || !done {
		t.Fatalf("Toggle(shortage) = %v, %v; want true, nil", done, err)
	}
	done, err = store.Toggle(ctx, "checking")
	if err != nil || done {
		t.Fatalf("Toggle(checking) = %v, %v; want false, nil", done, err)
	}
	expect(t, store, "shortage")
}

func expect(t *testing.T, store progress.Store, ids ...string) {
	t.Helper()
	set, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := slices.Clone(ids)
	slices.Sort(want)
	if got := set.IDs(); !slices.Equal(got, want) {
		t.Fatalf("completed = %v, want %v", got, want)
	}
}
