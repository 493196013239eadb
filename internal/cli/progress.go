package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/observability"
	"github.com/matzehuels/questgraph/pkg/progress"
	"github.com/matzehuels/questgraph/pkg/quest"
)

// progressOp applies one change to the store and reports whether the quest
// is completed afterwards.
type progressOp func(ctx context.Context, s progress.Store, id string) (bool, error)

func markOp(ctx context.Context, s progress.Store, id string) (bool, error) {
	return true, s.Mark(ctx, id)
}

func unmarkOp(ctx context.Context, s progress.Store, id string) (bool, error) {
	return false, s.Unmark(ctx, id)
}

func toggleOp(ctx context.Context, s progress.Store, id string) (bool, error) {
	return s.Toggle(ctx, id)
}

func (c *CLI) doneCommand() *cobra.Command {
	return c.progressCommand("done <id>...", "Mark quests completed", markOp)
}

func (c *CLI) undoCommand() *cobra.Command {
	return c.progressCommand("undo <id>...", "Mark quests not completed", unmarkOp)
}

func (c *CLI) toggleCommand() *cobra.Command {
	return c.progressCommand("toggle <id>...", "Flip the completion state of quests", toggleOp)
}

func (c *CLI) progressCommand(use, short string, op progressOp) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProgress(cmd.Context(), args, op)
		},
	}
}

// runProgress validates every id against the quest file before touching
// the store, so a typo changes nothing.
func (c *CLI) runProgress(ctx context.Context, ids []string, op progressOp) error {
	records, err := c.loadRecords(ctx, nil)
	if err != nil {
		return err
	}
	named := make([]quest.Record, len(ids))
	for i, id := range ids {
		if err := errors.ValidateQuestID(id); err != nil {
			return err
		}
		if named[i], err = quest.Find(records, id); err != nil {
			return err
		}
	}

	store, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, r := range named {
		done, err := op(ctx, store, r.ID)
		if err != nil {
			return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "update %s", r.ID)
		}
		observability.Progress().OnProgressChange(ctx, r.ID, done)
		if done {
			printSuccess("%s %s", r.DisplayName(), StyleDim.Render("completed"))
		} else {
			printInfo("%s %s", r.DisplayName(), StyleDim.Render("not completed"))
		}
	}

	set, err := store.Load(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "load progress")
	}
	printNewline()
	printSummary(progress.Summarize(recordIDs(records), set))
	return nil
}

func recordIDs(records []quest.Record) []string {
	seen := make(map[string]bool, len(records))
	var ids []string
	for _, r := range records {
		if r.ID != "" && !seen[r.ID] {
			seen[r.ID] = true
			ids = append(ids, r.ID)
		}
	}
	return ids
}
