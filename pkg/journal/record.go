package journal

import (
	"context"
	"log"

	"focusrune/pkg/task"
)

// Record appends one entry per change until ctx is done or changes is
// closed. Pass it a task.Store.Follow feed so bursts are not dropped.
// Append failures are logged and skipped; the task store never waits on
// the journal.
func Record(ctx context.Context, store Store, changes <-chan task.Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case ch, ok := <-changes:
			if !ok {
				return
			}
			if _, err := store.Append(ctx, ch.Op, ch.TaskID, Content(ch)); err != nil {
				log.Printf("journal: append %s: %v", ch.Op, err)
			}
		}
	}
}

// Content builds the entry body for a change.
func Content(ch task.Change) map[string]any {
	c := map[string]any{
		"tasks":  len(ch.State.Tasks),
		"past":   ch.State.Past,
		"future": ch.State.Future,
	}
	if ch.TaskID != "" {
		for _, t := range ch.State.Tasks {
			if t.ID == ch.TaskID {
				c["title"] = t.Title
				c["completed"] = t.Completed
				break
			}
		}
	}
	if ch.Op == task.OpReordered {
		c["from"] = ch.From
		c["to"] = ch.To
	}
	return c
}
