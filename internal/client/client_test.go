package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusrune/internal/api"
	"focusrune/pkg/journal"
	"focusrune/pkg/task"
)

func newClient(t *testing.T) (*Client, *task.Store) {
	t.Helper()
	tasks := task.NewStore()
	j := journal.NewBus(journal.NewMemStore())
	changes := tasks.Follow()
	ctx, cancel := context.WithCancel(context.Background())
	go journal.Record(ctx, j, changes)

	ts := httptest.NewServer(api.New(api.NewSession(tasks, j), t.TempDir()))
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return New(ts.URL + "/"), tasks
}

func TestClientTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, store := newClient(t)

	added, err := c.Add(ctx, TaskInput{Title: "Buy milk", Priority: "HIGH", DueDate: "2026-10-18"})
	require.NoError(t, err)
	assert.Equal(t, task.High, added.Priority)

	got, err := c.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)

	st, err := c.Edit(ctx, added.ID, map[string]string{"dueDate": ""})
	require.NoError(t, err)
	assert.True(t, st.Tasks[1].DueDate.IsZero())

	_, err = c.Toggle(ctx, added.ID)
	require.NoError(t, err)
	st, err = c.Reorder(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, added.ID, st.Tasks[0].ID)
	assert.True(t, st.Tasks[0].Completed)

	h, err := c.Undo(ctx)
	require.NoError(t, err)
	assert.True(t, h.Changed)
	h, err = c.Redo(ctx)
	require.NoError(t, err)
	assert.True(t, h.Changed)

	_, err = c.Delete(ctx, added.ID)
	require.NoError(t, err)
	list, err := c.Tasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []task.Task{task.Welcome}, list)
	assert.Equal(t, list, store.Tasks())
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()
	c, _ := newClient(t)

	_, err := c.Add(ctx, TaskInput{Title: " "})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, task.ErrTitleRequired.Error(), apiErr.Message)

	_, err = c.Get(ctx, "missing")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)

	_, err = c.Reorder(ctx, 0, 3)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Status)
}

func TestClientSelectionAndCategories(t *testing.T) {
	ctx := context.Background()
	c, store := newClient(t)

	_, err := c.Add(ctx, TaskInput{Title: "A"})
	require.NoError(t, err)
	sel, err := c.SelectAll(ctx)
	require.NoError(t, err)
	assert.Len(t, sel.IDs, 2)
	sel, err = c.Select(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, sel.IDs, 1)
	sel, err = c.DeleteSelected(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Affected)
	assert.Equal(t, "1", store.Tasks()[0].ID)

	work, err := c.AddCategory(ctx, "Work")
	require.NoError(t, err)
	_, err = c.AddCategory(ctx, "Home")
	require.NoError(t, err)
	cats, err := c.ReorderCategories(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "Home", cats[0].Name)
	renamed, err := c.RenameCategory(ctx, work.ID, "Office")
	require.NoError(t, err)
	assert.Equal(t, "Office", renamed.Name)
	cats, err = c.Categories(ctx, "off")
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.NoError(t, c.DeleteCategory(ctx, work.ID))
}

func TestClientReports(t *testing.T) {
	ctx := context.Background()
	c, _ := newClient(t)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)

	out, err := c.Export(ctx, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Welcome to FocusRune")

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Tasks)
}

func TestClientJournal(t *testing.T) {
	ctx := context.Background()
	c, _ := newClient(t)

	_, err := c.Toggle(ctx, "1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		entries, err := c.Journal(ctx, task.OpToggled, "", 10)
		return err == nil && len(entries) == 1
	}, time.Second, 10*time.Millisecond)

	entries, err := c.Journal(ctx, "", "1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Welcome to FocusRune", entries[0].Content["title"])
	require.NoError(t, c.VerifyJournal(ctx))
}
