package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusrune/pkg/task"
)

func TestToggle(t *testing.T) {
	s := New()
	s.Toggle("a")
	s.Toggle("b")
	assert.True(t, s.Contains("a"))
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	s.Toggle("a")
	assert.False(t, s.Contains("a"))
	assert.Equal(t, []string{"b"}, s.IDs())
	assert.Equal(t, 1, s.Len())
}

func TestClear(t *testing.T) {
	s := New()
	s.Toggle("a")
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.IDs())
}

func TestSelectAllKeepsExisting(t *testing.T) {
	s := New()
	s.Toggle("b")
	s.SelectAll([]string{"a", "b", "c"})
	assert.Equal(t, []string{"b", "a", "c"}, s.IDs())
}

func TestStaleIDsAreKept(t *testing.T) {
	store := task.NewStore()
	s := New()
	s.Toggle("1")
	store.Delete("1")

	assert.True(t, s.Contains("1"), "selection is not pruned automatically")

	s.Retain(nil)
	assert.Zero(t, s.Len())
}

func TestRetain(t *testing.T) {
	s := New()
	s.SelectAll([]string{"a", "b", "c"})
	s.Retain([]string{"c", "a", "z"})
	assert.Equal(t, []string{"a", "c"}, s.IDs())
}

func TestCompleteSelected(t *testing.T) {
	store := task.NewStore()
	b := store.Add(task.Payload{Title: "b"})
	s := New()
	s.Toggle(b.ID)
	s.Toggle("1")

	n := s.CompleteSelected(store)
	assert.Equal(t, 2, n)
	assert.Zero(t, s.Len())
	for _, tk := range store.Tasks() {
		assert.True(t, tk.Completed, tk.Title)
	}
	assert.Equal(t, 3, store.State().Past, "each toggle is its own history entry")
}

func TestDeleteSelected(t *testing.T) {
	store := task.NewStore()
	b := store.Add(task.Payload{Title: "b"})
	store.Add(task.Payload{Title: "c"})
	s := New()
	s.Toggle(b.ID)
	s.Toggle("gone")

	n := s.DeleteSelected(store)
	assert.Equal(t, 2, n)
	require.Len(t, store.Tasks(), 2)
	assert.Equal(t, 4, store.State().Past, "delete of a stale id still commits")

	store.Undo()
	store.Undo()
	assert.Len(t, store.Tasks(), 3)
}
