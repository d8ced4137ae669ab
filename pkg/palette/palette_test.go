package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusrune/pkg/task"
)

func TestNewDefaults(t *testing.T) {
	p := New()
	assert.False(t, p.Open())
	assert.Equal(t, task.Medium, p.Priority)
	assert.Empty(t, p.Query)
}

func TestToggle(t *testing.T) {
	p := New()
	p.Toggle()
	assert.True(t, p.Open())
	p.Toggle()
	assert.False(t, p.Open())
}

func TestSuggestions(t *testing.T) {
	tasks := []task.Task{
		{ID: "1", Title: "Buy milk"},
		{ID: "2", Title: "Call mom"},
		{ID: "3", Title: "MILKSHAKE recipe"},
	}
	p := New()
	assert.Nil(t, p.Suggestions(tasks), "blank query suggests nothing")

	p.Query = "  milk "
	got := p.Suggestions(tasks)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	p.Pick(got[1])
	assert.Equal(t, "MILKSHAKE recipe", p.Query)
}

func TestSubmit(t *testing.T) {
	store := task.NewStore()
	p := New()
	p.Show()
	p.Query = "  Water plants "
	p.Priority = task.High
	p.DueDate = task.NewDate(2026, 10, 18)
	p.Recurring = task.Weekly

	got, ok := p.Submit(store)
	require.True(t, ok)
	assert.Equal(t, "Water plants", got.Title)
	assert.Equal(t, task.High, got.Priority)
	assert.Equal(t, task.Weekly, got.Recurring)
	assert.Equal(t, "2026-10-18", got.DueDate.String())

	assert.False(t, p.Open())
	assert.Empty(t, p.Query)
	assert.Equal(t, task.Medium, p.Priority)
	assert.True(t, p.DueDate.IsZero())
	assert.Len(t, store.Tasks(), 2)
}

func TestSubmitBlankIgnored(t *testing.T) {
	store := task.NewStore()
	p := New()
	p.Show()
	p.Query = "   "

	_, ok := p.Submit(store)
	assert.False(t, ok)
	assert.True(t, p.Open())
	assert.Zero(t, store.State().Past)
}

func TestRunCommands(t *testing.T) {
	store := task.NewStore()
	p := New()
	p.Query = "a"

	assert.True(t, p.Run("add", store, store))
	assert.True(t, p.Run("undo", store, store))
	assert.Len(t, store.Tasks(), 1)
	assert.True(t, p.Run("redo", store, store))
	assert.Len(t, store.Tasks(), 2)
	assert.False(t, p.Run("redo", store, store))
	assert.False(t, p.Run("nope", store, store))
	assert.Len(t, Commands, 3)
}
