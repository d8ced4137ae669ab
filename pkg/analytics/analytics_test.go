package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusrune/pkg/task"
)

func TestSummarizeEmpty(t *testing.T) {
	st := Summarize(nil, task.NewDate(2026, 10, 17))
	assert.Zero(t, st.Total)
	assert.Zero(t, st.CompletionRate)
	assert.Len(t, st.ByPriority, 4)
	assert.Len(t, st.ByRecurrence, 4)
	assert.Len(t, st.DueSoon, Horizon)
}

func TestSummarize(t *testing.T) {
	today := task.NewDate(2026, time.October, 17)
	tasks := []task.Task{
		{ID: "1", Title: "seed"},
		{ID: "2", Title: "late", Priority: task.High, DueDate: today.AddDays(-3)},
		{ID: "3", Title: "now", Priority: task.High, DueDate: today, Recurring: task.Daily},
		{ID: "4", Title: "soon", Priority: task.Low, DueDate: today.AddDays(2)},
		{ID: "5", Title: "far", Priority: task.Medium, DueDate: today.AddDays(30)},
		{ID: "6", Title: "done late", Completed: true, DueDate: today.AddDays(-1), Recurring: task.Weekly},
	}

	st := Summarize(tasks, today)
	assert.Equal(t, 6, st.Total)
	assert.Equal(t, 1, st.Completed)
	assert.Equal(t, 5, st.Pending)
	assert.InDelta(t, 1.0/6.0, st.CompletionRate, 1e-9)
	assert.Equal(t, 1, st.Overdue, "completed tasks are never overdue")
	assert.Equal(t, 1, st.DueToday)
	assert.Equal(t, 2, st.Recurring)

	assert.Equal(t, []Bucket{
		{Label: "Low", Count: 1},
		{Label: "Medium", Count: 1},
		{Label: "High", Count: 2},
		{Label: "None", Count: 2},
	}, st.ByPriority)

	require.Len(t, st.DueSoon, Horizon)
	assert.Equal(t, Bucket{Label: "Today", Count: 1}, st.DueSoon[0])
	assert.Equal(t, Bucket{Label: "Tomorrow", Count: 0}, st.DueSoon[1])
	assert.Equal(t, Bucket{Label: "10-19", Count: 1}, st.DueSoon[2])
}

func TestMax(t *testing.T) {
	assert.Equal(t, 1, Max(nil))
	assert.Equal(t, 1, Max([]Bucket{{Count: 0}}))
	assert.Equal(t, 5, Max([]Bucket{{Count: 2}, {Count: 5}, {Count: 1}}))
}
