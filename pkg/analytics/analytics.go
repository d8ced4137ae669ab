// Package analytics derives the dashboard's chart data from a task list.
package analytics

import (
	"focusrune/pkg/task"
)

// Horizon is how many days ahead the due-date histogram covers, today
// included.
const Horizon = 7

// Bucket is one labelled bar in a chart.
type Bucket struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Stats summarizes a task list as of one calendar day.
type Stats struct {
	Total          int      `json:"total" yaml:"total"`
	Completed      int      `json:"completed" yaml:"completed"`
	Pending        int      `json:"pending" yaml:"pending"`
	CompletionRate float64  `json:"completion_rate" yaml:"completion_rate"`
	Overdue        int      `json:"overdue" yaml:"overdue"`
	DueToday       int      `json:"due_today" yaml:"due_today"`
	Recurring      int      `json:"recurring" yaml:"recurring"`
	ByPriority     []Bucket `json:"by_priority" yaml:"by_priority"`
	ByRecurrence   []Bucket `json:"by_recurrence" yaml:"by_recurrence"`
	DueSoon        []Bucket `json:"due_soon" yaml:"due_soon"`
}

// Summarize computes Stats for tasks as seen on today. Completed tasks are
// never overdue or due.
func Summarize(tasks []task.Task, today task.Date) Stats {
	st := Stats{Total: len(tasks)}

	prio := map[task.Priority]int{}
	rec := map[task.Recurrence]int{}
	due := make([]int, Horizon)

	for _, t := range tasks {
		prio[t.Priority]++
		rec[t.Recurring]++
		if t.Recurring != "" {
			st.Recurring++
		}
		if t.Completed {
			st.Completed++
			continue
		}
		if t.DueDate.IsZero() {
			continue
		}
		d := today.DaysUntil(t.DueDate)
		switch {
		case d < 0:
			st.Overdue++
		case d == 0:
			st.DueToday++
		}
		if d >= 0 && d < Horizon {
			due[d]++
		}
	}

	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		st.CompletionRate = float64(st.Completed) / float64(st.Total)
	}

	for _, p := range task.Priorities {
		st.ByPriority = append(st.ByPriority, Bucket{Label: p.Label(), Count: prio[p]})
	}
	st.ByPriority = append(st.ByPriority, Bucket{Label: task.Priority("").Label(), Count: prio[""]})

	for _, r := range task.Recurrences {
		st.ByRecurrence = append(st.ByRecurrence, Bucket{Label: r.Label(), Count: rec[r]})
	}
	st.ByRecurrence = append(st.ByRecurrence, Bucket{Label: task.Recurrence("").Label(), Count: rec[""]})

	for i, n := range due {
		st.DueSoon = append(st.DueSoon, Bucket{Label: dayLabel(today.AddDays(i), i), Count: n})
	}
	return st
}

// Max returns the largest count in buckets, at least 1 so charts can divide
// by it.
func Max(buckets []Bucket) int {
	m := 1
	for _, b := range buckets {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}

func dayLabel(d task.Date, offset int) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	return d.String()[5:]
}
