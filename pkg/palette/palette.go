// Package palette holds the command palette's state: whether it is open,
// the draft task being typed, and the suggestions and commands it offers.
package palette

import (
	"strings"

	"focusrune/pkg/task"
)

// Adder creates a task from a payload.
type Adder interface {
	Add(p task.Payload) task.Task
}

// History is the undo/redo surface the palette commands drive.
type History interface {
	Undo() bool
	Redo() bool
}

// Command is one entry in the palette's command list.
type Command struct {
	Name  string
	Label string
}

// Commands offered below the input, in display order.
var Commands = []Command{
	{Name: "add", Label: "Add Task"},
	{Name: "undo", Label: "Undo"},
	{Name: "redo", Label: "Redo"},
}

// Palette is the command palette state. Use New; the zero value has no
// default priority.
type Palette struct {
	open bool

	Query     string
	Priority  task.Priority
	DueDate   task.Date
	Recurring task.Recurrence
}

// New returns a closed palette with the default draft.
func New() *Palette {
	p := &Palette{}
	p.Reset()
	return p
}

// Open reports whether the palette is shown.
func (p *Palette) Open() bool { return p.open }

// Show opens the palette.
func (p *Palette) Show() { p.open = true }

// Close hides the palette without touching the draft.
func (p *Palette) Close() { p.open = false }

// Toggle flips visibility.
func (p *Palette) Toggle() { p.open = !p.open }

// Reset restores the default draft.
func (p *Palette) Reset() {
	p.Query = ""
	p.Priority = task.Medium
	p.DueDate = task.Date{}
	p.Recurring = ""
}

// Suggestions returns tasks whose title contains the query, ignoring case.
// A blank query suggests nothing.
func (p *Palette) Suggestions(tasks []task.Task) []task.Task {
	q := strings.ToLower(strings.TrimSpace(p.Query))
	if q == "" {
		return nil
	}
	var out []task.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) {
			out = append(out, t)
		}
	}
	return out
}

// Pick copies a suggested task's title into the query.
func (p *Palette) Pick(t task.Task) {
	p.Query = t.Title
}

// Submit adds the draft as a task, resets the draft and closes the palette.
// A blank query does nothing and reports false.
func (p *Palette) Submit(a Adder) (task.Task, bool) {
	title := strings.TrimSpace(p.Query)
	if title == "" {
		return task.Task{}, false
	}
	t := a.Add(task.Payload{
		Title:     title,
		Priority:  p.Priority,
		DueDate:   p.DueDate,
		Recurring: p.Recurring,
	})
	p.Reset()
	p.Close()
	return t, true
}

// Run executes a named command. Unknown names report false.
func (p *Palette) Run(name string, a Adder, h History) bool {
	switch name {
	case "add":
		_, ok := p.Submit(a)
		return ok
	case "undo":
		return h.Undo()
	case "redo":
		return h.Redo()
	}
	return false
}
