package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"focusrune/pkg/task"
)

type tasksPage struct {
	taskList widget.List

	// Add form
	titleEditor widget.Editor
	dueEditor   widget.Editor
	priority    widget.Enum
	recurrence  widget.Enum
	quickDates  [3]widget.Clickable
	addBtn      widget.Clickable
	formError   string

	// Bulk bar
	completeSelBtn widget.Clickable
	deleteSelBtn   widget.Clickable
	clearSelBtn    widget.Clickable
	selectAllBtn   widget.Clickable

	rows map[string]*taskRow
}

type taskRow struct {
	selected widget.Bool
	done     widget.Bool
	editBtn  widget.Clickable
	saveBtn  widget.Clickable
	cancel   widget.Clickable
	deleteB  widget.Clickable
	upBtn    widget.Clickable
	downBtn  widget.Clickable

	editing    bool
	title      widget.Editor
	due        widget.Editor
	priority   widget.Enum
	recurrence widget.Enum
	err        string
}

const noneKey = "none"

func (ui *UI) initTasksPage() {
	ui.taskList.Axis = layout.Vertical
	ui.titleEditor.SingleLine = true
	ui.titleEditor.Submit = true
	ui.dueEditor.SingleLine = true
	ui.priority.Value = string(task.Medium)
	ui.recurrence.Value = noneKey
	ui.rows = make(map[string]*taskRow)
}

func (ui *UI) row(id string) *taskRow {
	r, ok := ui.rows[id]
	if !ok {
		r = &taskRow{}
		r.title.SingleLine = true
		r.title.Submit = true
		r.due.SingleLine = true
		ui.rows[id] = r
	}
	return r
}

func enumPriority(e *widget.Enum) task.Priority {
	if e.Value == noneKey {
		return ""
	}
	return task.Priority(e.Value)
}

func enumRecurrence(e *widget.Enum) task.Recurrence {
	if e.Value == noneKey {
		return ""
	}
	return task.Recurrence(e.Value)
}

func (ui *UI) submitNewTask() {
	due, err := task.ParseDate(ui.dueEditor.Text())
	if err != nil {
		ui.formError = err.Error()
		return
	}
	p := task.Payload{
		Title:     strings.TrimSpace(ui.titleEditor.Text()),
		Priority:  enumPriority(&ui.priority),
		DueDate:   due,
		Recurring: enumRecurrence(&ui.recurrence),
	}
	if err := p.Validate(); err != nil {
		ui.formError = err.Error()
		return
	}
	ui.tasks.Add(p)
	ui.formError = ""
	ui.titleEditor.SetText("")
	ui.dueEditor.SetText("")
	ui.priority.Value = string(task.Medium)
	ui.recurrence.Value = noneKey
}

// deleteTask removes a task and drops it from the selection.
func (ui *UI) deleteTask(id string) {
	ui.tasks.Delete(id)
	ui.sel.Retain(ui.liveIDs())
}

func (r *taskRow) startEdit(t task.Task) {
	r.editing = true
	r.err = ""
	r.title.SetText(t.Title)
	r.due.SetText(t.DueDate.String())
	r.priority.Value = string(t.Priority)
	if t.Priority == "" {
		r.priority.Value = noneKey
	}
	r.recurrence.Value = string(t.Recurring)
	if t.Recurring == "" {
		r.recurrence.Value = noneKey
	}
}

func (r *taskRow) patch() (task.Patch, error) {
	title := strings.TrimSpace(r.title.Text())
	due, err := task.ParseDate(r.due.Text())
	if err != nil {
		return task.Patch{}, err
	}
	prio := enumPriority(&r.priority)
	rec := enumRecurrence(&r.recurrence)
	p := task.Patch{Title: &title, Priority: &prio, DueDate: &due, Recurring: &rec}
	return p, p.Validate()
}

func (ui *UI) handleTaskClicks(gtx layout.Context) {
	for {
		ev, ok := ui.titleEditor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.SubmitEvent); ok {
			ui.submitNewTask()
		}
	}
	if ui.addBtn.Clicked(gtx) {
		ui.submitNewTask()
	}
	for i, q := range task.QuickDates(time.Now()) {
		if ui.quickDates[i].Clicked(gtx) {
			ui.dueEditor.SetText(q.Date.String())
		}
	}

	if ui.completeSelBtn.Clicked(gtx) {
		ui.sel.CompleteSelected(ui.tasks)
	}
	if ui.deleteSelBtn.Clicked(gtx) {
		ui.sel.DeleteSelected(ui.tasks)
	}
	if ui.clearSelBtn.Clicked(gtx) {
		ui.sel.Clear()
	}
	if ui.selectAllBtn.Clicked(gtx) {
		ui.selectAll()
	}

	tasks := ui.tasks.Tasks()
	live := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		live[t.ID] = true
		r := ui.row(t.ID)
		if r.selected.Update(gtx) {
			ui.sel.Toggle(t.ID)
		}
		if r.done.Update(gtx) {
			ui.tasks.Toggle(t.ID)
		}
		if r.editBtn.Clicked(gtx) {
			r.startEdit(t)
		}
		save := r.saveBtn.Clicked(gtx)
		for {
			ev, ok := r.title.Update(gtx)
			if !ok {
				break
			}
			if _, ok := ev.(widget.SubmitEvent); ok {
				save = true
			}
		}
		if save && r.editing {
			p, err := r.patch()
			if err != nil {
				r.err = err.Error()
			} else {
				ui.tasks.Edit(t.ID, p)
				r.editing = false
			}
		}
		if r.cancel.Clicked(gtx) {
			r.editing = false
		}
		if r.deleteB.Clicked(gtx) {
			ui.deleteTask(t.ID)
		}
		if r.upBtn.Clicked(gtx) && i > 0 {
			if err := ui.tasks.Reorder(i, i-1); err != nil {
				log.Printf("move up: %v", err)
			}
		}
		if r.downBtn.Clicked(gtx) && i < len(tasks)-1 {
			if err := ui.tasks.Reorder(i, i+1); err != nil {
				log.Printf("move down: %v", err)
			}
		}
	}
	for id := range ui.rows {
		if !live[id] {
			delete(ui.rows, id)
		}
	}
}

func (ui *UI) layoutTasks(gtx layout.Context) layout.Dimensions {
	tasks := ui.tasks.Tasks()
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H5(theme, "Tasks").Layout),
		layout.Rigid(vgap),
		layout.Rigid(ui.layoutAddForm),
		layout.Rigid(vgap),
		layout.Rigid(ui.layoutBulkBar),
		layout.Rigid(vgap),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if len(tasks) == 0 {
				l := material.Body1(theme, "No tasks. Add one above or press Mod+K.")
				l.Color = gray
				return l.Layout(gtx)
			}
			return material.List(theme, &ui.taskList).Layout(gtx, len(tasks), func(gtx layout.Context, i int) layout.Dimensions {
				return ui.layoutTaskRow(gtx, tasks, i)
			})
		}),
	)
}

func (ui *UI) layoutAddForm(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, material.Editor(theme, &ui.titleEditor, "What needs doing?").Layout),
				layout.Rigid(hgap),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Min.X = gtx.Dp(unit.Dp(110))
					gtx.Constraints.Max.X = gtx.Constraints.Min.X
					return material.Editor(theme, &ui.dueEditor, "YYYY-MM-DD").Layout(gtx)
				}),
				layout.Rigid(hgap),
				layout.Rigid(material.Button(theme, &ui.addBtn, "Add").Layout),
			)
		}),
		layout.Rigid(vgap),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			quick := task.QuickDates(time.Now())
			children := []layout.FlexChild{
				layout.Rigid(priorityPicker(&ui.priority)),
				layout.Rigid(hgap),
				layout.Rigid(recurrencePicker(&ui.recurrence)),
				layout.Rigid(hgap),
			}
			for i := range quick {
				children = append(children,
					layout.Rigid(smallBtn(&ui.quickDates[i], quick[i].Label)),
					layout.Rigid(hgap),
				)
			}
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if ui.formError == "" {
				return layout.Dimensions{}
			}
			l := material.Caption(theme, ui.formError)
			l.Color = danger
			return l.Layout(gtx)
		}),
	)
}

func priorityPicker(e *widget.Enum) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Rigid(material.Caption(theme, "Priority").Layout),
		}
		for _, p := range task.Priorities {
			children = append(children, layout.Rigid(material.RadioButton(theme, e, string(p), p.Label()).Layout))
		}
		children = append(children, layout.Rigid(material.RadioButton(theme, e, noneKey, "None").Layout))
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
	}
}

func recurrencePicker(e *widget.Enum) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Rigid(material.Caption(theme, "Repeats").Layout),
		}
		for _, r := range task.Recurrences {
			children = append(children, layout.Rigid(material.RadioButton(theme, e, string(r), r.Label()).Layout))
		}
		children = append(children, layout.Rigid(material.RadioButton(theme, e, noneKey, "None").Layout))
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
	}
}

func (ui *UI) layoutBulkBar(gtx layout.Context) layout.Dimensions {
	n := ui.sel.Len()
	if n == 0 {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(smallBtn(&ui.selectAllBtn, "Select all")),
		)
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(material.Body2(theme, fmt.Sprintf("%d selected", n)).Layout),
		layout.Rigid(hgap),
		layout.Rigid(smallBtn(&ui.completeSelBtn, "Complete")),
		layout.Rigid(hgap),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			b := material.Button(theme, &ui.deleteSelBtn, "Delete")
			b.TextSize = unit.Sp(12)
			b.Background = danger
			return b.Layout(gtx)
		}),
		layout.Rigid(hgap),
		layout.Rigid(smallBtn(&ui.clearSelBtn, "Clear")),
		layout.Rigid(hgap),
		layout.Rigid(smallBtn(&ui.selectAllBtn, "Select all")),
	)
}

func (ui *UI) layoutTaskRow(gtx layout.Context, tasks []task.Task, i int) layout.Dimensions {
	t := tasks[i]
	r := ui.row(t.ID)
	r.selected.Value = ui.sel.Contains(t.ID)
	r.done.Value = t.Completed

	return layout.Inset{Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		if r.editing {
			return ui.layoutRowEditor(gtx, r)
		}
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.CheckBox(theme, &r.selected, "").Layout),
			layout.Rigid(material.CheckBox(theme, &r.done, "").Layout),
			layout.Rigid(hgap),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						l := material.Body1(theme, t.Title)
						if t.Completed {
							l.Color = gray
						} else {
							l.Font.Weight = font.Bold
						}
						return l.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return layout.Flex{}.Layout(gtx,
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								l := material.Caption(theme, t.Priority.Label())
								l.Color = priorityColor(t.Priority)
								return l.Layout(gtx)
							}),
							layout.Rigid(hgap),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								if t.DueDate.IsZero() {
									return layout.Dimensions{}
								}
								l := material.Caption(theme, "Due "+t.DueDate.String())
								if !t.Completed && t.DueDate.Before(task.DateOf(time.Now())) {
									l.Color = danger
								}
								return l.Layout(gtx)
							}),
							layout.Rigid(hgap),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								if t.Recurring == "" {
									return layout.Dimensions{}
								}
								l := material.Caption(theme, "Repeats "+t.Recurring.Label())
								l.Color = gray
								return l.Layout(gtx)
							}),
						)
					}),
				)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if i == 0 {
					gtx = gtx.Disabled()
				}
				return smallBtn(&r.upBtn, "Up")(gtx)
			}),
			layout.Rigid(hgap),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if i == len(tasks)-1 {
					gtx = gtx.Disabled()
				}
				return smallBtn(&r.downBtn, "Down")(gtx)
			}),
			layout.Rigid(hgap),
			layout.Rigid(smallBtn(&r.editBtn, "Edit")),
			layout.Rigid(hgap),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				b := material.Button(theme, &r.deleteB, "Delete")
				b.TextSize = unit.Sp(12)
				b.Background = danger
				return b.Layout(gtx)
			}),
		)
	})
}

func (ui *UI) layoutRowEditor(gtx layout.Context, r *taskRow) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, material.Editor(theme, &r.title, "Title").Layout),
				layout.Rigid(hgap),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Min.X = gtx.Dp(unit.Dp(110))
					gtx.Constraints.Max.X = gtx.Constraints.Min.X
					return material.Editor(theme, &r.due, "YYYY-MM-DD").Layout(gtx)
				}),
				layout.Rigid(hgap),
				layout.Rigid(smallBtn(&r.saveBtn, "Save")),
				layout.Rigid(hgap),
				layout.Rigid(smallBtn(&r.cancel, "Cancel")),
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(priorityPicker(&r.priority)),
				layout.Rigid(hgap),
				layout.Rigid(recurrencePicker(&r.recurrence)),
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if r.err == "" {
				return layout.Dimensions{}
			}
			l := material.Caption(theme, r.err)
			l.Color = danger
			return l.Layout(gtx)
		}),
	)
}
