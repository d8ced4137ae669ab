package main

import (
	"image/color"
	"time"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"focusrune/pkg/palette"
	"focusrune/pkg/task"
)

const maxSuggestions = 5

type palettePane struct {
	palQuery      widget.Editor
	palPriority   widget.Enum
	palRecurrence widget.Enum
	palDates      [3]widget.Clickable
	palClearDate  widget.Clickable
	palSuggest    [maxSuggestions]widget.Clickable
	palCmds       []widget.Clickable
	palScrim      widget.Clickable
	palCard       widget.Clickable
	palFocus      bool
}

func (ui *UI) initPalette() {
	ui.palQuery.SingleLine = true
	ui.palQuery.Submit = true
	ui.palCmds = make([]widget.Clickable, len(palette.Commands))
	ui.syncPaletteWidgets()
}

// syncPaletteWidgets copies the draft into the pickers.
func (ui *UI) syncPaletteWidgets() {
	p := ui.palette
	ui.palQuery.SetText(p.Query)
	ui.palPriority.Value = string(p.Priority)
	if p.Priority == "" {
		ui.palPriority.Value = noneKey
	}
	ui.palRecurrence.Value = string(p.Recurring)
	if p.Recurring == "" {
		ui.palRecurrence.Value = noneKey
	}
}

func (ui *UI) togglePalette() {
	ui.palette.Toggle()
	if ui.palette.Open() {
		ui.syncPaletteWidgets()
		ui.palFocus = true
	}
}

func (ui *UI) submitPalette() {
	if _, ok := ui.palette.Submit(ui.tasks); ok {
		ui.syncPaletteWidgets()
	}
}

func (ui *UI) handlePaletteClicks(gtx layout.Context) {
	p := ui.palette
	if !p.Open() {
		return
	}
	for {
		ev, ok := ui.palQuery.Update(gtx)
		if !ok {
			break
		}
		switch ev.(type) {
		case widget.ChangeEvent:
			p.Query = ui.palQuery.Text()
		case widget.SubmitEvent:
			p.Query = ui.palQuery.Text()
			ui.submitPalette()
		}
	}
	if ui.palPriority.Update(gtx) {
		p.Priority = enumPriority(&ui.palPriority)
	}
	if ui.palRecurrence.Update(gtx) {
		p.Recurring = enumRecurrence(&ui.palRecurrence)
	}
	for i, q := range task.QuickDates(time.Now()) {
		if ui.palDates[i].Clicked(gtx) {
			p.DueDate = q.Date
		}
	}
	if ui.palClearDate.Clicked(gtx) {
		p.DueDate = task.Date{}
	}
	suggestions := p.Suggestions(ui.tasks.Tasks())
	for i := range ui.palSuggest {
		if ui.palSuggest[i].Clicked(gtx) && i < len(suggestions) {
			p.Pick(suggestions[i])
			ui.palQuery.SetText(p.Query)
		}
	}
	for i, c := range palette.Commands {
		if ui.palCmds[i].Clicked(gtx) {
			if p.Run(c.Name, ui.tasks, ui.tasks) && c.Name == "add" {
				ui.syncPaletteWidgets()
			}
		}
	}
	if ui.palScrim.Clicked(gtx) {
		p.Close()
	}
	// swallow clicks on the card background
	ui.palCard.Clicked(gtx)
}

func (ui *UI) layoutPalette(gtx layout.Context) layout.Dimensions {
	if ui.palFocus {
		gtx.Execute(key.FocusCmd{Tag: &ui.palQuery})
		ui.palFocus = false
	}
	p := ui.palette
	suggestions := p.Suggestions(ui.tasks.Tasks())
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return layout.Stack{Alignment: layout.N}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return ui.palScrim.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return fill(gtx, color.NRGBA{A: 0xA0})
			})
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(80)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Max.X = gtx.Dp(unit.Dp(560))
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return ui.palCard.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Background{}.Layout(gtx,
						func(gtx layout.Context) layout.Dimensions {
							return fill(gtx, sidebarColor(ui.dark))
						},
						func(gtx layout.Context) layout.Dimensions {
							return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								return ui.layoutPaletteBody(gtx, suggestions)
							})
						},
					)
				})
			})
		}),
	)
}

func (ui *UI) layoutPaletteBody(gtx layout.Context, suggestions []task.Task) layout.Dimensions {
	p := ui.palette
	due := "No due date"
	if !p.DueDate.IsZero() {
		due = "Due " + p.DueDate.String()
	}

	children := []layout.FlexChild{
		layout.Rigid(material.Editor(theme, &ui.palQuery, "Type a task title and press Enter").Layout),
		layout.Rigid(vgap),
		layout.Rigid(priorityPicker(&ui.palPriority)),
		layout.Rigid(recurrencePicker(&ui.palRecurrence)),
		layout.Rigid(vgap),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			quick := task.QuickDates(time.Now())
			row := []layout.FlexChild{
				layout.Rigid(material.Caption(theme, due).Layout),
				layout.Rigid(hgap),
			}
			for i := range quick {
				row = append(row, layout.Rigid(smallBtn(&ui.palDates[i], quick[i].Label)), layout.Rigid(hgap))
			}
			row = append(row, layout.Rigid(smallBtn(&ui.palClearDate, "Clear")))
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx, row...)
		}),
	}

	if len(suggestions) > 0 {
		children = append(children,
			layout.Rigid(vgap),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				l := material.Caption(theme, "Suggestions")
				l.Color = gray
				return l.Layout(gtx)
			}),
		)
		for i, t := range suggestions {
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return ui.palSuggest[i].Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(2)}.Layout(gtx, material.Body2(theme, t.Title).Layout)
				})
			}))
		}
	}

	cmds := []layout.FlexChild{}
	for i, c := range palette.Commands {
		cmds = append(cmds, layout.Rigid(smallBtn(&ui.palCmds[i], c.Label)), layout.Rigid(hgap))
	}
	children = append(children,
		layout.Rigid(vgap),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx, cmds...)
		}),
	)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}
