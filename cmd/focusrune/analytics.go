package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"focusrune/pkg/analytics"
	"focusrune/pkg/report"
	"focusrune/pkg/task"
)

type analyticsPage struct {
	exportBtns  [4]widget.Clickable
	exportMsg   string
	chartList   widget.List
	activityLst widget.List
}

func (ui *UI) handleAnalyticsClicks(gtx layout.Context) {
	for i, format := range report.Formats {
		if ui.exportBtns[i].Clicked(gtx) {
			ui.exportMsg = ui.export(format)
		}
	}
}

// export writes the current list to focusrune-<date>.<format> in the
// working directory and returns a status line.
func (ui *UI) export(format string) string {
	now := time.Now()
	name := fmt.Sprintf("focusrune-%s.%s", now.Format("2006-01-02"), format)
	f, err := os.Create(name)
	if err != nil {
		return "Export failed: " + err.Error()
	}
	defer f.Close()
	if err := report.Export(f, format, ui.tasks.Tasks(), now); err != nil {
		return "Export failed: " + err.Error()
	}
	return "Wrote " + name
}

func (ui *UI) layoutAnalytics(gtx layout.Context) layout.Dimensions {
	st := analytics.Summarize(ui.tasks.Tasks(), task.DateOf(time.Now()))
	ui.chartList.Axis = layout.Vertical

	sections := []layout.Widget{
		func(gtx layout.Context) layout.Dimensions {
			return material.Body1(theme, fmt.Sprintf("%d tasks, %d completed (%.0f%%), %d overdue, %d due today",
				st.Total, st.Completed, st.CompletionRate*100, st.Overdue, st.DueToday)).Layout(gtx)
		},
		barChart("By priority", st.ByPriority),
		barChart("By recurrence", st.ByRecurrence),
		barChart("Due in the next week", st.DueSoon),
		func(gtx layout.Context) layout.Dimensions {
			children := []layout.FlexChild{
				layout.Rigid(material.Body1(theme, "Export").Layout),
				layout.Rigid(hgap),
			}
			for i, format := range report.Formats {
				children = append(children, layout.Rigid(smallBtn(&ui.exportBtns[i], format)), layout.Rigid(hgap))
			}
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				l := material.Caption(theme, ui.exportMsg)
				l.Color = gray
				return l.Layout(gtx)
			}))
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
		},
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H5(theme, "Analytics").Layout),
		layout.Rigid(vgap),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return material.List(theme, &ui.chartList).Layout(gtx, len(sections), func(gtx layout.Context, i int) layout.Dimensions {
				return layout.Inset{Bottom: unit.Dp(16)}.Layout(gtx, sections[i])
			})
		}),
	)
}

func (ui *UI) layoutDashboard(gtx layout.Context) layout.Dimensions {
	st := ui.tasks.State()
	sum := analytics.Summarize(st.Tasks, task.DateOf(time.Now()))
	cats, _ := ui.categories.List(context.Background())

	ui.mu.Lock()
	activity := ui.activity
	ui.mu.Unlock()
	ui.activityLst.Axis = layout.Vertical

	line := func(s string) layout.FlexChild {
		return layout.Rigid(material.Body1(theme, s).Layout)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H5(theme, "Dashboard").Layout),
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
		line(fmt.Sprintf("Tasks: %d", sum.Total)),
		line(fmt.Sprintf("Pending: %d", sum.Pending)),
		line(fmt.Sprintf("Overdue: %d", sum.Overdue)),
		line(fmt.Sprintf("Selected: %d", ui.sel.Len())),
		line(fmt.Sprintf("Categories: %d", len(cats))),
		line(fmt.Sprintf("Undo steps: %d   Redo steps: %d", st.Past, st.Future)),
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			l := material.Body2(theme, "Shortcuts")
			l.Font.Weight = font.Bold
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			var rows []layout.FlexChild
			for _, h := range ui.keymap.Help() {
				rows = append(rows, layout.Rigid(material.Caption(theme, h).Layout))
			}
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx, rows...)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			l := material.Body2(theme, "Recent activity")
			l.Font.Weight = font.Bold
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return material.List(theme, &ui.activityLst).Layout(gtx, len(activity), func(gtx layout.Context, i int) layout.Dimensions {
				e := activity[i]
				text := fmt.Sprintf("[%s] %s", e.Timestamp.Local().Format("15:04:05"), e.Type)
				if title, ok := e.Content["title"].(string); ok {
					text += "  " + title
				}
				l := material.Caption(theme, text)
				l.Color = gray
				return l.Layout(gtx)
			})
		}),
	)
}
