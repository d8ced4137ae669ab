package main

import (
	"context"
	"log"
	"sync"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"focusrune/pkg/category"
	"focusrune/pkg/journal"
	"focusrune/pkg/palette"
	"focusrune/pkg/selection"
	"focusrune/pkg/shortcut"
	"focusrune/pkg/task"
)

var theme *material.Theme

// Pages
const (
	pageDashboard = iota
	pageTasks
	pageCategories
	pageAnalytics
)

type UI struct {
	tasks      *task.Store
	sel        *selection.Set
	categories category.Store
	journal    *journal.Bus
	keymap     *shortcut.Keymap
	handlers   shortcut.Handlers
	palette    *palette.Palette

	currentPage int
	dark        bool

	// Nav buttons
	navDashboard  widget.Clickable
	navTasks      widget.Clickable
	navCategories widget.Clickable
	navAnalytics  widget.Clickable

	// Header
	undoBtn  widget.Clickable
	redoBtn  widget.Clickable
	themeBtn widget.Clickable
	cmdBtn   widget.Clickable

	// Dashboard
	mu       sync.Mutex
	activity []journal.Entry

	tasksPage
	categoriesPage
	analyticsPage
	palettePane
}

func newUI(tasks *task.Store, cats category.Store, j *journal.Bus, dark bool) *UI {
	ui := &UI{
		tasks:      tasks,
		sel:        selection.New(),
		categories: cats,
		journal:    j,
		keymap:     shortcut.Default(),
		palette:    palette.New(),
		dark:       dark,
	}
	ui.handlers = shortcut.Handlers{
		shortcut.TogglePalette: ui.togglePalette,
		shortcut.Undo:          func() { ui.tasks.Undo() },
		shortcut.Redo:          func() { ui.tasks.Redo() },
		shortcut.SelectAll:     ui.selectAll,
	}
	ui.initTasksPage()
	ui.initCategoriesPage()
	ui.initPalette()
	return ui
}

func (ui *UI) run(ctx context.Context, w *app.Window) error {
	changes := ui.tasks.Subscribe()
	defer ui.tasks.Unsubscribe(changes)
	go func() {
		for range changes {
			w.Invalidate()
		}
	}()
	go ui.followActivity(ctx, w)

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			ui.handleKeys(gtx)
			ui.handleClicks(gtx)
			ui.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// handleKeys routes global chords through the keymap. Escape always closes
// the palette.
func (ui *UI) handleKeys(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "K", Required: key.ModShortcut},
			key.Filter{Name: "Z", Required: key.ModShortcut, Optional: key.ModShift},
			key.Filter{Name: "A", Required: key.ModShortcut},
			key.Filter{Name: key.NameEscape},
		)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		if ke.Name == key.NameEscape {
			ui.palette.Close()
			continue
		}
		ui.keymap.Dispatch(shortcut.Chord{
			Key:      string(ke.Name),
			Shortcut: ke.Modifiers.Contain(key.ModShortcut),
			Shift:    ke.Modifiers.Contain(key.ModShift),
		}, ui.handlers)
	}
}

func (ui *UI) selectAll() {
	ui.sel.SelectAll(ui.liveIDs())
}

func (ui *UI) liveIDs() []string {
	tasks := ui.tasks.Tasks()
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func (ui *UI) handleClicks(gtx layout.Context) {
	if ui.navDashboard.Clicked(gtx) {
		ui.currentPage = pageDashboard
	}
	if ui.navTasks.Clicked(gtx) {
		ui.currentPage = pageTasks
	}
	if ui.navCategories.Clicked(gtx) {
		ui.currentPage = pageCategories
	}
	if ui.navAnalytics.Clicked(gtx) {
		ui.currentPage = pageAnalytics
	}
	if ui.undoBtn.Clicked(gtx) {
		ui.tasks.Undo()
	}
	if ui.redoBtn.Clicked(gtx) {
		ui.tasks.Redo()
	}
	if ui.themeBtn.Clicked(gtx) {
		ui.dark = !ui.dark
		applyPalette(theme, ui.dark)
	}
	if ui.cmdBtn.Clicked(gtx) {
		ui.togglePalette()
	}

	ui.handleTaskClicks(gtx)
	ui.handleCategoryClicks(gtx)
	ui.handleAnalyticsClicks(gtx)
	ui.handlePaletteClicks(gtx)
}

func (ui *UI) layout(gtx layout.Context) layout.Dimensions {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return fill(gtx, theme.Palette.Bg)
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Rigid(ui.layoutNav),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
							layout.Rigid(ui.layoutHeader),
							layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
							layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
								switch ui.currentPage {
								case pageTasks:
									return ui.layoutTasks(gtx)
								case pageCategories:
									return ui.layoutCategories(gtx)
								case pageAnalytics:
									return ui.layoutAnalytics(gtx)
								default:
									return ui.layoutDashboard(gtx)
								}
							}),
						)
					})
				}),
			)
		}),
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			if !ui.palette.Open() {
				return layout.Dimensions{}
			}
			return ui.layoutPalette(gtx)
		}),
	)
}

func (ui *UI) layoutNav(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min.X = gtx.Dp(unit.Dp(180))
	gtx.Constraints.Max.X = gtx.Dp(unit.Dp(180))
	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return fill(gtx, sidebarColor(ui.dark))
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Top: unit.Dp(16), Bottom: unit.Dp(16), Left: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return material.H6(theme, "FocusRune").Layout(gtx)
					})
				}),
				layout.Rigid(navBtn(theme, &ui.navDashboard, "Dashboard", ui.currentPage == pageDashboard)),
				layout.Rigid(navBtn(theme, &ui.navTasks, "Tasks", ui.currentPage == pageTasks)),
				layout.Rigid(navBtn(theme, &ui.navCategories, "Categories", ui.currentPage == pageCategories)),
				layout.Rigid(navBtn(theme, &ui.navAnalytics, "Analytics", ui.currentPage == pageAnalytics)),
			)
		},
	)
}

func (ui *UI) layoutHeader(gtx layout.Context) layout.Dimensions {
	themeLabel := "Light mode"
	if !ui.dark {
		themeLabel = "Dark mode"
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, layout.Spacer{}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Button(theme, &ui.cmdBtn, "Commands").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if !ui.tasks.CanUndo() {
				gtx = gtx.Disabled()
			}
			return material.Button(theme, &ui.undoBtn, "Undo").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if !ui.tasks.CanRedo() {
				gtx = gtx.Disabled()
			}
			return material.Button(theme, &ui.redoBtn, "Redo").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Button(theme, &ui.themeBtn, themeLabel).Layout(gtx)
		}),
	)
}

// Data fetching

// followActivity refreshes the dashboard feed whenever the journal records
// something.
func (ui *UI) followActivity(ctx context.Context, w *app.Window) {
	entries := ui.journal.Subscribe()
	defer ui.journal.Unsubscribe(entries)
	ui.fetchActivity(ctx, w)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-entries:
			if !ok {
				return
			}
			ui.fetchActivity(ctx, w)
		}
	}
}

func (ui *UI) fetchActivity(ctx context.Context, w *app.Window) {
	entries, err := ui.journal.Recent(ctx, 8)
	if err != nil {
		log.Printf("fetch activity: %v", err)
		return
	}
	ui.mu.Lock()
	changed := len(entries) != len(ui.activity) || (len(entries) > 0 && entries[0].ID != ui.activity[0].ID)
	ui.activity = entries
	ui.mu.Unlock()
	if changed {
		w.Invalidate()
	}
}
