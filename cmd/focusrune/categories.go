package main

import (
	"context"
	"log"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"focusrune/pkg/category"
)

type categoriesPage struct {
	catList   widget.List
	catName   widget.Editor
	catSearch widget.Editor
	catAddBtn widget.Clickable
	catError  string
	catRows   map[string]*categoryRow
	shownCats []category.Category
}

type categoryRow struct {
	renameBtn widget.Clickable
	saveBtn   widget.Clickable
	deleteBtn widget.Clickable
	upBtn     widget.Clickable
	downBtn   widget.Clickable
	renaming  bool
	name      widget.Editor
}

func (ui *UI) initCategoriesPage() {
	ui.catList.Axis = layout.Vertical
	ui.catName.SingleLine = true
	ui.catName.Submit = true
	ui.catSearch.SingleLine = true
	ui.catRows = make(map[string]*categoryRow)
}

func (ui *UI) catRow(id string) *categoryRow {
	r, ok := ui.catRows[id]
	if !ok {
		r = &categoryRow{}
		r.name.SingleLine = true
		r.name.Submit = true
		ui.catRows[id] = r
	}
	return r
}

func (ui *UI) addCategory() {
	if _, err := ui.categories.Add(context.Background(), ui.catName.Text()); err != nil {
		ui.catError = err.Error()
		return
	}
	ui.catError = ""
	ui.catName.SetText("")
}

// loadCategories refreshes the visible list. Reordering is only offered
// when the search box is empty, so indexes match the full list.
func (ui *UI) loadCategories() {
	ctx := context.Background()
	all, err := ui.categories.List(ctx)
	if err != nil {
		log.Printf("list categories: %v", err)
		return
	}
	ui.shownCats = all
	if q := ui.catSearch.Text(); q != "" {
		if ui.shownCats, err = ui.categories.Search(ctx, q); err != nil {
			log.Printf("search categories: %v", err)
		}
	}
}

func (ui *UI) handleCategoryClicks(gtx layout.Context) {
	ctx := context.Background()
	for {
		ev, ok := ui.catName.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.SubmitEvent); ok {
			ui.addCategory()
		}
	}
	if ui.catAddBtn.Clicked(gtx) {
		ui.addCategory()
	}

	ui.loadCategories()
	filtered := ui.catSearch.Text() != ""
	for i, c := range ui.shownCats {
		r := ui.catRow(c.ID)
		if r.renameBtn.Clicked(gtx) {
			r.renaming = true
			r.name.SetText(c.Name)
		}
		save := r.saveBtn.Clicked(gtx)
		for {
			ev, ok := r.name.Update(gtx)
			if !ok {
				break
			}
			if _, ok := ev.(widget.SubmitEvent); ok {
				save = true
			}
		}
		if save && r.renaming {
			if _, err := ui.categories.Rename(ctx, c.ID, r.name.Text()); err != nil {
				log.Printf("rename category: %v", err)
			}
			r.renaming = false
		}
		if r.deleteBtn.Clicked(gtx) {
			if err := ui.categories.Delete(ctx, c.ID); err != nil {
				log.Printf("delete category: %v", err)
			}
			delete(ui.catRows, c.ID)
		}
		if filtered {
			continue
		}
		if r.upBtn.Clicked(gtx) && i > 0 {
			if err := ui.categories.Reorder(ctx, i, i-1); err != nil {
				log.Printf("move category: %v", err)
			}
		}
		if r.downBtn.Clicked(gtx) && i < len(ui.shownCats)-1 {
			if err := ui.categories.Reorder(ctx, i, i+1); err != nil {
				log.Printf("move category: %v", err)
			}
		}
	}
	ui.loadCategories()
}

func (ui *UI) layoutCategories(gtx layout.Context) layout.Dimensions {
	cats := ui.shownCats
	filtered := ui.catSearch.Text() != ""
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H5(theme, "Categories").Layout),
		layout.Rigid(vgap),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, material.Editor(theme, &ui.catName, "New category name").Layout),
				layout.Rigid(hgap),
				layout.Rigid(material.Button(theme, &ui.catAddBtn, "Add").Layout),
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if ui.catError == "" {
				return layout.Dimensions{}
			}
			l := material.Caption(theme, ui.catError)
			l.Color = danger
			return l.Layout(gtx)
		}),
		layout.Rigid(vgap),
		layout.Rigid(material.Editor(theme, &ui.catSearch, "Search categories").Layout),
		layout.Rigid(vgap),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if len(cats) == 0 {
				msg := "No categories yet."
				if filtered {
					msg = "No categories match."
				}
				l := material.Body1(theme, msg)
				l.Color = gray
				return l.Layout(gtx)
			}
			return material.List(theme, &ui.catList).Layout(gtx, len(cats), func(gtx layout.Context, i int) layout.Dimensions {
				c := cats[i]
				r := ui.catRow(c.ID)
				return layout.Inset{Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(swatch(c)),
						layout.Rigid(hgap),
						layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
							if r.renaming {
								return material.Editor(theme, &r.name, "Name").Layout(gtx)
							}
							return material.Body1(theme, c.Name).Layout(gtx)
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							if filtered || i == 0 {
								gtx = gtx.Disabled()
							}
							return smallBtn(&r.upBtn, "Up")(gtx)
						}),
						layout.Rigid(hgap),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							if filtered || i == len(cats)-1 {
								gtx = gtx.Disabled()
							}
							return smallBtn(&r.downBtn, "Down")(gtx)
						}),
						layout.Rigid(hgap),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							if r.renaming {
								return smallBtn(&r.saveBtn, "Save")(gtx)
							}
							return smallBtn(&r.renameBtn, "Rename")(gtx)
						}),
						layout.Rigid(hgap),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							b := material.Button(theme, &r.deleteBtn, "Delete")
							b.TextSize = unit.Sp(12)
							b.Background = danger
							return b.Layout(gtx)
						}),
					)
				})
			})
		}),
	)
}
