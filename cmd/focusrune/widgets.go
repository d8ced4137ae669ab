package main

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"focusrune/pkg/analytics"
	"focusrune/pkg/category"
	"focusrune/pkg/task"
)

var (
	gray   = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	danger = color.NRGBA{R: 0xC0, G: 0x30, B: 0x30, A: 0xFF}
	accent = color.NRGBA{R: 0x30, G: 0x60, B: 0xA0, A: 0xFF}
)

func newTheme(dark bool) *material.Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	applyPalette(th, dark)
	return th
}

func applyPalette(th *material.Theme, dark bool) {
	if dark {
		th.Palette.Bg = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xFF}
		th.Palette.Fg = color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	} else {
		th.Palette.Bg = color.NRGBA{R: 0xFA, G: 0xFA, B: 0xFA, A: 0xFF}
		th.Palette.Fg = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	}
	th.Palette.ContrastBg = accent
	th.Palette.ContrastFg = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
}

func sidebarColor(dark bool) color.NRGBA {
	if dark {
		return color.NRGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF}
	}
	return color.NRGBA{R: 0xEC, G: 0xEC, B: 0xEC, A: 0xFF}
}

func fill(gtx layout.Context, c color.NRGBA) layout.Dimensions {
	size := gtx.Constraints.Min
	paint.FillShape(gtx.Ops, c, clip.Rect{Max: size}.Op())
	return layout.Dimensions{Size: size}
}

func navBtn(th *material.Theme, btn *widget.Clickable, label string, active bool) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(2), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			b := material.Button(th, btn, label)
			if active {
				b.Background = th.Palette.ContrastBg
				b.Color = th.Palette.ContrastFg
			} else {
				b.Background = color.NRGBA{A: 0}
				b.Color = th.Palette.Fg
			}
			return b.Layout(gtx)
		})
	}
}

func smallBtn(btn *widget.Clickable, label string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		b := material.Button(theme, btn, label)
		b.TextSize = unit.Sp(12)
		b.Inset = layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}
		return b.Layout(gtx)
	}
}

func hgap(gtx layout.Context) layout.Dimensions {
	return layout.Spacer{Width: unit.Dp(8)}.Layout(gtx)
}

func vgap(gtx layout.Context) layout.Dimensions {
	return layout.Spacer{Height: unit.Dp(8)}.Layout(gtx)
}

func priorityColor(p task.Priority) color.NRGBA {
	switch p {
	case task.High:
		return color.NRGBA{R: 0xFF, G: 0x40, B: 0x40, A: 0xFF}
	case task.Medium:
		return color.NRGBA{R: 0xFF, G: 0xA0, B: 0x00, A: 0xFF}
	case task.Low:
		return color.NRGBA{R: 0x00, G: 0xC0, B: 0x00, A: 0xFF}
	}
	return gray
}

// swatch paints a category's colour as a small square.
func swatch(c category.Category) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		size := gtx.Dp(unit.Dp(14))
		col := gray
		if h, ok := category.Hue(c.Color); ok {
			col = hsl(float64(h), 0.7, 0.7)
		}
		rect := image.Rect(0, 0, size, size)
		paint.FillShape(gtx.Ops, col, clip.UniformRRect(rect, size/4).Op(gtx.Ops))
		return layout.Dimensions{Size: rect.Max}
	}
}

func hsl(h, s, l float64) color.NRGBA {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.NRGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 0xFF,
	}
}

// barChart draws one horizontal bar per bucket, scaled to the largest.
func barChart(title string, buckets []analytics.Bucket) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		top := analytics.Max(buckets)
		children := []layout.FlexChild{
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				l := material.Body1(theme, title)
				return l.Layout(gtx)
			}),
			layout.Rigid(vgap),
		}
		for _, b := range buckets {
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							gtx.Constraints.Min.X = gtx.Dp(unit.Dp(90))
							return material.Caption(theme, b.Label).Layout(gtx)
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							full := gtx.Dp(unit.Dp(240))
							w := full * b.Count / top
							h := gtx.Dp(unit.Dp(14))
							if w > 0 {
								paint.FillShape(gtx.Ops, theme.Palette.ContrastBg, clip.Rect{Max: image.Pt(w, h)}.Op())
							}
							return layout.Dimensions{Size: image.Pt(full, h)}
						}),
						layout.Rigid(hgap),
						layout.Rigid(material.Caption(theme, strconv.Itoa(b.Count)).Layout),
					)
				})
			}))
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	}
}
