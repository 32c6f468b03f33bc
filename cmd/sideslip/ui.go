// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	sideslip "github.com/viifo/sideslip/widget"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// UI is the demo window content.
type UI struct {
	th     *material.Theme
	title  string
	slip   sideslip.SideSlip
	edge   sideslip.Edge
	width  unit.Dp
	margin unit.Dp
	status string

	menuBtn  widget.Clickable
	openBtn  widget.Clickable
	closeBtn widget.Clickable
	menuIcon *widget.Icon

	chips    widget.List
	chipBtns []widget.Clickable
	menu     widget.List
	items    []widget.Clickable
	selected int
}

// statusLog logs the panel status.
type statusLog struct {
	log *slog.Logger
}

var chipLabels = []string{"All", "Inbox", "Starred", "Snoozed", "Sent", "Drafts", "Spam", "Trash"}

func newUI(cfg Config, log *slog.Logger) (*UI, error) {
	edge, err := cfg.edge()
	if err != nil {
		return nil, err
	}
	icon, err := widget.NewIcon(icons.NavigationMenu)
	if err != nil {
		return nil, fmt.Errorf("menu icon: %w", err)
	}
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	u := &UI{
		th:       th,
		title:    cfg.Title,
		edge:     edge,
		width:    unit.Dp(cfg.PanelWidth),
		margin:   unit.Dp(cfg.Margin),
		status:   sideslip.Closed.String(),
		menuIcon: icon,
		chipBtns: make([]widget.Clickable, len(chipLabels)),
		items:    make([]widget.Clickable, cfg.Items),
	}
	u.slip.Callback = statusLog{log: log}
	u.slip.MinVelocity = unit.Dp(cfg.MinVelocity)
	u.slip.MaxVelocity = unit.Dp(cfg.MaxVelocity)
	u.chips.Axis = layout.Horizontal
	u.menu.Axis = layout.Vertical
	return u, nil
}

func (u *UI) Layout(gtx C) D {
	if (u.menuBtn.Clicked(gtx) || u.openBtn.Clicked(gtx)) && !u.slip.IsOpen() {
		u.slip.Open()
	}
	if u.closeBtn.Clicked(gtx) && u.slip.IsOpen() {
		u.slip.Close()
	}
	for i := range u.items {
		if u.items[i].Clicked(gtx) {
			u.selected = i
			u.slip.Close()
		}
	}
	for {
		e, ok := u.slip.Update(gtx)
		if !ok {
			break
		}
		if e.Kind != sideslip.Dragging {
			u.status = e.Kind.String()
		}
	}
	return u.slip.Layout(gtx,
		sideslip.SideChild{
			Params: sideslip.ChildParams{Margin: layout.UniformInset(u.margin)},
			Widget: u.layoutContent,
		},
		sideslip.SideChild{
			Params: sideslip.ChildParams{Edge: u.edge, Width: u.width},
			Widget: u.layoutPanel,
		},
	)
}

func (u *UI) layoutContent(gtx C) D {
	size := gtx.Constraints.Min
	paint.FillShape(gtx.Ops, u.th.Palette.Bg, clip.Rect{Max: size}.Op())
	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(u.layoutBar),
		layout.Rigid(u.layoutChips),
		layout.Flexed(1, u.layoutBody),
	)
	// Dim the content as the panel covers it.
	if f := u.slip.Offset(); f > 0 {
		paint.FillShape(gtx.Ops, color.NRGBA{A: uint8(f * 0x60)}, clip.Rect{Max: size}.Op())
	}
	return D{Size: size}
}

func (u *UI) layoutBar(gtx C) D {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(material.IconButton(u.th, &u.menuBtn, u.menuIcon, "Open menu").Layout),
		layout.Rigid(func(gtx C) D {
			return layout.Inset{Left: unit.Dp(16)}.Layout(gtx, material.H6(u.th, u.title).Layout)
		}),
	)
}

// layoutChips lays out a horizontal list of its own. While the list
// scrolls, the SideSlip must leave the pointer alone.
func (u *UI) layoutChips(gtx C) D {
	dims := material.List(u.th, &u.chips).Layout(gtx, len(chipLabels), func(gtx C, i int) D {
		return layout.UniformInset(unit.Dp(4)).Layout(gtx,
			material.Button(u.th, &u.chipBtns[i], chipLabels[i]).Layout)
	})
	if u.chips.List.Dragging() {
		u.slip.RequestDisallowIntercept(true)
	}
	return dims
}

func (u *UI) layoutBody(gtx C) D {
	selected := "Nothing selected"
	if len(u.items) > 0 {
		selected = fmt.Sprintf("Selected: item %d", u.selected+1)
	}
	return layout.Center.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.Body1(u.th, selected).Layout),
			layout.Rigid(material.Caption(u.th, fmt.Sprintf("%s, %.0f%%", u.status, u.slip.Offset()*100)).Layout),
			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
			layout.Rigid(func(gtx C) D {
				return layout.Flex{}.Layout(gtx,
					layout.Rigid(material.Button(u.th, &u.openBtn, "Open").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(material.Button(u.th, &u.closeBtn, "Close").Layout),
				)
			}),
		)
	})
}

func (u *UI) layoutPanel(gtx C) D {
	return layout.Background{}.Layout(gtx,
		func(gtx C) D {
			paint.FillShape(gtx.Ops, u.th.Palette.ContrastBg, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		},
		u.layoutMenu,
	)
}

func (u *UI) layoutMenu(gtx C) D {
	return material.List(u.th, &u.menu).Layout(gtx, len(u.items), func(gtx C, i int) D {
		return material.Clickable(gtx, &u.items[i], func(gtx C) D {
			l := material.Body1(u.th, fmt.Sprintf("Item %d", i+1))
			l.Color = u.th.Palette.ContrastFg
			return layout.Inset{
				Top: unit.Dp(12), Bottom: unit.Dp(12),
				Left: unit.Dp(24), Right: unit.Dp(24),
			}.Layout(gtx, l.Layout)
		})
	})
}

func (l statusLog) Opened(s *sideslip.SideSlip) {
	l.log.Info("panel opened")
}

func (l statusLog) Closed(s *sideslip.SideSlip) {
	l.log.Info("panel closed")
}

func (l statusLog) Dragging(s *sideslip.SideSlip, left int) {
	l.log.Debug("panel dragging", "left", left, "offset", s.Offset())
}
