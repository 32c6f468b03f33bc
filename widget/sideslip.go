// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"fmt"
	"image"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"

	"github.com/viifo/sideslip/gesture"
)

// SideSlip lays out a content child and a side panel. The panel rests
// outside the container, flush with its edge, and is dragged in
// together with the content: both children move by the same amount.
// After release the children snap open or closed, or rebound to where
// the drag started.
type SideSlip struct {
	// Callback, if set, is notified of every event as it
	// happens, in addition to the events returned by Update.
	Callback Callback
	// MinVelocity and MaxVelocity bound the release velocity,
	// per second. Zero means the gesture defaults.
	MinVelocity, MaxVelocity unit.Dp

	drag    gesture.Dragger
	session session
	content *view
	panel   *view
	edge    Edge
	width   int
	laidOut bool
	pending request

	events []Event
	// disallow vetoes dragging for the current gesture.
	disallow bool
	grabbed  bool
}

// view is the position of a child.
type view struct {
	rect image.Rectangle
	// anchor is the position after the first layout, where
	// the panel is closed.
	anchor image.Point
	// state is maintained for the panel only.
	state DragState
}

type request uint8

const (
	noRequest request = iota
	openRequest
	closeRequest
)

// Update processes pointer events and returns the next event, if any.
func (s *SideSlip) Update(gtx layout.Context) (Event, bool) {
	s.drag.Callback = (*dragHandler)(s)
	s.drag.MinVelocity = s.MinVelocity
	s.drag.MaxVelocity = s.MaxVelocity
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: s,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		end := false
		switch e.Kind {
		case pointer.Release, pointer.Cancel:
			end = true
			fallthrough
		case pointer.Press:
			// Every gesture starts without a veto.
			s.disallow = false
		}
		if s.disallow && s.drag.State() != gesture.StateDragging {
			continue
		}
		if s.drag.ShouldIntercept(gtx.Metric, e) && !s.grabbed {
			s.grabbed = true
			gtx.Execute(pointer.GrabCmd{Tag: s, ID: e.PointerID})
		}
		if end {
			s.grabbed = false
		}
	}
	if len(s.events) == 0 {
		return Event{}, false
	}
	e := s.events[0]
	n := copy(s.events, s.events[1:])
	s.events = s.events[:n]
	return e, true
}

// Layout the children. Exactly one of the two children must be the
// content, with EdgeNone, and the other the panel, on the Leading or
// Trailing edge. The content fills the container less its margins.
func (s *SideSlip) Layout(gtx layout.Context, children ...SideChild) layout.Dimensions {
	for {
		_, ok := s.Update(gtx)
		if !ok {
			break
		}
	}
	content, panel := classify(children)
	size := gtx.Constraints.Max

	cins := insets(gtx, content.Params.Margin)
	cgtx := gtx
	cgtx.Constraints = layout.Exact(shrink(size, cins))
	macro := op.Record(gtx.Ops)
	cdims := content.Widget(cgtx)
	ccall := macro.Stop()

	pins := insets(gtx, panel.Params.Margin)
	avail := shrink(size, pins)
	pgtx := gtx
	pgtx.Constraints = layout.Constraints{Min: image.Pt(0, avail.Y), Max: avail}
	if w := panel.Params.Width; w > 0 {
		pw := min(gtx.Dp(w), avail.X)
		pgtx.Constraints.Min.X, pgtx.Constraints.Max.X = pw, pw
	}
	macro = op.Record(gtx.Ops)
	pdims := panel.Widget(pgtx)
	pcall := macro.Stop()

	s.place(size.X, panel.Params.Edge, cins.Min, pins.Min, cdims.Size, pdims.Size)
	if r := s.pending; r != noRequest {
		s.pending = noRequest
		s.slide(r == openRequest)
	}
	s.drag.ParentWidth = s.width
	if s.drag.ContinueSettling(gtx.Now) {
		gtx.Execute(op.InvalidateCmd{})
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	t := op.Offset(s.content.rect.Min).Push(gtx.Ops)
	ccall.Add(gtx.Ops)
	t.Pop()
	t = op.Offset(s.panel.rect.Min).Push(gtx.Ops)
	pcall.Add(gtx.Ops)
	t.Pop()
	// Receive input above the children, passing it on to them
	// until a drag grabs the pointer.
	pass := pointer.PassOp{}.Push(gtx.Ops)
	event.Op(gtx.Ops, s)
	pass.Pop()

	return layout.Dimensions{Size: size}
}

// place positions the children at rest the first time and whenever
// the geometry changes. Otherwise the children keep their positions.
func (s *SideSlip) place(width int, edge Edge, cmin, pmin, csz, psz image.Point) {
	if edge != Leading && edge != Trailing {
		panic(invalidEdge(edge))
	}
	if s.panel == nil {
		s.content, s.panel = new(view), new(view)
	}
	pw := psz.X
	if s.laidOut && width == s.width && edge == s.edge && pw == s.panel.rect.Dx() {
		s.content.rect.Max = s.content.rect.Min.Add(csz)
		s.panel.rect.Max = s.panel.rect.Min.Add(psz)
		return
	}
	if s.laidOut {
		// Drop whatever was moving; the old positions are meaningless.
		s.drag.Abort()
		s.session = session{}
	}
	s.width, s.edge = width, edge
	s.content.rect = image.Rectangle{Min: cmin, Max: cmin.Add(csz)}
	s.content.anchor = cmin
	closed := image.Pt(restLeft(edge, pw, width, true, false), pmin.Y)
	s.panel.rect = image.Rectangle{Min: closed, Max: closed.Add(psz)}
	s.panel.anchor = closed
	if s.panel.state == PanelOpened {
		d := restLeft(edge, pw, width, true, true) - closed.X
		s.content.Offset(d, 0)
		s.panel.Offset(d, 0)
	}
	s.laidOut = true
}

// Open slides the panel open. A request made before the first layout
// takes effect right after it.
func (s *SideSlip) Open() {
	s.slide(true)
}

// Close slides the panel closed.
func (s *SideSlip) Close() {
	s.slide(false)
}

func (s *SideSlip) slide(open bool) {
	if !s.laidOut {
		s.pending = closeRequest
		if open {
			s.pending = openRequest
		}
		return
	}
	if s.session.dragging {
		// The finger holding a child wins.
		return
	}
	b := s.panel.rect
	left := restLeft(s.edge, b.Dx(), s.width, true, open)
	s.session.slide(b.Min.X, image.Pt(left, b.Min.Y))
	if s.drag.SmoothSlideTo(s.panel, left, b.Min.Y) {
		return
	}
	// Already there.
	s.session.land()
	if open {
		s.finish(PanelOpened)
	} else {
		s.finish(PanelClosed)
	}
}

// IsOpen reports whether the panel last came to rest open.
func (s *SideSlip) IsOpen() bool {
	return s.panel != nil && s.panel.state == PanelOpened
}

// Offset reports how far the panel is from closed, relative to its
// width, in [0, 1].
func (s *SideSlip) Offset() float32 {
	if !s.laidOut {
		return 0
	}
	return offsetRate(s.edge, s.panel.rect.Min.X, s.panel.rect.Dx(), s.width)
}

// RequestDisallowIntercept vetoes, or allows, dragging for the rest
// of the current gesture. Children that handle horizontal drags of
// their own call it while they are dragging. The veto is lifted at
// the next press, release or cancel.
func (s *SideSlip) RequestDisallowIntercept(disallow bool) {
	s.disallow = disallow
}

func (v *view) Bounds() image.Rectangle {
	return v.rect
}

func (v *view) Offset(dx, dy int) {
	v.rect = v.rect.Add(image.Pt(dx, dy))
}

func classify(children []SideChild) (content, panel SideChild) {
	if len(children) != 2 {
		panic(fmt.Sprintf("sideslip: SideSlip hosts exactly two children, got %d", len(children)))
	}
	content, panel = children[0], children[1]
	if content.Params.Edge != EdgeNone {
		content, panel = panel, content
	}
	switch {
	case content.Params.Edge != EdgeNone:
		panic("sideslip: missing content child, one child must have EdgeNone")
	case panel.Params.Edge == EdgeNone:
		panic("sideslip: missing panel edge, one child must have an edge")
	}
	return content, panel
}

// insets converts a margin to pixels. Min holds the left and top
// insets, Max the right and bottom.
func insets(gtx layout.Context, in layout.Inset) image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(gtx.Dp(in.Left), gtx.Dp(in.Top)),
		Max: image.Pt(gtx.Dp(in.Right), gtx.Dp(in.Bottom)),
	}
}

func shrink(size image.Point, in image.Rectangle) image.Point {
	return image.Pt(
		max(0, size.X-in.Min.X-in.Max.X),
		max(0, size.Y-in.Min.Y-in.Max.Y),
	)
}
