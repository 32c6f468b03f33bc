// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"

	"gioui.org/io/pointer"

	"github.com/viifo/sideslip/gesture"
)

// dragHandler implements gesture.DragCallback for a SideSlip. Whichever
// child the dragger moves, the other child follows by the same
// horizontal delta.
type dragHandler SideSlip

func (h *dragHandler) ChildAt(p image.Point) gesture.Target {
	switch {
	case h.panel == nil:
		return nil
	case p.In(h.panel.rect):
		return h.panel
	case p.In(h.content.rect):
		return h.content
	}
	return nil
}

func (h *dragHandler) TryCapture(t gesture.Target, pid pointer.ID) bool {
	return h.session.capture(t.Bounds().Min)
}

func (h *dragHandler) HorizontalDragRange(t gesture.Target) int {
	return h.panel.rect.Dx()
}

func (h *dragHandler) ClampHorizontal(t gesture.Target, left, dx int) int {
	lo, hi := dragRange(h.edge, h.panel.rect.Dx(), h.width, h.isPanel(t))
	h.session.prevLeft = t.Bounds().Min.X
	return clamp(left, lo, hi)
}

func (h *dragHandler) Released(t gesture.Target, xvel, yvel float32) {
	b := t.Bounds()
	h.session.release(b.Min.X)
	left, snap := releaseTarget(h.edge, h.panel.rect.Dx(), h.width, h.isPanel(t),
		h.panel.state, h.session.offsetRate, h.session.target.X)
	h.session.target = image.Pt(left, b.Min.Y)
	if b.Min.X == left {
		// Nothing to settle.
		h.session.land()
		state := h.panel.state
		if snap {
			state = state.flip()
		}
		(*SideSlip)(h).finish(state)
		return
	}
	h.drag.SettleCapturedAt(left, b.Min.Y)
}

func (h *dragHandler) PositionChanged(t gesture.Target, left, top, dx, dy int) {
	other := h.content
	if !h.isPanel(t) {
		other = h.panel
	}
	other.Offset(left-h.session.prevLeft, 0)
	h.session.prevLeft = left
	h.session.offsetRate = offsetRate(h.edge, h.panel.rect.Min.X, h.panel.rect.Dx(), h.width)
	s := (*SideSlip)(h)
	s.emit(Event{Kind: Dragging, Left: left})

	if h.session.dragging || !h.session.moving || left != h.session.target.X {
		return
	}
	h.session.land()
	if h.panel.rect.Min.X == h.panel.anchor.X {
		s.finish(PanelClosed)
	} else {
		s.finish(PanelOpened)
	}
}

func (h *dragHandler) isPanel(t gesture.Target) bool {
	return t == gesture.Target(h.panel)
}
