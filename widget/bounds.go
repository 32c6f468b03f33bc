// SPDX-License-Identifier: Unlicense OR MIT

package widget

// dragRange returns the inclusive range of left coordinates of the
// panel (or the content, if panel is false) while dragging. width is
// the width of the container.
func dragRange(edge Edge, panelWidth, width int, panel bool) (lo, hi int) {
	switch edge {
	case Leading:
		if panel {
			return -panelWidth, 0
		}
		return 0, panelWidth
	case Trailing:
		if panel {
			return width - panelWidth, width
		}
		return -panelWidth, 0
	default:
		panic(invalidEdge(edge))
	}
}

// restLeft returns the left coordinate of a child when the panel is
// fully open or fully closed.
func restLeft(edge Edge, panelWidth, width int, panel, open bool) int {
	lo, hi := dragRange(edge, panelWidth, width, panel)
	// Opening moves a leading panel and its content right, a
	// trailing panel and its content left.
	if (edge == Leading) == open {
		return hi
	}
	return lo
}

// offsetRate returns how far the panel is from closed, relative to its
// width, in [0, 1].
func offsetRate(edge Edge, panelLeft, panelWidth, width int) float32 {
	if panelWidth <= 0 {
		return 0
	}
	closed := restLeft(edge, panelWidth, width, true, false)
	d := panelLeft - closed
	if d < 0 {
		d = -d
	}
	r := float32(d) / float32(panelWidth)
	if r > 1 {
		r = 1
	}
	return r
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func invalidEdge(e Edge) string {
	return "sideslip: the panel must be on the Leading or Trailing edge, got " + e.String()
}
