// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"fmt"
	"strings"

	"gioui.org/layout"
	"gioui.org/unit"
)

// Edge is the side of the content a panel slides in from.
type Edge uint8

// DragState is the resting state of a side panel.
type DragState uint8

// ChildParams configures a child of a SideSlip.
type ChildParams struct {
	// Edge is EdgeNone for the content and Leading or Trailing
	// for the panel.
	Edge Edge
	// Margin insets the child from the container.
	Margin layout.Inset
	// Width of the panel. Zero lets the panel widget choose.
	// The content always fills the container.
	Width unit.Dp
}

// SideChild is a child of a SideSlip.
type SideChild struct {
	Params ChildParams
	Widget layout.Widget
}

const (
	// EdgeNone marks the content child.
	EdgeNone Edge = iota
	// Leading places the panel on the left.
	Leading
	// Trailing places the panel on the right.
	Trailing
)

const (
	PanelClosed DragState = iota
	PanelOpened
)

// Content returns the content child.
func Content(w layout.Widget) SideChild {
	return SideChild{Widget: w}
}

// Panel returns a panel child attached to edge.
func Panel(edge Edge, w layout.Widget) SideChild {
	return SideChild{Params: ChildParams{Edge: edge}, Widget: w}
}

// ParseEdge parses an edge name. Besides the Edge names it
// accepts the gravity aliases left, start, right and end.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "edgenone":
		return EdgeNone, nil
	case "leading", "left", "start":
		return Leading, nil
	case "trailing", "right", "end":
		return Trailing, nil
	default:
		return EdgeNone, fmt.Errorf("sideslip: unknown edge %q", s)
	}
}

func (e Edge) String() string {
	switch e {
	case EdgeNone:
		return "EdgeNone"
	case Leading:
		return "Leading"
	case Trailing:
		return "Trailing"
	default:
		return fmt.Sprintf("Edge(%d)", uint8(e))
	}
}

func (s DragState) flip() DragState {
	if s == PanelOpened {
		return PanelClosed
	}
	return PanelOpened
}

func (s DragState) String() string {
	switch s {
	case PanelClosed:
		return "PanelClosed"
	case PanelOpened:
		return "PanelOpened"
	default:
		panic("invalid DragState")
	}
}
