// SPDX-License-Identifier: Unlicense OR MIT

package widget

// Event is a status change of a SideSlip.
type Event struct {
	Kind EventKind
	// Left is the left coordinate of the moving child, for
	// Dragging events.
	Left int
}

// EventKind is the kind of an Event.
type EventKind uint8

// Callback receives the events of a SideSlip as they happen.
type Callback interface {
	Opened(s *SideSlip)
	Closed(s *SideSlip)
	Dragging(s *SideSlip, left int)
}

const (
	// Opened is reported when the panel comes to rest open.
	Opened EventKind = iota
	// Closed is reported when the panel comes to rest closed.
	Closed
	// Dragging is reported for every move of the children.
	Dragging
)

func (k EventKind) String() string {
	switch k {
	case Opened:
		return "Opened"
	case Closed:
		return "Closed"
	case Dragging:
		return "Dragging"
	default:
		panic("invalid EventKind")
	}
}

func (s *SideSlip) emit(e Event) {
	s.events = append(s.events, e)
	if s.Callback == nil {
		return
	}
	switch e.Kind {
	case Opened:
		s.Callback.Opened(s)
	case Closed:
		s.Callback.Closed(s)
	case Dragging:
		s.Callback.Dragging(s, e.Left)
	}
}

// finish puts the panel to rest and reports it.
func (s *SideSlip) finish(state DragState) {
	s.panel.state = state
	if state == PanelOpened {
		s.emit(Event{Kind: Opened})
	} else {
		s.emit(Event{Kind: Closed})
	}
}
