// SPDX-License-Identifier: Unlicense OR MIT

package widget

const (
	// snapOpenRate is the offset rate a closed panel must be
	// dragged past to snap open.
	snapOpenRate = 0.4
	// snapCloseRate is the offset rate an open panel must be
	// dragged below to snap closed. The gap between the rates
	// resists accidental toggling.
	snapCloseRate = 0.6
)

// releaseTarget decides where a released child goes. A snap sends it
// to the resting position opposite to state; otherwise it rebounds to
// anchor, the left coordinate it had when captured.
func releaseTarget(edge Edge, panelWidth, width int, panel bool, state DragState, rate float32, anchor int) (left int, snap bool) {
	closed := state == PanelClosed
	if (closed && rate >= snapOpenRate) || (!closed && rate <= snapCloseRate) {
		return restLeft(edge, panelWidth, width, panel, closed), true
	}
	return anchor, false
}
