// SPDX-License-Identifier: Unlicense OR MIT

package widget

import "image"

// session tracks one drag, from capture until the captured child
// (and with it the other child) comes to rest. The zero session is
// idle.
type session struct {
	// dragging is set while a finger holds the captured child.
	dragging bool
	// moving is set until the child lands after release.
	moving bool
	// offsetRate is the panel's distance from closed, relative to
	// its width.
	offsetRate float32
	// prevLeft is the last left coordinate of the moving child,
	// for mirroring its deltas.
	prevLeft int
	// target is the capture anchor while dragging, and the
	// rebound or snap destination after release.
	target image.Point
}

func (s *session) idle() bool {
	return !s.dragging && !s.moving
}

// capture starts a session for a child at anchor. It fails while
// another session is active, so interleaved fingers can't corrupt the
// recorded positions.
func (s *session) capture(anchor image.Point) bool {
	if !s.idle() {
		return false
	}
	s.dragging = true
	s.moving = true
	s.target = anchor
	return true
}

// release ends the finger's part of the session.
func (s *session) release(left int) {
	s.dragging = false
	s.prevLeft = left
}

// slide starts a programmatic session from left to target.
func (s *session) slide(left int, target image.Point) {
	s.prevLeft = left
	s.target = target
	s.moving = true
}

// land ends the session.
func (s *session) land() {
	s.moving = false
}
