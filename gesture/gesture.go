// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements the drag helper used by sliding
containers.

A Dragger accepts low level pointer events from its parent,
decides when a horizontal drag starts, captures one of the
parent's children and moves it with the pointer. After release
the parent may settle the captured child to a resting position;
the settle is advanced one frame at a time by ContinueSettling.
*/
package gesture

import (
	"image"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"gioui.org/unit"

	"github.com/viifo/sideslip/internal/fling"
)

// Target is a child that a Dragger can capture and move.
type Target interface {
	// Bounds returns the target rectangle in the coordinates
	// of the parent.
	Bounds() image.Rectangle
	// Offset moves the target.
	Offset(dx, dy int)
}

// DragCallback is implemented by the parent of the dragged
// targets.
type DragCallback interface {
	// ChildAt returns the topmost target under p, or nil.
	ChildAt(p image.Point) Target
	// TryCapture reports whether the pointer may start
	// dragging t.
	TryCapture(t Target, pid pointer.ID) bool
	// HorizontalDragRange returns the horizontal extent t can
	// move. Targets with a zero range are never captured.
	HorizontalDragRange(t Target) int
	// ClampHorizontal returns the accepted left edge for a
	// proposed horizontal move of t.
	ClampHorizontal(t Target, left, dx int) int
	// Released is called when the pointer dragging t is
	// lifted, with the release velocity in pixels per second.
	// Implementations may call SettleCapturedAt.
	Released(t Target, xvel, yvel float32)
	// PositionChanged is called after t moved, during a drag
	// or a settle.
	PositionChanged(t Target, left, top, dx, dy int)
}

// DragState is the state of a Dragger.
type DragState uint8

// Dragger tracks a single pointer dragging one target at a time.
type Dragger struct {
	Callback DragCallback
	// MinVelocity is the release velocity, per second, below
	// which a release is treated as stationary.
	MinVelocity unit.Dp
	// MaxVelocity caps the release velocity, per second.
	MaxVelocity unit.Dp
	// ParentWidth scales settle durations. Zero means the
	// settle distance.
	ParentWidth int

	state     DragState
	captured  Target
	candidate Target
	pressed   bool
	pid       pointer.ID
	down      f32.Point
	last      f32.Point

	xest, yest fling.Extrapolation
	vel        [2]float32
	releasing  bool
	settle     fling.Settle
}

const (
	// StateIdle is reported when nothing is captured or moving.
	StateIdle DragState = iota
	// StateDragging is reported while a pointer moves the
	// captured target.
	StateDragging
	// StateSettling is reported while the captured target
	// animates to a destination.
	StateSettling
)

var (
	touchSlop        = unit.Dp(3)
	minFlingVelocity = unit.Dp(400)
	maxFlingVelocity = unit.Dp(8000)
)

// State reports the drag state.
func (d *Dragger) State() DragState {
	return d.state
}

// Captured returns the captured target, if any.
func (d *Dragger) Captured() Target {
	return d.captured
}

// ShouldIntercept processes e and reports whether the Dragger
// owns the gesture, that is whether a target is being dragged.
func (d *Dragger) ShouldIntercept(cfg unit.Metric, e pointer.Event) bool {
	d.ProcessEvent(cfg, e)
	return d.state == StateDragging
}

// ProcessEvent feeds a pointer event to the Dragger. Captures,
// moves and releases are reported to the Callback.
func (d *Dragger) ProcessEvent(cfg unit.Metric, e pointer.Event) {
	switch e.Kind {
	case pointer.Press:
		if d.pressed {
			// Additional fingers don't drag.
			break
		}
		d.pressed = true
		d.pid = e.PointerID
		d.down, d.last = e.Position, e.Position
		d.xest = fling.Extrapolation{}
		d.yest = fling.Extrapolation{}
		d.sample(e)
		d.candidate = d.Callback.ChildAt(e.Position.Round())
		if d.state == StateSettling && d.candidate != nil && d.candidate == d.captured {
			// Catch the settling target.
			d.tryCapture(d.candidate, e.PointerID)
		}
	case pointer.Drag:
		if !d.pressed || e.PointerID != d.pid {
			break
		}
		d.sample(e)
		if d.state == StateDragging {
			d.dragTo(e.Position)
			break
		}
		if d.candidate == nil || !d.pastSlop(cfg, e.Position) {
			break
		}
		if d.tryCapture(d.candidate, e.PointerID) {
			// Follow the pointer from where it went down.
			d.dragTo(e.Position)
		} else {
			// Refused; ignore the rest of the gesture.
			d.candidate = nil
		}
	case pointer.Release, pointer.Cancel:
		if !d.pressed || e.PointerID != d.pid {
			break
		}
		d.pressed = false
		d.candidate = nil
		if d.state != StateDragging {
			break
		}
		var vx, vy float32
		if e.Kind == pointer.Release {
			d.sample(e)
			minv, maxv := d.velocityRange(cfg)
			vx = clampMag(d.xest.Estimate().Velocity, minv, maxv)
			vy = clampMag(d.yest.Estimate().Velocity, minv, maxv)
		}
		d.release(vx, vy)
	}
}

// SmoothSlideTo captures t and starts settling it to (left, top).
// It reports false if t is already there.
func (d *Dragger) SmoothSlideTo(t Target, left, top int) bool {
	d.captured = t
	return d.forceSettle(left, top, [2]float32{})
}

// SettleCapturedAt settles the released target to (left, top),
// carrying the release velocity. It must only be called from
// DragCallback.Released.
func (d *Dragger) SettleCapturedAt(left, top int) bool {
	if !d.releasing {
		panic("gesture: SettleCapturedAt called outside of Released")
	}
	return d.forceSettle(left, top, d.vel)
}

// ContinueSettling advances a settle to time now and reports
// whether another frame is needed.
func (d *Dragger) ContinueSettling(now time.Time) bool {
	if d.state != StateSettling {
		return false
	}
	p := d.settle.Tick(now)
	b := d.captured.Bounds()
	dx, dy := p.X-b.Min.X, p.Y-b.Min.Y
	if dx != 0 || dy != 0 {
		d.captured.Offset(dx, dy)
		d.Callback.PositionChanged(d.captured, p.X, p.Y, dx, dy)
	}
	if d.state == StateSettling && !d.settle.Active() {
		d.state = StateIdle
	}
	return d.state == StateSettling
}

// Abort stops any drag or settle, leaving the captured target
// where it is.
func (d *Dragger) Abort() {
	d.settle.Stop()
	d.candidate = nil
	d.state = StateIdle
}

func (d *Dragger) tryCapture(t Target, pid pointer.ID) bool {
	if t == d.captured && d.state == StateDragging {
		return true
	}
	if d.Callback.HorizontalDragRange(t) <= 0 {
		return false
	}
	if !d.Callback.TryCapture(t, pid) {
		return false
	}
	d.captured = t
	d.pid = pid
	d.settle.Stop()
	d.state = StateDragging
	return true
}

func (d *Dragger) dragTo(pos f32.Point) {
	dx := round(pos.X) - round(d.last.X)
	d.last = pos
	if dx == 0 {
		return
	}
	b := d.captured.Bounds()
	left := d.Callback.ClampHorizontal(d.captured, b.Min.X+dx, dx)
	if cdx := left - b.Min.X; cdx != 0 {
		d.captured.Offset(cdx, 0)
		d.Callback.PositionChanged(d.captured, left, b.Min.Y, cdx, 0)
	}
}

func (d *Dragger) release(vx, vy float32) {
	d.releasing = true
	d.vel = [2]float32{vx, vy}
	d.Callback.Released(d.captured, vx, vy)
	d.releasing = false
	if d.state == StateDragging {
		// Released without a settle.
		d.state = StateIdle
	}
}

func (d *Dragger) forceSettle(left, top int, vel [2]float32) bool {
	b := d.captured.Bounds()
	delta := image.Pt(left-b.Min.X, top-b.Min.Y)
	if delta == (image.Point{}) {
		d.settle.Stop()
		d.state = StateIdle
		return false
	}
	dur := fling.Duration(delta, vel, d.Callback.HorizontalDragRange(d.captured), d.ParentWidth)
	d.settle.Start(b.Min, image.Pt(left, top), dur)
	d.state = StateSettling
	return true
}

func (d *Dragger) pastSlop(cfg unit.Metric, p f32.Point) bool {
	slop := float32(cfg.Dp(touchSlop))
	dx := p.X - d.down.X
	return dx > slop || dx < -slop
}

func (d *Dragger) sample(e pointer.Event) {
	d.xest.Sample(e.Time, e.Position.X)
	d.yest.Sample(e.Time, e.Position.Y)
}

func (d *Dragger) velocityRange(cfg unit.Metric) (float32, float32) {
	minv, maxv := d.MinVelocity, d.MaxVelocity
	if minv <= 0 {
		minv = minFlingVelocity
	}
	if maxv <= 0 {
		maxv = maxFlingVelocity
	}
	return float32(cfg.Dp(minv)), float32(cfg.Dp(maxv))
}

// clampMag zeroes velocities slower than minv and caps the
// magnitude at maxv.
func clampMag(v, minv, maxv float32) float32 {
	a := float32(math.Abs(float64(v)))
	switch {
	case a < minv:
		return 0
	case a > maxv:
		if v > 0 {
			return maxv
		}
		return -maxv
	}
	return v
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}

func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "StateIdle"
	case StateDragging:
		return "StateDragging"
	case StateSettling:
		return "StateSettling"
	default:
		panic("invalid DragState")
	}
}
