// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"image"
	"math"
	"time"
)

// Settle animates a point towards a destination with a
// decelerating curve. The animation clock starts at the first
// call to Tick after Start.
type Settle struct {
	from, to image.Point
	duration time.Duration

	active  bool
	started bool
	t0      time.Time
}

const (
	baseSettleDuration = 256 * time.Millisecond
	maxSettleDuration  = 600 * time.Millisecond
)

// Start a settle from one point to another lasting d.
func (s *Settle) Start(from, to image.Point, d time.Duration) {
	*s = Settle{
		from:     from,
		to:       to,
		duration: d,
		active:   true,
	}
}

// Stop the settle, leaving the position where it last was.
func (s *Settle) Stop() {
	s.active = false
}

// Active reports whether the settle is in progress.
func (s *Settle) Active() bool {
	return s.active
}

// Destination returns the settle target.
func (s *Settle) Destination() image.Point {
	return s.to
}

// Tick computes and returns the position at time now. The settle
// becomes inactive once the destination is returned.
func (s *Settle) Tick(now time.Time) image.Point {
	if !s.active {
		return s.to
	}
	if !s.started {
		s.started = true
		s.t0 = now
	}
	elapsed := now.Sub(s.t0)
	if elapsed >= s.duration {
		s.active = false
		return s.to
	}
	f := interpolate(float64(elapsed) / float64(s.duration))
	return image.Point{
		X: s.from.X + int(math.Round(f*float64(s.to.X-s.from.X))),
		Y: s.from.Y + int(math.Round(f*float64(s.to.Y-s.from.Y))),
	}
}

// interpolate is a quintic ease out.
func interpolate(t float64) float64 {
	t -= 1
	return t*t*t*t*t + 1
}

// Duration computes the length of a settle covering delta on each
// axis. Velocities are in pixels per second, already clamped by the
// caller; motionRange is the draggable extent of the moving target
// and width the extent of its parent.
func Duration(delta image.Point, vel [2]float32, motionRange, width int) time.Duration {
	adx, ady := absInt(delta.X), absInt(delta.Y)
	avx, avy := abs(vel[0]), abs(vel[1])
	addVel := avx + avy
	addDist := adx + ady
	if addDist == 0 {
		return 0
	}
	var xweight, yweight float64
	if vel[0] != 0 {
		xweight = float64(avx) / float64(addVel)
	} else {
		xweight = float64(adx) / float64(addDist)
	}
	if vel[1] != 0 {
		yweight = float64(avy) / float64(addVel)
	} else {
		yweight = float64(ady) / float64(addDist)
	}
	xd := axisDuration(delta.X, vel[0], motionRange, width)
	yd := axisDuration(delta.Y, vel[1], 0, width)
	return time.Duration(float64(xd)*xweight + float64(yd)*yweight)
}

func axisDuration(delta int, velocity float32, motionRange, width int) time.Duration {
	if delta == 0 {
		return 0
	}
	if width <= 0 {
		width = absInt(delta)
	}
	halfWidth := float64(width) / 2
	distanceRatio := math.Min(1, float64(absInt(delta))/float64(width))
	distance := halfWidth + halfWidth*distanceInfluence(distanceRatio)

	var d time.Duration
	if v := math.Abs(float64(velocity)); v > 0 {
		d = 4 * time.Duration(math.Round(1000*math.Abs(distance/v))) * time.Millisecond
	} else {
		r := 0.0
		if motionRange > 0 {
			r = float64(absInt(delta)) / float64(motionRange)
		}
		d = time.Duration((r + 1) * float64(baseSettleDuration))
	}
	if d > maxSettleDuration {
		d = maxSettleDuration
	}
	return d
}

// distanceInfluence centers the distance ratio and reduces its
// effect on the duration.
func distanceInfluence(f float64) float64 {
	f -= 0.5
	f *= 0.3 * math.Pi / 2
	return math.Sin(f)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
