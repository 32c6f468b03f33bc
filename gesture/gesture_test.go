// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"image"
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"gioui.org/unit"
)

type box struct {
	r image.Rectangle
}

type parent struct {
	d      *Dragger
	boxes  []*box
	refuse bool
	// Clamp range for every box.
	min, max int
	// Settle destination on release, if settle is set.
	settle   bool
	settleTo int

	lefts    []int
	deltas   []int
	released int
	captures int
}

func (b *box) Bounds() image.Rectangle { return b.r }

func (b *box) Offset(dx, dy int) { b.r = b.r.Add(image.Pt(dx, dy)) }

func (p *parent) ChildAt(pt image.Point) Target {
	for i := len(p.boxes) - 1; i >= 0; i-- {
		if pt.In(p.boxes[i].r) {
			return p.boxes[i]
		}
	}
	return nil
}

func (p *parent) TryCapture(t Target, pid pointer.ID) bool {
	if p.refuse {
		return false
	}
	p.captures++
	return true
}

func (p *parent) HorizontalDragRange(t Target) int { return p.max - p.min }

func (p *parent) ClampHorizontal(t Target, left, dx int) int {
	return min(max(left, p.min), p.max)
}

func (p *parent) Released(t Target, xvel, yvel float32) {
	p.released++
	if p.settle {
		p.d.SettleCapturedAt(p.settleTo, t.Bounds().Min.Y)
	}
}

func (p *parent) PositionChanged(t Target, left, top, dx, dy int) {
	p.lefts = append(p.lefts, left)
	p.deltas = append(p.deltas, dx)
}

func newParent() (*Dragger, *parent, *box) {
	b := &box{r: image.Rect(0, 0, 100, 100)}
	d := new(Dragger)
	p := &parent{d: d, boxes: []*box{b}, min: -100, max: 50}
	d.Callback = p
	return d, p, b
}

func press(x, y float32) pointer.Event {
	return pointer.Event{Kind: pointer.Press, Source: pointer.Touch, Position: f32.Pt(x, y)}
}

func drag(x, y float32) pointer.Event {
	return pointer.Event{Kind: pointer.Drag, Source: pointer.Touch, Position: f32.Pt(x, y)}
}

func release(x, y float32) pointer.Event {
	return pointer.Event{Kind: pointer.Release, Source: pointer.Touch, Position: f32.Pt(x, y)}
}

func TestDragCapturesPastSlop(t *testing.T) {
	d, p, b := newParent()
	var cfg unit.Metric
	if d.ShouldIntercept(cfg, press(50, 50)) {
		t.Fatal("intercepted on press")
	}
	if d.ShouldIntercept(cfg, drag(51, 50)) {
		t.Fatal("intercepted within touch slop")
	}
	if !d.ShouldIntercept(cfg, drag(20, 50)) {
		t.Fatal("did not intercept past touch slop")
	}
	if got, want := b.r.Min.X, -30; got != want {
		t.Errorf("left after capture: got %d want %d", got, want)
	}
	d.ProcessEvent(cfg, drag(-200, 50))
	if got, want := b.r.Min.X, -100; got != want {
		t.Errorf("left after clamped drag: got %d want %d", got, want)
	}
	d.ProcessEvent(cfg, release(-200, 50))
	if p.released != 1 {
		t.Errorf("released %d times, want 1", p.released)
	}
	if got := d.State(); got != StateIdle {
		t.Errorf("state after release without settle: got %v want %v", got, StateIdle)
	}
	if got, want := p.deltas, []int{-30, -70}; !equalInts(got, want) {
		t.Errorf("position deltas: got %v want %v", got, want)
	}
}

func TestDragRefused(t *testing.T) {
	d, p, b := newParent()
	p.refuse = true
	var cfg unit.Metric
	d.ProcessEvent(cfg, press(50, 50))
	if d.ShouldIntercept(cfg, drag(10, 50)) {
		t.Fatal("intercepted a refused capture")
	}
	d.ProcessEvent(cfg, drag(0, 50))
	d.ProcessEvent(cfg, release(0, 50))
	if b.r.Min.X != 0 || len(p.lefts) != 0 || p.released != 0 {
		t.Errorf("refused target moved: left %d, changes %v, releases %d", b.r.Min.X, p.lefts, p.released)
	}
}

func TestDragMissesTargets(t *testing.T) {
	d, p, _ := newParent()
	var cfg unit.Metric
	d.ProcessEvent(cfg, press(500, 500))
	if d.ShouldIntercept(cfg, drag(400, 500)) {
		t.Fatal("intercepted outside every target")
	}
	if p.captures != 0 {
		t.Errorf("captured %d times, want 0", p.captures)
	}
}

func TestDragIgnoresSecondPointer(t *testing.T) {
	d, _, b := newParent()
	var cfg unit.Metric
	d.ProcessEvent(cfg, press(50, 50))
	d.ProcessEvent(cfg, drag(40, 50))
	second := drag(90, 50)
	second.PointerID = 1
	d.ProcessEvent(cfg, second)
	if got, want := b.r.Min.X, -10; got != want {
		t.Errorf("left: got %d want %d", got, want)
	}
}

func TestSettleAfterRelease(t *testing.T) {
	d, p, b := newParent()
	p.settle = true
	p.settleTo = -100
	var cfg unit.Metric
	d.ProcessEvent(cfg, press(50, 50))
	d.ProcessEvent(cfg, drag(10, 50))
	d.ProcessEvent(cfg, release(10, 50))
	if got := d.State(); got != StateSettling {
		t.Fatalf("state after release: got %v want %v", got, StateSettling)
	}
	now := time.Unix(0, 0)
	for i := 0; i < 100 && d.ContinueSettling(now); i++ {
		now = now.Add(16 * time.Millisecond)
	}
	if got := d.State(); got != StateIdle {
		t.Fatalf("state after settle: got %v want %v", got, StateIdle)
	}
	if got, want := b.r.Min.X, -100; got != want {
		t.Errorf("settled left: got %d want %d", got, want)
	}
	if got := p.lefts[len(p.lefts)-1]; got != -100 {
		t.Errorf("last reported left: got %d want -100", got)
	}
}

func TestSmoothSlideTo(t *testing.T) {
	d, _, b := newParent()
	if d.SmoothSlideTo(b, 0, 0) {
		t.Error("SmoothSlideTo started a zero distance settle")
	}
	if !d.SmoothSlideTo(b, 50, 0) {
		t.Fatal("SmoothSlideTo did not start")
	}
	if d.Captured() != Target(b) {
		t.Error("SmoothSlideTo did not capture the target")
	}
	now := time.Unix(0, 0)
	for d.ContinueSettling(now) {
		now = now.Add(16 * time.Millisecond)
	}
	if got, want := b.r.Min.X, 50; got != want {
		t.Errorf("left: got %d want %d", got, want)
	}
}

func TestPressCatchesSettlingTarget(t *testing.T) {
	d, p, b := newParent()
	d.SmoothSlideTo(b, 50, 0)
	d.ProcessEvent(unit.Metric{}, press(10, 10))
	if got := d.State(); got != StateDragging {
		t.Fatalf("state: got %v want %v", got, StateDragging)
	}
	if p.captures != 1 {
		t.Errorf("captured %d times, want 1", p.captures)
	}
}

func TestSettleCapturedAtOutsideRelease(t *testing.T) {
	d, _, b := newParent()
	d.SmoothSlideTo(b, 10, 0)
	defer func() {
		if recover() == nil {
			t.Error("SettleCapturedAt did not panic")
		}
	}()
	d.SettleCapturedAt(0, 0)
}

func TestClampMag(t *testing.T) {
	tests := []struct {
		v, want float32
	}{
		{100, 0},
		{-100, 0},
		{500, 500},
		{9000, 8000},
		{-9000, -8000},
	}
	for _, tc := range tests {
		if got := clampMag(tc.v, 400, 8000); got != tc.want {
			t.Errorf("clampMag(%v): got %v want %v", tc.v, got, tc.want)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
