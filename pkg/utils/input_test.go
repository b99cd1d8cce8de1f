package utils

import (
	"testing"

	"github.com/decker502/buttonmove/pkg/drag"
	"github.com/decker502/buttonmove/pkg/geom"
)

// mockPointerInput 按帧回放指针状态
type mockPointerInput struct {
	pressed bool
	x, y    int
}

func (m *mockPointerInput) Pointer() (bool, int, int) {
	return m.pressed, m.x, m.y
}

func (m *mockPointerInput) set(pressed bool, x, y int) {
	m.pressed, m.x, m.y = pressed, x, y
}

func TestGestureTrackerLifecycle(t *testing.T) {
	input := &mockPointerInput{}
	gt := NewGestureTracker(input)

	// 未按下时没有事件
	if _, ok := gt.Update(); ok {
		t.Fatal("expected no gesture while released")
	}

	input.set(true, 100, 200)
	g, ok := gt.Update()
	if !ok || g.Phase != drag.PhaseBegan {
		t.Fatalf("expected began, got %v (ok=%v)", g.Phase, ok)
	}
	if g.Start != (geom.Point{X: 100, Y: 200}) || g.Translation != (geom.Vec2{}) {
		t.Errorf("began gesture = %+v", g)
	}
	if !gt.Active() {
		t.Error("tracker should be active after press")
	}

	// 静止不产生 changed
	if _, ok := gt.Update(); ok {
		t.Error("expected no gesture while pointer is still")
	}

	input.set(true, 130, 180)
	g, ok = gt.Update()
	if !ok || g.Phase != drag.PhaseChanged {
		t.Fatalf("expected changed, got %v (ok=%v)", g.Phase, ok)
	}
	if g.Translation != (geom.Vec2{X: 30, Y: -20}) {
		t.Errorf("Translation = %v, want (30, -20)", g.Translation)
	}

	input.set(true, 150, 180)
	g, _ = gt.Update()
	if g.Translation != (geom.Vec2{X: 50, Y: -20}) {
		t.Errorf("Translation should be cumulative, got %v", g.Translation)
	}

	input.set(false, 150, 180)
	g, ok = gt.Update()
	if !ok || g.Phase != drag.PhaseEnded {
		t.Fatalf("expected ended, got %v (ok=%v)", g.Phase, ok)
	}
	if g.Translation != (geom.Vec2{X: 50, Y: -20}) {
		t.Errorf("ended Translation = %v, want (50, -20)", g.Translation)
	}
	if gt.Active() {
		t.Error("tracker should be idle after release")
	}

	ev := g.Event()
	if ev.Phase != drag.PhaseEnded || ev.Translation != g.Translation {
		t.Errorf("Event() = %+v", ev)
	}
}

func TestGestureTrackerCancel(t *testing.T) {
	input := &mockPointerInput{}
	gt := NewGestureTracker(input)

	if _, ok := gt.Cancel(); ok {
		t.Fatal("Cancel() without gesture should report false")
	}

	input.set(true, 10, 10)
	gt.Update()
	input.set(true, 15, 12)
	gt.Update()

	g, ok := gt.Cancel()
	if !ok || g.Phase != drag.PhaseCancelled {
		t.Fatalf("expected cancelled, got %v (ok=%v)", g.Phase, ok)
	}
	if g.Translation != (geom.Vec2{X: 5, Y: 2}) {
		t.Errorf("cancelled Translation = %v, want (5, 2)", g.Translation)
	}

	// 指针仍按下时被吞掉
	input.set(true, 40, 40)
	if _, ok := gt.Update(); ok {
		t.Error("expected no gesture until pointer is released")
	}
	input.set(false, 40, 40)
	if _, ok := gt.Update(); ok {
		t.Error("release after cancel should not produce ended")
	}

	// 再次按下开始新手势
	input.set(true, 1, 1)
	g, ok = gt.Update()
	if !ok || g.Phase != drag.PhaseBegan {
		t.Errorf("expected new began after cancel, got %v (ok=%v)", g.Phase, ok)
	}
}
