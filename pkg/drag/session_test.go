package drag

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/buttonmove/pkg/game"
	"github.com/decker502/buttonmove/pkg/geom"
)

// mockStore 记录 Save 调用的存储实现
type mockStore struct {
	pos      game.Position
	present  bool
	saves    int
	failSave bool
}

func (m *mockStore) Load() (game.Position, bool) {
	return m.pos, m.present
}

func (m *mockStore) Save(x, y float64) error {
	m.saves++
	if m.failSave {
		return errors.New("disk full")
	}
	m.pos = game.Position{X: x, Y: y}
	m.present = true
	return nil
}

var (
	testGeometry = geom.Geometry{Bounds: geom.Size{W: 100, H: 100}, Radius: 10}
	testAnchor   = geom.Point{X: 50, Y: 50}
)

func newTestSession(t *testing.T, store game.PositionStore, opts ...Option) *Session {
	t.Helper()
	s := NewSession(store, opts...)
	if err := s.Layout(testGeometry, testAnchor); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	return s
}

func mustHandle(t *testing.T, s *Session, phase Phase, dx, dy float64) {
	t.Helper()
	if err := s.Handle(Event{Phase: phase, Translation: geom.Vec2{X: dx, Y: dy}}); err != nil {
		t.Fatalf("Handle(%v) error: %v", phase, err)
	}
}

func TestSessionLayoutDefaultsToAnchor(t *testing.T) {
	s := newTestSession(t, game.NewMemoryPositionStore())

	if s.Center() != testAnchor {
		t.Errorf("Center() = %v, want anchor %v", s.Center(), testAnchor)
	}
	if s.Offset() != (geom.Vec2{}) {
		t.Errorf("Offset() = %v, want zero", s.Offset())
	}
	if s.Dragging() {
		t.Error("new session should be idle")
	}
}

func TestSessionLayoutUsesStoredOffset(t *testing.T) {
	store := &mockStore{pos: game.Position{X: 15, Y: -20}, present: true}
	s := newTestSession(t, store)

	if s.Center() != (geom.Point{X: 65, Y: 30}) {
		t.Errorf("Center() = %v, want (65, 30)", s.Center())
	}
}

func TestSessionLayoutClampsStaleOffset(t *testing.T) {
	store := &mockStore{pos: game.Position{X: 300, Y: -300}, present: true}
	s := newTestSession(t, store)

	if s.Center() != (geom.Point{X: 90, Y: 10}) {
		t.Errorf("Center() = %v, want (90, 10)", s.Center())
	}
	if store.saves != 0 {
		t.Errorf("Layout() should not write the store, got %d saves", store.saves)
	}
}

func TestSessionLayoutRejectsSmallOpening(t *testing.T) {
	s := NewSession(nil)
	err := s.Layout(geom.Geometry{Bounds: geom.Size{W: 15, H: 100}, Radius: 10}, geom.Point{})
	if !errors.Is(err, geom.ErrOpeningTooSmall) {
		t.Errorf("Layout() = %v, want ErrOpeningTooSmall", err)
	}
}

func TestSessionMoveIsTransient(t *testing.T) {
	store := &mockStore{}
	s := newTestSession(t, store)

	mustHandle(t, s, PhaseBegan, 0, 0)
	mustHandle(t, s, PhaseChanged, 1000, -3)

	if s.Center() != (geom.Point{X: 90, Y: 47}) {
		t.Errorf("Center() during drag = %v, want (90, 47)", s.Center())
	}
	if store.saves != 0 {
		t.Errorf("move should not persist, got %d saves", store.saves)
	}
	if s.Offset() != (geom.Vec2{}) {
		t.Errorf("Offset() during drag = %v, want zero", s.Offset())
	}
}

// TestSessionCommitOnEnd 结束时累加偏移，下一次手势以新位置为起点
func TestSessionCommitOnEnd(t *testing.T) {
	store := game.NewMemoryPositionStore()
	s := newTestSession(t, store)

	mustHandle(t, s, PhaseBegan, 0, 0)
	mustHandle(t, s, PhaseChanged, 10, 2)
	mustHandle(t, s, PhaseEnded, 20, 5)

	pos, ok := store.Load()
	if !ok || pos != (game.Position{X: 20, Y: 5}) {
		t.Fatalf("stored = (%v, %v), want (20, 5) present", pos, ok)
	}
	if s.Center() != (geom.Point{X: 70, Y: 55}) {
		t.Fatalf("Center() = %v, want (70, 55)", s.Center())
	}

	mustHandle(t, s, PhaseBegan, 0, 0)
	snap, ok := s.Snapshot()
	if !ok || snap.StartCenter != (geom.Point{X: 70, Y: 55}) {
		t.Fatalf("Snapshot() = %v, %v, want start (70, 55)", snap, ok)
	}
	mustHandle(t, s, PhaseChanged, -100, -100)
	if s.Center() != (geom.Point{X: 10, Y: 10}) {
		t.Errorf("Center() = %v, want (10, 10)", s.Center())
	}
	mustHandle(t, s, PhaseEnded, -100, -100)

	pos, _ = store.Load()
	if pos != (game.Position{X: -40, Y: -40}) {
		t.Errorf("stored = %v, want (-40, -40)", pos)
	}
}

func TestSessionCancelCommitsByDefault(t *testing.T) {
	for _, phase := range []Phase{PhaseCancelled, PhaseFailed} {
		t.Run(phase.String(), func(t *testing.T) {
			store := game.NewMemoryPositionStore()
			s := newTestSession(t, store)

			if s.Policy() != CancelCommit {
				t.Fatalf("default policy = %v, want commit", s.Policy())
			}

			mustHandle(t, s, PhaseBegan, 0, 0)
			mustHandle(t, s, phase, 5, 5)

			pos, ok := store.Load()
			if !ok || pos != (game.Position{X: 5, Y: 5}) {
				t.Errorf("stored = (%v, %v), want (5, 5) present", pos, ok)
			}
			if s.Dragging() {
				t.Error("session should be idle after cancel")
			}
		})
	}
}

func TestSessionCancelRollback(t *testing.T) {
	store := &mockStore{pos: game.Position{X: 10, Y: 0}, present: true}
	s := newTestSession(t, store, WithCancelPolicy(CancelRollback))

	mustHandle(t, s, PhaseBegan, 0, 0)
	mustHandle(t, s, PhaseChanged, 5, 5)
	mustHandle(t, s, PhaseCancelled, 5, 5)

	if s.Center() != (geom.Point{X: 60, Y: 50}) {
		t.Errorf("Center() = %v, want start (60, 50)", s.Center())
	}
	if store.saves != 0 {
		t.Errorf("rollback should not persist, got %d saves", store.saves)
	}

	// 正常结束仍然提交
	mustHandle(t, s, PhaseBegan, 0, 0)
	mustHandle(t, s, PhaseEnded, 5, 5)
	if store.pos != (game.Position{X: 15, Y: 5}) {
		t.Errorf("stored = %v, want (15, 5)", store.pos)
	}
}

func TestSessionRejectsOutOfOrderEvents(t *testing.T) {
	s := newTestSession(t, nil)

	if err := s.Handle(Event{Phase: PhaseChanged}); !errors.Is(err, ErrNoGesture) {
		t.Errorf("changed while idle = %v, want ErrNoGesture", err)
	}
	if err := s.Handle(Event{Phase: PhaseEnded}); !errors.Is(err, ErrNoGesture) {
		t.Errorf("ended while idle = %v, want ErrNoGesture", err)
	}

	mustHandle(t, s, PhaseBegan, 0, 0)
	mustHandle(t, s, PhaseChanged, 7, 0)
	if err := s.Handle(Event{Phase: PhaseBegan}); !errors.Is(err, ErrGestureInProgress) {
		t.Errorf("began while dragging = %v, want ErrGestureInProgress", err)
	}
	snap, _ := s.Snapshot()
	if snap.StartCenter != testAnchor {
		t.Errorf("snapshot changed after rejected began: %v", snap.StartCenter)
	}

	if err := s.Handle(Event{Phase: Phase(99)}); err == nil {
		t.Error("unknown phase should return an error")
	}
}

func TestSessionSaveFailureKeepsOffset(t *testing.T) {
	store := &mockStore{failSave: true}
	s := newTestSession(t, store)

	mustHandle(t, s, PhaseBegan, 0, 0)
	mustHandle(t, s, PhaseEnded, 12, 0)

	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if s.Offset() != (geom.Vec2{X: 12, Y: 0}) {
		t.Errorf("Offset() = %v, want (12, 0)", s.Offset())
	}
}

func TestSessionLayoutDuringDragKeepsCenter(t *testing.T) {
	s := newTestSession(t, game.NewMemoryPositionStore())

	mustHandle(t, s, PhaseBegan, 0, 0)
	mustHandle(t, s, PhaseChanged, 20, 0)

	if err := s.Layout(testGeometry, testAnchor); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if s.Center() != (geom.Point{X: 70, Y: 50}) {
		t.Errorf("Center() = %v, want (70, 50)", s.Center())
	}
}

func TestSessionResetOffset(t *testing.T) {
	store := game.NewMemoryPositionStore()
	store.Save(30, 30)
	s := newTestSession(t, store)

	mustHandle(t, s, PhaseBegan, 0, 0)
	if err := s.ResetOffset(); !errors.Is(err, ErrGestureInProgress) {
		t.Errorf("ResetOffset() while dragging = %v, want ErrGestureInProgress", err)
	}
	mustHandle(t, s, PhaseEnded, 0, 0)

	if err := s.ResetOffset(); err != nil {
		t.Fatalf("ResetOffset() error: %v", err)
	}
	if s.Center() != testAnchor {
		t.Errorf("Center() = %v, want anchor", s.Center())
	}
	if pos, _ := store.Load(); pos != (game.Position{}) {
		t.Errorf("stored = %v, want zero", pos)
	}
}

func TestSessionSetPolicyAppliesToActiveGesture(t *testing.T) {
	store := &mockStore{}
	s := newTestSession(t, store)

	mustHandle(t, s, PhaseBegan, 0, 0)
	mustHandle(t, s, PhaseChanged, 20, 0)
	s.SetPolicy(CancelRollback)
	mustHandle(t, s, PhaseFailed, 20, 0)

	if s.Center() != testAnchor {
		t.Errorf("Center() = %v, want %v", s.Center(), testAnchor)
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0", store.saves)
	}
	if s.Policy() != CancelRollback {
		t.Errorf("Policy() = %v, want rollback", s.Policy())
	}
}

func TestSessionLayoutIgnoresNonFiniteOffset(t *testing.T) {
	store := &mockStore{pos: game.Position{X: math.NaN(), Y: math.Inf(1)}, present: true}
	s := newTestSession(t, store)

	inset := testGeometry.Inset()
	if !inset.Contains(s.Center()) {
		t.Fatalf("Center() = %v escaped %v", s.Center(), inset)
	}

	// 之后的提交写回有限值
	mustHandle(t, s, PhaseBegan, 0, 0)
	mustHandle(t, s, PhaseEnded, -5, 0)
	if math.IsNaN(store.pos.X) || math.IsInf(store.pos.Y, 0) {
		t.Errorf("stored = %v, want finite", store.pos)
	}
}
