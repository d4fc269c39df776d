package interact

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/engine/enginetest"
	"github.com/san-kum/gravwords/internal/geom"
	"github.com/san-kum/gravwords/internal/schedule"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	eng    *enginetest.Fake
	queue  *schedule.Queue
	ctrl   *Controller
	labels []engine.Handle
}

func newFixture(t *testing.T, cfg Config, opts ...Option) *fixture {
	t.Helper()
	eng := enginetest.New()
	labels := []engine.Handle{
		eng.CreateRect(engine.BodyOptions{Position: geom.V(100, 100), Width: 150, Height: 40, Label: "go"}),
		eng.CreateRect(engine.BodyOptions{Position: geom.V(400, 100), Width: 150, Height: 40, Label: "sql"}),
		eng.CreateRect(engine.BodyOptions{Position: geom.V(120, 110), Width: 150, Height: 40, Label: "java"}),
	}
	q := schedule.NewQueue()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	c := New(eng, labels, q, cfg, opts...)
	c.Start()
	return &fixture{eng: eng, queue: q, ctrl: c, labels: labels}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestPickFirstInListOrder(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	tests := []struct {
		name string
		p    geom.Vec
		want engine.Handle
		ok   bool
	}{
		{"overlap resolves to first", geom.V(110, 105), f.labels[0], true},
		{"only third", geom.V(190, 128), f.labels[2], true},
		{"second", geom.V(400, 100), f.labels[1], true},
		{"empty space", geom.V(700, 700), 0, false},
		{"non-finite", geom.V(math.NaN(), 100), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := f.ctrl.Pick(tt.p)
			if ok != tt.ok || h != tt.want {
				t.Errorf("Pick(%v) = %d,%v want %d,%v", tt.p, h, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPointerDownOutsideStartsNothing(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.ctrl.PointerDown(geom.V(700, 700), t0)

	if _, ok := f.ctrl.Session(); ok {
		t.Error("expected no drag session")
	}
	f.ctrl.PointerUp(t0)
	if len(f.eng.CallsFor("setVelocity", f.labels[0])) != 0 {
		t.Error("release without session touched a body")
	}
}

func TestDragZeroesVelocityOnEveryMove(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	body := f.labels[1]

	f.ctrl.PointerDown(geom.V(400, 100), t0)
	for i := 1; i <= 20; i++ {
		// the engine may have accelerated the body between events
		f.eng.SetVelocity(body, geom.V(float64(i*7), -3))
		p := geom.V(400+float64(i*3), 100+float64(i))
		f.ctrl.PointerMove(p, t0.Add(time.Duration(i)*10*time.Millisecond))

		if v := f.eng.Velocity(body); !v.IsZero() {
			t.Fatalf("move %d: velocity %v not zeroed", i, v)
		}
		if pos := f.eng.Position(body); pos != p {
			t.Fatalf("move %d: body at %v, pointer at %v", i, pos, p)
		}
	}
}

func TestDragVelocityClamped(t *testing.T) {
	cfg := DefaultConfig()
	f := newFixture(t, cfg)

	f.ctrl.PointerDown(geom.V(400, 100), t0)
	// 16px in 16ms implies 1000 px/s; the elapsed floor of 1/60s makes it 960
	f.ctrl.PointerMove(geom.V(416, 100), t0.Add(16*time.Millisecond))

	s, ok := f.ctrl.Session()
	if !ok {
		t.Fatal("expected active session")
	}
	if !near(s.Velocity.Len(), cfg.MaxDragSpeed) {
		t.Errorf("expected |v| = %f, got %f", cfg.MaxDragSpeed, s.Velocity.Len())
	}
	if s.Velocity.Y != 0 || s.Velocity.X <= 0 {
		t.Errorf("direction not preserved: %v", s.Velocity)
	}

	f.ctrl.PointerMove(geom.V(416+30, 100+40), t0.Add(20*time.Millisecond))
	s, _ = f.ctrl.Session()
	if !near(s.Velocity.Len(), cfg.MaxDragSpeed) {
		t.Errorf("expected |v| = %f, got %f", cfg.MaxDragSpeed, s.Velocity.Len())
	}
	if !near(s.Velocity.X/s.Velocity.Y, 30.0/40.0) {
		t.Errorf("diagonal direction not preserved: %v", s.Velocity)
	}
}

func TestDragElapsedFloor(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	f.ctrl.PointerDown(geom.V(400, 100), t0)
	// same timestamp: elapsed floors to one frame instead of dividing by zero
	f.ctrl.PointerMove(geom.V(405, 100), t0)

	s, _ := f.ctrl.Session()
	if !s.Velocity.IsFinite() {
		t.Fatalf("non-finite velocity %v", s.Velocity)
	}
	want := 5 / DefaultMinFrameInterval.Seconds()
	if !near(s.Velocity.X, want) {
		t.Errorf("expected %f px/s, got %f", want, s.Velocity.X)
	}
}

func TestThrowScenario(t *testing.T) {
	cfg := DefaultConfig()
	f := newFixture(t, cfg)
	body := f.labels[1]

	f.ctrl.PointerDown(geom.V(400, 100), t0)
	for i := 1; i <= 5; i++ {
		f.ctrl.PointerMove(geom.V(400+float64(i*10), 100), t0.Add(time.Duration(i)*20*time.Millisecond))
		if got := f.eng.Position(body); got != geom.V(400+float64(i*10), 100) {
			t.Fatalf("body did not track pointer: %v", got)
		}
	}
	f.ctrl.PointerUp(t0.Add(100 * time.Millisecond))

	v := f.eng.Velocity(body)
	if !near(v.X, 500*cfg.ThrowDamping) || !near(v.Y, 0) {
		t.Errorf("expected release (%f, 0), got %v", 500*cfg.ThrowDamping, v)
	}
	if _, ok := f.ctrl.Session(); ok {
		t.Error("session not discarded")
	}
	if f.ctrl.Cursor() != CursorDefault {
		t.Errorf("expected default cursor, got %s", f.ctrl.Cursor())
	}
}

func TestThrowSingleMove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThrowDamping = 0.2
	f := newFixture(t, cfg)

	f.ctrl.PointerDown(geom.V(400, 100), t0)
	f.ctrl.PointerMove(geom.V(450, 100), t0.Add(100*time.Millisecond))
	f.ctrl.PointerUp(t0.Add(100 * time.Millisecond))

	if v := f.eng.Velocity(f.labels[1]); !near(v.X, 100) || !near(v.Y, 0) {
		t.Errorf("expected (100, 0), got %v", v)
	}
}

func TestClickWithoutMoveReleasesAtRest(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	body := f.labels[1]
	f.eng.SetVelocity(body, geom.V(40, 40))

	f.ctrl.PointerDown(geom.V(400, 100), t0)
	f.ctrl.PointerUp(t0.Add(300 * time.Millisecond))

	if v := f.eng.Velocity(body); !v.IsZero() {
		t.Errorf("expected zero release velocity, got %v", v)
	}
}

func TestHoverCursor(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	f.ctrl.PointerMove(geom.V(400, 100), t0)
	if f.ctrl.Cursor() != CursorGrab {
		t.Errorf("expected grab over label, got %s", f.ctrl.Cursor())
	}
	f.ctrl.PointerMove(geom.V(700, 700), t0)
	if f.ctrl.Cursor() != CursorDefault {
		t.Errorf("expected default off label, got %s", f.ctrl.Cursor())
	}

	f.ctrl.PointerDown(geom.V(400, 100), t0)
	f.ctrl.PointerMove(geom.V(900, 900), t0.Add(time.Second))
	if f.ctrl.Cursor() != CursorGrabbing {
		t.Errorf("hover test ran during drag, cursor %s", f.ctrl.Cursor())
	}
}

func TestSecondPressIgnoredWhileDragging(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	f.ctrl.PointerDown(geom.V(400, 100), t0)
	f.ctrl.PointerDown(geom.V(100, 100), t0)

	s, _ := f.ctrl.Session()
	if s.Body != f.labels[1] {
		t.Errorf("expected drag to stay on %d, got %d", f.labels[1], s.Body)
	}
}

func TestNonFiniteMoveDropped(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	body := f.labels[1]

	f.ctrl.PointerDown(geom.V(400, 100), t0)
	f.ctrl.PointerMove(geom.V(math.Inf(1), 100), t0.Add(20*time.Millisecond))

	if f.eng.Position(body) != geom.V(400, 100) {
		t.Errorf("body moved to %v", f.eng.Position(body))
	}
	s, _ := f.ctrl.Session()
	if s.Sampled {
		t.Error("non-finite sample accepted")
	}
}

func TestEventsIgnoredBeforeStart(t *testing.T) {
	eng := enginetest.New()
	h := eng.CreateRect(engine.BodyOptions{Position: geom.V(0, 0), Width: 10, Height: 10})
	c := New(eng, []engine.Handle{h}, schedule.NewQueue(), DefaultConfig())

	c.Dispatch(PointerDown{Pos: geom.V(0, 0), At: t0})
	if _, ok := c.Session(); ok {
		t.Error("drag started before Start")
	}
	if eng.Subscribers() != 0 {
		t.Error("subscribed before Start")
	}
}

func TestStartStopIdempotent(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	f.ctrl.Start()
	if f.eng.Subscribers() != 1 {
		t.Errorf("expected 1 subscriber, got %d", f.eng.Subscribers())
	}
	if f.queue.Pending() != 1 {
		t.Errorf("expected 1 pending tick, got %d", f.queue.Pending())
	}

	f.ctrl.Stop()
	f.ctrl.Stop()
	if f.eng.Subscribers() != 0 {
		t.Errorf("expected no subscribers, got %d", f.eng.Subscribers())
	}
	if f.queue.Pending() != 0 {
		t.Errorf("expected no pending ticks, got %d", f.queue.Pending())
	}
}

func TestResizeRebuildsBoundaries(t *testing.T) {
	layout := layoutFunc(func(w, h float64) []engine.BodyOptions {
		return []engine.BodyOptions{
			{Position: geom.V(w/2, -20), Width: w, Height: 40},
			{Position: geom.V(w/2, h+20), Width: w, Height: 40},
		}
	})
	f := newFixture(t, DefaultConfig(), WithLayout(layout))
	old := f.eng.CreateRect(engine.BodyOptions{Static: true, Width: 10, Height: 10})

	f.ctrl.Dispatch(Resized{Width: 800, Height: 600})

	statics := 0
	for _, h := range f.eng.Bodies() {
		if h == old {
			t.Error("old boundary not removed")
		}
		if f.eng.IsStatic(h) {
			statics++
		}
	}
	if statics != 2 {
		t.Errorf("expected 2 boundaries, got %d", statics)
	}
	for _, h := range f.labels {
		if len(f.eng.CallsFor("remove", h)) != 0 {
			t.Errorf("label %d removed", h)
		}
	}
}

func TestResizeWithoutLayoutOnlyRemoves(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.eng.CreateRect(engine.BodyOptions{Static: true, Width: 10, Height: 10})

	f.ctrl.Resize(100, 100)

	if got := len(f.eng.Bodies()); got != len(f.labels) {
		t.Errorf("expected only labels left, got %d bodies", got)
	}
}

type layoutFunc func(w, h float64) []engine.BodyOptions

func (f layoutFunc) Boundaries(w, h float64) []engine.BodyOptions { return f(w, h) }
