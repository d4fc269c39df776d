// Package interact implements the interaction layer of the word cloud:
// picking and dragging labels, throwing them on release, reacting to
// collisions, keeping idle labels gently in motion while the hero region is
// visible, and rebuilding boundaries on resize.
//
// A Controller is driven by typed messages through Dispatch (or the
// equivalent methods) from exactly one goroutine, the host's event loop.
// It never steps the engine; the host does that through engine.Runner.
package interact

import (
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/geom"
	"go.uber.org/zap"
)

// Scheduler runs fn on the controller's event loop once d has elapsed.
// The returned cancel must be safe to call more than once.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// Layout measures the surface and returns the static boundaries that
// should exist for it. Targets that cannot be measured are simply absent.
type Layout interface {
	Boundaries(width, height float64) []engine.BodyOptions
}

type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
)

func (c Cursor) String() string {
	switch c {
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	default:
		return "default"
	}
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		if r != nil {
			c.rng = r
		}
	}
}

func WithLayout(l Layout) Option {
	return func(c *Controller) { c.layout = l }
}

// WithVisible sets the initial visibility of the hero region. Defaults to
// true.
func WithVisible(v bool) Option {
	return func(c *Controller) { c.visible = v }
}

type Controller struct {
	cfg    Config
	eng    engine.Engine
	sched  Scheduler
	layout Layout
	log    *zap.Logger
	rng    *rand.Rand

	labels  []engine.Handle
	managed map[engine.Handle]bool

	session *DragSession
	cursor  Cursor

	started     bool
	unsubscribe func()
	visible     bool

	ambient ambientState
}

// New builds a controller over a fixed list of label bodies. The list is
// copied; its order is the pick order.
func New(eng engine.Engine, labels []engine.Handle, sched Scheduler, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:     cfg,
		eng:     eng,
		sched:   sched,
		log:     zap.NewNop(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		labels:  append([]engine.Handle(nil), labels...),
		managed: make(map[engine.Handle]bool, len(labels)),
		visible: true,
	}
	for _, h := range labels {
		c.managed[h] = true
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start subscribes to collision starts and, if the region is visible,
// begins the ambient tick. Calling Start twice is a no-op.
func (c *Controller) Start() {
	if c.started {
		return
	}
	c.started = true
	c.unsubscribe = c.eng.OnCollisionStart(func(pairs []engine.Pair) {
		c.Dispatch(Collisions{Pairs: pairs})
	})
	if c.visible {
		c.startAmbient()
	}
	c.log.Info("interaction started",
		zap.Int("labels", len(c.labels)),
		zap.String("policy", string(c.cfg.Collision.Policy)))
}

// Stop tears down the collision subscription and the ambient tick and drops
// any drag in progress. Calling Stop twice is a no-op.
func (c *Controller) Stop() {
	if !c.started {
		return
	}
	c.stopAmbient()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.session = nil
	c.cursor = CursorDefault
	c.started = false
	c.log.Info("interaction stopped")
}

func (c *Controller) Started() bool           { return c.started }
func (c *Controller) Config() Config          { return c.cfg }
func (c *Controller) Cursor() Cursor          { return c.cursor }
func (c *Controller) Visible() bool           { return c.visible }
func (c *Controller) Engine() engine.Engine   { return c.eng }
func (c *Controller) Labels() []engine.Handle { return append([]engine.Handle(nil), c.labels...) }

// IsLabel reports whether h is one of the tracked label bodies.
func (c *Controller) IsLabel(h engine.Handle) bool { return c.managed[h] }

// Pick returns the first label, in list order, whose bounds contain p.
func (c *Controller) Pick(p geom.Vec) (engine.Handle, bool) {
	if !p.IsFinite() {
		return 0, false
	}
	for _, h := range c.labels {
		if c.eng.Bounds(h).Contains(p) {
			return h, true
		}
	}
	return 0, false
}

// SetVisible applies a visibility transition of the hero region. Becoming
// visible starts the ambient tick if it is not running; becoming hidden
// stops it. Repeated reports of the same state change nothing.
func (c *Controller) SetVisible(v bool) {
	c.visible = v
	if !c.started {
		return
	}
	if v {
		c.startAmbient()
	} else {
		c.stopAmbient()
	}
}

// Resize removes every static body that is not a label and recreates the
// boundaries for the new surface size.
func (c *Controller) Resize(width, height float64) {
	removed := 0
	for _, h := range c.eng.Bodies() {
		if c.eng.IsStatic(h) && !c.managed[h] {
			c.eng.Remove(h)
			removed++
		}
	}
	created := 0
	if c.layout != nil {
		for _, opts := range c.layout.Boundaries(width, height) {
			opts.Static = true
			c.eng.CreateRect(opts)
			created++
		}
	}
	c.log.Debug("boundaries rebuilt",
		zap.Float64("width", width), zap.Float64("height", height),
		zap.Int("removed", removed), zap.Int("created", created))
}

func (c *Controller) dragged(h engine.Handle) bool {
	return c.session != nil && c.session.Body == h
}

// randomAngle returns a uniformly random direction in radians.
func (c *Controller) randomAngle() float64 {
	return c.rng.Float64() * 2 * math.Pi
}

// jitter returns a uniform value in [-span/2, span/2).
func (c *Controller) jitter(span float64) float64 {
	return (c.rng.Float64() - 0.5) * span
}
