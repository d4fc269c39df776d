// Package enginetest provides an in-memory engine.Engine for tests.
package enginetest

import (
	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/geom"
)

type body struct {
	opts  engine.BodyOptions
	pos   geom.Vec
	vel   geom.Vec
	angle float64
	force geom.Vec
}

// Call records one mutation made through the engine API.
type Call struct {
	Op     string
	Handle engine.Handle
	Vec    geom.Vec
	Value  float64
}

// Fake integrates velocities linearly on Step and never generates
// collisions on its own; tests inject them with Collide.
type Fake struct {
	bodies  map[engine.Handle]*body
	order   []engine.Handle
	next    engine.Handle
	subs    map[int]engine.CollisionFunc
	nextSub int
	Calls   []Call
	Stepped float64
}

var _ engine.Engine = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		bodies: make(map[engine.Handle]*body),
		subs:   make(map[int]engine.CollisionFunc),
	}
}

func (f *Fake) record(op string, h engine.Handle, v geom.Vec, val float64) {
	f.Calls = append(f.Calls, Call{Op: op, Handle: h, Vec: v, Value: val})
}

// CallsFor returns recorded calls of op on h.
func (f *Fake) CallsFor(op string, h engine.Handle) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Op == op && c.Handle == h {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) ResetCalls() { f.Calls = nil }

func (f *Fake) CreateRect(opts engine.BodyOptions) engine.Handle {
	f.next++
	h := f.next
	f.bodies[h] = &body{opts: opts, pos: opts.Position, angle: opts.Angle}
	f.order = append(f.order, h)
	f.record("create", h, opts.Position, 0)
	return h
}

func (f *Fake) Remove(h engine.Handle) {
	if _, ok := f.bodies[h]; !ok {
		return
	}
	delete(f.bodies, h)
	for i, o := range f.order {
		if o == h {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	f.record("remove", h, geom.Vec{}, 0)
}

func (f *Fake) Bodies() []engine.Handle {
	out := make([]engine.Handle, len(f.order))
	copy(out, f.order)
	return out
}

func (f *Fake) get(h engine.Handle) *body {
	if b, ok := f.bodies[h]; ok {
		return b
	}
	return &body{}
}

func (f *Fake) IsStatic(h engine.Handle) bool     { return f.get(h).opts.Static }
func (f *Fake) Position(h engine.Handle) geom.Vec { return f.get(h).pos }
func (f *Fake) Velocity(h engine.Handle) geom.Vec { return f.get(h).vel }
func (f *Fake) Angle(h engine.Handle) float64     { return f.get(h).angle }
func (f *Fake) Label(h engine.Handle) string      { return f.get(h).opts.Label }
func (f *Fake) Color(h engine.Handle) string      { return f.get(h).opts.Color }

// Force returns the force accumulated since the last Step.
func (f *Fake) Force(h engine.Handle) geom.Vec { return f.get(h).force }

// Bounds ignores rotation, which keeps hit-test expectations simple.
func (f *Fake) Bounds(h engine.Handle) geom.Bounds {
	b := f.get(h)
	return geom.Rect(b.pos, b.opts.Width, b.opts.Height)
}

func (f *Fake) SetPosition(h engine.Handle, p geom.Vec) {
	if b := f.get(h); !b.opts.Static {
		b.pos = p
	}
	f.record("setPosition", h, p, 0)
}

func (f *Fake) SetVelocity(h engine.Handle, v geom.Vec) {
	f.get(h).vel = v
	f.record("setVelocity", h, v, 0)
}

func (f *Fake) SetAngle(h engine.Handle, a float64) {
	f.get(h).angle = a
	f.record("setAngle", h, geom.Vec{}, a)
}

func (f *Fake) Rotate(h engine.Handle, d float64) {
	f.get(h).angle += d
	f.record("rotate", h, geom.Vec{}, d)
}

func (f *Fake) ApplyForce(h engine.Handle, point, force geom.Vec) {
	b := f.get(h)
	b.force = b.force.Add(force)
	f.record("applyForce", h, force, 0)
}

func (f *Fake) Step(dt float64) {
	f.Stepped += dt
	for _, h := range f.order {
		b := f.bodies[h]
		if b.opts.Static {
			continue
		}
		b.pos = b.pos.Add(b.vel.Scale(dt))
		b.force = geom.Vec{}
	}
}

func (f *Fake) OnCollisionStart(fn engine.CollisionFunc) func() {
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	return func() { delete(f.subs, id) }
}

// Subscribers returns the number of live collision subscriptions.
func (f *Fake) Subscribers() int { return len(f.subs) }

// Collide delivers pairs to every subscriber, filling pre-collision
// velocities from current body state when they are unset.
func (f *Fake) Collide(pairs ...engine.Pair) {
	for i := range pairs {
		p := &pairs[i]
		if p.VelocityA.IsZero() && p.VelocityB.IsZero() {
			p.VelocityA = f.get(p.A).vel
			p.VelocityB = f.get(p.B).vel
		}
		if p.RelativeVelocity.IsZero() {
			p.RelativeVelocity = p.VelocityB.Sub(p.VelocityA)
		}
	}
	for _, fn := range f.subs {
		fn(pairs)
	}
}
