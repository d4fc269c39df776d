// Package chipmunk implements engine.Engine on top of the Chipmunk2D port
// github.com/jakecoffman/cp.
package chipmunk

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/geom"
)

const (
	dynamicType cp.CollisionType = 1
	staticType  cp.CollisionType = 2

	solverIterations = 10
	// BodyOptions.FrictionAir is a velocity loss per step at this rate.
	referenceRate = 60.0
)

type entry struct {
	handle engine.Handle
	body   *cp.Body
	shape  *cp.Shape
	opts   engine.BodyOptions
}

type Options struct {
	Gravity geom.Vec
}

type Engine struct {
	space   *cp.Space
	entries map[engine.Handle]*entry
	byBody  map[*cp.Body]engine.Handle
	order   []engine.Handle
	next    engine.Handle
	pending []engine.Pair
	subs    map[int]engine.CollisionFunc
	nextSub int
}

var _ engine.Engine = (*Engine)(nil)

func New(opts Options) *Engine {
	space := cp.NewSpace()
	space.Iterations = solverIterations
	space.SetGravity(cp.Vector{X: opts.Gravity.X, Y: opts.Gravity.Y})

	e := &Engine{
		space:   space,
		entries: make(map[engine.Handle]*entry),
		byBody:  make(map[*cp.Body]engine.Handle),
		subs:    make(map[int]engine.CollisionFunc),
	}

	begin := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		a, b := arb.Bodies()
		e.queuePair(a, b)
		return true
	}
	space.NewCollisionHandler(dynamicType, dynamicType).BeginFunc = begin
	space.NewCollisionHandler(dynamicType, staticType).BeginFunc = begin

	return e
}

func (e *Engine) queuePair(a, b *cp.Body) {
	ha, okA := e.byBody[a]
	hb, okB := e.byBody[b]
	if !okA || !okB {
		return
	}
	va, vb := toVec(a.Velocity()), toVec(b.Velocity())
	e.pending = append(e.pending, engine.Pair{
		A:                ha,
		B:                hb,
		VelocityA:        va,
		VelocityB:        vb,
		RelativeVelocity: vb.Sub(va),
	})
}

func (e *Engine) CreateRect(opts engine.BodyOptions) engine.Handle {
	w, h := math.Max(opts.Width, 1), math.Max(opts.Height, 1)

	var body *cp.Body
	if opts.Static {
		body = cp.NewStaticBody()
	} else {
		density := opts.Density
		if density <= 0 {
			density = 0.001
		}
		mass := density * w * h
		body = cp.NewBody(mass, cp.MomentForBox(mass, w, h))
		if opts.FrictionAir > 0 {
			retain := 1 - math.Min(opts.FrictionAir, 1)
			body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
				cp.BodyUpdateVelocity(b, gravity, math.Pow(retain, dt*referenceRate), dt)
			})
		}
	}
	body.SetPosition(cp.Vector{X: opts.Position.X, Y: opts.Position.Y})
	body.SetAngle(opts.Angle)
	e.space.AddBody(body)

	// cp inflates the box by the corner radius, so shrink the core to keep
	// the outer size at w x h.
	r := math.Min(math.Max(opts.Chamfer, 0), math.Min(w, h)/2-0.5)
	if r < 0 {
		r = 0
	}
	shape := e.space.AddShape(cp.NewBox(body, w-2*r, h-2*r, r))
	shape.SetElasticity(opts.Restitution)
	shape.SetFriction(opts.Friction)
	if opts.Static {
		shape.SetCollisionType(staticType)
	} else {
		shape.SetCollisionType(dynamicType)
	}

	e.next++
	ent := &entry{handle: e.next, body: body, shape: shape, opts: opts}
	ent.opts.Width, ent.opts.Height = w, h
	e.entries[ent.handle] = ent
	e.byBody[body] = ent.handle
	e.order = append(e.order, ent.handle)
	return ent.handle
}

func (e *Engine) Remove(h engine.Handle) {
	ent, ok := e.entries[h]
	if !ok {
		return
	}
	e.space.RemoveShape(ent.shape)
	e.space.RemoveBody(ent.body)
	delete(e.entries, h)
	delete(e.byBody, ent.body)
	for i, o := range e.order {
		if o == h {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

func (e *Engine) Bodies() []engine.Handle {
	out := make([]engine.Handle, len(e.order))
	copy(out, e.order)
	return out
}

func (e *Engine) IsStatic(h engine.Handle) bool {
	ent, ok := e.entries[h]
	return ok && ent.opts.Static
}

func (e *Engine) Position(h engine.Handle) geom.Vec {
	if ent, ok := e.entries[h]; ok {
		return toVec(ent.body.Position())
	}
	return geom.Vec{}
}

func (e *Engine) Velocity(h engine.Handle) geom.Vec {
	if ent, ok := e.entries[h]; ok {
		return toVec(ent.body.Velocity())
	}
	return geom.Vec{}
}

func (e *Engine) Angle(h engine.Handle) float64 {
	if ent, ok := e.entries[h]; ok {
		return ent.body.Angle()
	}
	return 0
}

// Bounds is the AABB of the rotated rectangle at the body's current
// transform, so it is valid straight after SetPosition.
func (e *Engine) Bounds(h engine.Handle) geom.Bounds {
	ent, ok := e.entries[h]
	if !ok {
		return geom.Bounds{}
	}
	c, s := math.Abs(math.Cos(ent.body.Angle())), math.Abs(math.Sin(ent.body.Angle()))
	hw, hh := ent.opts.Width/2, ent.opts.Height/2
	ex, ey := hw*c+hh*s, hw*s+hh*c
	p := toVec(ent.body.Position())
	return geom.Bounds{Min: geom.V(p.X-ex, p.Y-ey), Max: geom.V(p.X+ex, p.Y+ey)}
}

func (e *Engine) Label(h engine.Handle) string {
	if ent, ok := e.entries[h]; ok {
		return ent.opts.Label
	}
	return ""
}

func (e *Engine) Color(h engine.Handle) string {
	if ent, ok := e.entries[h]; ok {
		return ent.opts.Color
	}
	return ""
}

// SetPosition ignores static bodies. Walls are rebuilt on resize instead of
// moved.
func (e *Engine) SetPosition(h engine.Handle, p geom.Vec) {
	if ent, ok := e.entries[h]; ok && !ent.opts.Static && p.IsFinite() {
		ent.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
	}
}

func (e *Engine) SetVelocity(h engine.Handle, v geom.Vec) {
	if ent, ok := e.entries[h]; ok && !ent.opts.Static && v.IsFinite() {
		ent.body.SetVelocity(v.X, v.Y)
	}
}

func (e *Engine) SetAngle(h engine.Handle, a float64) {
	if ent, ok := e.entries[h]; ok && !math.IsNaN(a) && !math.IsInf(a, 0) {
		ent.body.SetAngle(a)
	}
}

func (e *Engine) Rotate(h engine.Handle, delta float64) {
	if ent, ok := e.entries[h]; ok {
		e.SetAngle(h, ent.body.Angle()+delta)
	}
}

func (e *Engine) ApplyForce(h engine.Handle, point, force geom.Vec) {
	if ent, ok := e.entries[h]; ok && !ent.opts.Static && force.IsFinite() {
		ent.body.ApplyForceAtWorldPoint(cp.Vector{X: force.X, Y: force.Y}, cp.Vector{X: point.X, Y: point.Y})
	}
}

// Step advances the space and then delivers the collision starts gathered
// during the step. Delivery happens outside the solver so subscribers may
// mutate bodies freely.
func (e *Engine) Step(dt float64) {
	if dt <= 0 {
		return
	}
	e.space.Step(dt)
	if len(e.pending) == 0 {
		return
	}
	pairs := e.pending
	e.pending = nil
	for _, fn := range e.subs {
		fn(pairs)
	}
}

func (e *Engine) OnCollisionStart(fn engine.CollisionFunc) func() {
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() { delete(e.subs, id) }
}

func toVec(v cp.Vector) geom.Vec { return geom.V(v.X, v.Y) }
