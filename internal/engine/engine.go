// Package engine defines the contract between the interaction layer and the
// rigid-body engine that owns the bodies.
//
// The interaction layer never integrates motion itself. It creates bodies,
// mutates their position, velocity and angle, applies forces and listens
// for collision starts; the engine advances the simulation when its
// [Runner] asks it to.
//
// # Example
//
//	eng := chipmunk.New(chipmunk.Options{})
//	h := eng.CreateRect(engine.BodyOptions{Width: 150, Height: 40, Label: "go"})
//	eng.SetVelocity(h, geom.V(30, 0))
//	eng.Step(1.0 / 60)
//
// # Thread Safety
//
// Engines are NOT thread-safe. Every call must come from the host's event
// loop goroutine.
package engine

import "github.com/san-kum/gravwords/internal/geom"

// Handle is an opaque, non-owning reference to an engine body. The zero
// Handle never refers to a body.
type Handle uint64

// BodyOptions configures a rectangular body.
type BodyOptions struct {
	Position    geom.Vec
	Width       float64
	Height      float64
	Chamfer     float64
	Angle       float64
	Static      bool
	Density     float64
	FrictionAir float64
	Friction    float64
	Restitution float64
	Label       string
	Color       string
}

// Pair is one collision start reported by the engine. Velocities are
// sampled before the engine resolves the contact.
type Pair struct {
	A, B             Handle
	VelocityA        geom.Vec
	VelocityB        geom.Vec
	RelativeVelocity geom.Vec
}

// CollisionFunc receives the pairs that started touching during one step.
type CollisionFunc func(pairs []Pair)

type Engine interface {
	CreateRect(opts BodyOptions) Handle
	Remove(h Handle)
	// Bodies lists every live body in creation order.
	Bodies() []Handle
	IsStatic(h Handle) bool

	Position(h Handle) geom.Vec
	Velocity(h Handle) geom.Vec
	Angle(h Handle) float64
	Bounds(h Handle) geom.Bounds
	Label(h Handle) string
	Color(h Handle) string

	// SetPosition is a no-op for static bodies.
	SetPosition(h Handle, p geom.Vec)
	SetVelocity(h Handle, v geom.Vec)
	SetAngle(h Handle, a float64)
	Rotate(h Handle, delta float64)
	ApplyForce(h Handle, point, force geom.Vec)

	Step(dt float64)
	// OnCollisionStart subscribes fn and returns a function that removes
	// the subscription.
	OnCollisionStart(fn CollisionFunc) (unsubscribe func())
}
