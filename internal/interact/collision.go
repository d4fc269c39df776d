package interact

import (
	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/geom"
)

// HandleCollisions applies the configured collision policy to the pairs of
// one engine step.
func (c *Controller) HandleCollisions(pairs []engine.Pair) {
	if !c.started {
		return
	}
	switch c.cfg.Collision.Policy {
	case PolicySimple:
		for _, p := range pairs {
			c.spinOnImpact(p)
		}
	case PolicyExchange:
		for _, p := range pairs {
			c.exchange(p)
		}
	}
}

func (c *Controller) spinOnImpact(p engine.Pair) {
	if p.RelativeVelocity.Len() <= c.cfg.Collision.ImpactThreshold {
		return
	}
	delta := c.jitter(c.cfg.Collision.RotationImpulse)
	for _, h := range [2]engine.Handle{p.A, p.B} {
		if c.managed[h] {
			c.eng.Rotate(h, delta)
		}
	}
}

// exchange gives A the negated, damped velocity of B and vice versa. Head-on
// this points each label back toward the other; restitution separates them.
func (c *Controller) exchange(p engine.Pair) {
	if !c.managed[p.A] || !c.managed[p.B] {
		return
	}
	d := c.cfg.Collision.Damping
	va := c.boundSpeed(p.VelocityB.Neg().Scale(d))
	vb := c.boundSpeed(p.VelocityA.Neg().Scale(d))
	if !c.dragged(p.A) {
		c.eng.SetVelocity(p.A, va)
	}
	if !c.dragged(p.B) {
		c.eng.SetVelocity(p.B, vb)
	}
}

// boundSpeed keeps an exchanged velocity inside [MinSpeed, MaxSpeed]. A
// velocity that is too slow, including a non-finite one, is replaced by a
// random direction at MinSpeed.
func (c *Controller) boundSpeed(v geom.Vec) geom.Vec {
	cc := c.cfg.Collision
	speed := v.Len()
	if !v.IsFinite() || speed < cc.MinSpeed {
		return geom.Polar(c.randomAngle(), cc.MinSpeed)
	}
	return v.ClampLen(cc.MaxSpeed)
}
