package interact

import (
	"math"

	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/geom"
	"go.uber.org/zap"
)

type ambientState struct {
	running bool
	gen     uint64
	cancel  func()
	ticks   int
}

// AmbientRunning reports whether the ambient tick is scheduled.
func (c *Controller) AmbientRunning() bool { return c.ambient.running }

// AmbientTicks counts ticks that actually mutated the labels.
func (c *Controller) AmbientTicks() int { return c.ambient.ticks }

func (c *Controller) startAmbient() {
	if c.ambient.running {
		return
	}
	c.ambient.running = true
	c.ambient.gen++
	c.scheduleAmbient()
	c.log.Info("ambient motion started", zap.Uint64("gen", c.ambient.gen))
}

func (c *Controller) scheduleAmbient() {
	if c.sched == nil {
		return
	}
	gen := c.ambient.gen
	c.ambient.cancel = c.sched.After(c.cfg.Ambient.Interval, func() {
		c.Dispatch(AmbientTick{Gen: gen})
	})
}

// stopAmbient cancels the tick and, when configured, decays label
// velocities toward rest.
func (c *Controller) stopAmbient() {
	if !c.ambient.running {
		return
	}
	c.ambient.running = false
	if c.ambient.cancel != nil {
		c.ambient.cancel()
		c.ambient.cancel = nil
	}
	if f := c.cfg.Ambient.StopDecay; f >= 0 && f < 1 {
		for _, h := range c.labels {
			if !c.dragged(h) {
				c.eng.SetVelocity(h, c.eng.Velocity(h).Scale(f))
			}
		}
	}
	c.log.Info("ambient motion stopped", zap.Uint64("gen", c.ambient.gen))
}

// AmbientTick runs one round of idle motion. Ticks from a stopped or
// restarted schedule are ignored.
func (c *Controller) AmbientTick(gen uint64) {
	if !c.started || !c.ambient.running || gen != c.ambient.gen {
		return
	}
	c.ambient.ticks++
	for _, h := range c.labels {
		if c.dragged(h) {
			continue
		}
		c.idleRotate(h)
		if c.cfg.Ambient.Energy {
			c.energize(h)
		}
	}
	c.scheduleAmbient()
}

// idleRotate nudges the angle by a small random delta. If the result would
// leave [-MaxAngle, MaxAngle] the angle snaps to the signed bound instead.
func (c *Controller) idleRotate(h engine.Handle) {
	bound := c.cfg.Ambient.MaxAngle
	angle := math.Remainder(c.eng.Angle(h), 2*math.Pi)
	delta := c.jitter(c.cfg.Ambient.RotationJitter)
	next := angle + delta
	if math.Abs(next) > bound {
		c.eng.SetAngle(h, math.Copysign(bound, next))
		return
	}
	if angle != c.eng.Angle(h) {
		c.eng.SetAngle(h, next)
		return
	}
	c.eng.Rotate(h, delta)
}

func (c *Controller) energize(h engine.Handle) {
	a := c.cfg.Ambient
	speed := c.eng.Velocity(h).Len()
	switch {
	case speed < a.RestFloor:
		c.eng.SetVelocity(h, geom.Polar(c.randomAngle(), a.RestSpeed))
	case speed < a.ForceFloor:
		c.eng.ApplyForce(h, c.eng.Position(h), geom.Polar(c.randomAngle(), a.Force))
	}
}
