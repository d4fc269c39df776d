package interact

import (
	"time"

	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/geom"
	"go.uber.org/zap"
)

// DragSession tracks one label being dragged by the pointer.
type DragSession struct {
	Body         engine.Handle
	LastPosition geom.Vec
	LastTime     time.Time
	// Velocity is the latest clamped estimate of pointer velocity.
	Velocity geom.Vec
	// Sampled is false until the first accepted move.
	Sampled bool
}

// Session returns a copy of the active drag session.
func (c *Controller) Session() (DragSession, bool) {
	if c.session == nil {
		return DragSession{}, false
	}
	return *c.session, true
}

// PointerDown starts a drag on the first label under p. While a drag is
// already active further presses are ignored.
func (c *Controller) PointerDown(p geom.Vec, at time.Time) {
	if !c.started || c.session != nil {
		return
	}
	h, ok := c.Pick(p)
	if !ok {
		return
	}
	c.session = &DragSession{Body: h, LastPosition: p, LastTime: at}
	c.cursor = CursorGrabbing
	c.log.Debug("drag start", zap.String("label", c.eng.Label(h)), zap.Float64("x", p.X), zap.Float64("y", p.Y))
}

// PointerMove moves the dragged label onto the pointer and updates the
// velocity estimate. Without a drag it only refreshes the hover cursor.
func (c *Controller) PointerMove(p geom.Vec, at time.Time) {
	if !c.started {
		return
	}
	s := c.session
	if s == nil {
		if _, ok := c.Pick(p); ok {
			c.cursor = CursorGrab
		} else {
			c.cursor = CursorDefault
		}
		return
	}
	if !p.IsFinite() {
		return
	}

	elapsed := at.Sub(s.LastTime).Seconds()
	if floor := c.cfg.MinFrameInterval.Seconds(); elapsed < floor {
		elapsed = floor
	}
	v := p.Sub(s.LastPosition).Scale(1 / elapsed).ClampLen(c.cfg.MaxDragSpeed)
	if v.IsFinite() {
		s.Velocity = v
		s.Sampled = true
	}

	c.eng.SetPosition(s.Body, p)
	c.eng.SetVelocity(s.Body, geom.Vec{})

	s.LastPosition = p
	s.LastTime = at
}

// PointerUp throws the dragged label with the damped velocity estimate and
// ends the session. A press without movement releases at rest.
func (c *Controller) PointerUp(at time.Time) {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	c.cursor = CursorDefault

	var release geom.Vec
	if s.Sampled {
		release = s.Velocity.Scale(c.cfg.ThrowDamping)
	}
	c.eng.SetVelocity(s.Body, release)
	c.log.Debug("drag release",
		zap.String("label", c.eng.Label(s.Body)),
		zap.Float64("vx", release.X), zap.Float64("vy", release.Y))
}
