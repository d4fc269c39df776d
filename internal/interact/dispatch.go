package interact

import (
	"time"

	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/geom"
)

// Msg is an external event consumed by Dispatch.
type Msg interface{ interactMsg() }

type PointerDown struct {
	Pos geom.Vec
	At  time.Time
}

type PointerMove struct {
	Pos geom.Vec
	At  time.Time
}

type PointerUp struct {
	At time.Time
}

type Collisions struct {
	Pairs []engine.Pair
}

type VisibilityChanged struct {
	Visible bool
}

type Resized struct {
	Width, Height float64
}

type AmbientTick struct {
	Gen uint64
}

func (PointerDown) interactMsg()       {}
func (PointerMove) interactMsg()       {}
func (PointerUp) interactMsg()         {}
func (Collisions) interactMsg()        {}
func (VisibilityChanged) interactMsg() {}
func (Resized) interactMsg()           {}
func (AmbientTick) interactMsg()       {}

// Dispatch routes one message to its handler. Handlers run to completion
// before Dispatch returns.
func (c *Controller) Dispatch(msg Msg) {
	switch m := msg.(type) {
	case PointerDown:
		c.PointerDown(m.Pos, m.At)
	case PointerMove:
		c.PointerMove(m.Pos, m.At)
	case PointerUp:
		c.PointerUp(m.At)
	case Collisions:
		c.HandleCollisions(m.Pairs)
	case VisibilityChanged:
		c.SetVisible(m.Visible)
	case Resized:
		c.Resize(m.Width, m.Height)
	case AmbientTick:
		c.AmbientTick(m.Gen)
	}
}
