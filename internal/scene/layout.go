package scene

import (
	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/geom"
)

// Target is one measured piece of page chrome that labels must bounce off,
// such as the title or the scroll arrow.
type Target struct {
	Name   string
	Bounds geom.Bounds
}

// Measure reports the targets present for a surface size. Targets that are
// not on the page are left out.
type Measure func(width, height float64) []Target

// Layout produces the static boundaries for a surface: four walls just
// outside its edges plus one padded rectangle per header target.
type Layout struct {
	Margin      float64
	Padding     float64
	Restitution float64
	Friction    float64
	Measure     Measure
}

func (l Layout) wall(center geom.Vec, w, h float64, name string) engine.BodyOptions {
	return engine.BodyOptions{
		Position:    center,
		Width:       w,
		Height:      h,
		Static:      true,
		Restitution: l.Restitution,
		Friction:    l.Friction,
		Label:       name,
	}
}

// Walls returns top, bottom, left and right walls, each 2*Margin thick and
// centered Margin outside the surface edge.
func (l Layout) Walls(width, height float64) []engine.BodyOptions {
	m := l.Margin
	return []engine.BodyOptions{
		l.wall(geom.V(width/2, -m), width+2*m, 2*m, "wall:top"),
		l.wall(geom.V(width/2, height+m), width+2*m, 2*m, "wall:bottom"),
		l.wall(geom.V(-m, height/2), 2*m, height+2*m, "wall:left"),
		l.wall(geom.V(width+m, height/2), 2*m, height+2*m, "wall:right"),
	}
}

// Header returns one boundary per measured target, padded on every side.
func (l Layout) Header(width, height float64) []engine.BodyOptions {
	if l.Measure == nil {
		return nil
	}
	var out []engine.BodyOptions
	for _, t := range l.Measure(width, height) {
		if t.Bounds.Empty() {
			continue
		}
		b := t.Bounds.Pad(l.Padding)
		out = append(out, l.wall(b.Center(), b.Width(), b.Height(), "header:"+t.Name))
	}
	return out
}

func (l Layout) Boundaries(width, height float64) []engine.BodyOptions {
	return append(l.Header(width, height), l.Walls(width, height)...)
}
