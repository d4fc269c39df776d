// Package effects holds the small pointer-driven decorations around the
// word cloud: magnetic navigation links and the glass highlight.
package effects

import "github.com/san-kum/gravwords/internal/geom"

const (
	DefaultStrength = 0.2
	DefaultLerp     = 0.1
)

// Magnetic returns how far a link should translate toward the pointer and
// where its gradient sits, as a percentage of its width.
func Magnetic(rect geom.Bounds, p geom.Vec, strength float64) (offset geom.Vec, gradient float64) {
	local := p.Sub(rect.Min)
	center := geom.V(rect.Width()/2, rect.Height()/2)
	offset = local.Sub(center).Scale(strength)
	if w := rect.Width(); w > 0 {
		gradient = local.X / w * 100
	}
	if !offset.IsFinite() {
		offset = geom.Vec{}
	}
	return offset, gradient
}

// Magnet tracks one link. Hover follows the pointer while it is inside the
// link; leaving resets the offset.
type Magnet struct {
	Rect     geom.Bounds
	Strength float64

	offset   geom.Vec
	gradient float64
	hovering bool
}

func NewMagnet(rect geom.Bounds, strength float64) *Magnet {
	return &Magnet{Rect: rect, Strength: strength}
}

// Move updates the magnet for a pointer position and reports whether the
// pointer is over the link.
func (m *Magnet) Move(p geom.Vec) bool {
	if !m.Rect.Contains(p) {
		m.Leave()
		return false
	}
	m.hovering = true
	m.offset, m.gradient = Magnetic(m.Rect, p, m.Strength)
	return true
}

func (m *Magnet) Leave() {
	m.hovering = false
	m.offset = geom.Vec{}
}

func (m *Magnet) Offset() geom.Vec  { return m.offset }
func (m *Magnet) Gradient() float64 { return m.gradient }
func (m *Magnet) Hovering() bool    { return m.hovering }

// PagePercent maps p to percentages of the page size.
func PagePercent(p geom.Vec, width, height float64) geom.Vec {
	if width <= 0 || height <= 0 {
		return geom.Vec{}
	}
	return geom.V(p.X/width*100, p.Y/height*100)
}

// Glass eases a highlight toward the pointer, relative to its container.
// The first sample snaps.
type Glass struct {
	Container geom.Bounds
	Factor    float64

	pos    geom.Vec
	seeded bool
}

func NewGlass(container geom.Bounds, factor float64) *Glass {
	return &Glass{Container: container, Factor: factor}
}

// Follow moves the highlight one lerp step toward p and returns its new
// container-relative position.
func (g *Glass) Follow(p geom.Vec) geom.Vec {
	target := p.Sub(g.Container.Min)
	if !target.IsFinite() {
		return g.pos
	}
	if !g.seeded {
		g.pos, g.seeded = target, true
		return g.pos
	}
	g.pos = g.pos.Add(target.Sub(g.pos).Scale(g.Factor))
	return g.pos
}

func (g *Glass) Position() geom.Vec { return g.pos }

func (g *Glass) Reset() { g.seeded = false; g.pos = geom.Vec{} }
