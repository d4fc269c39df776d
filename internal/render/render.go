// Package render defines the surface labels are drawn onto each frame and
// the surfaces the hosts use.
package render

import "github.com/san-kum/gravwords/internal/geom"

// Surface receives one frame at a time: Clear, then one DrawLabel per
// label. Positions are label centers in world units; angles are radians.
type Surface interface {
	Clear()
	DrawLabel(pos geom.Vec, angle float64, text, color string)
}

// Draw is one recorded DrawLabel call.
type Draw struct {
	Pos   geom.Vec
	Angle float64
	Text  string
	Color string
}

// Recorder keeps the draws of the most recent frame.
type Recorder struct {
	Frames int
	Draws  []Draw
}

func (r *Recorder) Clear() {
	r.Frames++
	r.Draws = r.Draws[:0]
}

func (r *Recorder) DrawLabel(pos geom.Vec, angle float64, text, color string) {
	r.Draws = append(r.Draws, Draw{pos, angle, text, color})
}
