// Package geom provides the small amount of 2D math the interaction layer
// needs: vectors, axis-aligned bounds and guards against non-finite values.
package geom

import "math"

// Vec is a 2D vector in surface coordinates (x right, y down).
type Vec struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }
func (v Vec) Neg() Vec            { return Vec{-v.X, -v.Y} }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// IsFinite reports whether neither component is NaN or Inf.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v has no length.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec{}
	}
	return v.Scale(1 / l)
}

// ClampLen rescales v uniformly so its length does not exceed max.
// Direction is preserved.
func (v Vec) ClampLen(max float64) Vec {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Polar builds a vector of the given length pointing at angle radians.
func Polar(angle, length float64) Vec {
	return Vec{math.Cos(angle) * length, math.Sin(angle) * length}
}
