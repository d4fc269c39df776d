package geom

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec `json:"min"`
	Max Vec `json:"max"`
}

// Rect builds bounds from a centre and a full width and height.
func Rect(center Vec, w, h float64) Bounds {
	return Bounds{
		Min: Vec{center.X - w/2, center.Y - h/2},
		Max: Vec{center.X + w/2, center.Y + h/2},
	}
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }
func (b Bounds) Center() Vec     { return Vec{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2} }

// Pad grows b by p on every side.
func (b Bounds) Pad(p float64) Bounds {
	return Bounds{Min: Vec{b.Min.X - p, b.Min.Y - p}, Max: Vec{b.Max.X + p, b.Max.Y + p}}
}

// Union returns the smallest bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Min: Vec{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y)},
		Max: Vec{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y)},
	}
}

// Empty reports whether b has no area.
func (b Bounds) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }
