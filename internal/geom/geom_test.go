package geom

import (
	"math"
	"testing"
)

func TestClampLenPreservesDirection(t *testing.T) {
	v := V(600, 800) // length 1000
	c := v.ClampLen(15)

	if math.Abs(c.Len()-15) > 1e-9 {
		t.Errorf("expected length 15, got %f", c.Len())
	}
	if math.Abs(c.X/c.Y-v.X/v.Y) > 1e-9 {
		t.Errorf("direction changed: %v -> %v", v, c)
	}
}

func TestClampLenBelowMax(t *testing.T) {
	v := V(3, 4)
	if got := v.ClampLen(10); got != v {
		t.Errorf("expected %v unchanged, got %v", v, got)
	}
	if got := (Vec{}).ClampLen(1); !got.IsZero() {
		t.Errorf("expected zero vector, got %v", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	if n := (Vec{}).Normalize(); !n.IsZero() {
		t.Errorf("expected zero, got %v", n)
	}
	n := V(0, -5).Normalize()
	if n != V(0, -1) {
		t.Errorf("expected (0,-1), got %v", n)
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		v    Vec
		want bool
	}{
		{V(1, 2), true},
		{V(math.NaN(), 0), false},
		{V(0, math.Inf(1)), false},
		{V(math.Inf(-1), math.NaN()), false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFinite(); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestBoundsContains(t *testing.T) {
	b := Rect(V(100, 50), 150, 40)

	tests := []struct {
		name string
		p    Vec
		want bool
	}{
		{"center", V(100, 50), true},
		{"min corner", b.Min, true},
		{"max corner", b.Max, true},
		{"left of", V(24.9, 50), false},
		{"below", V(100, 70.1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoundsPadUnion(t *testing.T) {
	a := Bounds{Min: V(0, 0), Max: V(10, 10)}
	p := a.Pad(2)
	if p.Width() != 14 || p.Height() != 14 {
		t.Errorf("unexpected padded size %fx%f", p.Width(), p.Height())
	}
	u := a.Union(Bounds{Min: V(5, -5), Max: V(20, 5)})
	if u.Min != V(0, -5) || u.Max != V(20, 10) {
		t.Errorf("unexpected union %+v", u)
	}
}
