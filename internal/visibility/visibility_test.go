package visibility

import "testing"

func TestIntersects(t *testing.T) {
	r := Region{Top: 0, Bottom: 100}
	tests := []struct {
		scroll, height float64
		want           bool
	}{
		{0, 50, true},
		{99, 50, true},
		{100, 50, false},
		{-50, 50, false},
		{-49, 50, true},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := r.Intersects(tt.scroll, tt.height); got != tt.want {
			t.Errorf("Intersects(%g, %g) = %v, want %v", tt.scroll, tt.height, got, tt.want)
		}
	}
}

func TestTrackerReportsTransitionsOnly(t *testing.T) {
	tr := NewTracker(Region{Top: 0, Bottom: 40}, 200, 50)
	if !tr.Visible() {
		t.Fatal("expected visible at top")
	}

	if _, changed := tr.ScrollBy(10); changed {
		t.Error("scrolling within the region should not report a change")
	}
	v, changed := tr.ScrollTo(60)
	if v || !changed {
		t.Errorf("expected hidden transition, got visible=%v changed=%v", v, changed)
	}
	if _, changed := tr.ScrollBy(20); changed {
		t.Error("repeated hidden state reported as change")
	}
	v, changed = tr.ScrollTo(0)
	if !v || !changed {
		t.Errorf("expected visible transition, got visible=%v changed=%v", v, changed)
	}
}

func TestTrackerClampsScroll(t *testing.T) {
	tr := NewTracker(Region{Top: 0, Bottom: 40}, 200, 50)

	tr.ScrollTo(1000)
	if tr.Scroll() != 150 {
		t.Errorf("expected scroll clamped to 150, got %g", tr.Scroll())
	}
	tr.ScrollBy(-1000)
	if tr.Scroll() != 0 {
		t.Errorf("expected scroll clamped to 0, got %g", tr.Scroll())
	}

	short := NewTracker(Region{Top: 0, Bottom: 40}, 30, 50)
	short.ScrollTo(10)
	if short.Scroll() != 0 {
		t.Errorf("page shorter than viewport should not scroll, got %g", short.Scroll())
	}
}

func TestTrackerFocus(t *testing.T) {
	tr := NewTracker(Region{Top: 0, Bottom: 40}, 200, 50)

	v, changed := tr.SetFocus(false)
	if v || !changed {
		t.Errorf("blur: visible=%v changed=%v", v, changed)
	}
	tr.ScrollTo(100)
	v, changed = tr.SetFocus(true)
	if v || changed {
		t.Errorf("focus while scrolled away: visible=%v changed=%v", v, changed)
	}
	v, changed = tr.SetViewport(200)
	if !v || !changed {
		t.Errorf("taller viewport should reveal region: visible=%v changed=%v", v, changed)
	}
	if tr.Scroll() != 0 {
		t.Errorf("expected scroll re-clamped to 0, got %g", tr.Scroll())
	}
}
