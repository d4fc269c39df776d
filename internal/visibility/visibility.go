// Package visibility reports when the hero region enters or leaves the
// viewport. Only transitions are reported.
package visibility

// Region is a vertical span of the page in page coordinates.
type Region struct {
	Top, Bottom float64
}

// Intersects reports whether r overlaps the viewport [scroll, scroll+height).
func (r Region) Intersects(scroll, height float64) bool {
	return height > 0 && r.Bottom > scroll && r.Top < scroll+height
}

// Tracker combines scroll position and window focus. The region counts as
// visible only while it intersects the viewport and the window has focus.
type Tracker struct {
	Region     Region
	PageHeight float64

	viewport float64
	scroll   float64
	focused  bool
	visible  bool
}

func NewTracker(region Region, pageHeight, viewportHeight float64) *Tracker {
	t := &Tracker{Region: region, PageHeight: pageHeight, viewport: viewportHeight, focused: true}
	t.visible = t.compute()
	return t
}

func (t *Tracker) Visible() bool   { return t.visible }
func (t *Tracker) Scroll() float64 { return t.scroll }
func (t *Tracker) Focused() bool   { return t.focused }

// MaxScroll is the furthest the viewport can scroll.
func (t *Tracker) MaxScroll() float64 {
	return max(0, t.PageHeight-t.viewport)
}

// ScrollTo moves the viewport, clamped to the page. It returns the new
// visibility and whether it changed.
func (t *Tracker) ScrollTo(y float64) (visible, changed bool) {
	t.scroll = min(max(y, 0), t.MaxScroll())
	return t.update()
}

func (t *Tracker) ScrollBy(dy float64) (visible, changed bool) {
	return t.ScrollTo(t.scroll + dy)
}

func (t *Tracker) SetFocus(focused bool) (visible, changed bool) {
	t.focused = focused
	return t.update()
}

// SetViewport changes the viewport height and re-clamps the scroll.
func (t *Tracker) SetViewport(height float64) (visible, changed bool) {
	t.viewport = height
	return t.ScrollTo(t.scroll)
}

func (t *Tracker) compute() bool {
	return t.focused && t.Region.Intersects(t.scroll, t.viewport)
}

func (t *Tracker) update() (bool, bool) {
	v := t.compute()
	changed := v != t.visible
	t.visible = v
	return v, changed
}
