package theme

import "fmt"

type Option struct {
	Name string
	Hex  string
}

// Switcher holds the accent options with exactly one active.
type Switcher struct {
	options []Option
	active  int
	palette Palette
}

// NewSwitcher validates every option and activates the named one, or the
// first when name is empty.
func NewSwitcher(options []Option, name string) (*Switcher, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: no options", ErrInvalidHex)
	}
	for _, o := range options {
		if _, err := ParseHex(o.Hex); err != nil {
			return nil, fmt.Errorf("option %s: %w", o.Name, err)
		}
	}
	s := &Switcher{options: append([]Option(nil), options...)}
	idx := 0
	if name != "" {
		idx = s.Index(name)
		if idx < 0 {
			return nil, fmt.Errorf("theme: unknown option %q", name)
		}
	}
	if _, err := s.Select(idx); err != nil {
		return nil, err
	}
	return s, nil
}

// Select activates option i and returns its derived palette.
func (s *Switcher) Select(i int) (Palette, error) {
	if i < 0 || i >= len(s.options) {
		return s.palette, fmt.Errorf("theme: option %d out of range", i)
	}
	p, err := Derive(s.options[i].Hex)
	if err != nil {
		return s.palette, err
	}
	s.active, s.palette = i, p
	return p, nil
}

// Next cycles to the following option.
func (s *Switcher) Next() Palette {
	p, _ := s.Select((s.active + 1) % len(s.options))
	return p
}

func (s *Switcher) Index(name string) int {
	for i, o := range s.options {
		if o.Name == name {
			return i
		}
	}
	return -1
}

func (s *Switcher) Active() Option      { return s.options[s.active] }
func (s *Switcher) ActiveIndex() int    { return s.active }
func (s *Switcher) Palette() Palette    { return s.palette }
func (s *Switcher) Options() []Option   { return append([]Option(nil), s.options...) }
func (s *Switcher) IsActive(i int) bool { return i == s.active }
