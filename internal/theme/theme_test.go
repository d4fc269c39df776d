package theme

import (
	"errors"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"#89B6A5", RGB{137, 182, 165}, true},
		{"FFD700", RGB{255, 215, 0}, true},
		{"#fff", RGB{255, 255, 255}, true},
		{"#12345", RGB{}, false},
		{"sage", RGB{}, false},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseHex(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.ok && !errors.Is(err, ErrInvalidHex) {
			t.Errorf("expected ErrInvalidHex, got %v", err)
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDarker(t *testing.T) {
	c := RGB{255, 107, 107}
	if got := Darker(c, 0.7); got != (RGB{77, 32, 32}) {
		t.Errorf("expected rgb(77, 32, 32), got %v", got)
	}
	if got := Darker(c, 0); got != c {
		t.Errorf("factor 0 should keep color, got %v", got)
	}
	if got := Darker(c, 1); got != (RGB{}) {
		t.Errorf("factor 1 should be black, got %v", got)
	}
	if s := Darker(c, 0.4).String(); s != "rgb(153, 64, 64)" {
		t.Errorf("unexpected string %s", s)
	}
}

func TestDerive(t *testing.T) {
	p, err := Derive("#89B6A5")
	if err != nil {
		t.Fatal(err)
	}
	if p.Primary.Hex() != "#89b6a5" {
		t.Errorf("expected primary #89b6a5, got %s", p.Primary.Hex())
	}
	if p.Secondary != Darker(p.Primary, ShadeSecondary) {
		t.Errorf("secondary mismatch: %v", p.Secondary)
	}
	if p.ButtonHover != (RGB{110, 146, 132}) {
		t.Errorf("expected button hover rgb(110, 146, 132), got %v", p.ButtonHover)
	}
	if _, err := Derive("nope"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestSwitcher(t *testing.T) {
	opts := []Option{{"sage", "#89B6A5"}, {"gold", "#FFD700"}, {"coral", "#FF6B6B"}}
	s, err := NewSwitcher(opts, "gold")
	if err != nil {
		t.Fatal(err)
	}
	if s.Active().Name != "gold" || s.Palette().Primary != (RGB{255, 215, 0}) {
		t.Errorf("expected gold active, got %s", s.Active().Name)
	}

	p := s.Next()
	if s.Active().Name != "coral" || p.Primary != (RGB{255, 107, 107}) {
		t.Errorf("expected coral after next, got %s", s.Active().Name)
	}
	s.Next()
	if s.ActiveIndex() != 0 {
		t.Errorf("expected wrap to 0, got %d", s.ActiveIndex())
	}

	active := 0
	for i := range s.Options() {
		if s.IsActive(i) {
			active++
		}
	}
	if active != 1 {
		t.Errorf("expected exactly one active option, got %d", active)
	}

	if _, err := s.Select(7); err == nil {
		t.Error("expected out of range error")
	}
	if s.ActiveIndex() != 0 {
		t.Error("failed select changed the active option")
	}
}

func TestSwitcherRejectsBadOptions(t *testing.T) {
	if _, err := NewSwitcher(nil, ""); err == nil {
		t.Error("expected error for no options")
	}
	if _, err := NewSwitcher([]Option{{"x", "#zzzzzz"}}, ""); !errors.Is(err, ErrInvalidHex) {
		t.Errorf("expected ErrInvalidHex, got %v", err)
	}
	if _, err := NewSwitcher([]Option{{"x", "#000000"}}, "y"); err == nil {
		t.Error("expected unknown option error")
	}
}
