// Package theme derives the site palette from a single accent color and
// switches between accent options at runtime.
package theme

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidHex = errors.New("theme: invalid hex color")

type RGB struct {
	R, G, B uint8
}

// ParseHex accepts "#rrggbb", "#rgb" and the same without the hash.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// Darker mixes c toward black: each channel becomes round(ch*(1-f)).
func Darker(c RGB, f float64) RGB {
	f = math.Max(0, math.Min(1, f))
	mix := func(ch uint8) uint8 { return uint8(math.Round(float64(ch) * (1 - f))) }
	return RGB{mix(c.R), mix(c.G), mix(c.B)}
}

func (c RGB) Color() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c RGB) Hex() string { return c.Color().Hex() }

func (c RGB) String() string { return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B) }

// Shade factors applied to the accent for each role.
const (
	ShadeSecondary   = 0.4
	ShadeText        = 0.7
	ShadeBackground  = 0.55
	ShadeTyping      = 0.6
	ShadeCardTitle   = 0.7
	ShadeCardBody    = 0.8
	ShadeButtonHover = 0.2
)

type Palette struct {
	Primary        RGB
	Secondary      RGB
	Text           RGB
	BackgroundDark RGB
	Typing         RGB
	CardTitle      RGB
	CardBody       RGB
	ButtonHover    RGB
}

func Derive(hex string) (Palette, error) {
	p, err := ParseHex(hex)
	if err != nil {
		return Palette{}, err
	}
	return Palette{
		Primary:        p,
		Secondary:      Darker(p, ShadeSecondary),
		Text:           Darker(p, ShadeText),
		BackgroundDark: Darker(p, ShadeBackground),
		Typing:         Darker(p, ShadeTyping),
		CardTitle:      Darker(p, ShadeCardTitle),
		CardBody:       Darker(p, ShadeCardBody),
		ButtonHover:    Darker(p, ShadeButtonHover),
	}, nil
}

// Word colors for the label cloud. Both modes currently share the same
// swatches.
var (
	WordsLight = []string{"#89B6A5", "#FFD700", "#FF6B6B"}
	WordsDark  = []string{"#89B6A5", "#FFD700", "#FF6B6B"}
)

func WordColors(dark bool) []string {
	if dark {
		return WordsDark
	}
	return WordsLight
}
