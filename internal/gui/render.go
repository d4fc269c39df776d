package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/gravwords/internal/geom"
	"github.com/san-kum/gravwords/internal/scene"
	"github.com/san-kum/gravwords/internal/theme"
)

const (
	labelFontSize = 22
	title         = "gravwords"
	headerText    = "drag a word, throw it, watch it spin"
	arrow         = "v"
)

func toColor(c theme.RGB) rl.Color { return rl.NewColor(c.R, c.G, c.B, 255) }

// surface draws labels as rotated text in the label color, with no tile
// behind it. offset shifts the hero down by the nav bar and up by the page
// scroll.
type surface struct {
	font     rl.Font
	offset   float32
	fallback theme.RGB
}

func (s *surface) Clear() {}

// glyph is one label ready for DrawTextPro.
type glyph struct {
	center rl.Vector2
	origin rl.Vector2
	deg    float32
	color  rl.Color
}

func (s *surface) place(pos geom.Vec, angle float64, color string, size rl.Vector2) glyph {
	c, err := theme.ParseHex(color)
	if err != nil {
		c = s.fallback
	}
	return glyph{
		center: rl.NewVector2(float32(pos.X), float32(pos.Y)+s.offset),
		origin: rl.NewVector2(size.X/2, size.Y/2),
		deg:    float32(angle * 180 / math.Pi),
		color:  toColor(c),
	}
}

func (s *surface) DrawLabel(pos geom.Vec, angle float64, text, color string) {
	g := s.place(pos, angle, color, rl.MeasureTextEx(s.font, text, labelFontSize, 1))
	rl.DrawTextPro(s.font, text, g.center, g.origin, g.deg, labelFontSize, 1, g.color)
}

func (a *App) headerStyle(name string) (string, float32) {
	switch name {
	case "title":
		return title, titleSize
	case "header-text":
		return headerText, headerSize
	}
	return arrow, headerSize
}

// measureHeader places the title block in the upper third and the scroll
// arrow near the bottom of the hero, in hero coordinates.
func (a *App) measureHeader(width, height float64) []scene.Target {
	var out []scene.Target
	y := height / 3
	for _, name := range []string{"title", "header-text", "scroll-arrow"} {
		text, fs := a.headerStyle(name)
		size := rl.MeasureTextEx(a.font, text, fs, 1)
		w, h := float64(size.X), float64(size.Y)
		if w > width {
			continue
		}
		top := y
		if name == "scroll-arrow" {
			top = height - 2*h
		}
		out = append(out, scene.Target{
			Name:   name,
			Bounds: geom.Bounds{Min: geom.V((width-w)/2, top), Max: geom.V((width+w)/2, top+h)},
		})
		y += h + 8
	}
	return out
}

func (a *App) drawHeader(offset float32) {
	p := a.themes.Palette()
	for _, t := range a.measureHeader(float64(a.Width), float64(a.Height)) {
		text, fs := a.headerStyle(t.Name)
		col := toColor(p.Primary)
		if t.Name != "title" {
			col = toColor(p.Secondary)
		}
		a.drawText(text, int(t.Bounds.Min.X), int(float32(t.Bounds.Min.Y)+offset), int(fs), col)
	}
}

// drawContent renders the section below the hero starting at top.
func (a *App) drawContent(top float32) {
	p := a.themes.Palette()
	rl.DrawRectangle(0, int32(top), a.Width, contentH, toColor(theme.Darker(p.BackgroundDark, 0.3)))
	a.drawText("skills", 24, int(top)+24, 24, toColor(p.Primary))
	x, y := 24, int(top)+64
	for _, w := range a.Cfg.Words {
		size := rl.MeasureTextEx(a.font, w.Text, 16, 1)
		if x+int(size.X) > int(a.Width)-24 {
			x, y = 24, y+24
		}
		a.drawText(w.Text, x, y, 16, toColor(p.CardBody))
		x += int(size.X) + 18
	}
	a.drawText("contact: "+a.Cfg.Contact.Recipient, 24, int(top)+contentH-40, 16, toColor(p.Secondary))
}
