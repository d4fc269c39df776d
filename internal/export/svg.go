// Package export writes word cloud frames and run series as SVG.
package export

import (
	"fmt"
	"html"
	"math"
	"os"
	"strings"

	"github.com/san-kum/gravwords/internal/geom"
)

const (
	charWidth   = 9.0
	labelHeight = 28.0
	labelPad    = 12.0
)

type label struct {
	pos   geom.Vec
	angle float64
	text  string
	color string
}

// SVG is a render surface that keeps the last frame drawn on it.
type SVG struct {
	Width, Height float64
	Background    string
	labels        []label
}

func NewSVG(width, height float64, background string) *SVG {
	if background == "" {
		background = "#0a0a0a"
	}
	return &SVG{Width: width, Height: height, Background: background}
}

func (s *SVG) Clear() { s.labels = s.labels[:0] }

func (s *SVG) DrawLabel(pos geom.Vec, angle float64, text, color string) {
	s.labels = append(s.labels, label{pos, angle, text, color})
}

// Len is the number of labels in the current frame.
func (s *SVG) Len() int { return len(s.labels) }

func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g font-family="monospace" font-size="16" text-anchor="middle" dominant-baseline="central">
`, s.Width, s.Height, s.Width, s.Height, html.EscapeString(s.Background))

	for _, l := range s.labels {
		if !l.pos.IsFinite() {
			continue
		}
		w := float64(len([]rune(l.text)))*charWidth + 2*labelPad
		fill := l.color
		if fill == "" {
			fill = "#89B6A5"
		}
		fmt.Fprintf(&sb, `<g transform="translate(%.1f %.1f) rotate(%.2f)">`+"\n",
			l.pos.X, l.pos.Y, l.angle*180/math.Pi)
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="10" fill="%s"/>`+"\n",
			-w/2, -labelHeight/2, w, labelHeight, html.EscapeString(fill))
		fmt.Fprintf(&sb, `<text fill="#1a1a1a">%s</text>`+"\n</g>\n", html.EscapeString(l.text))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func (s *SVG) WriteFile(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0644)
}

// SeriesToSVG plots values left to right with 10% vertical padding.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	span := maxV - minV
	if span == 0 {
		span = 1
	}
	minV -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, html.EscapeString(strokeColor))

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minV)/span*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
