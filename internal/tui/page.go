package tui

import (
	"github.com/san-kum/gravwords/internal/effects"
	"github.com/san-kum/gravwords/internal/geom"
	"github.com/san-kum/gravwords/internal/scene"
)

// World units per terminal cell. Labels are 150x40, so a label covers
// fifteen columns and two rows.
const (
	cellW = 10.0
	cellH = 20.0
)

// Rows outside the scrolling page: nav bar, status line, help line.
const chromeRows = 3

const (
	title      = "g r a v w o r d s"
	headerText = "drag a word, throw it, watch it spin"
	arrow      = "▼"
)

var navNames = []string{"home", "skills", "projects", "contact"}

type navLink struct {
	name   string
	col    int
	magnet *effects.Magnet
}

// layoutNav places the links from column 2, three columns apart.
func layoutNav(strength float64) []navLink {
	links := make([]navLink, len(navNames))
	col := 2
	for i, n := range navNames {
		w := len(n) + 2
		rect := geom.Bounds{Min: geom.V(float64(col), 0), Max: geom.V(float64(col+w), 1)}
		links[i] = navLink{name: n, col: col, magnet: effects.NewMagnet(rect, strength)}
		col += w + 3
	}
	return links
}

// headerCells returns the cell row and column of each header element for
// a hero of cols x rows. Elements that do not fit are absent.
func headerCells(cols, rows int) map[string][2]int {
	out := make(map[string][2]int, 3)
	if n := len([]rune(title)); cols >= n {
		out["title"] = [2]int{(cols - n) / 2, 1}
	}
	if n := len([]rune(headerText)); cols >= n+4 && rows >= 6 {
		out["header-text"] = [2]int{(cols - n) / 2, 2}
	}
	if rows >= 8 {
		out["scroll-arrow"] = [2]int{cols / 2, rows - 1}
	}
	return out
}

func headerWidth(name string) int {
	switch name {
	case "title":
		return len([]rune(title))
	case "header-text":
		return len([]rune(headerText))
	}
	return len([]rune(arrow))
}

// measureHeader is the scene.Measure for the terminal hero.
func measureHeader(width, height float64) []scene.Target {
	cols, rows := int(width/cellW), int(height/cellH)
	var out []scene.Target
	for _, name := range []string{"title", "header-text", "scroll-arrow"} {
		pos, ok := headerCells(cols, rows)[name]
		if !ok {
			continue
		}
		minP := geom.V(float64(pos[0])*cellW, float64(pos[1])*cellH)
		out = append(out, scene.Target{
			Name:   name,
			Bounds: geom.Bounds{Min: minP, Max: minP.Add(geom.V(float64(headerWidth(name))*cellW, cellH))},
		})
	}
	return out
}
