package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gravwords/internal/geom"
)

type cell struct {
	r     rune
	color string
}

// Cells rasterizes labels onto a terminal grid. World coordinates are
// scaled to the grid; rotated text is laid out character by character
// along the label's axis.
type Cells struct {
	Cols, Rows int
	World      geom.Vec
	grid       [][]cell
	styles     map[string]lipgloss.Style
}

func NewCells(cols, rows int, world geom.Vec) *Cells {
	c := &Cells{World: world, styles: make(map[string]lipgloss.Style)}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the grid. Non-positive sizes produce an empty grid.
func (c *Cells) Resize(cols, rows int) {
	c.Cols, c.Rows = max(cols, 0), max(rows, 0)
	c.grid = make([][]cell, c.Rows)
	for i := range c.grid {
		c.grid[i] = make([]cell, c.Cols)
	}
	c.Clear()
}

func (c *Cells) Clear() {
	for _, row := range c.grid {
		for j := range row {
			row[j] = cell{r: ' '}
		}
	}
}

// CellSize is the world size of one cell.
func (c *Cells) CellSize() geom.Vec {
	if c.Cols == 0 || c.Rows == 0 {
		return geom.Vec{}
	}
	return geom.V(c.World.X/float64(c.Cols), c.World.Y/float64(c.Rows))
}

// ToCell maps a world position to a cell.
func (c *Cells) ToCell(p geom.Vec) (col, row int) {
	s := c.CellSize()
	if s.X == 0 || s.Y == 0 {
		return -1, -1
	}
	return int(math.Floor(p.X / s.X)), int(math.Floor(p.Y / s.Y))
}

// ToWorld maps a cell to the world position of its center.
func (c *Cells) ToWorld(col, row int) geom.Vec {
	s := c.CellSize()
	return geom.V((float64(col)+0.5)*s.X, (float64(row)+0.5)*s.Y)
}

func (c *Cells) set(col, row int, r rune, color string) {
	if col < 0 || row < 0 || row >= c.Rows || col >= c.Cols {
		return
	}
	c.grid[row][col] = cell{r: r, color: color}
}

func (c *Cells) DrawLabel(pos geom.Vec, angle float64, text, color string) {
	if !pos.IsFinite() || math.IsNaN(angle) || math.IsInf(angle, 0) {
		return
	}
	runes := []rune(text)
	s := c.CellSize()
	if s.X == 0 {
		return
	}
	dir := geom.Polar(angle, s.X)
	start := pos.Sub(dir.Scale(float64(len(runes)-1) / 2))
	for i, r := range runes {
		col, row := c.ToCell(start.Add(dir.Scale(float64(i))))
		c.set(col, row, r, color)
	}
}

// Rune returns the character at a cell, or 0 outside the grid.
func (c *Cells) Rune(col, row int) rune {
	if col < 0 || row < 0 || row >= c.Rows || col >= c.Cols {
		return 0
	}
	return c.grid[row][col].r
}

// Plain renders the grid without color.
func (c *Cells) Plain() string {
	var b strings.Builder
	for i, row := range c.grid {
		for _, cl := range row {
			b.WriteRune(cl.r)
		}
		if i < len(c.grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c *Cells) style(color string) lipgloss.Style {
	st, ok := c.styles[color]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		c.styles[color] = st
	}
	return st
}

// String renders the grid with each run of same-colored cells styled once.
func (c *Cells) String() string {
	var b strings.Builder
	for i, row := range c.grid {
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(c.style(runColor).Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.color != runColor {
				flush()
				runColor = cl.color
			}
			run.WriteRune(cl.r)
		}
		flush()
		if i < len(c.grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Text writes text left to right starting at a cell, over whatever is
// there.
func (c *Cells) Text(col, row int, text, color string) {
	for i, r := range []rune(text) {
		c.set(col+i, row, r, color)
	}
}

// Overlay puts r on a cell only if the cell is blank.
func (c *Cells) Overlay(col, row int, r rune, color string) {
	if c.Rune(col, row) == ' ' {
		c.set(col, row, r, color)
	}
}

// Lines renders the grid as styled rows.
func (c *Cells) Lines() []string {
	if c.Rows == 0 {
		return nil
	}
	return strings.Split(c.String(), "\n")
}
