package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/gravwords/internal/contact"
	"github.com/san-kum/gravwords/internal/theme"
)

const swatchW = 3

// swatchCols returns the first column of each theme swatch, right-aligned
// on the nav row.
func (m *Model) swatchCols() []int {
	opts := m.themes.Options()
	cols := make([]int, len(opts))
	start := m.width - len(opts)*swatchW - 1
	for i := range opts {
		cols[i] = start + i*swatchW
	}
	return cols
}

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.navLine())
	b.WriteByte('\n')

	page := append(m.heroLines(), m.contentLines()...)
	top := int(m.vis.Scroll())
	for i := 0; i < m.heroRows; i++ {
		if r := top + i; r < len(page) {
			b.WriteString(page[r])
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(m.helpLine())
	return b.String()
}

func (m *Model) navLine() string {
	line := []rune(strings.Repeat(" ", max(m.width, 0)))
	var out strings.Builder
	col := 0
	for _, l := range m.nav {
		at := l.col + int(math.Round(l.magnet.Offset().X))
		if at < col || at+len(l.name)+2 > m.width {
			continue
		}
		out.WriteString(string(line[col:at]))
		style := m.styles.Nav
		if l.magnet.Hovering() {
			style = m.styles.NavHover
		}
		out.WriteString(style.Render(l.name))
		col = at + len(l.name) + 2
	}
	cols := m.swatchCols()
	if len(cols) > 0 && cols[0] >= col {
		out.WriteString(string(line[col:cols[0]]))
		for i, o := range m.themes.Options() {
			mark := " "
			if m.themes.IsActive(i) {
				mark = "•"
			}
			out.WriteString(theme.SwatchStyle(o.Hex, m.themes.IsActive(i)).Render(mark))
		}
	}
	return out.String()
}

func (m *Model) heroLines() []string {
	m.scene.Draw(m.cells)
	primary := m.themes.Palette().Primary.Hex()
	for name, pos := range headerCells(m.cells.Cols, m.cells.Rows) {
		text := title
		switch name {
		case "header-text":
			text = headerText
		case "scroll-arrow":
			text = arrow
		}
		for i, r := range []rune(text) {
			m.cells.Overlay(pos[0]+i, pos[1], r, primary)
		}
	}
	if _, dragging := m.ctrl.Session(); !dragging {
		col, row := m.cells.ToCell(m.glass.Position().Add(m.glass.Container.Min))
		m.cells.Overlay(col, row, '·', m.themes.Palette().Secondary.Hex())
	}
	return m.cells.Lines()
}

func (m *Model) contentLines() []string {
	s := m.styles
	words := make([]string, len(m.cfg.Words))
	for i, w := range m.cfg.Words {
		words[i] = w.Text
	}
	lines := []string{
		"",
		s.Title.Render("skills"),
		s.Text.Render(truncate(strings.Join(words, " · "), m.width)),
		"",
		s.Title.Render("projects"),
		s.CardBody.Render(truncate("press c to get in touch", m.width)),
		"",
		s.Title.Render("contact"),
	}
	lines = append(lines, m.formLines()...)
	for len(lines) < contentRows {
		lines = append(lines, "")
	}
	return lines[:contentRows]
}

func (m *Model) formLines() []string {
	if !m.formOpen && m.form.State() != contact.Confirming {
		return []string{m.styles.Muted.Render("name · email · message")}
	}
	labels := []string{"name", "email", "message"}
	values := []string{m.form.Fields.Name, m.form.Fields.Email, m.form.Fields.Message}
	parts := make([]string, len(labels))
	for i := range labels {
		v := values[i]
		if i == m.field && m.form.State() == contact.Editing {
			v += "_"
		}
		parts[i] = fmt.Sprintf("%s: %s", labels[i], v)
	}
	return []string{m.styles.Text.Render(truncate(strings.Join(parts, "  "), m.width))}
}

func (m *Model) statusLine() string {
	state := "idle"
	if sess, ok := m.ctrl.Session(); ok {
		state = "dragging " + m.eng.Label(sess.Body)
	}
	ambient := "paused"
	if m.ctrl.AmbientRunning() {
		ambient = "running"
	}
	line := fmt.Sprintf(" %s | ambient %s (%d) | theme %s | %.0f fps",
		state, ambient, m.ctrl.AmbientTicks(), m.themes.Active().Name, m.fps)
	if m.paused {
		line += " | PAUSED"
	}
	if m.status != "" {
		line += " | " + m.status
	}
	return m.styles.Muted.Render(truncate(line, m.width))
}

func (m *Model) helpLine() string {
	if m.form.State() == contact.Confirming {
		q := fmt.Sprintf("send message to %s? [y] send  [n] cancel", m.form.Recipient)
		return m.styles.Button.Render(truncate(q, max(m.width-4, 0)))
	}
	if m.formOpen {
		return m.styles.Muted.Render(truncate(" tab next field | enter submit | esc close", m.width))
	}
	return m.styles.Muted.Render(truncate(" drag words | t theme | 1-5 pick | c contact | ↑↓ scroll | space pause | q quit", m.width))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
