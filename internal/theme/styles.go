package theme

import "github.com/charmbracelet/lipgloss"

// Styles are the terminal renditions of a palette.
type Styles struct {
	Title       lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Nav         lipgloss.Style
	NavHover    lipgloss.Style
	Button      lipgloss.Style
	ButtonHover lipgloss.Style
	Card        lipgloss.Style
	CardTitle   lipgloss.Style
	CardBody    lipgloss.Style
	Modal       lipgloss.Style
	Swatch      lipgloss.Style
}

func color(c RGB) lipgloss.Color { return lipgloss.Color(c.Hex()) }

func NewStyles(p Palette) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(p.Primary)),
		Text:  lipgloss.NewStyle().Foreground(color(p.Text)),
		Muted: lipgloss.NewStyle().Foreground(color(p.Secondary)).Italic(true),
		Nav:   lipgloss.NewStyle().Foreground(color(p.Secondary)).Padding(0, 1),
		NavHover: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(p.Primary)).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(color(p.Primary)).
			Padding(0, 2),
		ButtonHover: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(color(p.ButtonHover)).
			Padding(0, 2),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(p.Secondary)).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(color(p.CardTitle)),
		CardBody:  lipgloss.NewStyle().Foreground(color(p.CardBody)),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(color(p.Primary)).
			Background(color(p.BackgroundDark)).
			Padding(1, 2),
		Swatch: lipgloss.NewStyle().Background(color(p.Primary)),
	}
}

// SwatchStyle renders one switcher option; the active one is marked by a
// border.
func SwatchStyle(hex string, active bool) lipgloss.Style {
	s := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Padding(0, 1)
	if active {
		s = s.Bold(true).Foreground(lipgloss.Color("#ffffff"))
	}
	return s
}
