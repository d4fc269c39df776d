// Package tui hosts the word cloud in a terminal with bubbletea. Mouse
// events drive the interaction controller, a tea.Tick loop steps the
// engine and redraws, and controller timers travel through the same event
// loop as tagged messages.
package tui

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravwords/internal/config"
	"github.com/san-kum/gravwords/internal/contact"
	"github.com/san-kum/gravwords/internal/effects"
	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/engine/chipmunk"
	"github.com/san-kum/gravwords/internal/geom"
	"github.com/san-kum/gravwords/internal/interact"
	"github.com/san-kum/gravwords/internal/render"
	"github.com/san-kum/gravwords/internal/scene"
	"github.com/san-kum/gravwords/internal/theme"
	"github.com/san-kum/gravwords/internal/visibility"
	"go.uber.org/zap"
)

// Lines of page content below the hero.
const contentRows = 10

type frameMsg time.Time

type Options struct {
	Config *config.Config
	Logger *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type Model struct {
	cfg *config.Config
	log *zap.Logger
	now func() time.Time
	rng *rand.Rand

	eng    engine.Engine
	scene  *scene.Scene
	ctrl   *interact.Controller
	runner *engine.Runner
	sched  *teaScheduler

	cells  *render.Cells
	vis    *visibility.Tracker
	themes *theme.Switcher
	styles theme.Styles
	nav    []navLink
	glass  *effects.Glass
	form   *contact.Form

	formOpen bool
	field    int

	width, height int
	heroRows      int
	lastFrame     time.Time
	fps           float64
	paused        bool
	status        string
	lastLink      string
}

func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	icfg, err := cfg.Controller()
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = now().UnixNano()
	}

	options := make([]theme.Option, len(cfg.Theme.Options))
	for i, o := range cfg.Theme.Options {
		options[i] = theme.Option{Name: o.Name, Hex: o.Hex}
	}
	themes, err := theme.NewSwitcher(options, cfg.Theme.Active)
	if err != nil {
		return nil, err
	}

	m := &Model{
		cfg:    cfg,
		log:    log,
		now:    now,
		rng:    rand.New(rand.NewSource(seed)),
		sched:  newTeaScheduler(),
		themes: themes,
		styles: theme.NewStyles(themes.Palette()),
		nav:    layoutNav(cfg.Theme.Magnetic),
		form:   contact.NewForm(cfg.Contact.Recipient, cfg.Contact.Subject),
		width:  int(cfg.World.Width / cellW),
		height: int(cfg.World.Height/cellH) + chromeRows,
	}
	m.heroRows = max(m.height-chromeRows, 1)

	world := geom.V(float64(m.width)*cellW, float64(m.heroRows)*cellH)
	cfg = cfg.Clone()
	cfg.World.Width, cfg.World.Height = world.X, world.Y
	m.eng = chipmunk.New(chipmunk.Options{Gravity: geom.V(0, cfg.World.Gravity)})
	m.scene, err = scene.Build(m.eng, scene.FromConfig(cfg, theme.WordColors(cfg.Theme.Dark), measureHeader), m.rng)
	if err != nil {
		return nil, err
	}
	m.cells = render.NewCells(m.width, m.heroRows, world)
	m.vis = visibility.NewTracker(visibility.Region{Top: 0, Bottom: float64(m.heroRows)},
		float64(m.heroRows+contentRows), float64(m.heroRows))
	m.glass = effects.NewGlass(geom.Bounds{Max: world}, effects.DefaultLerp)
	m.runner = engine.NewRunner(m.eng, 1/float64(cfg.FPS))
	m.ctrl = interact.New(m.eng, m.scene.Labels(), m.sched, icfg,
		interact.WithRand(m.rng),
		interact.WithLayout(m.scene.Layout()),
		interact.WithLogger(log),
		interact.WithVisible(m.vis.Visible()))
	m.ctrl.Start()
	log.Info("tui ready", zap.Int("labels", len(m.scene.Labels())), zap.String("policy", string(icfg.Collision.Policy)))
	return m, nil
}

// Controller exposes the interaction controller, mainly for tests.
func (m *Model) Controller() *interact.Controller { return m.ctrl }

// LastLink is the most recent mailto link confirmed in the contact form.
func (m *Model) LastLink() string { return m.lastLink }

func (m *Model) frameTick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.frameTick(), m.sched.drain())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.FocusMsg:
		m.setVisible(m.vis.SetFocus(true))
	case tea.BlurMsg:
		m.setVisible(m.vis.SetFocus(false))
	case timerMsg:
		m.sched.fire(msg.id)
	case frameMsg:
		m.frame(time.Time(msg))
		cmd = m.frameTick()
	}
	return m, tea.Batch(cmd, m.sched.drain())
}

func (m *Model) frame(t time.Time) {
	if !m.lastFrame.IsZero() {
		elapsed := t.Sub(m.lastFrame).Seconds()
		if elapsed > 0 {
			m.fps = 1 / elapsed
			if !m.paused {
				m.runner.Advance(elapsed)
			}
		}
	}
	m.lastFrame = t
}

// setVisible forwards hero visibility changes. While paused the ambient
// tick stays off and togglePause restores it.
func (m *Model) setVisible(visible, changed bool) {
	if changed && !m.paused {
		m.ctrl.Dispatch(interact.VisibilityChanged{Visible: visible})
	}
}

// togglePause freezes both the engine and the ambient motion.
func (m *Model) togglePause() {
	m.paused = !m.paused
	m.ctrl.Dispatch(interact.VisibilityChanged{Visible: !m.paused && m.vis.Visible()})
}

// resize fits the hero to a new terminal size, rebuilds the boundaries and
// pulls labels that ended up outside back in.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.heroRows = max(height-chromeRows, 1)
	world := geom.V(float64(width)*cellW, float64(m.heroRows)*cellH)
	m.cells.World = world
	m.cells.Resize(width, m.heroRows)
	m.glass.Container = geom.Bounds{Max: world}
	m.ctrl.Dispatch(interact.Resized{Width: world.X, Height: world.Y})
	m.gather(world)

	m.vis.Region = visibility.Region{Top: 0, Bottom: float64(m.heroRows)}
	m.vis.PageHeight = float64(m.heroRows + contentRows)
	m.setVisible(m.vis.SetViewport(float64(m.heroRows)))
}

func (m *Model) gather(world geom.Vec) {
	for _, h := range m.scene.Labels() {
		p := m.eng.Position(h)
		in := geom.V(min(max(p.X, 0), world.X), min(max(p.Y, 0), world.Y))
		if in != p {
			m.eng.SetPosition(h, in)
		}
	}
}

// worldAt maps a terminal cell to the hero's world coordinates. ok is
// false when the cell is not on the hero.
func (m *Model) worldAt(x, y int) (geom.Vec, bool) {
	row := y - 1 + int(m.vis.Scroll())
	p := m.cells.ToWorld(x, row)
	onHero := y >= 1 && y <= m.heroRows && row >= 0 && row < m.heroRows
	w := m.cells.World
	return geom.V(min(max(p.X, 0), w.X), min(max(p.Y, 0), w.Y)), onHero
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	at := m.now()
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.setVisible(m.vis.ScrollBy(-1))
		return
	case msg.Button == tea.MouseButtonWheelDown:
		m.setVisible(m.vis.ScrollBy(1))
		return
	}

	if msg.Y == 0 {
		m.hoverNav(msg.X)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.clickNav(msg.X)
		}
	} else {
		m.hoverNav(-1)
	}

	pos, onHero := m.worldAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.form.State() == contact.Confirming {
			m.form.ClickOutside()
			m.status = "message not sent"
			return
		}
		if onHero {
			m.ctrl.Dispatch(interact.PointerDown{Pos: pos, At: at})
		}
	case tea.MouseActionMotion:
		if onHero {
			m.glass.Follow(pos)
		}
		if onHero || m.dragging() {
			m.ctrl.Dispatch(interact.PointerMove{Pos: pos, At: at})
		}
	case tea.MouseActionRelease:
		m.ctrl.Dispatch(interact.PointerUp{At: at})
	}
}

func (m *Model) dragging() bool {
	_, ok := m.ctrl.Session()
	return ok
}

func (m *Model) hoverNav(x int) {
	p := geom.V(float64(x)+0.5, 0.5)
	for _, l := range m.nav {
		if x < 0 {
			l.magnet.Leave()
			continue
		}
		l.magnet.Move(p)
	}
}

func (m *Model) clickNav(x int) {
	for i, col := range m.swatchCols() {
		if x >= col && x < col+swatchW {
			m.selectTheme(i)
			return
		}
	}
	for _, l := range m.nav {
		if !l.magnet.Hovering() {
			continue
		}
		switch l.name {
		case "home":
			m.setVisible(m.vis.ScrollTo(0))
		case "contact":
			m.formOpen = true
			m.setVisible(m.vis.ScrollTo(m.vis.MaxScroll()))
		default:
			m.setVisible(m.vis.ScrollTo(float64(m.heroRows)))
		}
	}
}

func (m *Model) selectTheme(i int) {
	p, err := m.themes.Select(i)
	if err != nil {
		return
	}
	m.styles = theme.NewStyles(p)
	m.status = "theme " + m.themes.Active().Name
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.form.State() == contact.Confirming {
		switch msg.String() {
		case "y", "enter":
			link, err := m.form.Confirm()
			if err != nil {
				m.status = err.Error()
				return nil
			}
			m.lastLink = link
			m.formOpen = false
			m.status = "opening mail client"
			m.log.Info("contact confirmed", zap.Int("length", len(link)))
		case "n", "esc":
			m.form.Cancel()
			m.status = "message not sent"
		case "ctrl+c":
			return tea.Quit
		}
		return nil
	}
	if m.formOpen {
		return m.editForm(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Stop()
		return tea.Quit
	case " ", "p":
		m.togglePause()
	case "t":
		m.styles = theme.NewStyles(m.themes.Next())
		m.status = "theme " + m.themes.Active().Name
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.selectTheme(int(msg.String()[0] - '1'))
	case "c":
		m.formOpen = true
		m.field = 0
		m.setVisible(m.vis.ScrollTo(m.vis.MaxScroll()))
	case "up", "k", "pgup":
		m.setVisible(m.vis.ScrollBy(-m.scrollStep(msg.String())))
	case "down", "j", "pgdown":
		m.setVisible(m.vis.ScrollBy(m.scrollStep(msg.String())))
	case "home", "g":
		m.setVisible(m.vis.ScrollTo(0))
	}
	return nil
}

func (m *Model) scrollStep(key string) float64 {
	if key == "pgup" || key == "pgdown" {
		return float64(max(m.heroRows/2, 1))
	}
	return 1
}

func (m *Model) fieldPtr() *string {
	switch m.field {
	case 0:
		return &m.form.Fields.Name
	case 1:
		return &m.form.Fields.Email
	}
	return &m.form.Fields.Message
}

func (m *Model) editForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		m.formOpen = false
	case tea.KeyTab, tea.KeyDown:
		m.field = (m.field + 1) % 3
	case tea.KeyShiftTab, tea.KeyUp:
		m.field = (m.field + 2) % 3
	case tea.KeyEnter:
		if m.field == 2 {
			m.form.Submit()
		} else {
			m.field++
		}
	case tea.KeyBackspace:
		f := m.fieldPtr()
		if r := []rune(*f); len(r) > 0 {
			*f = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		*m.fieldPtr() += " "
	case tea.KeyRunes:
		*m.fieldPtr() += string(msg.Runes)
	}
	return nil
}

// Run starts the terminal host and blocks until the user quits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err = p.Run()
	m.ctrl.Stop()
	return err
}
