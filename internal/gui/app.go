// Package gui hosts the word cloud in a raylib window.
package gui

import (
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/gravwords/internal/config"
	"github.com/san-kum/gravwords/internal/effects"
	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/engine/chipmunk"
	"github.com/san-kum/gravwords/internal/geom"
	"github.com/san-kum/gravwords/internal/interact"
	"github.com/san-kum/gravwords/internal/scene"
	"github.com/san-kum/gravwords/internal/schedule"
	"github.com/san-kum/gravwords/internal/theme"
	"github.com/san-kum/gravwords/internal/visibility"
	"go.uber.org/zap"
)

const (
	navHeight   = 48
	contentH    = 240
	fontPath    = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	titleSize   = 40
	headerSize  = 20
	navFontSize = 18
)

var navNames = []string{"home", "skills", "projects", "contact"}

type navLink struct {
	name   string
	rect   geom.Bounds
	magnet *effects.Magnet
}

type App struct {
	Cfg   *config.Config
	Log   *zap.Logger
	Eng   engine.Engine
	Scene *scene.Scene
	Ctrl  *interact.Controller

	queue  *schedule.Queue
	runner *engine.Runner
	vis    *visibility.Tracker
	themes *theme.Switcher
	glass  *effects.Glass
	nav    []navLink
	font   rl.Font

	Width, Height int32
	Running       bool
	lastCursor    interact.Cursor
}

type Options struct {
	Config *config.Config
	Logger *zap.Logger
}

func initWindow(width, height int32, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(width, height, "gravwords")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont falls back to the raylib default font when the system font is
// missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx(fontPath, 48, nil, 0)
	if font.BaseSize == 0 || font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(opts Options) (*App, error) {
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
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	options := make([]theme.Option, len(cfg.Theme.Options))
	for i, o := range cfg.Theme.Options {
		options[i] = theme.Option{Name: o.Name, Hex: o.Hex}
	}
	themes, err := theme.NewSwitcher(options, cfg.Theme.Active)
	if err != nil {
		return nil, err
	}

	a := &App{
		Cfg:     cfg,
		Log:     log,
		queue:   schedule.NewQueue(),
		themes:  themes,
		font:    loadFont(),
		Width:   int32(cfg.World.Width),
		Height:  int32(cfg.World.Height),
		Running: true,
	}
	a.Eng = chipmunk.New(chipmunk.Options{Gravity: geom.V(0, cfg.World.Gravity)})
	a.Scene, err = scene.Build(a.Eng, scene.FromConfig(cfg, theme.WordColors(cfg.Theme.Dark), a.measureHeader), rng)
	if err != nil {
		return nil, err
	}
	a.runner = engine.NewRunner(a.Eng, 1/float64(cfg.FPS))
	hero := float64(a.Height)
	a.vis = visibility.NewTracker(visibility.Region{Top: navHeight, Bottom: navHeight + hero},
		navHeight+hero+contentH, float64(a.Height))
	a.glass = effects.NewGlass(geom.Bounds{Max: geom.V(float64(a.Width), hero)}, effects.DefaultLerp)
	a.layoutNav()
	a.Ctrl = interact.New(a.Eng, a.Scene.Labels(), a.queue, icfg,
		interact.WithRand(rng),
		interact.WithLayout(a.Scene.Layout()),
		interact.WithLogger(log),
		interact.WithVisible(a.vis.Visible()))
	a.Ctrl.Start()
	return a, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
		opts.Config = cfg
	}
	initWindow(int32(cfg.World.Width), int32(cfg.World.Height), cfg.FPS)
	defer rl.CloseWindow()
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	defer a.Ctrl.Stop()
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) layoutNav() {
	a.nav = a.nav[:0]
	x := float32(24)
	for _, n := range navNames {
		w := rl.MeasureTextEx(a.font, n, navFontSize, 1).X + 16
		rect := geom.Bounds{Min: geom.V(float64(x), 8), Max: geom.V(float64(x+w), navHeight-8)}
		a.nav = append(a.nav, navLink{name: n, rect: rect, magnet: effects.NewMagnet(rect, a.Cfg.Theme.Magnetic)})
		x += w + 12
	}
}

// heroPoint maps a window position to hero world coordinates.
func (a *App) heroPoint(p rl.Vector2) geom.Vec {
	return geom.V(float64(p.X), float64(p.Y)-navHeight+a.vis.Scroll())
}

// Update handles one frame of input and simulation. It returns false when
// the user asks to quit.
func (a *App) Update() bool {
	dt := float64(rl.GetFrameTime())
	now := time.Now()

	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
		a.Ctrl.Dispatch(interact.VisibilityChanged{Visible: a.Running && a.vis.Visible()})
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.themes.Next()
	}
	for i := int32(0); i < 9; i++ {
		if rl.IsKeyPressed(rl.KeyOne + i) {
			a.themes.Select(int(i))
		}
	}

	if rl.IsWindowResized() {
		a.resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	}
	a.setVisible(a.vis.SetFocus(rl.IsWindowFocused() && !rl.IsWindowMinimized()))
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.setVisible(a.vis.ScrollBy(-float64(wheel) * 40))
	}

	mouse := rl.GetMousePosition()
	mp := geom.V(float64(mouse.X), float64(mouse.Y))
	for _, l := range a.nav {
		l.magnet.Move(mp)
	}
	if mouse.Y < navHeight {
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			a.clickNav(mp)
		}
	} else {
		p := a.heroPoint(mouse)
		a.glass.Follow(p)
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			a.Ctrl.Dispatch(interact.PointerDown{Pos: p, At: now})
		}
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			a.Ctrl.Dispatch(interact.PointerMove{Pos: p, At: now})
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.Ctrl.Dispatch(interact.PointerUp{At: now})
	}
	a.updateCursor()

	a.queue.Advance(time.Duration(dt * float64(time.Second)))
	if a.Running {
		a.runner.Advance(dt)
	}
	return true
}

func (a *App) setVisible(visible, changed bool) {
	if changed && a.Running {
		a.Ctrl.Dispatch(interact.VisibilityChanged{Visible: visible})
	}
}

func (a *App) resize(width, height int32) {
	a.Width, a.Height = width, height
	hero := float64(height)
	a.vis.Region = visibility.Region{Top: navHeight, Bottom: navHeight + hero}
	a.vis.PageHeight = navHeight + hero + contentH
	a.setVisible(a.vis.SetViewport(float64(height)))
	a.glass.Container = geom.Bounds{Max: geom.V(float64(width), hero)}
	a.Ctrl.Dispatch(interact.Resized{Width: float64(width), Height: hero})
	a.Log.Info("window resized", zap.Int32("width", width), zap.Int32("height", height))
}

func (a *App) clickNav(p geom.Vec) {
	for i := range a.themes.Options() {
		if a.swatchRect(i).Contains(p) {
			a.themes.Select(i)
			return
		}
	}
	for _, l := range a.nav {
		if !l.magnet.Hovering() {
			continue
		}
		if l.name == "home" {
			a.setVisible(a.vis.ScrollTo(0))
		} else {
			a.setVisible(a.vis.ScrollTo(a.vis.MaxScroll()))
		}
	}
}

func (a *App) swatchRect(i int) geom.Bounds {
	n := len(a.themes.Options())
	x := float64(a.Width) - float64(n-i)*28 - 16
	return geom.Bounds{Min: geom.V(x, 14), Max: geom.V(x+20, 34)}
}

func (a *App) updateCursor() {
	c := a.Ctrl.Cursor()
	if c == a.lastCursor {
		return
	}
	a.lastCursor = c
	switch c {
	case interact.CursorGrab:
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	case interact.CursorGrabbing:
		rl.SetMouseCursor(rl.MouseCursorResizeAll)
	default:
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

func (a *App) Draw() {
	p := a.themes.Palette()
	rl.BeginDrawing()
	rl.ClearBackground(toColor(p.BackgroundDark))

	offset := navHeight - float32(a.vis.Scroll())
	a.drawHeader(offset)
	a.Scene.Draw(&surface{font: a.font, offset: offset, fallback: p.Primary})
	if _, dragging := a.Ctrl.Session(); !dragging {
		g := a.glass.Position()
		rl.DrawCircleGradient(int32(g.X), int32(float32(g.Y)+offset), 120,
			rl.ColorAlpha(toColor(p.Primary), 0.12), rl.ColorAlpha(toColor(p.Primary), 0))
	}
	a.drawContent(offset + float32(a.Height))
	a.drawNav()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	p := a.themes.Palette()
	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	ambient := "idle"
	if a.Ctrl.AmbientRunning() {
		ambient = "ambient"
	}
	a.drawText(fmt.Sprintf("%s  %s  %d FPS", status, ambient, rl.GetFPS()), 24, int(a.Height)-28, 14, toColor(p.Secondary))
	a.drawText("[DRAG] THROW  [T] THEME  [1-5] PICK  [SPACE] PAUSE  [Q] QUIT", int(a.Width)-560, int(a.Height)-28, 14, toColor(p.Secondary))
}

func (a *App) drawNav() {
	p := a.themes.Palette()
	rl.DrawRectangle(0, 0, a.Width, navHeight, rl.ColorAlpha(toColor(p.BackgroundDark), 0.9))
	for _, l := range a.nav {
		off := l.magnet.Offset()
		col := toColor(p.Secondary)
		if l.magnet.Hovering() {
			col = toColor(p.Primary)
		}
		a.drawText(l.name, int(l.rect.Min.X+8+off.X), int(l.rect.Min.Y+6+off.Y), navFontSize, col)
	}
	for i, o := range a.themes.Options() {
		c, err := theme.ParseHex(o.Hex)
		if err != nil {
			continue
		}
		r := a.swatchRect(i)
		rl.DrawRectangle(int32(r.Min.X), int32(r.Min.Y), int32(r.Width()), int32(r.Height()), toColor(c))
		if a.themes.IsActive(i) {
			rl.DrawRectangleLines(int32(r.Min.X)-2, int32(r.Min.Y)-2, int32(r.Width())+4, int32(r.Height())+4, rl.White)
		}
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
