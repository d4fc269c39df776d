// Package scene builds the word cloud in an engine: boundaries, one
// dynamic body per word, and the per-frame draw.
package scene

import (
	"errors"
	"math"
	"math/rand"

	"github.com/san-kum/gravwords/internal/config"
	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/geom"
	"github.com/san-kum/gravwords/internal/render"
)

var ErrNoWords = errors.New("scene: no words")

type Word struct {
	Text string
	Size float64
}

// Shape is the body template for a label before word size scaling.
type Shape struct {
	Width       float64
	Height      float64
	Chamfer     float64
	Density     float64
	FrictionAir float64
	Friction    float64
	Restitution float64
}

type Options struct {
	Width, Height float64
	// Inset keeps spawn positions away from the edges.
	Inset        float64
	InitialSpeed float64
	Shape        Shape
	Words        []Word
	Colors       []string
	Layout       Layout
}

// FromConfig maps file settings onto scene options.
func FromConfig(cfg *config.Config, colors []string, measure Measure) Options {
	words := make([]Word, len(cfg.Words))
	for i, w := range cfg.Words {
		words[i] = Word{w.Text, w.Size}
	}
	return Options{
		Width:        cfg.World.Width,
		Height:       cfg.World.Height,
		Inset:        cfg.World.SpawnInset,
		InitialSpeed: cfg.World.InitialSpeed,
		Shape: Shape{
			Width:       cfg.Label.Width,
			Height:      cfg.Label.Height,
			Chamfer:     cfg.Label.Chamfer,
			Density:     cfg.Label.Density,
			FrictionAir: cfg.Label.FrictionAir,
			Friction:    cfg.Label.Friction,
			Restitution: cfg.Label.Restitution,
		},
		Words:  words,
		Colors: colors,
		Layout: Layout{
			Margin:      cfg.World.WallMargin,
			Padding:     cfg.World.HeaderPadding,
			Restitution: cfg.World.WallRestitution,
			Friction:    cfg.World.WallFriction,
			Measure:     measure,
		},
	}
}

type Scene struct {
	eng    engine.Engine
	opts   Options
	labels []engine.Handle
}

// Build creates the boundaries and then one label per word, in word order.
func Build(eng engine.Engine, opts Options, rng *rand.Rand) (*Scene, error) {
	if len(opts.Words) == 0 {
		return nil, ErrNoWords
	}
	for _, b := range opts.Layout.Boundaries(opts.Width, opts.Height) {
		eng.CreateRect(b)
	}
	s := &Scene{eng: eng, opts: opts}
	for _, w := range opts.Words {
		s.labels = append(s.labels, s.spawn(w, rng))
	}
	return s, nil
}

func (s *Scene) spawn(w Word, rng *rand.Rand) engine.Handle {
	o := s.opts
	size := w.Size
	if !(size > 0) {
		size = 1
	}
	pos := geom.V(spawnCoord(rng, o.Width, o.Inset), spawnCoord(rng, o.Height, o.Inset))
	width, height := o.Shape.Width*size, o.Shape.Height*size
	color := ""
	if len(o.Colors) > 0 {
		color = o.Colors[rng.Intn(len(o.Colors))]
	}
	h := s.eng.CreateRect(engine.BodyOptions{
		Position:    pos,
		Width:       width,
		Height:      height,
		Chamfer:     math.Min(o.Shape.Chamfer, math.Min(width, height)/2),
		Density:     o.Shape.Density,
		FrictionAir: o.Shape.FrictionAir,
		Friction:    o.Shape.Friction,
		Restitution: o.Shape.Restitution,
		Label:       w.Text,
		Color:       color,
	})
	s.eng.SetVelocity(h, geom.Polar(rng.Float64()*2*math.Pi, o.InitialSpeed))
	return h
}

// spawnCoord picks a uniform coordinate in [inset, extent-inset], or the
// middle when the inset leaves no room.
func spawnCoord(rng *rand.Rand, extent, inset float64) float64 {
	span := extent - 2*inset
	if span <= 0 {
		return extent / 2
	}
	return inset + rng.Float64()*span
}

func (s *Scene) Labels() []engine.Handle { return append([]engine.Handle(nil), s.labels...) }
func (s *Scene) Layout() Layout          { return s.opts.Layout }
func (s *Scene) Engine() engine.Engine   { return s.eng }

// Draw renders one frame: Clear, then every label in list order.
func (s *Scene) Draw(surface render.Surface) {
	surface.Clear()
	for _, h := range s.labels {
		surface.DrawLabel(s.eng.Position(h), s.eng.Angle(h), s.eng.Label(h), s.eng.Color(h))
	}
}
