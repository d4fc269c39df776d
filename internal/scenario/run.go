package scenario

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/gravwords/internal/config"
	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/engine/chipmunk"
	"github.com/san-kum/gravwords/internal/geom"
	"github.com/san-kum/gravwords/internal/interact"
	"github.com/san-kum/gravwords/internal/render"
	"github.com/san-kum/gravwords/internal/scene"
	"github.com/san-kum/gravwords/internal/schedule"
	"github.com/san-kum/gravwords/internal/theme"
	"go.uber.org/zap"
)

// Epoch is the wall-clock time of virtual time zero.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Frame is one sampled frame of a replay.
type Frame struct {
	T         float64
	MeanSpeed float64
	MaxAngle  float64
	Dragging  bool
	DragLabel string
}

// LabelState is a label's state at the end of a run.
type LabelState struct {
	Text     string
	Position geom.Vec
	Velocity geom.Vec
	Angle    float64
}

type Result struct {
	Name     string
	Profile  string
	Seed     int64
	FPS      int
	Duration time.Duration
	Frames   []Frame
	Final    []LabelState
	Metrics  map[string]float64
}

type Option func(*options)

type options struct {
	log      *zap.Logger
	cfg      *config.Config
	surface  render.Surface
	observer func(Frame)
}

func WithLogger(l *zap.Logger) Option { return func(o *options) { o.log = l } }

// WithConfig replaces the scenario's profile with an explicit config.
func WithConfig(cfg *config.Config) Option { return func(o *options) { o.cfg = cfg } }

// WithSurface draws every frame onto s.
func WithSurface(s render.Surface) Option { return func(o *options) { o.surface = s } }

func WithObserver(fn func(Frame)) Option { return func(o *options) { o.observer = fn } }

// Run replays sc frame by frame. Per frame it dispatches due events, fires
// due ambient ticks, steps the engine once and samples the labels.
func Run(ctx context.Context, sc *Scenario, opts ...Option) (*Result, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.cfg
	if cfg == nil {
		cfg = config.GetPreset(sc.Profile)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %q", config.ErrUnknownPreset, sc.Profile)
		}
	} else {
		cfg = cfg.Clone()
	}
	cfg.World.Width, cfg.World.Height = sc.Surface.Width, sc.Surface.Height
	if len(sc.Words) > 0 {
		cfg.Words = cfg.Words[:0]
		for _, w := range sc.Words {
			cfg.Words = append(cfg.Words, config.Word{Text: w, Size: 1})
		}
	}
	icfg, err := cfg.Controller()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(sc.Seed))
	eng := chipmunk.New(chipmunk.Options{Gravity: geom.V(0, cfg.World.Gravity)})
	sn, err := scene.Build(eng, scene.FromConfig(cfg, theme.WordColors(cfg.Theme.Dark), nil), rng)
	if err != nil {
		return nil, err
	}
	queue := schedule.NewQueue()
	ctrl := interact.New(eng, sn.Labels(), queue, icfg,
		interact.WithRand(rng),
		interact.WithLayout(sn.Layout()),
		interact.WithLogger(o.log))
	ctrl.Start()
	defer ctrl.Stop()

	dt := time.Second / time.Duration(sc.FPS)
	runner := engine.NewRunner(eng, dt.Seconds())
	total := int(sc.Duration / dt)

	res := &Result{
		Name:     sc.Name,
		Profile:  cfg.Profile,
		Seed:     sc.Seed,
		FPS:      sc.FPS,
		Duration: sc.Duration,
		Frames:   make([]Frame, 0, total+1),
		Metrics:  make(map[string]float64),
	}
	o.log.Info("replay start", zap.String("scenario", sc.Name), zap.String("profile", cfg.Profile),
		zap.Int("frames", total+1), zap.Int("labels", len(sn.Labels())))

	next := 0
	for i := 0; i <= total; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		now := time.Duration(i) * dt
		for next < len(sc.Events) && sc.Events[next].At <= now {
			msg, err := message(sc.Events[next], eng, sn.Labels())
			if err != nil {
				return res, err
			}
			ctrl.Dispatch(msg)
			next++
		}
		queue.AdvanceTo(now)
		if i > 0 {
			runner.Advance(dt.Seconds())
		}

		f := sample(now, eng, ctrl)
		res.Frames = append(res.Frames, f)
		if o.surface != nil {
			sn.Draw(o.surface)
		}
		if o.observer != nil {
			o.observer(f)
		}
	}

	for _, h := range sn.Labels() {
		res.Final = append(res.Final, LabelState{
			Text:     eng.Label(h),
			Position: eng.Position(h),
			Velocity: eng.Velocity(h),
			Angle:    eng.Angle(h),
		})
	}
	summarize(res, ctrl, runner)
	o.log.Info("replay done", zap.String("scenario", sc.Name), zap.Int("steps", runner.Steps()))
	return res, nil
}

func message(e Event, eng engine.Engine, labels []engine.Handle) (interact.Msg, error) {
	at := Epoch.Add(e.At)
	pos := geom.V(e.X, e.Y)
	switch e.Kind {
	case KindDown:
		if e.Target != "" {
			h, ok := find(eng, labels, e.Target)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, e.Target)
			}
			pos = eng.Position(h).Add(pos)
		}
		return interact.PointerDown{Pos: pos, At: at}, nil
	case KindMove:
		return interact.PointerMove{Pos: pos, At: at}, nil
	case KindUp:
		return interact.PointerUp{At: at}, nil
	case KindVisible:
		return interact.VisibilityChanged{Visible: true}, nil
	case KindHidden:
		return interact.VisibilityChanged{Visible: false}, nil
	case KindResize:
		return interact.Resized{Width: e.Width, Height: e.Height}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
}

func find(eng engine.Engine, labels []engine.Handle, text string) (engine.Handle, bool) {
	for _, h := range labels {
		if eng.Label(h) == text {
			return h, true
		}
	}
	return 0, false
}

func sample(now time.Duration, eng engine.Engine, ctrl *interact.Controller) Frame {
	f := Frame{T: now.Seconds()}
	labels := ctrl.Labels()
	for _, h := range labels {
		f.MeanSpeed += eng.Velocity(h).Len()
		f.MaxAngle = math.Max(f.MaxAngle, math.Abs(math.Remainder(eng.Angle(h), 2*math.Pi)))
	}
	if len(labels) > 0 {
		f.MeanSpeed /= float64(len(labels))
	}
	if s, ok := ctrl.Session(); ok {
		f.Dragging = true
		f.DragLabel = eng.Label(s.Body)
	}
	return f
}

func summarize(res *Result, ctrl *interact.Controller, runner *engine.Runner) {
	var sum, peak, angle float64
	drag := 0
	for _, f := range res.Frames {
		sum += f.MeanSpeed
		peak = math.Max(peak, f.MeanSpeed)
		angle = math.Max(angle, f.MaxAngle)
		if f.Dragging {
			drag++
		}
	}
	if n := len(res.Frames); n > 0 {
		res.Metrics["mean_speed"] = sum / float64(n)
	}
	res.Metrics["peak_mean_speed"] = peak
	res.Metrics["max_angle"] = angle
	res.Metrics["drag_frames"] = float64(drag)
	res.Metrics["ambient_ticks"] = float64(ctrl.AmbientTicks())
	res.Metrics["steps"] = float64(runner.Steps())
}

// Series returns one column of the frames, by metric name, for plotting.
func (r *Result) Series(name string) ([]float64, error) {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		switch name {
		case "mean_speed":
			out[i] = f.MeanSpeed
		case "max_angle":
			out[i] = f.MaxAngle
		case "dragging":
			if f.Dragging {
				out[i] = 1
			}
		default:
			return nil, fmt.Errorf("scenario: unknown series %q", name)
		}
	}
	return out, nil
}
