package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/gravwords/internal/interact"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth    = 1280.0
	DefaultHeight   = 720.0
	DefaultFPS      = 60
	DefaultMargin   = 20.0
	DefaultPadding  = 10.0
	DefaultInset    = 100.0
	DefaultSpeed    = 120.0
	DefaultLabelW   = 150.0
	DefaultLabelH   = 40.0
	DefaultChamfer  = 10.0
	DefaultStrength = 0.2
)

type Config struct {
	Profile     string            `yaml:"profile"`
	Seed        int64             `yaml:"seed"`
	FPS         int               `yaml:"fps"`
	Interaction InteractionConfig `yaml:"interaction"`
	World       WorldConfig       `yaml:"world"`
	Label       LabelConfig       `yaml:"label"`
	Words       []Word            `yaml:"words"`
	Theme       ThemeConfig       `yaml:"theme"`
	Contact     ContactConfig     `yaml:"contact"`
	Log         LogConfig         `yaml:"log"`
}

type InteractionConfig struct {
	MaxDragSpeed     float64       `yaml:"max_drag_speed"`
	MinFrameInterval time.Duration `yaml:"min_frame_interval"`
	ThrowDamping     float64       `yaml:"throw_damping"`

	Policy          string  `yaml:"policy"`
	ImpactThreshold float64 `yaml:"impact_threshold"`
	RotationImpulse float64 `yaml:"rotation_impulse"`
	ExchangeDamping float64 `yaml:"exchange_damping"`
	MinSpeed        float64 `yaml:"min_speed"`
	MaxSpeed        float64 `yaml:"max_speed"`

	AmbientInterval time.Duration `yaml:"ambient_interval"`
	MaxAngle        float64       `yaml:"max_angle"`
	RotationJitter  float64       `yaml:"rotation_jitter"`
	Energy          bool          `yaml:"energy"`
	ForceFloor      float64       `yaml:"force_floor"`
	Force           float64       `yaml:"force"`
	RestFloor       float64       `yaml:"rest_floor"`
	RestSpeed       float64       `yaml:"rest_speed"`
	StopDecay       float64       `yaml:"stop_decay"`
}

type WorldConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Gravity         float64 `yaml:"gravity"`
	WallMargin      float64 `yaml:"wall_margin"`
	WallRestitution float64 `yaml:"wall_restitution"`
	WallFriction    float64 `yaml:"wall_friction"`
	HeaderPadding   float64 `yaml:"header_padding"`
	SpawnInset      float64 `yaml:"spawn_inset"`
	InitialSpeed    float64 `yaml:"initial_speed"`
}

type LabelConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Chamfer     float64 `yaml:"chamfer"`
	Density     float64 `yaml:"density"`
	FrictionAir float64 `yaml:"friction_air"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

type Word struct {
	Text string  `yaml:"text"`
	Size float64 `yaml:"size"`
}

type ThemeOption struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

type ThemeConfig struct {
	Active   string        `yaml:"active"`
	Dark     bool          `yaml:"dark"`
	Options  []ThemeOption `yaml:"options"`
	Magnetic float64       `yaml:"magnetic"`
}

type ContactConfig struct {
	Recipient string `yaml:"recipient"`
	Subject   string `yaml:"subject"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// DefaultWords is the skill cloud of the portfolio hero.
var DefaultWords = []Word{
	{"leadership", 1.4},
	{"communication", 1.3},
	{"management", 1.1},
	{"organization", 1.0},
	{"planning", 0.9},
	{"sql", 0.8},
	{"java", 1.2},
	{"kotlin", 1.1},
	{"web development", 1.3},
	{"curriculum design", 1.4},
	{"curriculum creation", 1.2},
	{"data visualization", 1.1},
	{"data analysis", 1.0},
	{"collaboration", 1.3},
	{"problem solving", 1.2},
	{"android development", 1.1},
}

// DefaultThemes are the switcher swatches; the first is active at startup.
var DefaultThemes = []ThemeOption{
	{"sage", "#89B6A5"},
	{"gold", "#FFD700"},
	{"coral", "#FF6B6B"},
	{"ocean", "#4A90D9"},
	{"lavender", "#9B8DC4"},
}

func DefaultConfig() *Config {
	ic := interact.DefaultConfig()
	return &Config{
		Profile:     "classic",
		FPS:         DefaultFPS,
		Interaction: fromInteract(ic),
		World: WorldConfig{
			Width:           DefaultWidth,
			Height:          DefaultHeight,
			WallMargin:      DefaultMargin,
			WallRestitution: 0.7,
			WallFriction:    0.2,
			HeaderPadding:   DefaultPadding,
			SpawnInset:      DefaultInset,
			InitialSpeed:    DefaultSpeed,
		},
		Label: LabelConfig{
			Width:       DefaultLabelW,
			Height:      DefaultLabelH,
			Chamfer:     DefaultChamfer,
			Density:     0.001,
			FrictionAir: 0.02,
			Friction:    0.1,
			Restitution: 0.8,
		},
		Words: append([]Word(nil), DefaultWords...),
		Theme: ThemeConfig{
			Active:   DefaultThemes[0].Name,
			Options:  append([]ThemeOption(nil), DefaultThemes...),
			Magnetic: DefaultStrength,
		},
		Contact: ContactConfig{
			Recipient: "inquiries.astridcoenrad@gmail.com",
			Subject:   "Portfolio Contact",
		},
		Log: LogConfig{Level: "info"},
	}
}

func fromInteract(c interact.Config) InteractionConfig {
	return InteractionConfig{
		MaxDragSpeed:     c.MaxDragSpeed,
		MinFrameInterval: c.MinFrameInterval,
		ThrowDamping:     c.ThrowDamping,
		Policy:           string(c.Collision.Policy),
		ImpactThreshold:  c.Collision.ImpactThreshold,
		RotationImpulse:  c.Collision.RotationImpulse,
		ExchangeDamping:  c.Collision.Damping,
		MinSpeed:         c.Collision.MinSpeed,
		MaxSpeed:         c.Collision.MaxSpeed,
		AmbientInterval:  c.Ambient.Interval,
		MaxAngle:         c.Ambient.MaxAngle,
		RotationJitter:   c.Ambient.RotationJitter,
		Energy:           c.Ambient.Energy,
		ForceFloor:       c.Ambient.ForceFloor,
		Force:            c.Ambient.Force,
		RestFloor:        c.Ambient.RestFloor,
		RestSpeed:        c.Ambient.RestSpeed,
		StopDecay:        c.Ambient.StopDecay,
	}
}

// Controller converts the interaction settings into a controller config.
func (c *Config) Controller() (interact.Config, error) {
	ic := c.Interaction
	policy, err := interact.ParsePolicy(ic.Policy)
	if err != nil {
		return interact.Config{}, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	out := interact.Config{
		MaxDragSpeed:     ic.MaxDragSpeed,
		MinFrameInterval: ic.MinFrameInterval,
		ThrowDamping:     ic.ThrowDamping,
		Collision: interact.CollisionConfig{
			Policy:          policy,
			ImpactThreshold: ic.ImpactThreshold,
			RotationImpulse: ic.RotationImpulse,
			Damping:         ic.ExchangeDamping,
			MinSpeed:        ic.MinSpeed,
			MaxSpeed:        ic.MaxSpeed,
		},
		Ambient: interact.AmbientConfig{
			Interval:       ic.AmbientInterval,
			MaxAngle:       ic.MaxAngle,
			RotationJitter: ic.RotationJitter,
			Energy:         ic.Energy,
			ForceFloor:     ic.ForceFloor,
			Force:          ic.Force,
			RestFloor:      ic.RestFloor,
			RestSpeed:      ic.RestSpeed,
			StopDecay:      ic.StopDecay,
		},
	}
	if err := out.Validate(); err != nil {
		return interact.Config{}, fmt.Errorf("%w: %v", ErrInvalidInteraction, err)
	}
	return out, nil
}

func (c *Config) Validate() error {
	if _, err := c.Controller(); err != nil {
		return err
	}
	switch {
	case !(c.World.Width > 0) || !(c.World.Height > 0):
		return fmt.Errorf("%w: surface %gx%g", ErrInvalidWorld, c.World.Width, c.World.Height)
	case c.World.SpawnInset < 0 || 2*c.World.SpawnInset >= c.World.Width || 2*c.World.SpawnInset >= c.World.Height:
		return fmt.Errorf("%w: spawn inset %g does not fit %gx%g", ErrInvalidWorld, c.World.SpawnInset, c.World.Width, c.World.Height)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalidWorld, c.FPS)
	case !(c.Label.Width > 0) || !(c.Label.Height > 0) || !(c.Label.Density > 0):
		return fmt.Errorf("%w: %gx%g density %g", ErrInvalidLabel, c.Label.Width, c.Label.Height, c.Label.Density)
	case c.Label.Chamfer < 0 || 2*c.Label.Chamfer > min(c.Label.Width, c.Label.Height):
		return fmt.Errorf("%w: chamfer %g", ErrInvalidLabel, c.Label.Chamfer)
	case len(c.Words) == 0:
		return ErrNoWords
	}
	for _, w := range c.Words {
		if w.Text == "" || !(w.Size > 0) {
			return fmt.Errorf("%w: %q size %g", ErrInvalidWord, w.Text, w.Size)
		}
	}
	if len(c.Theme.Options) > 0 && c.Theme.Active != "" {
		found := false
		for _, o := range c.Theme.Options {
			found = found || o.Name == c.Theme.Active
		}
		if !found {
			return fmt.Errorf("%w: %q", ErrUnknownTheme, c.Theme.Active)
		}
	}
	return nil
}

// Load reads a YAML file over the defaults. A profile named in the file is
// applied first and the file's own settings override it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var probe struct {
		Profile string `yaml:"profile"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if probe.Profile != "" {
		p := GetPreset(probe.Profile)
		if p == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, probe.Profile)
		}
		cfg = p
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
