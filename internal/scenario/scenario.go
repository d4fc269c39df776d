// Package scenario replays scripted pointer, visibility and resize events
// against the real engine in virtual time.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoDuration    = errors.New("scenario: duration must be positive")
	ErrBadFPS        = errors.New("scenario: fps must be positive")
	ErrBadSurface    = errors.New("scenario: surface must be positive")
	ErrUnknownKind   = errors.New("scenario: unknown event kind")
	ErrEventTime     = errors.New("scenario: event outside the run")
	ErrUnknownTarget = errors.New("scenario: unknown target label")
)

type Kind string

const (
	KindDown    Kind = "down"
	KindMove    Kind = "move"
	KindUp      Kind = "up"
	KindVisible Kind = "visible"
	KindHidden  Kind = "hidden"
	KindResize  Kind = "resize"
)

type Event struct {
	At     time.Duration `yaml:"at"`
	Kind   Kind          `yaml:"kind"`
	X      float64       `yaml:"x,omitempty"`
	Y      float64       `yaml:"y,omitempty"`
	Width  float64       `yaml:"width,omitempty"`
	Height float64       `yaml:"height,omitempty"`
	// Target names a label for down events; the pointer lands on its
	// center offset by X, Y.
	Target string `yaml:"target,omitempty"`
}

type Surface struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Scenario struct {
	Name     string        `yaml:"name"`
	Profile  string        `yaml:"profile"`
	Seed     int64         `yaml:"seed"`
	Duration time.Duration `yaml:"duration"`
	FPS      int           `yaml:"fps"`
	Surface  Surface       `yaml:"surface"`
	Words    []string      `yaml:"words,omitempty"`
	Events   []Event       `yaml:"events"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a scenario, fills defaults and orders events by time.
// Events with equal times keep their file order.
func Parse(data []byte) (*Scenario, error) {
	sc := &Scenario{FPS: 60}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if sc.Profile == "" {
		sc.Profile = "classic"
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(sc.Events, func(i, j int) bool { return sc.Events[i].At < sc.Events[j].At })
	return sc, nil
}

func (s *Scenario) Validate() error {
	switch {
	case s.Duration <= 0:
		return ErrNoDuration
	case s.FPS <= 0:
		return fmt.Errorf("%w: %d", ErrBadFPS, s.FPS)
	case !(s.Surface.Width > 0) || !(s.Surface.Height > 0):
		return fmt.Errorf("%w: %gx%g", ErrBadSurface, s.Surface.Width, s.Surface.Height)
	}
	for i, e := range s.Events {
		switch e.Kind {
		case KindDown, KindMove, KindUp, KindVisible, KindHidden:
		case KindResize:
			if !(e.Width > 0) || !(e.Height > 0) {
				return fmt.Errorf("event %d: %w: %gx%g", i, ErrBadSurface, e.Width, e.Height)
			}
		default:
			return fmt.Errorf("event %d: %w: %q", i, ErrUnknownKind, e.Kind)
		}
		if e.At < 0 || e.At > s.Duration {
			return fmt.Errorf("event %d: %w: %v", i, ErrEventTime, e.At)
		}
	}
	return nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
