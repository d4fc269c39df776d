package interact

import (
	"fmt"
	"math"
	"time"
)

// Policy selects how the controller reacts to collision starts.
type Policy string

const (
	// PolicyNone leaves collision response to the engine's restitution.
	PolicyNone Policy = "none"
	// PolicySimple gives both bodies of a hard impact the same small random
	// rotation. Translational velocity is untouched.
	PolicySimple Policy = "simple"
	// PolicyExchange swaps negated, damped velocities between two labels and
	// keeps the result inside [MinSpeed, MaxSpeed].
	PolicyExchange Policy = "exchange"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyNone, PolicySimple, PolicyExchange:
		return p, nil
	case "":
		return PolicyNone, nil
	}
	return "", fmt.Errorf("unknown collision policy %q (want none, simple or exchange)", s)
}

type CollisionConfig struct {
	Policy Policy
	// simple
	ImpactThreshold float64
	RotationImpulse float64
	// exchange
	Damping  float64
	MinSpeed float64
	MaxSpeed float64
}

type AmbientConfig struct {
	Interval       time.Duration
	MaxAngle       float64
	RotationJitter float64

	// Energy keeps labels from coming to rest.
	Energy     bool
	ForceFloor float64
	Force      float64
	RestFloor  float64
	RestSpeed  float64
	// StopDecay multiplies every label velocity when the tick stops.
	// 1 disables decay.
	StopDecay float64
}

// Config holds every tunable of the controller. Speeds are in surface
// units per second, angles in radians.
type Config struct {
	MaxDragSpeed     float64
	MinFrameInterval time.Duration
	ThrowDamping     float64
	Collision        CollisionConfig
	Ambient          AmbientConfig
}

const (
	DefaultMaxDragSpeed   = 900.0
	DefaultThrowDamping   = 0.1
	DefaultMaxAngle       = math.Pi / 6
	DefaultRotationJitter = 0.02
)

// DefaultMinFrameInterval floors the elapsed time between drag samples.
const DefaultMinFrameInterval = time.Second / 60

func DefaultConfig() Config {
	return Config{
		MaxDragSpeed:     DefaultMaxDragSpeed,
		MinFrameInterval: DefaultMinFrameInterval,
		ThrowDamping:     DefaultThrowDamping,
		Collision: CollisionConfig{
			Policy:          PolicySimple,
			ImpactThreshold: 180,
			RotationImpulse: 0.1,
			Damping:         0.9,
			MinSpeed:        60,
			MaxSpeed:        360,
		},
		Ambient: AmbientConfig{
			Interval:       time.Second,
			MaxAngle:       DefaultMaxAngle,
			RotationJitter: DefaultRotationJitter,
			ForceFloor:     40,
			Force:          6000,
			RestFloor:      15,
			RestSpeed:      30,
			StopDecay:      1,
		},
	}
}

// Validate reports the first setting that would let NaN or runaway values
// into engine state.
func (c Config) Validate() error {
	switch {
	case !(c.MaxDragSpeed > 0):
		return fmt.Errorf("max drag speed must be positive, got %f", c.MaxDragSpeed)
	case c.MinFrameInterval <= 0:
		return fmt.Errorf("min frame interval must be positive, got %v", c.MinFrameInterval)
	case c.ThrowDamping < 0 || c.ThrowDamping > 1:
		return fmt.Errorf("throw damping must be in [0,1], got %f", c.ThrowDamping)
	case c.Ambient.Interval <= 0:
		return fmt.Errorf("ambient interval must be positive, got %v", c.Ambient.Interval)
	case !(c.Ambient.MaxAngle > 0):
		return fmt.Errorf("max angle must be positive, got %f", c.Ambient.MaxAngle)
	case c.Ambient.StopDecay < 0 || c.Ambient.StopDecay > 1:
		return fmt.Errorf("stop decay must be in [0,1], got %f", c.Ambient.StopDecay)
	}
	if _, err := ParsePolicy(string(c.Collision.Policy)); err != nil {
		return err
	}
	if c.Collision.Policy == PolicyExchange {
		if c.Collision.MinSpeed < 0 || c.Collision.MaxSpeed < c.Collision.MinSpeed {
			return fmt.Errorf("exchange speeds must satisfy 0 <= min <= max, got %f..%f",
				c.Collision.MinSpeed, c.Collision.MaxSpeed)
		}
	}
	return nil
}
