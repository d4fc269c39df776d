package config

import "sort"

// Presets are the named interaction profiles. Each is a complete config.
var Presets = map[string]*Config{
	"classic": classic(),
	"bouncy":  bouncy(),
	"calm":    calm(),
	"lively":  lively(),
}

func classic() *Config {
	return DefaultConfig()
}

// bouncy swaps velocities between colliding labels and never lets them
// settle.
func bouncy() *Config {
	cfg := DefaultConfig()
	cfg.Profile = "bouncy"
	cfg.Interaction.Policy = "exchange"
	cfg.Interaction.Energy = true
	cfg.World.WallRestitution = 0.9
	cfg.Label.Restitution = 0.9
	cfg.Label.FrictionAir = 0.01
	return cfg
}

// calm leaves collisions to the engine and brakes labels when the hero
// scrolls away.
func calm() *Config {
	cfg := DefaultConfig()
	cfg.Profile = "calm"
	cfg.Interaction.Policy = "none"
	cfg.Interaction.RotationJitter = 0.01
	cfg.Interaction.StopDecay = 0.5
	cfg.Interaction.ThrowDamping = 0.05
	cfg.Label.FrictionAir = 0.04
	cfg.World.InitialSpeed = 60
	return cfg
}

func lively() *Config {
	cfg := DefaultConfig()
	cfg.Profile = "lively"
	cfg.Interaction.Energy = true
	cfg.Interaction.RotationJitter = 0.05
	cfg.World.InitialSpeed = 180
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Words = append([]Word(nil), c.Words...)
	out.Theme.Options = append([]ThemeOption(nil), c.Theme.Options...)
	return &out
}
