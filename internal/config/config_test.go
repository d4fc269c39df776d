package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/gravwords/internal/interact"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Words) != 16 {
		t.Errorf("expected 16 words, got %d", len(cfg.Words))
	}
	if cfg.World.Gravity != 0 {
		t.Errorf("expected zero gravity, got %f", cfg.World.Gravity)
	}
	ic, err := cfg.Controller()
	if err != nil {
		t.Fatal(err)
	}
	if ic != interact.DefaultConfig() {
		t.Errorf("controller config does not round-trip defaults: %+v", ic)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("bouncy")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Interaction.Policy != "exchange" {
		t.Errorf("expected exchange policy, got %s", cfg.Interaction.Policy)
	}
	cfg.Words[0].Text = "mutated"
	if Presets["bouncy"].Words[0].Text == "mutated" {
		t.Error("GetPreset returned shared state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"bad policy", func(c *Config) { c.Interaction.Policy = "bounce" }, ErrInvalidPolicy},
		{"negative damping", func(c *Config) { c.Interaction.ThrowDamping = -1 }, ErrInvalidInteraction},
		{"zero width", func(c *Config) { c.World.Width = 0 }, ErrInvalidWorld},
		{"inset too large", func(c *Config) { c.World.SpawnInset = 400 }, ErrInvalidWorld},
		{"zero fps", func(c *Config) { c.FPS = 0 }, ErrInvalidWorld},
		{"chamfer too big", func(c *Config) { c.Label.Chamfer = 30 }, ErrInvalidLabel},
		{"no words", func(c *Config) { c.Words = nil }, ErrNoWords},
		{"empty word", func(c *Config) { c.Words = []Word{{"", 1}} }, ErrInvalidWord},
		{"unknown theme", func(c *Config) { c.Theme.Active = "plaid" }, ErrUnknownTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadOverridesProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gravwords.yaml")
	data := `profile: calm
interaction:
  ambient_interval: 2s
world:
  width: 800
words:
  - text: go
    size: 1.5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Interaction.Policy != "none" {
		t.Errorf("expected calm policy none, got %s", cfg.Interaction.Policy)
	}
	if cfg.Interaction.AmbientInterval != 2*time.Second {
		t.Errorf("expected 2s interval, got %v", cfg.Interaction.AmbientInterval)
	}
	if cfg.World.Width != 800 || cfg.World.Height != DefaultHeight {
		t.Errorf("expected 800x%g, got %gx%g", DefaultHeight, cfg.World.Width, cfg.World.Height)
	}
	if len(cfg.Words) != 1 || cfg.Words[0].Text != "go" {
		t.Errorf("expected words replaced, got %+v", cfg.Words)
	}
	if Presets["calm"].World.Width != DefaultWidth {
		t.Error("Load mutated the preset")
	}
}

func TestLoadUnknownProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gravwords.yaml")
	if err := os.WriteFile(path, []byte("profile: wild\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("lively")
	cfg.Seed = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Seed != 42 || !got.Interaction.Energy || got.Interaction.MinFrameInterval != cfg.Interaction.MinFrameInterval {
		t.Errorf("round trip lost settings: %+v", got.Interaction)
	}
}
