package engine_test

import (
	"math"
	"testing"

	"github.com/san-kum/gravwords/internal/engine"
	"github.com/san-kum/gravwords/internal/engine/enginetest"
)

func TestRunnerFixedSteps(t *testing.T) {
	eng := enginetest.New()
	r := engine.NewRunner(eng, 0.01)

	if n := r.Advance(0.035); n != 3 {
		t.Errorf("expected 3 steps, got %d", n)
	}
	// 0.005 carried over
	if n := r.Advance(0.006); n != 1 {
		t.Errorf("expected 1 step from carried time, got %d", n)
	}
	if math.Abs(eng.Stepped-0.04) > 1e-9 {
		t.Errorf("expected 0.04s stepped, got %f", eng.Stepped)
	}
	if r.Steps() != 4 {
		t.Errorf("expected 4 total steps, got %d", r.Steps())
	}
}

func TestRunnerDropsBacklog(t *testing.T) {
	eng := enginetest.New()
	r := engine.NewRunner(eng, 0.01)

	if n := r.Advance(10); n != engine.DefaultMaxSteps {
		t.Errorf("expected %d steps, got %d", engine.DefaultMaxSteps, n)
	}
	if n := r.Advance(0.001); n != 0 {
		t.Errorf("expected backlog dropped, got %d steps", n)
	}
}

func TestRunnerIgnoresBadElapsed(t *testing.T) {
	eng := enginetest.New()
	r := engine.NewRunner(eng, -1)

	if r.StepSize() != engine.DefaultStep {
		t.Errorf("expected default step, got %f", r.StepSize())
	}
	for _, e := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if n := r.Advance(e); n != 0 {
			t.Errorf("Advance(%f) took %d steps", e, n)
		}
	}
}
