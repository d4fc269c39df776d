package sweep

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/gravwords/internal/config"
	"github.com/san-kum/gravwords/internal/scenario"
)

const idle = `
name: idle
duration: 1.5s
surface: {width: 800, height: 600}
words: [go, sql, java]
`

func parse(t *testing.T) *scenario.Scenario {
	t.Helper()
	sc, err := scenario.Parse([]byte(idle))
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestSweepRun(t *testing.T) {
	s := &Sweep{Profiles: []string{"classic", "calm"}, Seeds: 2, SeedStart: 10, Workers: 2}
	runs, err := s.Run(context.Background(), parse(t))
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(runs))
	}
	want := []struct {
		profile string
		seed    int64
	}{{"classic", 10}, {"classic", 11}, {"calm", 10}, {"calm", 11}}
	for i, w := range want {
		r := runs[i]
		if r.Profile != w.profile || r.Seed != w.seed {
			t.Errorf("run %d: expected %s/%d, got %s/%d", i, w.profile, w.seed, r.Profile, r.Seed)
		}
		if r.Result == nil || r.Result.Seed != w.seed || r.Result.Profile != w.profile {
			t.Errorf("run %d: result does not match its run: %+v", i, r.Result)
		}
	}
}

func TestSweepSameSeedIsDeterministic(t *testing.T) {
	s := &Sweep{Profiles: []string{"lively", "lively"}, Seeds: 1, SeedStart: 3}
	runs, err := s.Run(context.Background(), parse(t))
	if err != nil {
		t.Fatal(err)
	}
	a, b := runs[0].Result.Metrics, runs[1].Result.Metrics
	for k, v := range a {
		if b[k] != v {
			t.Errorf("metric %s differs: %f vs %f", k, v, b[k])
		}
	}
}

func TestSweepUnknownProfile(t *testing.T) {
	s := &Sweep{Profiles: []string{"classic", "wild"}}
	if _, err := s.Run(context.Background(), parse(t)); !errors.Is(err, config.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestSweepNoProfiles(t *testing.T) {
	s := &Sweep{}
	if _, err := s.Run(context.Background(), parse(t)); !errors.Is(err, ErrNoRuns) {
		t.Errorf("expected ErrNoRuns, got %v", err)
	}
}

func fake(profile string, v float64) Run {
	return Run{Profile: profile, Result: &scenario.Result{Metrics: map[string]float64{"mean_speed": v}}}
}

func TestBestAndMean(t *testing.T) {
	runs := []Run{fake("a", 3), fake("a", 5), fake("b", 1), {Profile: "c"}}

	if r, ok := Best(runs, "mean_speed", false); !ok || r.Profile != "b" {
		t.Errorf("expected b lowest, got %+v %v", r, ok)
	}
	if r, ok := Best(runs, "mean_speed", true); !ok || r.Result.Metrics["mean_speed"] != 5 {
		t.Errorf("expected 5 highest, got %+v", r)
	}
	if _, ok := Best(runs, "missing", false); ok {
		t.Error("missing metric should find nothing")
	}

	m := Mean(runs, "mean_speed")
	if m["a"] != 4 || m["b"] != 1 {
		t.Errorf("unexpected means %v", m)
	}
	if _, ok := m["c"]; ok {
		t.Error("run without result should not appear")
	}
}
