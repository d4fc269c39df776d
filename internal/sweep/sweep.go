// Package sweep replays one scenario across interaction profiles and seeds
// in parallel and ranks the runs by a metric.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/san-kum/gravwords/internal/scenario"
	"golang.org/x/sync/errgroup"
)

var ErrNoRuns = errors.New("sweep: nothing to run")

type Sweep struct {
	Profiles  []string
	Seeds     int
	SeedStart int64
	// Workers caps concurrent runs; zero means GOMAXPROCS.
	Workers int
}

type Run struct {
	Profile string
	Seed    int64
	Result  *scenario.Result
}

// Run replays sc once per profile and seed. Results come back in profile
// order, then seed order. The first failing run cancels the rest.
func (s *Sweep) Run(ctx context.Context, sc *scenario.Scenario, opts ...scenario.Option) ([]Run, error) {
	seeds := max(s.Seeds, 1)
	if len(s.Profiles) == 0 {
		return nil, ErrNoRuns
	}

	runs := make([]Run, 0, len(s.Profiles)*seeds)
	for _, p := range s.Profiles {
		for i := 0; i < seeds; i++ {
			runs = append(runs, Run{Profile: p, Seed: s.SeedStart + int64(i)})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i := range runs {
		g.Go(func() error {
			cp := *sc
			cp.Profile, cp.Seed = runs[i].Profile, runs[i].Seed
			res, err := scenario.Run(ctx, &cp, opts...)
			if err != nil {
				return fmt.Errorf("sweep: %s seed %d: %w", runs[i].Profile, runs[i].Seed, err)
			}
			runs[i].Result = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Best returns the run with the lowest value of metric, or the highest
// when maximize is set. Runs missing the metric are skipped.
func Best(runs []Run, metric string, maximize bool) (Run, bool) {
	best := math.Inf(1)
	if maximize {
		best = math.Inf(-1)
	}
	var out Run
	found := false
	for _, r := range runs {
		if r.Result == nil {
			continue
		}
		v, ok := r.Result.Metrics[metric]
		if !ok {
			continue
		}
		if (maximize && v > best) || (!maximize && v < best) {
			best, out, found = v, r, true
		}
	}
	return out, found
}

// Mean averages metric per profile over its seeds.
func Mean(runs []Run, metric string) map[string]float64 {
	sum := make(map[string]float64)
	n := make(map[string]int)
	for _, r := range runs {
		if r.Result == nil {
			continue
		}
		if v, ok := r.Result.Metrics[metric]; ok {
			sum[r.Profile] += v
			n[r.Profile]++
		}
	}
	for p := range sum {
		sum[p] /= float64(n[p])
	}
	return sum
}
