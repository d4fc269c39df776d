package engine

import "math"

const (
	DefaultStep     = 1.0 / 60
	DefaultMaxSteps = 5
)

// Runner advances an Engine in fixed increments from variable frame times.
// Leftover time is carried to the next frame; a frame that would need more
// than MaxSteps increments drops the excess so a stalled host cannot
// trigger a catch-up spiral.
type Runner struct {
	eng      Engine
	step     float64
	maxSteps int
	acc      float64
	steps    int
}

func NewRunner(eng Engine, step float64) *Runner {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		step = DefaultStep
	}
	return &Runner{eng: eng, step: step, maxSteps: DefaultMaxSteps}
}

// Advance feeds elapsed seconds into the runner and returns the number of
// engine steps taken.
func (r *Runner) Advance(elapsed float64) int {
	if elapsed <= 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return 0
	}
	r.acc += elapsed
	n := 0
	for r.acc >= r.step && n < r.maxSteps {
		r.eng.Step(r.step)
		r.acc -= r.step
		n++
	}
	if n == r.maxSteps {
		r.acc = 0
	}
	r.steps += n
	return n
}

func (r *Runner) StepSize() float64 { return r.step }
func (r *Runner) Steps() int        { return r.steps }
