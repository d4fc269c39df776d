// Package schedule provides a polled timer queue for hosts that own their
// loop (the raylib window, the headless replay) and for tests.
//
// Callbacks run inside Advance, on the caller's goroutine, so they never
// interleave with other handlers of the same loop.
package schedule

import (
	"sort"
	"time"
)

type timer struct {
	id       uint64
	due      time.Duration
	fn       func()
	canceled bool
}

// Queue measures time as an offset from its creation; Now starts at zero
// and only moves forward through Advance or AdvanceTo.
type Queue struct {
	now    time.Duration
	timers []*timer
	nextID uint64
}

func NewQueue() *Queue { return &Queue{} }

func (q *Queue) Now() time.Duration { return q.now }

// After schedules fn to run once d has elapsed. The returned cancel is
// idempotent.
func (q *Queue) After(d time.Duration, fn func()) (cancel func()) {
	if d < 0 {
		d = 0
	}
	q.nextID++
	t := &timer{id: q.nextID, due: q.now + d, fn: fn}
	q.timers = append(q.timers, t)
	return func() { t.canceled = true }
}

// Pending returns the number of timers that have not fired or been canceled.
func (q *Queue) Pending() int {
	n := 0
	for _, t := range q.timers {
		if !t.canceled {
			n++
		}
	}
	return n
}

func (q *Queue) Advance(d time.Duration) int {
	return q.AdvanceTo(q.now + d)
}

// AdvanceTo moves time to at, firing due timers in due order (ties in
// scheduling order). Timers scheduled by callbacks fire in the same call if
// they fall due before at. Returns the number of callbacks run.
func (q *Queue) AdvanceTo(at time.Duration) int {
	fired := 0
	for {
		t := q.popDue(at)
		if t == nil {
			break
		}
		if t.due > q.now {
			q.now = t.due
		}
		t.fn()
		fired++
	}
	if at > q.now {
		q.now = at
	}
	return fired
}

func (q *Queue) popDue(at time.Duration) *timer {
	live := q.timers[:0]
	for _, t := range q.timers {
		if !t.canceled {
			live = append(live, t)
		}
	}
	q.timers = live
	if len(q.timers) == 0 {
		return nil
	}
	sort.SliceStable(q.timers, func(i, j int) bool {
		if q.timers[i].due == q.timers[j].due {
			return q.timers[i].id < q.timers[j].id
		}
		return q.timers[i].due < q.timers[j].due
	})
	t := q.timers[0]
	if t.due > at {
		return nil
	}
	q.timers = q.timers[1:]
	return t
}
