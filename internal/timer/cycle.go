// Package timer implements the wall-clock countdown primitives behind the
// dashboard: the eye-care work/rest cycle, the continuous-session circuit
// breaker, and per-task focus timers. All of them measure elapsed time from
// timestamps, never by counting ticks, so an irregular or delayed tick stream
// produces the same behavior as a steady one.
package timer

import "time"

// Phase is the current half of a work/rest cycle.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseBreak
)

// Event reports a phase transition observed by Tick.
type Event int

const (
	EventNone Event = iota
	EventBreakStart
	EventBreakEnd
)

// Cycle alternates between an active period and a short break, e.g. twenty
// minutes of work followed by twenty seconds of rest.
type Cycle struct {
	activeFor time.Duration
	breakFor  time.Duration
	phase     Phase
	since     time.Time
}

func NewCycle(active, rest time.Duration, now time.Time) *Cycle {
	return &Cycle{activeFor: active, breakFor: rest, since: now}
}

// Tick advances the cycle to now and reports at most one transition. The
// anchor resets to now on transition, so after a long suspend the cycle
// resumes cleanly instead of replaying missed breaks.
func (c *Cycle) Tick(now time.Time) Event {
	switch c.phase {
	case PhaseActive:
		if now.Sub(c.since) >= c.activeFor {
			c.phase = PhaseBreak
			c.since = now
			return EventBreakStart
		}
	case PhaseBreak:
		if now.Sub(c.since) >= c.breakFor {
			c.phase = PhaseActive
			c.since = now
			return EventBreakEnd
		}
	}
	return EventNone
}

// Skip ends a break early and restarts the active period.
func (c *Cycle) Skip(now time.Time) {
	c.phase = PhaseActive
	c.since = now
}

// Restart resets the cycle to the start of the active period.
func (c *Cycle) Restart(now time.Time) {
	c.phase = PhaseActive
	c.since = now
}

func (c *Cycle) Phase() Phase {
	return c.phase
}

// Remaining is the time left in the current phase, floored at zero.
func (c *Cycle) Remaining(now time.Time) time.Duration {
	limit := c.activeFor
	if c.phase == PhaseBreak {
		limit = c.breakFor
	}
	left := limit - now.Sub(c.since)
	if left < 0 {
		return 0
	}
	return left
}
