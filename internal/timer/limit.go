package timer

import "time"

// Limit fires once when a continuous session exceeds a threshold. It stays
// fired until acknowledged, which restarts the session clock.
type Limit struct {
	threshold time.Duration
	start     time.Time
	fired     bool
}

func NewLimit(threshold time.Duration, now time.Time) *Limit {
	return &Limit{threshold: threshold, start: now}
}

// Tick reports true exactly once, at the tick where the session crosses the
// threshold.
func (l *Limit) Tick(now time.Time) bool {
	if l.fired {
		return false
	}
	if now.Sub(l.start) >= l.threshold {
		l.fired = true
		return true
	}
	return false
}

// Fired reports whether the limit has tripped and awaits acknowledgment.
func (l *Limit) Fired() bool {
	return l.fired
}

// Acknowledge clears the tripped state and restarts the session clock.
func (l *Limit) Acknowledge(now time.Time) {
	l.fired = false
	l.start = now
}

// Elapsed is the continuous session length so far.
func (l *Limit) Elapsed(now time.Time) time.Duration {
	return now.Sub(l.start)
}
