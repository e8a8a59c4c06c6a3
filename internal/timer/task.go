package timer

import (
	"time"

	"github.com/nkaroui/opsdeck/internal/model"
)

// TaskEvent reports a task timer milestone observed by Tick.
type TaskEvent int

const (
	TaskEventNone TaskEvent = iota
	TaskEventTarget
	TaskEventOvertime
)

const defaultTargetMinutes = 25

// TaskTimer tracks time spent on one task against a target derived from the
// task label's "(N)" minute annotation, defaulting to a 25-minute block.
// Past the target it keeps running and nags on a repeat interval.
type TaskTimer struct {
	taskID int64
	label  string
	target time.Duration
	repeat time.Duration

	start  time.Time // virtual start, shifted on resume
	paused bool
	frozen time.Duration // elapsed at pause

	targetFired bool
	nextRepeat  time.Duration
}

// StartTask begins timing a task. repeat is the overtime nag interval.
func StartTask(id int64, label string, repeat time.Duration, now time.Time) *TaskTimer {
	minutes := defaultTargetMinutes
	if n, ok := model.TaskMinutes(label); ok {
		minutes = n
	}
	return &TaskTimer{
		taskID: id,
		label:  label,
		target: time.Duration(minutes) * time.Minute,
		repeat: repeat,
		start:  now,
	}
}

func (t *TaskTimer) TaskID() int64 { return t.taskID }
func (t *TaskTimer) Label() string { return t.label }
func (t *TaskTimer) Paused() bool  { return t.paused }

// Elapsed is the accumulated running time.
func (t *TaskTimer) Elapsed(now time.Time) time.Duration {
	if t.paused {
		return t.frozen
	}
	return now.Sub(t.start)
}

// Remaining is the time left to the target, negative once in overtime.
func (t *TaskTimer) Remaining(now time.Time) time.Duration {
	return t.target - t.Elapsed(now)
}

// Overtime reports whether the target has been passed.
func (t *TaskTimer) Overtime(now time.Time) bool {
	return t.Elapsed(now) >= t.target
}

// Pause freezes the elapsed time.
func (t *TaskTimer) Pause(now time.Time) {
	if t.paused {
		return
	}
	t.frozen = now.Sub(t.start)
	t.paused = true
}

// Resume shifts the virtual start so elapsed time continues from where the
// pause left it.
func (t *TaskTimer) Resume(now time.Time) {
	if !t.paused {
		return
	}
	t.start = now.Add(-t.frozen)
	t.paused = false
}

// Tick reports the target crossing once, then an overtime nag each time the
// elapsed time passes the next repeat threshold. The threshold advances past
// the current elapsed time, so a long gap between ticks produces one nag,
// not a backlog.
func (t *TaskTimer) Tick(now time.Time) TaskEvent {
	if t.paused {
		return TaskEventNone
	}
	elapsed := t.Elapsed(now)
	if elapsed < t.target {
		return TaskEventNone
	}
	if !t.targetFired {
		t.targetFired = true
		t.nextRepeat = t.target + t.repeat
		return TaskEventTarget
	}
	if elapsed >= t.nextRepeat {
		for t.nextRepeat <= elapsed {
			t.nextRepeat += t.repeat
		}
		return TaskEventOvertime
	}
	return TaskEventNone
}
