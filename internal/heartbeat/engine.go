// Package heartbeat runs the once-a-second pulse behind the dashboard. Every
// tick reads the live snapshot and drives the eye-care cycle, the session
// circuit breaker, the curfew, prayer and agenda reminders, and the task
// timers. All decisions use the tick's timestamp, so a machine suspend or a
// throttled scheduler shifts nothing but the delivery moment.
package heartbeat

import (
	"fmt"
	"sync"
	"time"

	"github.com/nkaroui/opsdeck/internal/alert"
	"github.com/nkaroui/opsdeck/internal/model"
	"github.com/nkaroui/opsdeck/internal/notify"
	"github.com/nkaroui/opsdeck/internal/prayer"
	"github.com/nkaroui/opsdeck/internal/store"
	"github.com/nkaroui/opsdeck/internal/timer"
)

const (
	eyeActivePeriod = 1200 * time.Second
	eyeBreakPeriod  = 20 * time.Second
	sessionLimit    = 5400 * time.Second

	focusRepeat  = 10 * time.Minute
	inlineRepeat = 5 * time.Minute

	curfewStart = "22:45"
	curfewEnd   = "05:00"
)

// State is a read-only view of the engine for rendering.
type State struct {
	EyePhase     timer.Phase
	EyeRemaining time.Duration
	EyeEnabled   bool

	BreakerFired   bool
	SessionElapsed time.Duration

	CurfewActive bool

	Focus   *FocusState
	Prayers prayer.Times
}

// FocusState describes the running focus session, if any.
type FocusState struct {
	TaskID    int64
	Label     string
	Paused    bool
	Remaining time.Duration
	Overtime  bool
}

// Engine holds all tick-driven trackers.
type Engine struct {
	mu       sync.Mutex
	st       *store.Store
	notifier notify.Notifier

	eye        *timer.Cycle
	eyeWasOn   bool
	breaker    *timer.Limit
	focus      *timer.TaskTimer
	inline     map[int64]*timer.TaskTimer
	dedupe     *alert.Dedupe
	prayers    prayer.Times
	day        string
	curfewSkip bool

	onDayChange func(time.Time)
}

func New(st *store.Store, notifier notify.Notifier, now time.Time) *Engine {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Engine{
		st:       st,
		notifier: notifier,
		eye:      timer.NewCycle(eyeActivePeriod, eyeBreakPeriod, now),
		eyeWasOn: true,
		breaker:  timer.NewLimit(sessionLimit, now),
		inline:   make(map[int64]*timer.TaskTimer),
		dedupe:   alert.NewDedupe(),
		day:      model.DateOf(now),
	}
}

// OnDayChange registers a callback run when the tick crosses midnight, after
// the previous day's score is recorded. Used to refresh prayer times.
func (e *Engine) OnDayChange(fn func(time.Time)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onDayChange = fn
}

// SetPrayerTimes installs the day's prayer schedule.
func (e *Engine) SetPrayerTimes(t prayer.Times) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prayers = t
}

// Run ticks the engine once a second until ctx is done.
func (e *Engine) Run(done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			e.Tick(now)
		}
	}
}

// Tick advances every tracker to now.
func (e *Engine) Tick(now time.Time) {
	snap := e.st.Snapshot()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.rolloverLocked(now, snap)
	e.tickEyeLocked(now, snap.Settings)
	e.tickBreakerLocked(now)
	e.tickCurfewLocked(now, snap.Settings)

	// Prayer calls stay muted while private mode is on.
	if !snap.Settings.PrivateMode {
		for _, a := range alert.CheckPrayers(now, e.prayers, e.dedupe) {
			e.notifier.Notify(a.Title, a.Body, a.Cue)
		}
	}
	for _, a := range alert.CheckAgenda(now, snap.Agenda, e.dedupe) {
		e.notifier.Notify(a.Title, a.Body, a.Cue)
	}

	e.tickTimersLocked(now)
}

// rolloverLocked records yesterday's score and resets the day-scoped state
// when the tick crosses midnight.
func (e *Engine) rolloverLocked(now time.Time, snap model.Snapshot) {
	day := model.DateOf(now)
	if day == e.day {
		return
	}
	prev := e.day
	e.day = day
	e.dedupe.Reset()
	e.curfewSkip = false

	score := model.DailyScore(snap.Tasks, prev)
	e.st.Mutate(func(s *model.Snapshot) {
		for i := range s.DailyScores {
			if s.DailyScores[i].Date == prev {
				s.DailyScores[i].Score = score
				return
			}
		}
		s.DailyScores = append(s.DailyScores, model.DayScore{Date: prev, Score: score})
	})

	if e.onDayChange != nil {
		go e.onDayChange(now)
	}
}

func (e *Engine) tickEyeLocked(now time.Time, s model.Settings) {
	if !s.EyeCare {
		e.eyeWasOn = false
		return
	}
	if !e.eyeWasOn {
		// Re-enabled: start a fresh active period.
		e.eye.Restart(now)
		e.eyeWasOn = true
	}
	switch e.eye.Tick(now) {
	case timer.EventBreakStart:
		e.notifier.Notify("Eye break", "Look 20 feet away for 20 seconds", notify.CueChime)
	case timer.EventBreakEnd:
		e.notifier.Notify("Back to work", "Eye break over", notify.CueNone)
	}
}

func (e *Engine) tickBreakerLocked(now time.Time) {
	if e.breaker.Tick(now) {
		e.notifier.Notify("Session limit", "90 minutes without a real break. Stand up.", notify.CueAlarm)
	}
}

func (e *Engine) tickCurfewLocked(now time.Time, s model.Settings) {
	if !curfewWindow(now) || e.curfewSkip || s.CrisisMode {
		return
	}
	if e.dedupe.Once(e.day, "curfew") {
		e.notifier.Notify("Curfew", "Shutdown time. Tomorrow is built tonight.", notify.CueAlarm)
	}
}

func (e *Engine) tickTimersLocked(now time.Time) {
	if e.focus != nil {
		switch e.focus.Tick(now) {
		case timer.TaskEventTarget:
			e.notifier.Notify("Focus block done", e.focus.Label(), notify.CueAlarm)
		case timer.TaskEventOvertime:
			e.notifier.Notify("Still on it", fmt.Sprintf("%s is past its block", e.focus.Label()), notify.CueChime)
		}
	}
	for _, t := range e.inline {
		switch t.Tick(now) {
		case timer.TaskEventTarget:
			e.notifier.Notify("Task time up", t.Label(), notify.CueAlarm)
		case timer.TaskEventOvertime:
			e.notifier.Notify("Task overrunning", t.Label(), notify.CueChime)
		}
	}
}

// curfewWindow reports whether the clock is inside the nightly shutdown
// window, which spans midnight.
func curfewWindow(now time.Time) bool {
	clock := now.Format("15:04")
	return clock >= curfewStart || clock < curfewEnd
}

// State renders the engine for the UI.
func (e *Engine) State(now time.Time) State {
	snap := e.st.Snapshot()
	e.mu.Lock()
	defer e.mu.Unlock()

	st := State{
		EyePhase:       e.eye.Phase(),
		EyeRemaining:   e.eye.Remaining(now),
		EyeEnabled:     snap.Settings.EyeCare,
		BreakerFired:   e.breaker.Fired(),
		SessionElapsed: e.breaker.Elapsed(now),
		CurfewActive:   curfewWindow(now) && !e.curfewSkip && !snap.Settings.CrisisMode,
		Prayers:        e.prayers,
	}
	if e.focus != nil {
		st.Focus = &FocusState{
			TaskID:    e.focus.TaskID(),
			Label:     e.focus.Label(),
			Paused:    e.focus.Paused(),
			Remaining: e.focus.Remaining(now),
			Overtime:  e.focus.Overtime(now),
		}
	}
	return st
}

// SkipEyeBreak ends the current eye break early.
func (e *Engine) SkipEyeBreak(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eye.Skip(now)
}

// AcknowledgeBreaker dismisses the session-limit block and restarts the
// session clock.
func (e *Engine) AcknowledgeBreaker(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.breaker.Acknowledge(now)
}

// OverrideCurfew silences the curfew for the rest of the day.
func (e *Engine) OverrideCurfew() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.curfewSkip = true
}

// StartFocus begins a full-screen focus session on a task, replacing any
// session in progress.
func (e *Engine) StartFocus(taskID int64, label string, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.focus = timer.StartTask(taskID, label, focusRepeat, now)
}

// PauseFocus toggles the focus session between paused and running.
func (e *Engine) PauseFocus(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.focus == nil {
		return
	}
	if e.focus.Paused() {
		e.focus.Resume(now)
	} else {
		e.focus.Pause(now)
	}
}

// StopFocus ends the focus session.
func (e *Engine) StopFocus() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.focus = nil
}

// ToggleInline starts an inline timer on a task, or stops the one already
// running on it.
func (e *Engine) ToggleInline(taskID int64, label string, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.inline[taskID]; ok {
		delete(e.inline, taskID)
		return
	}
	e.inline[taskID] = timer.StartTask(taskID, label, inlineRepeat, now)
}

// StopInline clears the inline timer on a task, if one runs. Used when the
// task is completed rather than toggled.
func (e *Engine) StopInline(taskID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inline, taskID)
}

// InlineRemaining reports the inline timer countdown for a task, if one runs.
func (e *Engine) InlineRemaining(taskID int64, now time.Time) (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.inline[taskID]
	if !ok {
		return 0, false
	}
	return t.Remaining(now), true
}
