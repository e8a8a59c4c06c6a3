package heartbeat

import (
	"sync"
	"testing"
	"time"

	"github.com/nkaroui/opsdeck/internal/model"
	"github.com/nkaroui/opsdeck/internal/notify"
	"github.com/nkaroui/opsdeck/internal/prayer"
	"github.com/nkaroui/opsdeck/internal/store"
	"github.com/nkaroui/opsdeck/internal/timer"
)

type recorder struct {
	mu     sync.Mutex
	titles []string
}

func (r *recorder) Notify(title, _ string, _ notify.Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, title)
}

func (r *recorder) count(title string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.titles {
		if t == title {
			n++
		}
	}
	return n
}

func newTestEngine(t *testing.T, start time.Time) (*Engine, *store.Store, *recorder) {
	t.Helper()
	st, err := store.Open(t.TempDir(), func() time.Time { return start })
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	return New(st, rec, start), st, rec
}

func TestMidnightRolloverRecordsScore(t *testing.T) {
	start := time.Date(2024, 1, 5, 23, 0, 0, 0, time.UTC)
	e, st, _ := newTestEngine(t, start)

	st.Mutate(func(snap *model.Snapshot) {
		snap.Tasks = []model.Task{
			{ID: 1, TodayStar: true, Done: true, CompletedAt: "2024-01-05T20:00:00Z"},
			{ID: 2, TodayStar: true},
		}
	})

	e.Tick(start)
	if got := len(st.Snapshot().DailyScores); got != 0 {
		t.Fatalf("scores recorded before midnight: %d", got)
	}

	e.Tick(time.Date(2024, 1, 6, 0, 0, 1, 0, time.UTC))
	scores := st.Snapshot().DailyScores
	if len(scores) != 1 {
		t.Fatalf("len(scores) = %d, want 1", len(scores))
	}
	if scores[0].Date != "2024-01-05" || scores[0].Score != 50 {
		t.Fatalf("score = %+v, want 2024-01-05 at 50", scores[0])
	}

	// Further ticks on the new day do not re-record.
	e.Tick(time.Date(2024, 1, 6, 0, 0, 2, 0, time.UTC))
	if got := len(st.Snapshot().DailyScores); got != 1 {
		t.Fatalf("rollover ran twice: %d scores", got)
	}
}

func TestCurfewFiresOncePerNight(t *testing.T) {
	start := time.Date(2024, 1, 5, 22, 0, 0, 0, time.UTC)
	e, _, rec := newTestEngine(t, start)

	e.Tick(time.Date(2024, 1, 5, 22, 44, 0, 0, time.UTC))
	if rec.count("Curfew") != 0 {
		t.Fatal("curfew fired before the window")
	}
	e.Tick(time.Date(2024, 1, 5, 22, 45, 0, 0, time.UTC))
	e.Tick(time.Date(2024, 1, 5, 23, 30, 0, 0, time.UTC))
	if got := rec.count("Curfew"); got != 1 {
		t.Fatalf("curfew fired %d times, want 1", got)
	}
	if !e.State(time.Date(2024, 1, 5, 23, 30, 0, 0, time.UTC)).CurfewActive {
		t.Fatal("CurfewActive false inside the window")
	}

	e.OverrideCurfew()
	if e.State(time.Date(2024, 1, 5, 23, 45, 0, 0, time.UTC)).CurfewActive {
		t.Fatal("CurfewActive true after override")
	}
}

func TestCurfewSuppressedInCrisisMode(t *testing.T) {
	start := time.Date(2024, 1, 5, 22, 0, 0, 0, time.UTC)
	e, st, rec := newTestEngine(t, start)
	st.Mutate(func(snap *model.Snapshot) { snap.Settings.CrisisMode = true })

	e.Tick(time.Date(2024, 1, 5, 23, 0, 0, 0, time.UTC))
	if rec.count("Curfew") != 0 {
		t.Fatal("curfew fired in crisis mode")
	}
}

func TestEyeCycleNotifies(t *testing.T) {
	start := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	e, _, rec := newTestEngine(t, start)

	breakAt := start.Add(1200 * time.Second)
	e.Tick(breakAt)
	if rec.count("Eye break") != 1 {
		t.Fatal("eye break not announced")
	}
	if e.State(breakAt).EyePhase != timer.PhaseBreak {
		t.Fatal("not in break phase")
	}
	e.Tick(breakAt.Add(20 * time.Second))
	if rec.count("Back to work") != 1 {
		t.Fatal("break end not announced")
	}
}

func TestEyeCycleDisabledBySetting(t *testing.T) {
	start := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	e, st, rec := newTestEngine(t, start)
	st.Mutate(func(snap *model.Snapshot) { snap.Settings.EyeCare = false })

	e.Tick(start.Add(1200 * time.Second))
	if rec.count("Eye break") != 0 {
		t.Fatal("eye break fired while disabled")
	}

	// Re-enabling restarts the active period instead of firing immediately.
	st.Mutate(func(snap *model.Snapshot) { snap.Settings.EyeCare = true })
	resume := start.Add(1300 * time.Second)
	e.Tick(resume)
	if rec.count("Eye break") != 0 {
		t.Fatal("eye break fired right after re-enable")
	}
	e.Tick(resume.Add(1200 * time.Second))
	if rec.count("Eye break") != 1 {
		t.Fatal("eye break missing after a fresh active period")
	}
}

func TestBreakerBlocksUntilAcknowledged(t *testing.T) {
	start := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	e, _, rec := newTestEngine(t, start)

	tripAt := start.Add(5400 * time.Second)
	e.Tick(tripAt)
	if rec.count("Session limit") != 1 {
		t.Fatal("breaker did not trip")
	}
	if !e.State(tripAt).BreakerFired {
		t.Fatal("BreakerFired false after trip")
	}
	e.Tick(tripAt.Add(time.Minute))
	if rec.count("Session limit") != 1 {
		t.Fatal("breaker re-fired before acknowledgment")
	}

	e.AcknowledgeBreaker(tripAt.Add(2 * time.Minute))
	if e.State(tripAt.Add(3 * time.Minute)).BreakerFired {
		t.Fatal("BreakerFired true after acknowledgment")
	}
}

func TestPrayerNotificationDelivery(t *testing.T) {
	start := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	e, _, rec := newTestEngine(t, start)
	e.SetPrayerTimes(prayer.Times{Dhuhr: "13:00"})

	e.Tick(time.Date(2024, 1, 5, 12, 55, 0, 0, time.UTC))
	if rec.count("Dhuhr in 5 minutes") != 1 {
		t.Fatal("missing five-minute warning")
	}
	e.Tick(time.Date(2024, 1, 5, 13, 0, 0, 0, time.UTC))
	if rec.count("Time for Dhuhr") != 1 {
		t.Fatal("missing at-time call")
	}
}

func TestPrayerAlertsMutedInPrivateMode(t *testing.T) {
	start := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	e, st, rec := newTestEngine(t, start)
	e.SetPrayerTimes(prayer.Times{Dhuhr: "13:00"})
	st.Mutate(func(snap *model.Snapshot) { snap.Settings.PrivateMode = true })

	e.Tick(time.Date(2024, 1, 5, 12, 55, 0, 0, time.UTC))
	e.Tick(time.Date(2024, 1, 5, 13, 0, 0, 0, time.UTC))
	if rec.count("Dhuhr in 5 minutes") != 0 || rec.count("Time for Dhuhr") != 0 {
		t.Fatal("prayer alerts fired in private mode")
	}

	// Turning private mode off lets the call through again.
	st.Mutate(func(snap *model.Snapshot) { snap.Settings.PrivateMode = false })
	e.Tick(time.Date(2024, 1, 5, 13, 0, 30, 0, time.UTC))
	if rec.count("Time for Dhuhr") != 1 {
		t.Fatal("at-time call missing after private mode off")
	}
}

func TestFocusSession(t *testing.T) {
	start := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	e, _, rec := newTestEngine(t, start)

	e.StartFocus(1, "Write draft (30)", start)
	st := e.State(start)
	if st.Focus == nil || st.Focus.Remaining != 30*time.Minute {
		t.Fatalf("focus state = %+v", st.Focus)
	}

	e.Tick(start.Add(30 * time.Minute))
	if rec.count("Focus block done") != 1 {
		t.Fatal("target notification missing")
	}
	e.Tick(start.Add(40 * time.Minute))
	if rec.count("Still on it") != 1 {
		t.Fatal("overtime nag missing")
	}

	e.StopFocus()
	if e.State(start).Focus != nil {
		t.Fatal("focus state survives StopFocus")
	}
}

func TestInlineTimerToggle(t *testing.T) {
	start := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	e, _, _ := newTestEngine(t, start)

	e.ToggleInline(7, "Quick fix (10)", start)
	if left, ok := e.InlineRemaining(7, start.Add(4*time.Minute)); !ok || left != 6*time.Minute {
		t.Fatalf("remaining = %v, %v", left, ok)
	}
	e.ToggleInline(7, "Quick fix (10)", start)
	if _, ok := e.InlineRemaining(7, start); ok {
		t.Fatal("timer still running after toggle off")
	}

	e.ToggleInline(7, "Quick fix (10)", start)
	e.StopInline(7)
	if _, ok := e.InlineRemaining(7, start); ok {
		t.Fatal("timer still running after stop")
	}
}
