// Package alert turns the current wall clock plus schedule data into
// notifications, at most once per day per key.
package alert

import (
	"fmt"
	"time"

	"github.com/nkaroui/opsdeck/internal/model"
	"github.com/nkaroui/opsdeck/internal/notify"
	"github.com/nkaroui/opsdeck/internal/prayer"
)

// Alert is one notification ready for delivery.
type Alert struct {
	Key   string
	Title string
	Body  string
	Cue   notify.Cue
}

// Dedupe remembers which alert keys already fired today. The set resets when
// the day changes.
type Dedupe struct {
	day  string
	seen map[string]struct{}
}

func NewDedupe() *Dedupe {
	return &Dedupe{seen: make(map[string]struct{})}
}

// Once reports whether key fires for the first time on the given day.
func (d *Dedupe) Once(day, key string) bool {
	if d.day != day {
		d.day = day
		d.seen = make(map[string]struct{})
	}
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Reset clears the fired set, regardless of day.
func (d *Dedupe) Reset() {
	d.day = ""
	d.seen = make(map[string]struct{})
}

// clockOf is the "HH:MM" wall clock value used to match schedule entries.
// Matching on minute equality means an alert fires on the first tick inside
// its minute and the dedupe set absorbs the rest.
func clockOf(t time.Time) string {
	return t.Format("15:04")
}

// minusMinutes shifts an "HH:MM" value back, wrapping past midnight.
func minusMinutes(clock string, m int) string {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return ""
	}
	return t.Add(-time.Duration(m) * time.Minute).Format("15:04")
}

// CheckPrayers emits the five-minute warning and the at-time call for each
// prayer whose moment matches now.
func CheckPrayers(now time.Time, times prayer.Times, d *Dedupe) []Alert {
	day := model.DateOf(now)
	clock := clockOf(now)
	var out []Alert
	for _, e := range times.List() {
		if clock == minusMinutes(e.Time, 5) {
			key := "prayer-pre-" + e.Name
			if d.Once(day, key) {
				out = append(out, Alert{
					Key:   key,
					Title: e.Name + " in 5 minutes",
					Body:  fmt.Sprintf("%s at %s", e.Name, e.Time),
					Cue:   notify.CueChime,
				})
			}
		}
		if clock == e.Time {
			key := "prayer-at-" + e.Name
			if d.Once(day, key) {
				out = append(out, Alert{
					Key:   key,
					Title: "Time for " + e.Name,
					Body:  fmt.Sprintf("%s (%s)", e.Name, e.Time),
					Cue:   notify.CueAlarm,
				})
			}
		}
	}
	return out
}

// CheckAgenda emits reminders for scheduled events: two days and one day
// ahead at 09:00, thirty minutes ahead, and at the event time.
func CheckAgenda(now time.Time, events []model.AgendaEvent, d *Dedupe) []Alert {
	day := model.DateOf(now)
	clock := clockOf(now)
	var out []Alert

	emit := func(key, title, body string, cue notify.Cue) {
		if d.Once(day, key) {
			out = append(out, Alert{Key: key, Title: title, Body: body, Cue: cue})
		}
	}

	for _, ev := range events {
		if ev.Date == "" || ev.Time == "" {
			continue
		}
		when := ev.Date + " " + ev.Time

		if clock == "09:00" {
			if model.DateOf(now.AddDate(0, 0, 2)) == ev.Date {
				emit(fmt.Sprintf("agenda-2d-%d", ev.ID), "In 2 days: "+ev.Title, when, notify.CueChime)
			}
			if model.DateOf(now.AddDate(0, 0, 1)) == ev.Date {
				emit(fmt.Sprintf("agenda-1d-%d", ev.ID), "Tomorrow: "+ev.Title, when, notify.CueChime)
			}
		}
		if ev.Date == day {
			// Events within thirty minutes of midnight get no half-hour
			// reminder: the shifted clock lands on the previous evening.
			if pre := minusMinutes(ev.Time, 30); pre <= ev.Time && clock == pre {
				emit(fmt.Sprintf("agenda-30m-%d", ev.ID), "In 30 minutes: "+ev.Title, when, notify.CueChime)
			}
			if clock == ev.Time {
				emit(fmt.Sprintf("agenda-now-%d", ev.ID), "Now: "+ev.Title, when, notify.CueAlarm)
			}
		}
	}
	return out
}
