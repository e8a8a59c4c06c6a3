package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nkaroui/opsdeck/internal/model"
)

// upcomingEvents returns future agenda entries in chronological order.
// Privately created entries only show while private mode is on; that state
// travels with the event, so flipping the mode hides them again. The key
// handlers index into this same list, so what is selected is what is shown.
func upcomingEvents(events []model.AgendaEvent, now time.Time, private bool) []model.AgendaEvent {
	today := model.DateOf(now)
	clock := now.Format("15:04")
	var out []model.AgendaEvent
	for _, ev := range events {
		if ev.PrivateCreated && !private {
			continue
		}
		if ev.Date < today || (ev.Date == today && ev.Time < clock) {
			continue
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

func (m Model) renderAgenda(snap model.Snapshot) string {
	styles := m.theme.Styles()
	lines := []string{styles.AccentText.Render("AGENDA"), ""}

	events := upcomingEvents(snap.Agenda, m.now, snap.Settings.PrivateMode)
	if len(events) == 0 {
		lines = append(lines, styles.MutedText.Render("Nothing scheduled. n adds an event."))
	}
	for i, ev := range events {
		mark := "  "
		if ev.Important {
			mark = "! "
		}
		line := fmt.Sprintf("%s%s %s  %s", mark, ev.Date, ev.Time, ev.Title)
		if i == m.selectedRow {
			lines = append(lines, styles.Selected.Render(line))
		} else {
			lines = append(lines, styles.Text.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderJournal(snap model.Snapshot) string {
	styles := m.theme.Styles()
	lines := []string{styles.AccentText.Render("JOURNAL"), ""}

	entries := snap.Journal
	const show = 15
	if len(entries) > show {
		entries = entries[len(entries)-show:]
	}
	if len(entries) == 0 {
		lines = append(lines, styles.MutedText.Render("No entries yet. n writes one."))
	}
	for _, e := range entries {
		lines = append(lines,
			styles.MutedText.Render(e.Date+" "+e.Time)+" "+styles.Text.Render(e.Text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderReview(snap model.Snapshot) string {
	styles := m.theme.Styles()
	r := snap.Review
	lines := []string{
		styles.AccentText.Render("WEEKLY REVIEW"),
		"",
		styles.SuccessText.Render("Win      ") + styles.Text.Render(orDash(r.Win)),
		styles.DangerText.Render("Fail     ") + styles.Text.Render(orDash(r.Fail)),
		styles.WarningText.Render("Priority ") + styles.Text.Render(orDash(r.Priority)),
		"",
		styles.MutedText.Render("n starts a fresh review"),
		"",
		styles.AccentText.Render("RECENT DAYS"),
	}
	scores := snap.DailyScores
	const show = 7
	if len(scores) > show {
		scores = scores[len(scores)-show:]
	}
	for _, s := range scores {
		bar := strings.Repeat("█", s.Score/10)
		lines = append(lines, fmt.Sprintf("%s %3d%% %s", s.Date, s.Score, styles.SuccessText.Render(bar)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSettings(snap model.Snapshot) string {
	styles := m.theme.Styles()
	s := snap.Settings
	onOff := func(v bool) string {
		if v {
			return styles.SuccessText.Render("on")
		}
		return styles.MutedText.Render("off")
	}
	connected := styles.MutedText.Render("not connected")
	if s.HasCredentials() {
		connected = styles.SuccessText.Render("gist " + shorten(s.BlobID, 12))
	}
	lines := []string{
		styles.AccentText.Render("SETTINGS"),
		"",
		"Operator     " + styles.Text.Render(orDash(s.UserName)) + styles.MutedText.Render("  (u)"),
		"Sync         " + connected + styles.MutedText.Render("  (C to connect, A to air gap)"),
		"Private mode " + onOff(s.PrivateMode) + styles.MutedText.Render("  (P)"),
		"Eye care     " + onOff(s.EyeCare) + styles.MutedText.Render("  (E)"),
		"Crisis mode  " + onOff(s.CrisisMode) + styles.MutedText.Render("  (X)"),
		"",
		styles.MutedText.Render("B backup now   R restore latest backup"),
		styles.MutedText.Render("x export JSON  i import JSON"),
		styles.MutedText.Render("b edit today's budgets"),
		styles.MutedText.Render("U uncheck all  S clear stars"),
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
