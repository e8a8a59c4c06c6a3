package ui

import (
	"fmt"
	"strings"

	"github.com/nkaroui/opsdeck/internal/heartbeat"
	"github.com/nkaroui/opsdeck/internal/model"
	"github.com/nkaroui/opsdeck/internal/syncer"
	"github.com/nkaroui/opsdeck/internal/timer"
)

// renderHeader renders the status bar: clock, day phase, sync state, eye-care
// countdown, next prayer, and mode badges.
func (m Model) renderHeader(snap model.Snapshot, state heartbeat.State) string {
	styles := m.theme.Styles()
	day := snap.DayConfigFor(int(m.now.Weekday()))

	parts := []string{
		styles.AccentText.Render("OPSDECK"),
		styles.Text.Render(m.now.Format("15:04:05")),
		styles.MutedText.Render(day.Name + " " + day.Label),
		m.renderSyncBadge(snap),
	}

	if state.EyeEnabled {
		left := state.EyeRemaining
		label := fmt.Sprintf("eyes %02d:%02d", int(left.Minutes()), int(left.Seconds())%60)
		if state.EyePhase == timer.PhaseBreak {
			parts = append(parts, styles.WarningText.Render("BREAK "+label))
		} else {
			parts = append(parts, styles.MutedText.Render(label))
		}
	}

	if next, ok := state.Prayers.Next(m.now.Format("15:04")); ok {
		parts = append(parts, styles.MutedText.Render(next.Name+" "+next.Time))
	}

	if snap.Settings.PrivateMode {
		parts = append(parts, styles.WarningText.Render("PRIVATE"))
	}
	if snap.Settings.CrisisMode {
		parts = append(parts, styles.DangerText.Render("CRISIS"))
	}

	return styles.Header.Width(max(m.width, 0)).Render(strings.Join(parts, "  "))
}

func (m Model) renderSyncBadge(snap model.Snapshot) string {
	styles := m.theme.Styles()
	if !snap.Settings.HasCredentials() {
		return styles.MutedText.Render("○ offline")
	}
	if snap.Settings.PrivateMode {
		return styles.MutedText.Render("○ paused")
	}
	status, err := m.sync.Status()
	switch status {
	case syncer.StatusPending, syncer.StatusSyncing:
		return styles.WarningText.Render("◌ " + status.String())
	case syncer.StatusSuccess:
		return styles.SuccessText.Render("● " + status.String())
	case syncer.StatusError:
		msg := "error"
		if err != nil {
			msg = shorten(err.Error(), 24)
		}
		return styles.DangerText.Render("● " + msg)
	default:
		return styles.MutedText.Render("● idle")
	}
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
