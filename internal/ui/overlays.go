package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nkaroui/opsdeck/internal/heartbeat"
)

func (m Model) centered(content string) string {
	box := m.theme.Styles().Overlay.Render(content)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderEyeBreak(state heartbeat.State) string {
	styles := m.theme.Styles()
	left := int(state.EyeRemaining.Seconds())
	return m.centered(strings.Join([]string{
		styles.WarningText.Render("EYE BREAK"),
		"",
		fmt.Sprintf("Look 20 feet away for %d more seconds", left),
		"",
		styles.MutedText.Render("s skips the break"),
	}, "\n"))
}

func (m Model) renderBreaker(state heartbeat.State) string {
	styles := m.theme.Styles()
	h := int(state.SessionElapsed.Hours())
	min := int(state.SessionElapsed.Minutes()) % 60
	return m.centered(strings.Join([]string{
		styles.DangerText.Render("SESSION LIMIT"),
		"",
		fmt.Sprintf("%dh%02dm at the desk without a real break.", h, min),
		"Stand up, walk, drink water.",
		"",
		styles.MutedText.Render("enter acknowledges and restarts the clock"),
	}, "\n"))
}

func (m Model) renderCurfew() string {
	styles := m.theme.Styles()
	return m.centered(strings.Join([]string{
		styles.DangerText.Render("CURFEW"),
		"",
		"Shutdown time. Tomorrow is built tonight.",
		"",
		styles.MutedText.Render("o overrides for the rest of the night"),
	}, "\n"))
}

func (m Model) renderFocus(state heartbeat.State) string {
	styles := m.theme.Styles()
	f := state.Focus
	left := f.Remaining
	sign := ""
	if left < 0 {
		left = -left
		sign = "+"
	}
	clock := fmt.Sprintf("%s%02d:%02d", sign, int(left/time.Minute), int(left/time.Second)%60)
	title := styles.AccentText.Render("FOCUS")
	clockStyle := styles.Text
	if f.Overtime {
		title = styles.DangerText.Render("OVERTIME")
		clockStyle = styles.DangerText
	}
	status := ""
	if f.Paused {
		status = styles.WarningText.Render("paused")
	}
	return m.centered(strings.Join([]string{
		title,
		"",
		clockStyle.Render(clock),
		f.Label,
		status,
		"",
		styles.MutedText.Render("p pause/resume  x stop"),
	}, "\n"))
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	rows := []string{
		styles.AccentText.Render("KEYS"),
		"",
		"1-5        views (dashboard, agenda, journal, review, settings)",
		"tab        cycle views",
		"h/l        change column     j/k  move",
		"space      toggle done       n    new item",
		"s          star for today    p    cycle priority",
		"f          focus session     t    inline timer",
		"c          complete timed task",
		"D          delete            B    manual backup",
		"P/E/X      private / eye care / crisis mode",
		"C          connect sync      q    quit",
	}
	return m.centered(strings.Join(rows, "\n"))
}
