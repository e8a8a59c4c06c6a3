package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nkaroui/opsdeck/internal/model"
)

// renderDashboard draws the four pillar columns with their budget headers.
func (m Model) renderDashboard(snap model.Snapshot) string {
	cols := make([]string, 0, len(model.Pillars))
	colWidth := 28
	if m.width > 0 {
		if w := m.width/len(model.Pillars) - 4; w > 20 {
			colWidth = w
		}
	}
	for i := range model.Pillars {
		cols = append(cols, m.renderColumn(snap, i, colWidth))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return board + "\n" + m.renderScoreLine(snap)
}

func (m Model) renderColumn(snap model.Snapshot, col, width int) string {
	styles := m.theme.Styles()
	cat := model.Pillars[col]
	day := snap.DayConfigFor(int(m.now.Weekday()))
	today := model.DateOf(m.now)

	consumed := model.ConsumedBudget(snap.Tasks, cat, today)
	budget := day.Budgets[cat]
	title := fmt.Sprintf("%s %.1f/%.1fh", strings.ToUpper(snap.Settings.Label(string(cat))), consumed, budget)
	titleStyle := styles.AccentText
	if budget > 0 && consumed >= budget {
		titleStyle = styles.DangerText
	}

	lines := []string{titleStyle.Render(title), ""}
	tasks := tasksInColumn(snap, col)
	if len(tasks) == 0 {
		lines = append(lines, styles.MutedText.Render("empty"))
	}
	for row, t := range tasks {
		lines = append(lines, m.renderTaskLine(snap, t, col == m.selectedCol && row == m.selectedRow, width))
	}

	style := styles.Column
	if col == m.selectedCol {
		style = styles.ColumnFocus
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderTaskLine(snap model.Snapshot, t model.Task, selected bool, width int) string {
	styles := m.theme.Styles()

	mark := "[ ]"
	if t.Done {
		mark = "[x]"
	}
	var badges []string
	if t.TodayStar {
		badges = append(badges, "★")
	}
	if t.Priority == model.PriorityHigh {
		badges = append(badges, "!")
	}
	if t.RecurrenceDays > 0 {
		streak := model.StreakCount(t, snap.Tasks)
		badges = append(badges, fmt.Sprintf("↻%d", streak))
	}
	if left, ok := m.engine.InlineRemaining(t.ID, m.now); ok {
		badges = append(badges, fmt.Sprintf("%02d:%02d", int(left.Minutes()), int(left.Seconds())%60))
	}

	line := mark + " " + t.Text
	if len(badges) > 0 {
		line += " " + strings.Join(badges, " ")
	}
	line = shorten(line, width)

	switch {
	case selected:
		return styles.Selected.Render(line)
	case t.Done:
		return styles.MutedText.Strikethrough(true).Render(line)
	case t.Priority == model.PriorityHigh:
		return styles.WarningText.Render(line)
	default:
		return styles.Text.Render(line)
	}
}

func (m Model) renderScoreLine(snap model.Snapshot) string {
	styles := m.theme.Styles()
	today := model.DateOf(m.now)
	score := model.DailyScore(snap.Tasks, today)
	deep := model.DeepWorkCount(snap.Tasks, today)
	line := fmt.Sprintf("score %d%%  deep work %d  mrr %s  users %s",
		score, deep, snap.Metrics.MRR, snap.Metrics.Users)
	if m.status != "" {
		line += "  " + m.status
	}
	return styles.MutedText.Render(line)
}
