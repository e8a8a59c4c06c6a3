package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nkaroui/opsdeck/internal/model"
)

// startInput opens the text prompt in the given mode. While a prompt is open
// the typing flag holds off remote snapshot applies.
func (m Model) startInput(mode inputMode, prompt string) Model {
	m.mode = mode
	m.input.Placeholder = prompt
	m.input.SetValue("")
	m.input.Focus()
	m.typing.Store(true)
	return m
}

func (m Model) endInput() Model {
	m.mode = inputNone
	m.input.Blur()
	m.input.SetValue("")
	m.pendingToken = ""
	m.pendingTitle = ""
	m.typing.Store(false)
	return m
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.endInput(), nil
	case "enter":
		return m.commitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) commitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.mode {
	case inputNewTask:
		if value != "" {
			cat := model.Pillars[m.selectedCol]
			now := m.now
			m.st.Mutate(func(snap *model.Snapshot) {
				task := model.Task{
					ID:        model.NewID(now),
					Category:  cat,
					Text:      value,
					Priority:  model.PriorityMedium,
					CreatedAt: now.Format(time.RFC3339),
				}
				snap.Tasks = append([]model.Task{task}, snap.Tasks...)
			})
		}
		return m.endInput(), nil

	case inputJournal:
		if value != "" {
			now := m.now
			m.st.Mutate(func(snap *model.Snapshot) {
				snap.Journal = append(snap.Journal, model.JournalEntry{
					Time: now.Format("15:04"),
					Date: model.DateOf(now),
					Text: value,
				})
			})
		}
		return m.endInput(), nil

	case inputToken:
		if value == "" {
			return m, nil
		}
		m.pendingToken = value
		m.mode = inputBlobID
		m.input.Placeholder = "Gist id"
		m.input.SetValue("")
		return m, nil

	case inputBlobID:
		if value == "" {
			return m, nil
		}
		token := m.pendingToken
		cmd := m.connectCmd(token, value)
		m = m.endInput()
		m.status = "Validating credentials..."
		return m, cmd

	case inputAgendaTitle:
		if value == "" {
			return m, nil
		}
		m.pendingTitle = value
		m.mode = inputAgendaWhen
		m.input.Placeholder = "When (YYYY-MM-DD HH:MM)"
		m.input.SetValue("")
		return m, nil

	case inputAgendaWhen:
		when, err := time.ParseInLocation("2006-01-02 15:04", value, m.now.Location())
		if err != nil {
			m.status = "Use YYYY-MM-DD HH:MM"
			return m, nil
		}
		title := m.pendingTitle
		now := m.now
		m.st.Mutate(func(snap *model.Snapshot) {
			snap.Agenda = append(snap.Agenda, model.AgendaEvent{
				ID:             model.NewID(now),
				Title:          title,
				Date:           model.DateOf(when),
				Time:           when.Format("15:04"),
				PrivateCreated: snap.Settings.PrivateMode,
			})
		})
		return m.endInput(), nil

	case inputReviewWin:
		m.st.Mutate(func(snap *model.Snapshot) { snap.Review.Win = value })
		m.mode = inputReviewFail
		m.input.Placeholder = "What failed"
		m.input.SetValue("")
		return m, nil

	case inputReviewFail:
		m.st.Mutate(func(snap *model.Snapshot) { snap.Review.Fail = value })
		m.mode = inputReviewPriority
		m.input.Placeholder = "Next week's one priority"
		m.input.SetValue("")
		return m, nil

	case inputReviewPriority:
		m.st.Mutate(func(snap *model.Snapshot) { snap.Review.Priority = value })
		return m.endInput(), nil

	case inputImportPath:
		if value == "" {
			return m, nil
		}
		if err := m.st.Import(value); err != nil {
			m.status = "Import failed: " + err.Error()
		} else {
			m.status = "Imported " + value
		}
		return m.endInput(), nil

	case inputUserName:
		m.st.Mutate(func(snap *model.Snapshot) { snap.Settings.UserName = value })
		return m.endInput(), nil

	case inputBudget:
		budgets, err := parseBudgets(value)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		day := int(m.now.Weekday())
		m.st.Mutate(func(snap *model.Snapshot) {
			cfg := snap.DayConfigFor(day)
			// Copy before writing; the fallback config shares the default
			// budget map.
			merged := make(map[model.Category]float64, len(cfg.Budgets))
			for cat, hours := range cfg.Budgets {
				merged[cat] = hours
			}
			for cat, hours := range budgets {
				merged[cat] = hours
			}
			cfg.Budgets = merged
			if snap.WeeklyConfig == nil {
				snap.WeeklyConfig = make(map[int]model.DayConfig)
			}
			snap.WeeklyConfig[day] = cfg
		})
		return m.endInput(), nil
	}

	return m.endInput(), nil
}

// connectCmd validates credentials against the remote before storing them.
func (m Model) connectCmd(token, blobID string) tea.Cmd {
	remote := m.dial(token, blobID)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := remote.Validate(ctx); err != nil {
			return connectResultMsg{err: err}
		}
		return connectResultMsg{token: token, blobID: blobID}
	}
}
