// Package ui provides the Bubble Tea terminal dashboard.
package ui

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nkaroui/opsdeck/internal/heartbeat"
	"github.com/nkaroui/opsdeck/internal/model"
	"github.com/nkaroui/opsdeck/internal/store"
	"github.com/nkaroui/opsdeck/internal/syncer"
	"github.com/nkaroui/opsdeck/internal/timer"
)

// View represents the current active view.
type View int

const (
	ViewDashboard View = iota
	ViewAgenda
	ViewJournal
	ViewReview
	ViewSettings
	viewCount
)

// inputMode identifies the active text prompt, if any.
type inputMode int

const (
	inputNone inputMode = iota
	inputNewTask
	inputJournal
	inputToken
	inputBlobID
	inputAgendaTitle
	inputAgendaWhen
	inputReviewWin
	inputReviewFail
	inputReviewPriority
	inputImportPath
	inputUserName
	inputBudget
)

// Options configures the UI.
type Options struct {
	Store  *store.Store
	Sync   *syncer.Engine
	Engine *heartbeat.Engine
	Dial   syncer.DialFunc
	Theme  string
	Typing *atomic.Bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	st     *store.Store
	sync   *syncer.Engine
	engine *heartbeat.Engine
	dial   syncer.DialFunc
	typing *atomic.Bool

	theme Theme
	keys  keyMap

	currentView View
	width       int
	height      int
	now         time.Time

	selectedCol int
	selectedRow int

	mode         inputMode
	input        textinput.Model
	pendingToken string
	pendingTitle string

	showHelp     bool
	focusOverlay bool
	status       string
}

type tickMsg time.Time

type connectResultMsg struct {
	token  string
	blobID string
	err    error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	input := textinput.New()
	input.CharLimit = 200
	typing := opts.Typing
	if typing == nil {
		typing = &atomic.Bool{}
	}
	return Model{
		st:     opts.Store,
		sync:   opts.Sync,
		engine: opts.Engine,
		dial:   opts.Dial,
		typing: typing,
		theme:  ThemeByName(opts.Theme),
		keys:   DefaultKeyMap(),
		now:    time.Now(),
		input:  input,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()

	case tea.FocusMsg:
		m.sync.SetSuspended(false)
		return m, nil

	case tea.BlurMsg:
		m.sync.SetSuspended(true)
		return m, nil

	case connectResultMsg:
		if msg.err != nil {
			m.status = "Connect failed: " + msg.err.Error()
			return m, nil
		}
		m.st.Mutate(func(snap *model.Snapshot) {
			snap.Settings.Token = msg.token
			snap.Settings.BlobID = msg.blobID
		})
		m.status = "Sync connected"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && m.mode == inputNone {
		return m, tea.Quit
	}

	if m.mode != inputNone {
		return m.handleInput(msg)
	}

	state := m.engine.State(m.now)

	// Blocking overlays come before everything else.
	if state.BreakerFired {
		if key.Matches(msg, m.keys.Confirm) {
			m.engine.AcknowledgeBreaker(m.now)
		}
		return m, nil
	}
	if state.EyeEnabled && state.EyePhase == timer.PhaseBreak {
		if msg.String() == "s" {
			m.engine.SkipEyeBreak(m.now)
		}
		return m, nil
	}
	if state.CurfewActive {
		if msg.String() == "o" {
			m.engine.OverrideCurfew()
		}
		return m, nil
	}
	if m.focusOverlay && state.Focus != nil {
		switch msg.String() {
		case "p":
			m.engine.PauseFocus(m.now)
		case "x", "esc":
			m.engine.StopFocus()
			m.focusOverlay = false
		}
		return m, nil
	}
	m.focusOverlay = m.focusOverlay && state.Focus != nil

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.showHelp = false
		m.currentView = ViewDashboard
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.currentView = (m.currentView + 1) % viewCount
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.currentView = (m.currentView + viewCount - 1) % viewCount
		return m, nil
	case key.Matches(msg, m.keys.ViewDashboard):
		m.currentView = ViewDashboard
		return m, nil
	case key.Matches(msg, m.keys.ViewAgenda):
		m.currentView = ViewAgenda
		return m, nil
	case key.Matches(msg, m.keys.ViewJournal):
		m.currentView = ViewJournal
		return m, nil
	case key.Matches(msg, m.keys.ViewReview):
		m.currentView = ViewReview
		return m, nil
	case key.Matches(msg, m.keys.ViewSettings):
		m.currentView = ViewSettings
		return m, nil

	case key.Matches(msg, m.keys.Private):
		m.st.Mutate(func(snap *model.Snapshot) {
			snap.Settings.PrivateMode = !snap.Settings.PrivateMode
		})
		return m, nil
	case key.Matches(msg, m.keys.EyeCare):
		m.st.Mutate(func(snap *model.Snapshot) {
			snap.Settings.EyeCare = !snap.Settings.EyeCare
		})
		return m, nil
	case key.Matches(msg, m.keys.Crisis):
		m.st.Mutate(func(snap *model.Snapshot) {
			snap.Settings.CrisisMode = !snap.Settings.CrisisMode
		})
		return m, nil

	case key.Matches(msg, m.keys.Backup):
		if saved, err := m.st.SaveBackup(false); err != nil {
			m.status = "Backup failed: " + err.Error()
		} else if saved {
			m.status = "Backup saved"
		}
		return m, nil
	case key.Matches(msg, m.keys.Connect):
		return m.startInput(inputToken, "GitHub token"), nil
	}

	switch m.currentView {
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewAgenda:
		return m.handleAgendaKey(msg)
	case ViewJournal:
		if key.Matches(msg, m.keys.NewTask) {
			return m.startInput(inputJournal, "Journal entry"), nil
		}
	case ViewReview:
		if key.Matches(msg, m.keys.NewTask) {
			return m.startInput(inputReviewWin, "This week's win"), nil
		}
	case ViewSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.st.Snapshot()
	tasks := tasksInColumn(snap, m.selectedCol)

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.selectedCol > 0 {
			m.selectedCol--
			m.selectedRow = 0
		}
	case key.Matches(msg, m.keys.Right):
		if m.selectedCol < len(model.Pillars)-1 {
			m.selectedCol++
			m.selectedRow = 0
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(tasks)-1 {
			m.selectedRow++
		}

	case key.Matches(msg, m.keys.NewTask):
		return m.startInput(inputNewTask, "New task"), nil

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := selected(tasks, m.selectedRow); ok {
			m.st.Mutate(func(snap *model.Snapshot) {
				snap.Tasks = model.ToggleDone(snap.Tasks, t.ID, m.now)
			})
		}
	case key.Matches(msg, m.keys.Star):
		if t, ok := selected(tasks, m.selectedRow); ok {
			m.mutateTask(t.ID, func(task *model.Task) {
				task.TodayStar = !task.TodayStar
			})
		}
	case key.Matches(msg, m.keys.Priority):
		if t, ok := selected(tasks, m.selectedRow); ok {
			m.mutateTask(t.ID, func(task *model.Task) {
				task.Priority = nextPriority(task.Priority)
			})
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := selected(tasks, m.selectedRow); ok {
			m.st.Mutate(func(snap *model.Snapshot) {
				kept := snap.Tasks[:0]
				for _, task := range snap.Tasks {
					if task.ID != t.ID {
						kept = append(kept, task)
					}
				}
				snap.Tasks = kept
			})
			if m.selectedRow > 0 {
				m.selectedRow--
			}
		}
	case key.Matches(msg, m.keys.Focus):
		if t, ok := selected(tasks, m.selectedRow); ok {
			m.engine.StartFocus(t.ID, t.Text, m.now)
			m.focusOverlay = true
		}
	case key.Matches(msg, m.keys.Timer):
		if t, ok := selected(tasks, m.selectedRow); ok {
			m.engine.ToggleInline(t.ID, t.Text, m.now)
		}
	case key.Matches(msg, m.keys.Complete):
		if t, ok := selected(tasks, m.selectedRow); ok {
			if _, running := m.engine.InlineRemaining(t.ID, m.now); running {
				m.engine.StopInline(t.ID)
				if !t.Done {
					m.st.Mutate(func(snap *model.Snapshot) {
						snap.Tasks = model.ToggleDone(snap.Tasks, t.ID, m.now)
					})
				}
			}
		}
	}
	return m, nil
}

func (m Model) handleAgendaKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.NewTask) {
		return m.startInput(inputAgendaTitle, "Event title"), nil
	}
	if key.Matches(msg, m.keys.Delete) {
		snap := m.st.Snapshot()
		events := upcomingEvents(snap.Agenda, m.now, snap.Settings.PrivateMode)
		if m.selectedRow < len(events) {
			id := events[m.selectedRow].ID
			m.st.Mutate(func(snap *model.Snapshot) {
				kept := snap.Agenda[:0]
				for _, ev := range snap.Agenda {
					if ev.ID != id {
						kept = append(kept, ev)
					}
				}
				snap.Agenda = kept
			})
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Down):
		snap := m.st.Snapshot()
		if events := upcomingEvents(snap.Agenda, m.now, snap.Settings.PrivateMode); m.selectedRow < len(events)-1 {
			m.selectedRow++
		}
	}
	return m, nil
}

// mutateTask edits one task in place by id.
func (m Model) mutateTask(id int64, fn func(*model.Task)) {
	m.st.Mutate(func(snap *model.Snapshot) {
		for i := range snap.Tasks {
			if snap.Tasks[i].ID == id {
				fn(&snap.Tasks[i])
				return
			}
		}
	})
}

func nextPriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityHigh:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityLow
	default:
		return model.PriorityHigh
	}
}

func selected(tasks []model.Task, row int) (model.Task, bool) {
	if row < 0 || row >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[row], true
}

// tasksInColumn lists the tasks shown in a pillar column. The assets column
// includes its sub-categories.
func tasksInColumn(snap model.Snapshot, col int) []model.Task {
	if col < 0 || col >= len(model.Pillars) {
		return nil
	}
	cat := model.Pillars[col]
	var out []model.Task
	for _, t := range snap.Tasks {
		if t.Category == cat {
			out = append(out, t)
			continue
		}
		if cat == model.CategoryAssets {
			for _, sub := range model.AssetCategories {
				if t.Category == sub {
					out = append(out, t)
					break
				}
			}
		}
	}
	return out
}
