package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit     key.Binding
	Help     key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Escape   key.Binding

	// View switching
	ViewDashboard key.Binding
	ViewAgenda    key.Binding
	ViewJournal   key.Binding
	ViewReview    key.Binding
	ViewSettings  key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Task actions
	Toggle   key.Binding
	NewTask  key.Binding
	Star     key.Binding
	Priority key.Binding
	Delete   key.Binding
	Focus    key.Binding
	Timer    key.Binding
	Complete key.Binding

	// Mode toggles
	Private key.Binding
	EyeCare key.Binding
	Crisis  key.Binding

	// Data
	Backup  key.Binding
	Connect key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Cycle views (reverse)"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to dashboard"),
		),

		ViewDashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Dashboard"),
		),
		ViewAgenda: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Agenda"),
		),
		ViewJournal: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Journal"),
		),
		ViewReview: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Weekly review"),
		),
		ViewSettings: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Settings"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j", "Down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("h", "Previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("l", "Next column"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle done"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New task"),
		),
		Star: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Star for today"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Cycle priority"),
		),
		Delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Delete task"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Focus session"),
		),
		Timer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Inline timer"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Complete timed task"),
		),

		Private: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "Private mode"),
		),
		EyeCare: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "Eye care"),
		),
		Crisis: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Crisis mode"),
		),

		Backup: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "Backup now"),
		),
		Connect: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Connect sync"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}
