package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		ColumnFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(1, 3).
			Align(lipgloss.Center),
	}
}

// Styles holds ready-to-use lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style

	Column      lipgloss.Style
	ColumnFocus lipgloss.Style
	Overlay     lipgloss.Style
}

var themes = []Theme{
	{
		Name:          "Dark",
		Background:    "#16161E",
		Surface:       "#1F1F2B",
		SelectionBg:   "#2D2D44",
		SelectionText: "#E6E6F0",
		Border:        "#3B3B54",
		BorderFocus:   "#7C3AED",
		Text:          "#D5D5E4",
		Muted:         "#70708C",
		Accent:        "#A78BFA",
		Success:       "#34D399",
		Warning:       "#FBBF24",
		Danger:        "#F87171",
	},
	{
		Name:          "Slate",
		Background:    "#0F172A",
		Surface:       "#1E293B",
		SelectionBg:   "#334155",
		SelectionText: "#F1F5F9",
		Border:        "#475569",
		BorderFocus:   "#38BDF8",
		Text:          "#E2E8F0",
		Muted:         "#64748B",
		Accent:        "#38BDF8",
		Success:       "#4ADE80",
		Warning:       "#FACC15",
		Danger:        "#FB7185",
	},
}

// ThemeByName returns the named theme, defaulting to the first.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}
