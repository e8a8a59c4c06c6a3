package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nkaroui/opsdeck/internal/model"
)

// handleSettingsKey covers the data-management actions that only make sense
// from the settings view.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "x":
		path, err := m.st.Export()
		if err != nil {
			m.status = "Export failed: " + err.Error()
		} else {
			m.status = "Exported to " + path
		}
	case "i":
		return m.startInput(inputImportPath, "Import file path"), nil
	case "R":
		m.status = m.restoreLatestBackup()
	case "A":
		if err := m.st.AirGap(); err != nil {
			m.status = "Air gap failed: " + err.Error()
		} else {
			m.status = "Air gapped: credentials cleared, private mode on"
		}
	case "U":
		m.st.Mutate(func(snap *model.Snapshot) {
			for i := range snap.Tasks {
				snap.Tasks[i].Done = false
				snap.Tasks[i].CompletedAt = ""
			}
		})
		m.status = "All tasks unchecked"
	case "S":
		m.st.Mutate(func(snap *model.Snapshot) {
			for i := range snap.Tasks {
				snap.Tasks[i].TodayStar = false
			}
		})
		m.status = "Stars cleared"
	case "u":
		return m.startInput(inputUserName, "Your name"), nil
	case "b":
		return m.startInput(inputBudget, "Budgets for today, e.g. pro=4 dev=2 assets=1 life=2"), nil
	}
	return m, nil
}

func (m Model) restoreLatestBackup() string {
	backups, err := m.st.Backups()
	if err != nil {
		return "Restore failed: " + err.Error()
	}
	if len(backups) == 0 {
		return "No backups yet"
	}
	if err := m.st.RestoreBackup(backups[0].ID); err != nil {
		return "Restore failed: " + err.Error()
	}
	return "Restored backup from " + backups[0].Date
}

// parseBudgets reads "pillar=hours" pairs.
func parseBudgets(value string) (map[model.Category]float64, error) {
	out := make(map[model.Category]float64)
	for _, field := range strings.Fields(value) {
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("expected pillar=hours, got %q", field)
		}
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil || hours < 0 {
			return nil, fmt.Errorf("bad hours in %q", field)
		}
		cat := model.Category(k)
		known := false
		for _, p := range model.Pillars {
			if cat == p {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown pillar %q", k)
		}
		out[cat] = hours
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no budgets given")
	}
	return out, nil
}
