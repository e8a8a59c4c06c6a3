package ui

import (
	"github.com/nkaroui/opsdeck/internal/timer"
)

func (m Model) View() string {
	snap := m.st.Snapshot()
	state := m.engine.State(m.now)
	header := m.renderHeader(snap, state)

	var body string
	switch {
	case state.BreakerFired:
		body = m.renderBreaker(state)
	case state.EyeEnabled && state.EyePhase == timer.PhaseBreak:
		body = m.renderEyeBreak(state)
	case state.CurfewActive:
		body = m.renderCurfew()
	case m.focusOverlay && state.Focus != nil:
		body = m.renderFocus(state)
	case m.showHelp:
		body = m.renderHelp()
	default:
		switch m.currentView {
		case ViewAgenda:
			body = m.renderAgenda(snap)
		case ViewJournal:
			body = m.renderJournal(snap)
		case ViewReview:
			body = m.renderReview(snap)
		case ViewSettings:
			body = m.renderSettings(snap)
		default:
			body = m.renderDashboard(snap)
		}
	}

	if m.mode != inputNone {
		body += "\n\n " + m.input.View()
	}

	footer := m.theme.Styles().Footer.Width(max(m.width, 0)).
		Render("? help  tab views  n new  space done  q quit")
	return header + "\n" + body + "\n" + footer
}
