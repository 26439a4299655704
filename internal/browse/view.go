package browse

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ferry/internal/ui"
)

// layout resizes the panes and log to the terminal.
func (m *Model) layout() {
	m.help.Width = m.width

	// header, status, help and the log rule are one line each
	chrome := 3 + lipgloss.Height(m.help.View(m.keys)) + 1 + logHeight
	paneHeight := m.height - chrome - 2
	if paneHeight < 3 {
		paneHeight = 3
	}
	paneWidth := m.width/2 - 2
	if paneWidth < 10 {
		paneWidth = 10
	}

	m.remote.SetSize(paneWidth, paneHeight)
	m.local.SetSize(paneWidth, paneHeight)
	m.logView.Width = m.width
	m.logView.Height = logHeight
	m.input.Width = m.width - lipgloss.Width(m.input.Prompt) - 1
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	remote, local := paneStyle, paneStyle
	if m.focus == PaneRemote {
		remote = focusedPaneStyle
	} else {
		local = focusedPaneStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		remote.Render(m.remote.View()),
		local.Render(m.local.View()),
	))
	b.WriteString("\n")

	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(logStyle.Width(m.width).Render(m.logView.View()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) headerView() string {
	target := "not connected"
	if p, ok := m.sess.Profile(); ok {
		target = p.Label()
	}
	return brandStyle.Render("ferry") + " " + ui.MutedStyle().Render(ui.SymbolArrow+" "+target)
}

func (m Model) statusView() string {
	if m.mode != inputNone {
		return m.input.View()
	}

	var prefix string
	if m.pending > 0 {
		prefix = m.spinner.View() + " "
	}
	switch {
	case m.status == "":
		return prefix
	case m.statusErr:
		return prefix + ui.ErrorStyle().Render(ui.SymbolFail+" "+m.status)
	default:
		return prefix + m.status
	}
}
