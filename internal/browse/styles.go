package browse

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ferry/internal/ui"
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorGlassBorder)

	focusedPaneStyle = paneStyle.BorderForeground(ui.ColorNeonPink)

	logStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(ui.ColorGlassBorder)

	titleStyle = lipgloss.NewStyle().Foreground(ui.ColorNeonCyan).Bold(true)
	brandStyle = lipgloss.NewStyle().Foreground(ui.ColorNeonPink).Bold(true)
	dirStyle   = lipgloss.NewStyle().Foreground(ui.ColorNeonCyan)
)
