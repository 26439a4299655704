package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderWidth is the length of the rule under the header.
const HeaderWidth = 50

// HeaderInfo is what the banner shows.
type HeaderInfo struct {
	Version string
	Tagline string
	Target  string // connection label, when there is one
}

// RenderHeader renders the "ferry vX" banner used by version and browse.
func RenderHeader(info HeaderInfo) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(ColorNeonPink).Bold(true).Render("ferry"))
	if info.Version != "" {
		b.WriteString(" " + lipgloss.NewStyle().Foreground(ColorNeonCyan).Render(info.Version))
	}
	b.WriteString("\n")

	if info.Tagline != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(ColorSecondary).Render(info.Tagline) + "\n")
	}
	if info.Target != "" {
		b.WriteString(MutedStyle().Render(SymbolArrow+" "+info.Target) + "\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(ColorGlassBorder).Render(strings.Repeat("━", HeaderWidth)))
	b.WriteString("\n")
	return b.String()
}
