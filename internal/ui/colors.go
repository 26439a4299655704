package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Accent palette. Hex values so lipgloss can degrade them to whatever the
// terminal supports.
const (
	ColorNeonPink   lipgloss.Color = "#FF2E97"
	ColorNeonCyan   lipgloss.Color = "#00E5FF"
	ColorNeonPurple lipgloss.Color = "#B967FF"
	ColorNeonGreen  lipgloss.Color = "#05FFA1"
	ColorNeonOrange lipgloss.Color = "#FF8A3D"
	ColorNeonAmber  lipgloss.Color = "#FFC53D"
)

// Surfaces.
const (
	ColorDeepVoid    lipgloss.Color = "#0D0B1A"
	ColorDarkSurface lipgloss.Color = "#1C1930"
	ColorGlassBorder lipgloss.Color = "#4A4566"
)

// Semantic colors.
const (
	ColorSuccess lipgloss.Color = "#05FFA1"
	ColorError   lipgloss.Color = "#FF4D6D"
	ColorWarning lipgloss.Color = "#FFC53D"
	ColorInfo    lipgloss.Color = "#00E5FF"
)

// Text hierarchy.
const (
	ColorPrimary   lipgloss.Color = "#E8E6F0"
	ColorSecondary lipgloss.Color = "#8F8AAD"
	ColorMuted     lipgloss.Color = "#6B6788"
)

// GradientColors is the spinner's color cycle.
var GradientColors = []lipgloss.Color{
	ColorNeonPink,
	ColorNeonPurple,
	ColorNeonCyan,
	ColorNeonGreen,
}

func SuccessStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorSuccess) }
func ErrorStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(ColorError) }
func WarningStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorWarning) }
func InfoStyle() lipgloss.Style    { return lipgloss.NewStyle().Foreground(ColorInfo) }
func MutedStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(ColorMuted) }

// DisableColors switches lipgloss to plain ASCII output (--no-color, NO_COLOR).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// PrintWarning writes a styled warning line to stderr.
func PrintWarning(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", WarningStyle().Render(SymbolWarning), msg)
}
