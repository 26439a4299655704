package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteIsHex(t *testing.T) {
	colors := []lipgloss.Color{
		ColorNeonPink, ColorNeonCyan, ColorNeonPurple, ColorNeonGreen,
		ColorNeonOrange, ColorNeonAmber, ColorDeepVoid, ColorDarkSurface,
		ColorGlassBorder, ColorSuccess, ColorError, ColorWarning, ColorInfo,
		ColorPrimary, ColorSecondary, ColorMuted,
	}
	colors = append(colors, GradientColors...)

	for _, c := range colors {
		s := string(c)
		require.Len(t, s, 7, "want #RRGGBB, got %q", s)
		assert.Equal(t, byte('#'), s[0])
	}
	assert.Len(t, GradientColors, 4)
}

func TestStylesRenderText(t *testing.T) {
	styles := map[string]lipgloss.Style{
		"success": SuccessStyle(),
		"error":   ErrorStyle(),
		"warning": WarningStyle(),
		"info":    InfoStyle(),
		"muted":   MutedStyle(),
	}
	for name, style := range styles {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, style.Render(name), name)
		})
	}
}

func TestPrintWarning(t *testing.T) {
	orig := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	PrintWarning("profile file is world-readable")

	require.NoError(t, w.Close())
	os.Stderr = orig

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "profile file is world-readable")
	assert.Contains(t, buf.String(), SymbolWarning)
}

func TestDisableColors(t *testing.T) {
	DisableColors()
	assert.Equal(t, "plain", SuccessStyle().Render("plain"))
}
