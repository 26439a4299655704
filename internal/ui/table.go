package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ferry/internal/listing"
)

// TableColumn is a column title and its width in cells.
type TableColumn struct {
	Title string
	Width int
}

// NewTable builds an unfocused bubbles table with the ferry styles.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorGlassBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorNeonCyan)
	s.Cell = s.Cell.Foreground(ColorPrimary)
	// Nothing is focused in printed output; keep rows unhighlighted.
	s.Selected = s.Cell
	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders rows for plain command output. Columns with a
// zero width are sized to their widest cell.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	sized := make([]TableColumn, len(columns))
	copy(sized, columns)
	for i := range sized {
		if sized[i].Width > 0 {
			continue
		}
		w := lipgloss.Width(sized[i].Title)
		for _, row := range rows {
			if i < len(row) && lipgloss.Width(row[i]) > w {
				w = lipgloss.Width(row[i])
			}
		}
		sized[i].Width = w + 1
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}
	return NewTable(sized, tableRows).View()
}

// RenderEntries formats a directory listing one entry per line: a marker,
// the padded name and the details column.
func RenderEntries(entries []listing.Entry) string {
	if len(entries) == 0 {
		return MutedStyle().Render("(empty)") + "\n"
	}

	width := 0
	for _, e := range entries {
		if w := lipgloss.Width(e.Name); w > width {
			width = w
		}
	}

	dirStyle := lipgloss.NewStyle().Foreground(ColorNeonCyan).Bold(true)
	var b strings.Builder
	for _, e := range entries {
		marker, name := SymbolFile, e.Name
		if e.IsDirectory {
			marker, name = SymbolDirectory, dirStyle.Render(e.Name)
		}
		fmt.Fprintf(&b, "%s %s  %s\n", marker, padRight(name, width), MutedStyle().Render(e.Details))
	}
	return b.String()
}

// padRight pads s with spaces to width visible cells.
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
