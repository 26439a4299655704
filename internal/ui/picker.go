package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ferry/internal/errors"
	"golang.org/x/term"
)

// Choice is one row in a picker: a saved connection or an ssh_config alias.
type Choice struct {
	Key    string // returned to the caller
	Label  string // shown instead of Key when set
	Detail string
	Tags   []string // extra filter terms
}

type pickerKeyMap struct {
	Choose key.Binding
	Cancel key.Binding
}

var pickerKeys = pickerKeyMap{
	Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// PickerModel lets the user choose one Choice from a filterable list.
type PickerModel struct {
	list   list.Model
	chosen *Choice
	done   bool
}

// choiceItem adapts a Choice to list.DefaultItem.
type choiceItem struct{ Choice }

func (i choiceItem) Title() string {
	if i.Label != "" {
		return i.Label
	}
	return i.Key
}

func (i choiceItem) Description() string { return i.Detail }

func (i choiceItem) FilterValue() string {
	return strings.Join(append([]string{i.Key, i.Label, i.Detail}, i.Tags...), " ")
}

// NewPickerModel builds a picker over choices.
func NewPickerModel(title string, choices []Choice) PickerModel {
	items := make([]list.Item, len(choices))
	for i, c := range choices {
		items[i] = choiceItem{c}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorNeonPink).
		BorderForeground(ColorNeonPink)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorSecondary).
		BorderForeground(ColorNeonPink)

	l := list.New(items, delegate, 60, 14)
	l.Title = title
	l.SetShowStatusBar(false)
	l.Styles.Title = lipgloss.NewStyle().Foreground(ColorNeonCyan).Bold(true)
	l.Styles.HelpStyle = MutedStyle()

	return PickerModel{list: l}
}

func (m PickerModel) Init() tea.Cmd { return nil }

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Let the list own keys while the filter prompt is open.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, pickerKeys.Choose):
			if item, ok := m.list.SelectedItem().(choiceItem); ok {
				c := item.Choice
				m.chosen = &c
			}
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, pickerKeys.Cancel):
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) View() string {
	if m.done {
		return ""
	}
	return m.list.View()
}

// Chosen is the selected choice, nil if the picker was cancelled.
func (m PickerModel) Chosen() *Choice { return m.chosen }

// Pick runs the picker on the terminal. A single choice is returned without
// asking. A nil result with a nil error means the user cancelled.
func Pick(title string, choices []Choice) (*Choice, error) {
	return PickWithIO(title, choices, os.Stdin, os.Stdout)
}

// PickWithIO is Pick with explicit terminal streams.
func PickWithIO(title string, choices []Choice, in io.Reader, out io.Writer) (*Choice, error) {
	switch len(choices) {
	case 0:
		return nil, errors.New(errors.ErrProfile,
			"Nothing to choose from",
			"Add a connection with 'ferry connection add' first.")
	case 1:
		return &choices[0], nil
	}

	final, err := tea.NewProgram(NewPickerModel(title, choices),
		tea.WithInput(in),
		tea.WithOutput(out),
	).Run()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrProfile,
			"Picker failed",
			"Name the connection on the command line instead.")
	}
	if m, ok := final.(PickerModel); ok {
		return m.Chosen(), nil
	}
	return nil, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
