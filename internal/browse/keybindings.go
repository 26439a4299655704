package browse

import "github.com/charmbracelet/bubbles/key"

// Pane identifies which side has focus.
type Pane int

const (
	PaneRemote Pane = iota
	PaneLocal
)

func (p Pane) String() string {
	if p == PaneLocal {
		return "local"
	}
	return "remote"
}

// Other returns the opposite pane.
func (p Pane) Other() Pane {
	if p == PaneLocal {
		return PaneRemote
	}
	return PaneLocal
}

type keyMap struct {
	Open      key.Binding
	Parent    key.Binding
	Switch    key.Binding
	Upload    key.Binding
	Download  key.Binding
	Refresh   key.Binding
	GoTo      key.Binding
	NewFolder key.Binding
	Rename    key.Binding
	LogUp     key.Binding
	LogDown   key.Binding
	Help      key.Binding
	Quit      key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open:      key.NewBinding(key.WithKeys("enter", "right"), key.WithHelp("enter", "open")),
		Parent:    key.NewBinding(key.WithKeys("backspace", "left"), key.WithHelp("⌫", "up a level")),
		Switch:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
		Upload:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		Download:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
		Refresh:   key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		GoTo:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "go to path")),
		NewFolder: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new folder")),
		Rename:    key.NewBinding(key.WithKeys("e", "f2"), key.WithHelp("e", "rename")),
		LogUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll log")),
		LogDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll log")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:    key.NewBinding(key.WithKeys("enter")),
		Cancel:    key.NewBinding(key.WithKeys("esc")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Parent, k.Switch, k.Upload, k.Download, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Parent, k.Switch, k.GoTo},
		{k.Upload, k.Download, k.Refresh},
		{k.NewFolder, k.Rename},
		{k.LogUp, k.LogDown, k.Help, k.Quit},
	}
}
