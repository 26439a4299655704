package browse

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/listing"
	"github.com/rileyhilliard/ferry/internal/session"
	"github.com/rileyhilliard/ferry/internal/ui"
)

// logHeight is the number of transcript lines visible under the panes.
const logHeight = 6

type inputMode int

const (
	inputNone inputMode = iota
	inputRemotePath
	inputLocalPath
	inputRename
)

// entryItem adapts a listing.Entry to list.DefaultItem.
type entryItem struct {
	entry listing.Entry
}

func (i entryItem) Title() string {
	if i.entry.IsDirectory {
		return ui.SymbolDirectory + " " + dirStyle.Render(i.entry.Name)
	}
	return ui.SymbolFile + " " + i.entry.Name
}

func (i entryItem) Description() string { return i.entry.Details }
func (i entryItem) FilterValue() string { return i.entry.Name }

// Messages produced by the commands in commands.go.
type (
	remoteListedMsg struct {
		entries []listing.Entry
		err     error
	}
	localListedMsg struct {
		entries []listing.Entry
		err     error
	}
	transferDoneMsg struct {
		upload bool
		name   string
		target string
		err    error
	}
	localChangedMsg struct {
		verb string
		path string
		err  error
	}
)

// Model is the Bubble Tea model for `ferry browse`. The session must
// already be connected.
type Model struct {
	sess   *session.Session
	ctx    context.Context
	cancel context.CancelFunc
	keys   keyMap

	remote  list.Model
	local   list.Model
	logView viewport.Model
	spinner spinner.Model
	input   textinput.Model
	help    help.Model

	focus     Pane
	mode      inputMode
	renaming  string
	pending   int
	status    string
	statusErr bool
	lastLog   string
	width     int
	height    int
	quitting  bool
}

// NewModel builds the browser. Cancelling parent, or quitting, kills any
// ssh or scp still running.
func NewModel(parent context.Context, sess *session.Session) Model {
	ctx, cancel := context.WithCancel(parent)

	input := textinput.New()
	input.CharLimit = 4096
	input.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		sess:    sess,
		ctx:     ctx,
		cancel:  cancel,
		keys:    defaultKeyMap(),
		remote:  newPane(),
		local:   newPane(),
		logView: viewport.New(80, logHeight),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(ui.ColorNeonPurple)),
		),
		input:  input,
		help:   help.New(),
		width:  80,
		height: 24,
	}
}

func newPane() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ui.ColorNeonPink).
		BorderForeground(ui.ColorNeonPink)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ui.ColorSecondary).
		BorderForeground(ui.ColorNeonPink)

	l := list.New(nil, delegate, 40, 10)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.Styles.Title = titleStyle
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return l
}

// refreshMsg asks for both panes to be listed again.
type refreshMsg struct{}

// Init lists both working directories.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshMsg:
		cmd := m.start(m.listRemote(), m.listLocal())
		return m, cmd

	case spinner.TickMsg:
		m.refreshLog()
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case remoteListedMsg:
		m.done()
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.remote.ResetFilter()
		m.remote.Title = m.remoteTitle()
		cmd := m.remote.SetItems(toItems(msg.entries))
		return m, cmd

	case localListedMsg:
		m.done()
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.local.ResetFilter()
		m.local.Title = "local " + m.sess.LocalPath()
		cmd := m.local.SetItems(toItems(msg.entries))
		return m, cmd

	case transferDoneMsg:
		m.done()
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		if msg.upload {
			m.setStatus("Uploaded " + msg.name + " " + ui.SymbolArrow + " " + msg.target)
			cmd := m.start(m.listRemote())
			return m, cmd
		}
		m.setStatus("Downloaded " + msg.name + " " + ui.SymbolArrow + " " + msg.target)
		cmd := m.start(m.listLocal())
		return m, cmd

	case localChangedMsg:
		m.done()
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setStatus(msg.verb + " " + msg.path)
		cmd := m.start(m.listLocal())
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.mode != inputNone {
		return m.handleInput(msg)
	}

	// An open filter prompt owns the keyboard.
	pane := m.focused()
	if pane.FilterState() == list.Filtering {
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Switch):
		m.focus = m.focus.Other()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m.open()

	case key.Matches(msg, m.keys.Parent):
		if m.focus == PaneRemote {
			cmd := m.start(m.remoteCmd(m.sess.RemoteParent))
			return m, cmd
		}
		cmd := m.start(m.localCmd(m.sess.LocalParent))
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		return m.Update(refreshMsg{})

	case key.Matches(msg, m.keys.Upload):
		return m.upload()

	case key.Matches(msg, m.keys.Download):
		return m.download()

	case key.Matches(msg, m.keys.GoTo):
		if m.focus == PaneRemote {
			return m.prompt(inputRemotePath, "remote path: ", m.sess.RemotePath())
		}
		return m.prompt(inputLocalPath, "local path: ", m.sess.LocalPath())

	case key.Matches(msg, m.keys.NewFolder):
		if m.focus != PaneLocal {
			m.setStatus("New folders can only be made on the local side")
			return m, nil
		}
		cmd := m.start(m.createFolder())
		return m, cmd

	case key.Matches(msg, m.keys.Rename):
		entry, ok := m.selected()
		if m.focus != PaneLocal || !ok {
			m.setStatus("Select a local item to rename")
			return m, nil
		}
		m.renaming = entry.FullPath
		return m.prompt(inputRename, "rename to: ", entry.Name)

	case key.Matches(msg, m.keys.LogUp), key.Matches(msg, m.keys.LogDown):
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		value := m.input.Value()
		mode, target := m.mode, m.renaming
		m.closePrompt()

		switch mode {
		case inputRemotePath:
			cmd := m.start(m.remoteCmd(func(ctx context.Context) ([]listing.Entry, error) {
				return m.sess.SetRemotePath(ctx, value)
			}))
			return m, cmd
		case inputLocalPath:
			cmd := m.start(m.localCmd(func() ([]listing.Entry, error) {
				return m.sess.SetLocalPath(value)
			}))
			return m, cmd
		case inputRename:
			cmd := m.start(m.rename(target, value))
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) prompt(mode inputMode, label, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Prompt = label
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m, nil
}

func (m *Model) closePrompt() {
	m.mode = inputNone
	m.renaming = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) open() (tea.Model, tea.Cmd) {
	entry, ok := m.selected()
	if !ok {
		return m, nil
	}
	if !entry.IsDirectory {
		if m.focus == PaneRemote {
			m.setStatus(entry.Name + " is a file; press d to download it")
		} else {
			m.setStatus(entry.Name + " is a file; press u to upload it")
		}
		return m, nil
	}
	if m.focus == PaneRemote {
		cmd := m.start(m.remoteCmd(func(ctx context.Context) ([]listing.Entry, error) {
			return m.sess.OpenRemote(ctx, entry)
		}))
		return m, cmd
	}
	cmd := m.start(m.localCmd(func() ([]listing.Entry, error) {
		return m.sess.OpenLocal(entry)
	}))
	return m, cmd
}

func (m Model) upload() (tea.Model, tea.Cmd) {
	entry, ok := m.selected()
	if m.focus != PaneLocal || !ok {
		m.setStatus("Select a local item to upload")
		return m, nil
	}
	if m.sess.Transferring() {
		m.setError(session.ErrTransferInProgress)
		return m, nil
	}
	m.setStatus("Uploading " + entry.Name)
	cmd := m.start(m.transferCmd(true, entry))
	return m, cmd
}

func (m Model) download() (tea.Model, tea.Cmd) {
	entry, ok := m.selected()
	if m.focus != PaneRemote || !ok {
		m.setStatus("Select a remote item to download")
		return m, nil
	}
	if m.sess.Transferring() {
		m.setError(session.ErrTransferInProgress)
		return m, nil
	}
	m.setStatus("Downloading " + entry.Name)
	cmd := m.start(m.transferCmd(false, entry))
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == PaneRemote {
		m.remote, cmd = m.remote.Update(msg)
	} else {
		m.local, cmd = m.local.Update(msg)
	}
	return m, cmd
}

func (m Model) focused() list.Model {
	if m.focus == PaneRemote {
		return m.remote
	}
	return m.local
}

func (m Model) selected() (listing.Entry, bool) {
	pane := m.focused()
	item, ok := pane.SelectedItem().(entryItem)
	if !ok {
		return listing.Entry{}, false
	}
	return item.entry, true
}

// start counts cmds as in flight and kicks the spinner when it was idle.
func (m *Model) start(cmds ...tea.Cmd) tea.Cmd {
	idle := m.pending == 0
	m.pending += len(cmds)
	if idle {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) done() {
	if m.pending > 0 {
		m.pending--
	}
	m.refreshLog()
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = errors.Summary(err), true
}

func (m *Model) refreshLog() {
	text := m.sess.Log()
	if text == m.lastLog {
		return
	}
	m.lastLog = text
	m.logView.SetContent(text)
	m.logView.GotoBottom()
}

func (m Model) remoteTitle() string {
	p, ok := m.sess.Profile()
	if !ok {
		return "remote " + m.sess.RemotePath()
	}
	return "remote " + p.Destination() + ":" + m.sess.RemotePath()
}

func toItems(entries []listing.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	return items
}

// Busy reports whether any ssh, scp or filesystem call is in flight.
func (m Model) Busy() bool { return m.pending > 0 }

// Focus returns the focused pane.
func (m Model) Focus() Pane { return m.focus }

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }
