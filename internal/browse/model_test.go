package browse

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/listing"
	"github.com/rileyhilliard/ferry/internal/localfs"
	"github.com/rileyhilliard/ferry/internal/logger"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/runner"
	"github.com/rileyhilliard/ferry/internal/session"
	"github.com/rileyhilliard/ferry/internal/transfer"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	mu    sync.Mutex
	dirs  map[string][]listing.Entry
	calls []string
}

func (f *fakeRemote) ListDirectory(_ context.Context, p profile.Profile, path, _ string, onOutput runner.Sink) ([]listing.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	entries, ok := f.dirs[path]
	if !ok {
		onOutput("ls: cannot access '" + path + "': No such file or directory\n")
		return nil, errors.NewTransferFailed(2, p.Host)
	}
	return entries, nil
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeCopier struct {
	mu   sync.Mutex
	reqs []transfer.Request
	err  error
}

func (f *fakeCopier) Transfer(_ context.Context, req transfer.Request, onOutput runner.Sink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	onOutput(req.Direction.String() + " done\n")
	return f.err
}

type fixture struct {
	model  Model
	remote *fakeRemote
	copier *fakeCopier
	fs     afero.Fs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/me/photos", 0755))
	require.NoError(t, afero.WriteFile(fs, "/home/me/notes.txt", []byte("hello"), 0644))

	remote := &fakeRemote{dirs: map[string][]listing.Entry{
		"/": {
			{Name: "srv", FullPath: "/srv", IsDirectory: true, Details: "drwxr-xr-x"},
			{Name: "motd", FullPath: "/motd", Details: "-rw-r--r--"},
		},
		"/srv": {{Name: "app", FullPath: "/srv/app", IsDirectory: true}},
	}}
	copier := &fakeCopier{}

	sess := session.New(remote, copier, localfs.NewWithFs(fs),
		session.Options{RemotePath: "/", LocalPath: "/home/me"}, logger.Noop())
	require.NoError(t, sess.Connect(profile.New("lab", "10.0.0.2", "me", profile.KeyFile("/k")), ""))

	f := &fixture{model: NewModel(context.Background(), sess), remote: remote, copier: copier, fs: fs}
	f.run(f.model.Init())
	return f
}

// run executes cmd and everything it leads to, feeding each message back
// through Update. Spinner ticks are dropped so the loop ends.
func (f *fixture) run(cmd tea.Cmd) {
	var m tea.Model = f.model
	for queue := []tea.Cmd{cmd}; len(queue) > 0; {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, tea.QuitMsg, nil:
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	f.model = m.(Model)
}

func (f *fixture) press(keys ...tea.KeyMsg) {
	for _, k := range keys {
		m, cmd := f.model.Update(k)
		f.model = m.(Model)
		f.run(cmd)
	}
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	down      = tea.KeyMsg{Type: tea.KeyDown}
	tab       = tea.KeyMsg{Type: tea.KeyTab}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	clearLine = tea.KeyMsg{Type: tea.KeyCtrlU}
)

func titles(m Model, pane Pane) []string {
	l := m.remote
	if pane == PaneLocal {
		l = m.local
	}
	var names []string
	for _, item := range l.Items() {
		names = append(names, item.(entryItem).entry.Name)
	}
	return names
}

func TestInit_ListsBothPanes(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"srv", "motd"}, titles(f.model, PaneRemote))
	assert.Equal(t, []string{"photos", "notes.txt"}, titles(f.model, PaneLocal))
	assert.False(t, f.model.Busy())
	assert.Equal(t, PaneRemote, f.model.Focus())
}

func TestOpenAndParent_Remote(t *testing.T) {
	f := newFixture(t)

	f.press(enter)
	assert.Equal(t, "/srv", f.model.sess.RemotePath())
	assert.Equal(t, []string{"app"}, titles(f.model, PaneRemote))
	assert.Contains(t, f.model.remote.Title, "me@10.0.0.2:/srv")

	f.press(backspace)
	assert.Equal(t, "/", f.model.sess.RemotePath())
}

func TestOpenFile_ShowsHint(t *testing.T) {
	f := newFixture(t)

	f.press(down, enter)
	status, isErr := f.model.Status()
	assert.False(t, isErr)
	assert.Contains(t, status, "press d to download")
	assert.Equal(t, "/", f.model.sess.RemotePath())
}

func TestLocalNavigation(t *testing.T) {
	f := newFixture(t)

	f.press(tab)
	assert.Equal(t, PaneLocal, f.model.Focus())

	f.press(enter)
	assert.Equal(t, "/home/me/photos", f.model.sess.LocalPath())
	assert.Contains(t, f.model.local.Title, "/home/me/photos")

	f.press(backspace)
	assert.Equal(t, "/home/me", f.model.sess.LocalPath())
}

func TestUpload(t *testing.T) {
	f := newFixture(t)
	listings := f.remote.callCount()

	f.press(tab, down, runes("u"))

	require.Len(t, f.copier.reqs, 1)
	req := f.copier.reqs[0]
	assert.Equal(t, transfer.Upload, req.Direction)
	assert.Equal(t, "/home/me/notes.txt", req.LocalPath)
	assert.Equal(t, "/notes.txt", req.RemotePath)

	status, isErr := f.model.Status()
	assert.False(t, isErr)
	assert.Contains(t, status, "Uploaded notes.txt")
	assert.Greater(t, f.remote.callCount(), listings, "remote pane is relisted")
	assert.Contains(t, f.model.logView.View(), "upload done")
}

func TestDownload(t *testing.T) {
	f := newFixture(t)

	f.press(down, runes("d"))

	require.Len(t, f.copier.reqs, 1)
	req := f.copier.reqs[0]
	assert.Equal(t, transfer.Download, req.Direction)
	assert.Equal(t, "/motd", req.RemotePath)
	assert.Equal(t, "/home/me/motd", req.LocalPath)
	assert.False(t, req.Recursive)
}

func TestTransfer_WrongPane(t *testing.T) {
	f := newFixture(t)

	f.press(runes("u"))
	status, _ := f.model.Status()
	assert.Contains(t, status, "Select a local item")

	f.press(tab, runes("d"))
	status, _ = f.model.Status()
	assert.Contains(t, status, "Select a remote item")
	assert.Empty(t, f.copier.reqs)
}

func TestTransfer_FailureShowsError(t *testing.T) {
	f := newFixture(t)
	f.copier.err = errors.NewTransferFailed(1, "10.0.0.2")

	f.press(runes("d"))

	status, isErr := f.model.Status()
	assert.True(t, isErr)
	assert.Contains(t, status, "exit code 1")
	assert.False(t, f.model.Busy())
}

func TestGoToPath(t *testing.T) {
	f := newFixture(t)

	f.press(runes("p"))
	assert.Equal(t, inputRemotePath, f.model.mode)
	assert.Equal(t, "/", f.model.input.Value())

	f.press(clearLine, runes("/srv"), enter)
	assert.Equal(t, inputNone, f.model.mode)
	assert.Equal(t, "/srv", f.model.sess.RemotePath())
}

func TestGoToPath_FailureKeepsDirectory(t *testing.T) {
	f := newFixture(t)

	f.press(runes("p"), clearLine, runes("/nope"), enter)

	status, isErr := f.model.Status()
	assert.True(t, isErr)
	assert.NotEmpty(t, status)
	assert.Equal(t, "/", f.model.sess.RemotePath())
	assert.Contains(t, f.model.logView.View(), "No such file or directory")
}

func TestPrompt_EscCancels(t *testing.T) {
	f := newFixture(t)

	f.press(runes("p"), runes("xyz"), esc)
	assert.Equal(t, inputNone, f.model.mode)
	assert.Equal(t, "/", f.model.sess.RemotePath())
}

func TestNewFolderAndRename(t *testing.T) {
	f := newFixture(t)

	f.press(runes("n"))
	status, _ := f.model.Status()
	assert.Contains(t, status, "New folders can only be made on the local side")

	f.press(tab, runes("n"))
	status, isErr := f.model.Status()
	require.False(t, isErr, status)
	assert.Equal(t, "Created New Folder", status)
	assert.Contains(t, titles(f.model, PaneLocal), "New Folder")

	// New Folder sorts before photos; rename it.
	f.press(runes("e"))
	assert.Equal(t, "New Folder", f.model.input.Value())
	f.press(clearLine, runes("albums"), enter)

	ok, err := afero.DirExists(f.fs, "/home/me/albums")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, titles(f.model, PaneLocal), "albums")
}

func TestQuit_CancelsContext(t *testing.T) {
	f := newFixture(t)

	m, cmd := f.model.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Error(t, m.(Model).ctx.Err())
	assert.Empty(t, m.View())
}

func TestView(t *testing.T) {
	f := newFixture(t)
	m, _ := f.model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "ferry")
	assert.Contains(t, view, "lab (me@10.0.0.2:22)")
	assert.Contains(t, view, "srv")
	assert.Contains(t, view, "notes.txt")
	assert.True(t, strings.Contains(view, "upload") || strings.Contains(view, "quit"))
}

func TestPane(t *testing.T) {
	assert.Equal(t, PaneLocal, PaneRemote.Other())
	assert.Equal(t, PaneRemote, PaneLocal.Other())
	assert.Equal(t, "remote", PaneRemote.String())
	assert.Equal(t, "local", PaneLocal.String())
}
