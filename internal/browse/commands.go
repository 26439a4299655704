package browse

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ferry/internal/listing"
)

// The commands below run on Bubble Tea's goroutines. They only touch the
// session, which does its own locking, and report back with a message.

func (m Model) remoteCmd(fn func(context.Context) ([]listing.Entry, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		entries, err := fn(ctx)
		return remoteListedMsg{entries: entries, err: err}
	}
}

func (m Model) localCmd(fn func() ([]listing.Entry, error)) tea.Cmd {
	return func() tea.Msg {
		entries, err := fn()
		return localListedMsg{entries: entries, err: err}
	}
}

func (m Model) listRemote() tea.Cmd { return m.remoteCmd(m.sess.ListRemote) }

func (m Model) listLocal() tea.Cmd { return m.localCmd(m.sess.ListLocal) }

func (m Model) transferCmd(upload bool, entry listing.Entry) tea.Cmd {
	ctx, sess := m.ctx, m.sess
	return func() tea.Msg {
		var target string
		var err error
		if upload {
			target, err = sess.Upload(ctx, entry.FullPath)
		} else {
			target, err = sess.Download(ctx, entry.FullPath, entry.IsDirectory)
		}
		return transferDoneMsg{upload: upload, name: entry.Name, target: target, err: err}
	}
}

func (m Model) createFolder() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		path, err := sess.CreateLocalFolder()
		return localChangedMsg{verb: "Created", path: filepath.Base(path), err: err}
	}
}

func (m Model) rename(path, newName string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		dest, err := sess.RenameLocal(path, newName)
		return localChangedMsg{verb: "Renamed to", path: filepath.Base(dest), err: err}
	}
}
