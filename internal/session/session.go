// Package session tracks one connected browse session: the profile in use,
// the password held for it, both working directories and the transcript of
// transport output. It lets at most one transfer run at a time.
package session

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/listing"
	"github.com/rileyhilliard/ferry/internal/localfs"
	"github.com/rileyhilliard/ferry/internal/logger"
	"github.com/rileyhilliard/ferry/internal/paths"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/runner"
	"github.com/rileyhilliard/ferry/internal/transfer"
)

var (
	// ErrNotConnected is returned by remote operations before Connect.
	ErrNotConnected = errors.New(errors.ErrSSH,
		"Not connected",
		"Connect to a server first.")

	// ErrTransferInProgress is returned when a transfer is already running.
	ErrTransferInProgress = errors.New(errors.ErrExec,
		"A transfer is already running",
		"Wait for it to finish, then try again.")

	// ErrNotDirectory is returned when opening an entry that isn't a directory.
	ErrNotDirectory = errors.New(errors.ErrLocal,
		"Not a directory",
		"Only directories can be opened; transfer files instead.")
)

// RemoteLister lists remote directories. *remote.Browser implements it.
type RemoteLister interface {
	ListDirectory(ctx context.Context, p profile.Profile, remotePath, password string, onOutput runner.Sink) ([]listing.Entry, error)
}

// Transferer copies files. *transfer.Service implements it.
type Transferer interface {
	Transfer(ctx context.Context, req transfer.Request, onOutput runner.Sink) error
}

// Options are the starting directories used on Connect.
type Options struct {
	RemotePath string
	LocalPath  string
}

// Session is safe for use from multiple goroutines. No lock is held while
// ssh or scp runs.
type Session struct {
	browser   RemoteLister
	transfers Transferer
	local     *localfs.FS
	opts      Options
	log       logger.Logger

	mu            sync.Mutex
	profile       *profile.Profile
	password      string
	remotePath    string
	localPath     string
	remoteEntries []listing.Entry
	transcript    strings.Builder
	transferring  bool
}

// New creates a disconnected session.
func New(browser RemoteLister, transfers Transferer, local *localfs.FS, opts Options, log logger.Logger) *Session {
	if opts.RemotePath == "" {
		opts.RemotePath = "/"
	}
	if opts.LocalPath == "" {
		opts.LocalPath = paths.Home
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Session{
		browser:    browser,
		transfers:  transfers,
		local:      local,
		opts:       opts,
		log:        log,
		remotePath: opts.RemotePath,
		localPath:  paths.ExpandLocal(opts.LocalPath),
	}
}

// Connect makes p the active profile and resets both working directories.
// Password-auth profiles need a password here; it is kept in memory until
// Disconnect. Nothing is contacted until the first listing.
func (s *Session) Connect(p profile.Profile, password string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Auth.IsPassword() && password == "" {
		return errors.NewMissingPassword()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
	s.password = password
	s.remotePath = s.opts.RemotePath
	s.localPath = paths.ExpandLocal(s.opts.LocalPath)
	s.remoteEntries = nil
	s.log.Info("connected to %s", p.Label())
	return nil
}

// Disconnect forgets the profile, its password and the remote listing.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile != nil {
		s.log.Info("disconnected from %s", s.profile.Name)
	}
	s.profile = nil
	s.password = ""
	s.remoteEntries = nil
}

// Connected reports whether a profile is active.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile != nil
}

// Profile returns the active profile.
func (s *Session) Profile() (profile.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return profile.Profile{}, false
	}
	return *s.profile, true
}

// RemotePath is the remote working directory.
func (s *Session) RemotePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remotePath
}

// LocalPath is the local working directory, ~ already expanded.
func (s *Session) LocalPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localPath
}

// RemoteEntries is the last successful remote listing.
func (s *Session) RemoteEntries() []listing.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]listing.Entry(nil), s.remoteEntries...)
}

// Transferring reports whether a transfer is running.
func (s *Session) Transferring() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transferring
}

// Log returns everything ssh and scp have printed this session.
func (s *Session) Log() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.String()
}

// appendLog is the runner.Sink for every transport call. Each chunk ends
// on a line boundary in the transcript.
func (s *Session) appendLog(text string) {
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		s.transcript.WriteByte('\n')
	}
}

// credentials snapshots what a transport call needs.
func (s *Session) credentials() (profile.Profile, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return profile.Profile{}, "", ErrNotConnected
	}
	return *s.profile, s.password, nil
}

// ListRemote re-lists the remote working directory.
func (s *Session) ListRemote(ctx context.Context) ([]listing.Entry, error) {
	return s.SetRemotePath(ctx, s.RemotePath())
}

// SetRemotePath lists path and, if that works, makes it the remote working
// directory. On failure the previous directory stays current.
func (s *Session) SetRemotePath(ctx context.Context, path string) ([]listing.Entry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New(errors.ErrSSH,
			"Remote path is required",
			"Enter a directory such as / or ~")
	}

	p, password, err := s.credentials()
	if err != nil {
		return nil, err
	}

	entries, err := s.browser.ListDirectory(ctx, p, path, password, s.appendLog)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.remotePath = path
	s.remoteEntries = entries
	return append([]listing.Entry(nil), entries...), nil
}

// OpenRemote descends into a remote directory entry.
func (s *Session) OpenRemote(ctx context.Context, entry listing.Entry) ([]listing.Entry, error) {
	if !entry.IsDirectory {
		return nil, ErrNotDirectory
	}
	return s.SetRemotePath(ctx, entry.FullPath)
}

// RemoteParent moves the remote working directory up one level.
func (s *Session) RemoteParent(ctx context.Context) ([]listing.Entry, error) {
	return s.SetRemotePath(ctx, paths.ParentRemote(s.RemotePath()))
}

// ListLocal re-lists the local working directory.
func (s *Session) ListLocal() ([]listing.Entry, error) {
	return s.SetLocalPath(s.LocalPath())
}

// SetLocalPath lists path and, if that works, makes it the local working directory.
func (s *Session) SetLocalPath(path string) ([]listing.Entry, error) {
	expanded := paths.ExpandLocal(strings.TrimSpace(path))
	entries, err := s.local.List(expanded)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.localPath = expanded
	return entries, nil
}

// OpenLocal descends into a local directory entry.
func (s *Session) OpenLocal(entry listing.Entry) ([]listing.Entry, error) {
	if !entry.IsDirectory {
		return nil, ErrNotDirectory
	}
	return s.SetLocalPath(entry.FullPath)
}

// LocalParent moves the local working directory up one level.
func (s *Session) LocalParent() ([]listing.Entry, error) {
	return s.SetLocalPath(paths.ParentLocal(s.LocalPath()))
}

// CreateLocalFolder makes a "New Folder" in the local working directory.
func (s *Session) CreateLocalFolder() (string, error) {
	return s.local.CreateFolder(s.LocalPath())
}

// RenameLocal renames an item in the local working directory.
func (s *Session) RenameLocal(path, newName string) (string, error) {
	return s.local.Rename(path, newName)
}

// Upload copies a local file or directory into the remote working directory
// and returns the remote target path.
func (s *Session) Upload(ctx context.Context, localPath string) (string, error) {
	localPath = paths.ExpandLocal(localPath)
	target := paths.JoinRemote(s.RemotePath(), filepath.Base(localPath))

	err := s.runTransfer(ctx, transfer.Request{
		Direction:  transfer.Upload,
		LocalPath:  localPath,
		RemotePath: target,
		Recursive:  s.local.IsDir(localPath),
	})
	if err != nil {
		return "", err
	}
	return target, nil
}

// Download copies a remote file or directory into the local working
// directory and returns the local target path.
func (s *Session) Download(ctx context.Context, remotePath string, isDir bool) (string, error) {
	target := filepath.Join(s.LocalPath(), paths.BaseRemote(remotePath))

	err := s.runTransfer(ctx, transfer.Request{
		Direction:  transfer.Download,
		LocalPath:  target,
		RemotePath: remotePath,
		Recursive:  isDir,
	})
	if err != nil {
		return "", err
	}
	return target, nil
}

// runTransfer fills in the credentials and holds the single-transfer gate
// for the duration of the scp run.
func (s *Session) runTransfer(ctx context.Context, req transfer.Request) error {
	s.mu.Lock()
	if s.profile == nil {
		s.mu.Unlock()
		return ErrNotConnected
	}
	if s.transferring {
		s.mu.Unlock()
		return ErrTransferInProgress
	}
	s.transferring = true
	req.Profile = *s.profile
	req.Password = s.password
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.transferring = false
		s.mu.Unlock()
	}()

	return s.transfers.Transfer(ctx, req, s.appendLog)
}
