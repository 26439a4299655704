// Package remote lists directories on a remote host over ssh.
package remote

import (
	"context"

	"github.com/rileyhilliard/ferry/internal/askpass"
	"github.com/rileyhilliard/ferry/internal/listing"
	"github.com/rileyhilliard/ferry/internal/logger"
	"github.com/rileyhilliard/ferry/internal/paths"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/runner"
	"github.com/rileyhilliard/ferry/internal/transport"
)

// Browser lists remote directories.
type Browser struct {
	exec     runner.Executor
	injector *askpass.Injector
	opts     transport.Options
	log      logger.Logger

	// resolve locates the ssh binary; swapped in tests.
	resolve func(string) (string, error)
}

// NewBrowser creates a Browser.
func NewBrowser(exec runner.Executor, injector *askpass.Injector, opts transport.Options, log logger.Logger) *Browser {
	if log == nil {
		log = logger.Noop()
	}
	return &Browser{
		exec:     exec,
		injector: injector,
		opts:     opts,
		log:      log,
		resolve:  runner.Resolve,
	}
}

// ListDirectory lists remotePath on the profile's host. password is only
// consulted for password-auth profiles. Anything ssh or ls print on stderr
// is handed to onOutput once, after the command finishes.
//
// An empty remotePath lists the filesystem root.
func (b *Browser) ListDirectory(ctx context.Context, p profile.Profile, remotePath, password string, onOutput runner.Sink) ([]listing.Entry, error) {
	if remotePath == "" {
		remotePath = "/"
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sshPath, err := b.resolve(b.opts.SSH)
	if err != nil {
		return nil, err
	}

	creds, err := b.injector.Stage(p.Auth, password, askpass.ToolSSH)
	if err != nil {
		return nil, err
	}
	defer creds.Cleanup()

	cmd := runner.Command{
		Path:      sshPath,
		Args:      BuildListArgs(p, remotePath, creds.Args, b.opts),
		Env:       creds.Env,
		NullStdin: creds.NullStdin,
		Host:      p.Host,
	}

	b.log.Debug("listing %s on %s", remotePath, p.Label())
	out, err := b.exec.Capture(ctx, cmd, onOutput)
	if err != nil {
		return nil, err
	}

	entries := listing.Parse(out, remotePath)
	b.log.Debug("%d entries in %s", len(entries), remotePath)
	return entries, nil
}

// BuildListArgs constructs the ssh arguments for a listing.
// Exported for testing command construction without running ssh.
func BuildListArgs(p profile.Profile, remotePath string, authArgs []string, opts transport.Options) []string {
	args := opts.CommonArgs("-p", p.EffectivePort())
	args = append(args, authArgs...)
	args = append(args, p.Destination(), ListCommand(remotePath, opts.LocaleOrDefault()))
	return args
}

// ListCommand is the remote shell command that lists path. -p marks
// directories with a trailing slash, and the fixed locale keeps the column
// layout stable. Only the "~" or "~/" prefix is left unquoted, so the remote
// shell expands it; the rest of the path is single-quoted.
func ListCommand(path, locale string) string {
	return "LC_ALL=" + locale + " ls -la -p " + paths.ShellQuoteRemote(path)
}
