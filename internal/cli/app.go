package cli

import (
	"io"
	"os"

	"github.com/rileyhilliard/ferry/internal/askpass"
	"github.com/rileyhilliard/ferry/internal/config"
	"github.com/rileyhilliard/ferry/internal/localfs"
	"github.com/rileyhilliard/ferry/internal/logger"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/remote"
	"github.com/rileyhilliard/ferry/internal/runner"
	"github.com/rileyhilliard/ferry/internal/session"
	"github.com/rileyhilliard/ferry/internal/transfer"
	"github.com/rileyhilliard/ferry/internal/transport"
)

// app bundles what the commands need, wired from the loaded config.
type app struct {
	cfg       *config.Config
	store     *profile.Store
	browser   *remote.Browser
	transfers *transfer.Service
	local     *localfs.FS

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// newExecutor builds the process runner. interactive is true when a TUI owns
// the terminal, so children must not read from it. Tests swap this out.
var newExecutor = func(interactive bool) runner.Executor {
	r := runner.New(logger.NewEnvLogger("[runner]"))
	if interactive {
		r.Stdin = nil
	}
	return r
}

func newApp(cfg *config.Config, interactive bool) *app {
	exec := newExecutor(interactive)
	injector := askpass.NewInjector(cfg.AskpassDir(), logger.NewEnvLogger("[askpass]"))
	opts := transport.FromConfig(cfg)

	return &app{
		cfg:       cfg,
		store:     profile.NewStore(cfg.Profiles.Path),
		browser:   remote.NewBrowser(exec, injector, opts, logger.NewEnvLogger("[remote]")),
		transfers: transfer.NewService(exec, injector, opts, logger.NewEnvLogger("[transfer]")),
		local:     localfs.New(),
		in:        os.Stdin,
		out:       os.Stdout,
		errOut:    os.Stderr,
	}
}

// newSession starts a disconnected session at the configured directories.
func (a *app) newSession() *session.Session {
	return session.New(a.browser, a.transfers, a.local, session.Options{
		RemotePath: a.cfg.Browse.RemotePath,
		LocalPath:  a.cfg.Browse.LocalPath,
	}, logger.NewEnvLogger("[session]"))
}
