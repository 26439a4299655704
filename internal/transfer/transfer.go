// Package transfer copies files between the local machine and a remote host with scp.
package transfer

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/ferry/internal/askpass"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/logger"
	"github.com/rileyhilliard/ferry/internal/paths"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/runner"
	"github.com/rileyhilliard/ferry/internal/transport"
	"github.com/spf13/afero"
)

// Direction says which side is the source.
type Direction int

const (
	// Upload copies LocalPath to RemotePath.
	Upload Direction = iota
	// Download copies RemotePath to LocalPath.
	Download
)

func (d Direction) String() string {
	switch d {
	case Upload:
		return "upload"
	case Download:
		return "download"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Request describes one scp invocation.
type Request struct {
	Profile    profile.Profile
	Direction  Direction
	LocalPath  string
	RemotePath string
	// Password is used for password-auth profiles and dropped after the call.
	Password string
	// Recursive asks for -r. It is implied whenever LocalPath is a directory.
	Recursive bool
}

// Service runs transfers. It does not serialize calls; callers that want one
// transfer at a time gate it themselves.
type Service struct {
	exec     runner.Executor
	injector *askpass.Injector
	opts     transport.Options
	fs       afero.Fs
	log      logger.Logger

	// resolve locates the scp binary; swapped in tests.
	resolve func(string) (string, error)
}

// NewService creates a Service that inspects local paths on the OS filesystem.
func NewService(exec runner.Executor, injector *askpass.Injector, opts transport.Options, log logger.Logger) *Service {
	return NewServiceWithFs(exec, injector, opts, afero.NewOsFs(), log)
}

// NewServiceWithFs is NewService with an arbitrary filesystem for local stats.
func NewServiceWithFs(exec runner.Executor, injector *askpass.Injector, opts transport.Options, fs afero.Fs, log logger.Logger) *Service {
	if log == nil {
		log = logger.Noop()
	}
	return &Service{
		exec:     exec,
		injector: injector,
		opts:     opts,
		fs:       fs,
		log:      log,
		resolve:  runner.Resolve,
	}
}

// Transfer runs scp for req and returns once it exits. Output is streamed to
// onOutput as scp produces it.
func (s *Service) Transfer(ctx context.Context, req Request, onOutput runner.Sink) error {
	if err := req.Profile.Validate(); err != nil {
		return err
	}
	if req.LocalPath == "" || req.RemotePath == "" {
		return errors.New(errors.ErrLocal,
			"Both a local and a remote path are needed for a "+req.Direction.String(),
			"Pass both paths, e.g. ferry upload prod ./build /srv/app")
	}

	scpPath, err := s.resolve(s.opts.SCP)
	if err != nil {
		return err
	}

	creds, err := s.injector.Stage(req.Profile.Auth, req.Password, askpass.ToolSCP)
	if err != nil {
		return err
	}
	defer creds.Cleanup()

	localPath := paths.ExpandLocal(req.LocalPath)
	recursive := req.Recursive || s.isDir(localPath)

	args := BuildArgs(req, localPath, recursive, creds.Args, s.opts)
	cmd := runner.Command{
		Path:      scpPath,
		Args:      args,
		Env:       creds.Env,
		NullStdin: creds.NullStdin,
		Host:      req.Profile.Host,
	}

	s.log.Info("%s %s -> %s", req.Direction, args[len(args)-2], args[len(args)-1])
	if err := s.exec.Stream(ctx, cmd, onOutput); err != nil {
		s.log.Debug("%s failed: %v", req.Direction, errors.Summary(err))
		return err
	}
	return nil
}

func (s *Service) isDir(path string) bool {
	isDir, err := afero.IsDir(s.fs, path)
	return err == nil && isDir
}

// BuildArgs constructs the scp arguments. localPath must already be expanded.
// Exported for testing command construction without running scp.
func BuildArgs(req Request, localPath string, recursive bool, authArgs []string, opts transport.Options) []string {
	args := opts.CommonArgs("-P", req.Profile.EffectivePort())
	args = append(args, authArgs...)
	if recursive {
		args = append(args, "-r")
	}

	remote := req.Profile.RemoteSpec(req.RemotePath)
	if req.Direction == Download {
		return append(args, remote, localPath)
	}
	return append(args, localPath, remote)
}
