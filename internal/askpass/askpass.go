// Package askpass hands credentials to the ssh and scp binaries.
//
// Key auth becomes an "-i <path>" argument. Password auth stages a tiny
// SSH_ASKPASS helper script that prints the password from the child's
// environment, so the secret never appears in argv or on disk.
package askpass

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/logger"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/spf13/afero"
)

// Tool names the binary a credential is staged for. It only shows up in the
// helper script's file name.
type Tool string

const (
	ToolSSH Tool = "ssh"
	ToolSCP Tool = "scp"
)

// Environment understood by OpenSSH (and the helper script).
const (
	EnvAskpass        = "SSH_ASKPASS"
	EnvAskpassRequire = "SSH_ASKPASS_REQUIRE"
	EnvPassword       = "FERRY_ASKPASS_PASSWORD"
	EnvDisplay        = "DISPLAY"

	// DummyDisplay satisfies older OpenSSH builds that only consult
	// SSH_ASKPASS when DISPLAY is set.
	DummyDisplay = "ferry"
)

// Script is the body of every staged helper. printf, not echo: dash's echo
// rewrites backslashes and swallows a lone "-n".
const Script = "#!/bin/sh\nprintf '%s\\n' \"$" + EnvPassword + "\"\n"

// Credentials is what a single transport invocation needs to authenticate.
type Credentials struct {
	// ScriptPath is the staged helper, empty for key auth.
	ScriptPath string
	// Env is overlaid on the child's inherited environment.
	Env map[string]string
	// Args go before the destination, e.g. ["-i", "/home/me/.ssh/id_ed25519"].
	Args []string
	// NullStdin is set for password auth so nothing but the helper can answer a prompt.
	NullStdin bool

	fs   afero.Fs
	log  logger.Logger
	once sync.Once
}

// Injector stages credentials in a directory.
type Injector struct {
	fs  afero.Fs
	dir string
	log logger.Logger
}

// NewInjector stages helpers under dir on the OS filesystem. An empty dir
// means os.TempDir().
func NewInjector(dir string, log logger.Logger) *Injector {
	return NewInjectorWithFs(afero.NewOsFs(), dir, log)
}

// NewInjectorWithFs is NewInjector on an arbitrary filesystem.
func NewInjectorWithFs(fs afero.Fs, dir string, log logger.Logger) *Injector {
	if dir == "" {
		dir = os.TempDir()
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Injector{fs: fs, dir: dir, log: log}
}

// Stage prepares credentials for one invocation of tool. Callers must
// defer Cleanup on the result as soon as Stage returns without error.
func (i *Injector) Stage(auth profile.AuthMethod, password string, tool Tool) (*Credentials, error) {
	if !auth.IsPassword() {
		if auth.KeyPath() == "" {
			return nil, errors.NewMissingKeyPath()
		}
		return &Credentials{
			Env:  map[string]string{},
			Args: []string{"-i", auth.KeyPath()},
			fs:   i.fs,
			log:  i.log,
		}, nil
	}

	if password == "" {
		return nil, errors.NewMissingPassword()
	}

	path, err := i.writeScript(tool)
	if err != nil {
		return nil, err
	}
	i.log.Debug("staged %s askpass helper %s", tool, path)

	return &Credentials{
		ScriptPath: path,
		Env: map[string]string{
			EnvAskpass:        path,
			EnvAskpassRequire: "force",
			EnvPassword:       password,
			EnvDisplay:        DummyDisplay,
		},
		NullStdin: true,
		fs:        i.fs,
		log:       i.log,
	}, nil
}

func (i *Injector) writeScript(tool Tool) (string, error) {
	path := filepath.Join(i.dir, fmt.Sprintf("ferry-%s-askpass-%s.sh", tool, uuid.NewString()))

	f, err := i.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0700)
	if err != nil {
		return "", stagingError(err, i.dir)
	}
	if _, err := f.Write([]byte(Script)); err != nil {
		_ = f.Close()
		_ = i.fs.Remove(path)
		return "", stagingError(err, i.dir)
	}
	if err := f.Close(); err != nil {
		_ = i.fs.Remove(path)
		return "", stagingError(err, i.dir)
	}
	// OpenFile's mode is filtered by the umask.
	if err := i.fs.Chmod(path, 0700); err != nil {
		_ = i.fs.Remove(path)
		return "", stagingError(err, i.dir)
	}
	return path, nil
}

func stagingError(err error, dir string) error {
	return errors.WrapWithCode(err, errors.ErrExec,
		"Couldn't stage the password helper",
		fmt.Sprintf("Check that %s exists and is writable, or set askpass.dir in your config.", dir))
}

// Cleanup removes the staged helper. Safe to call more than once; only the
// first call does anything. Failures are logged, never returned.
func (c *Credentials) Cleanup() {
	if c == nil {
		return
	}
	c.once.Do(func() {
		if c.ScriptPath == "" {
			return
		}
		if err := c.fs.Remove(c.ScriptPath); err != nil && !os.IsNotExist(err) {
			c.log.Warn("couldn't remove askpass helper %s: %v", c.ScriptPath, err)
		}
	})
}
