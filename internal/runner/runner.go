// Package runner launches the transport binaries and relays their output.
package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/logger"
)

// defaultWaitDelay bounds how long Wait lingers on output pipes held open by a
// grandchild (scp's own ssh) after the direct child has gone.
const defaultWaitDelay = 5 * time.Second

// Sink receives transport output. Calls for one command never overlap.
type Sink func(text string)

// Command is one invocation of an external tool.
type Command struct {
	Path string
	Args []string
	// Env is overlaid on the parent's environment.
	Env map[string]string
	// NullStdin attaches the null device instead of the parent's stdin.
	NullStdin bool
	// Host is the destination, used only to word connection failures.
	Host string
}

// String renders the command line. Env values are never included.
func (c Command) String() string {
	parts := append([]string{c.Path}, c.Args...)
	return strings.Join(parts, " ")
}

// Executor runs commands. Services take an Executor so tests can swap in a fake.
type Executor interface {
	// Stream relays output as it arrives and returns once the child exits.
	Stream(ctx context.Context, cmd Command, sink Sink) error
	// Capture returns stdout once the child exits. Any stderr is passed to
	// sink in a single call, whether or not the command succeeded.
	Capture(ctx context.Context, cmd Command, sink Sink) (string, error)
}

// Runner is the os/exec backed Executor.
type Runner struct {
	// Stdin is handed to children that don't ask for NullStdin. Nil means
	// the null device, which is what the TUI wants.
	Stdin io.Reader
	// WaitDelay overrides defaultWaitDelay when positive.
	WaitDelay time.Duration

	log logger.Logger
}

// New returns a Runner that shares the process's stdin with its children.
func New(log logger.Logger) *Runner {
	if log == nil {
		log = logger.Noop()
	}
	return &Runner{Stdin: os.Stdin, log: log}
}

// Resolve finds a transport binary on PATH. Paths with a separator are used as-is.
func Resolve(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("%s isn't installed locally", name),
			"Install OpenSSH: brew install openssh (macOS) or apt install openssh-client (Linux), or set transport."+filepath.Base(name)+" in your config")
	}
	return path, nil
}

// Stream implements Executor.
func (r *Runner) Stream(ctx context.Context, c Command, sink Sink) error {
	cmd := r.command(ctx, c)

	if sink != nil {
		var mu sync.Mutex
		emit := func(text string) {
			mu.Lock()
			defer mu.Unlock()
			sink(text)
		}
		// Writers rather than StdoutPipe, so os/exec owns the copying and
		// WaitDelay can cut it off.
		cmd.Stdout = &sinkWriter{emit: emit}
		cmd.Stderr = &sinkWriter{emit: emit}
	}

	r.log.Debug("stream: %s", c)
	if err := cmd.Start(); err != nil {
		return startError(c, err)
	}
	return r.result(ctx, c, cmd.Wait())
}

// Capture implements Executor.
func (r *Runner) Capture(ctx context.Context, c Command, sink Sink) (string, error) {
	cmd := r.command(ctx, c)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Debug("capture: %s", c)
	if err := cmd.Start(); err != nil {
		return "", startError(c, err)
	}
	err := cmd.Wait()

	if stderr.Len() > 0 && sink != nil {
		sink(stderr.String())
	}
	if err := r.result(ctx, c, err); err != nil {
		return stdout.String(), err
	}
	return stdout.String(), nil
}

func (r *Runner) command(ctx context.Context, c Command) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Env = MergeEnv(os.Environ(), c.Env)
	cmd.WaitDelay = r.waitDelay()
	if !c.NullStdin && r.Stdin != nil {
		cmd.Stdin = r.Stdin
	}
	return cmd
}

func (r *Runner) waitDelay() time.Duration {
	if r.WaitDelay > 0 {
		return r.WaitDelay
	}
	return defaultWaitDelay
}

// result maps a Wait error to ferry's error shapes.
func (r *Runner) result(ctx context.Context, c Command, err error) error {
	if err == nil {
		return nil
	}
	tool := filepath.Base(c.Path)

	// The child itself succeeded; only a grandchild kept the pipes open.
	if stderrors.Is(err, exec.ErrWaitDelay) && ctx.Err() == nil {
		r.log.Debug("%s exited but its output stayed open past %s", tool, r.waitDelay())
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		r.log.Debug("%s cancelled: %v", tool, ctxErr)
		return errors.WrapWithCode(ctxErr, errors.ErrExec,
			tool+" was cancelled",
			"")
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		code := exitErr.ExitCode()
		if code < 0 {
			return errors.WrapWithCode(err, errors.ErrExec,
				tool+" was killed by a signal",
				"Something outside ferry stopped the transfer.")
		}
		r.log.Debug("%s exited with %d", tool, code)
		return errors.NewTransferFailed(code, c.Host)
	}

	return errors.WrapWithCode(err, errors.ErrExec,
		"Lost track of "+tool,
		"Try running the command manually to see what's happening.")
}

func startError(c Command, err error) error {
	tool := filepath.Base(c.Path)
	return errors.WrapWithCode(err, errors.ErrExec,
		"Couldn't start "+tool,
		"Make sure "+tool+" is installed and on your PATH.")
}

// sinkWriter hands each write to emit as one chunk.
type sinkWriter struct {
	emit func(string)
}

func (w *sinkWriter) Write(p []byte) (int, error) {
	w.emit(string(p))
	return len(p), nil
}

// MergeEnv overlays extra on base (KEY=VALUE pairs). Overridden keys are
// replaced in place; new keys are appended in sorted order.
func MergeEnv(base []string, extra map[string]string) []string {
	merged := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(extra))

	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if val, ok := extra[key]; ok {
			if !seen[key] {
				merged = append(merged, key+"="+val)
				seen[key] = true
			}
			continue
		}
		merged = append(merged, kv)
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		merged = append(merged, k+"="+extra[k])
	}
	return merged
}
