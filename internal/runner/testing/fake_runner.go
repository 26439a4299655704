// Package testing provides test doubles for the runner package.
package testing

import (
	"context"
	"sync"

	"github.com/rileyhilliard/ferry/internal/runner"
)

// Call records one command handed to the fake.
type Call struct {
	Mode    string // "stream" or "capture"
	Command runner.Command
}

// FakeExecutor simulates transport runs for testing.
// It records calls and returns configured results.
type FakeExecutor struct {
	mu sync.Mutex

	// Output is handed to the sink chunk by chunk (Stream) or joined into
	// one call (Capture stderr).
	Output []string
	// Stdout is what Capture returns.
	Stdout string
	// Err is returned from every call.
	Err error
	// OnRun runs during each call, before results are returned. Tests use it
	// to inspect state that only exists while the child would be running.
	OnRun func(cmd runner.Command)

	Calls []Call
}

// NewFakeExecutor creates a fake that succeeds with no output.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{}
}

// Stream implements runner.Executor.
func (f *FakeExecutor) Stream(ctx context.Context, cmd runner.Command, sink runner.Sink) error {
	f.record("stream", cmd)

	if f.OnRun != nil {
		f.OnRun(cmd)
	}
	if sink != nil {
		for _, chunk := range f.Output {
			sink(chunk)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.Err
}

// Capture implements runner.Executor.
func (f *FakeExecutor) Capture(ctx context.Context, cmd runner.Command, sink runner.Sink) (string, error) {
	f.record("capture", cmd)

	if f.OnRun != nil {
		f.OnRun(cmd)
	}
	if sink != nil && len(f.Output) > 0 {
		var joined string
		for _, chunk := range f.Output {
			joined += chunk
		}
		sink(joined)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.Stdout, f.Err
}

func (f *FakeExecutor) record(mode string, cmd runner.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Mode: mode, Command: cmd})
}

// CallCount returns how many commands ran.
func (f *FakeExecutor) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// LastCall returns the most recent command. It panics when nothing ran.
func (f *FakeExecutor) LastCall() Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[len(f.Calls)-1]
}

var _ runner.Executor = (*FakeExecutor)(nil)
