package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/runner"
)

// BinaryCheck verifies a transport binary (ssh or scp) can be found.
type BinaryCheck struct {
	Tool   string // "ssh" or "scp"
	Binary string // configured name or path

	// resolve is swapped in tests.
	resolve func(string) (string, error)
}

// NewBinaryCheck checks that binary resolves on PATH.
func NewBinaryCheck(tool, binary string) *BinaryCheck {
	return &BinaryCheck{Tool: tool, Binary: binary, resolve: runner.Resolve}
}

func (c *BinaryCheck) Name() string     { return c.Tool + "_binary" }
func (c *BinaryCheck) Category() string { return "TRANSPORT" }

func (c *BinaryCheck) Run(ctx context.Context) CheckResult {
	path, err := c.resolve(c.Binary)
	if err != nil {
		suggestion := errors.SuggestionOf(err)
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s not found (%s)", c.Tool, c.Binary),
			Suggestion: suggestion,
		}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %s", c.Tool, path),
	}
}

// AskpassDirCheck verifies password helpers can be staged in Dir.
type AskpassDirCheck struct {
	Dir string
}

func (c *AskpassDirCheck) Name() string     { return "askpass_dir" }
func (c *AskpassDirCheck) Category() string { return "TRANSPORT" }

func (c *AskpassDirCheck) Run(ctx context.Context) CheckResult {
	info, err := os.Stat(c.Dir)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    "Askpass directory missing: " + c.Dir,
			Suggestion: "Create it, or set askpass.dir to a writable directory",
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Status:     StatusFail,
			Message:    "Askpass path is not a directory: " + c.Dir,
			Suggestion: "Set askpass.dir to a writable directory",
		}
	}

	probe, err := os.CreateTemp(c.Dir, ".ferry-doctor-*")
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    "Askpass directory not writable: " + c.Dir,
			Suggestion: "Password connections need it; fix its permissions or change askpass.dir",
		}
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())

	return CheckResult{
		Status:  StatusPass,
		Message: "Askpass directory writable: " + filepath.Clean(c.Dir),
	}
}
