package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rileyhilliard/ferry/internal/config"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/runner"
	runnertesting "github.com/rileyhilliard/ferry/internal/runner/testing"
	"github.com/stretchr/testify/require"
)

// withSettings installs cfg as the loaded config for the test.
func withSettings(t *testing.T, cfg *config.Config) {
	t.Helper()
	orig := settings
	t.Cleanup(func() { settings = orig })
	settings = cfg
}

// testApp is an app wired to a fake executor with captured output.
type testApp struct {
	*app
	exec   *runnertesting.FakeExecutor
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestApp builds an app on a temp connection store. /bin/sh stands in
// for ssh and scp so binary lookup succeeds; nothing actually runs it.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Profiles.Path = filepath.Join(dir, "connections.yaml")
	cfg.Askpass.Dir = dir
	cfg.Transport.SSH = "/bin/sh"
	cfg.Transport.SCP = "/bin/sh"
	cfg.Browse.LocalPath = dir
	withSettings(t, cfg)

	fake := runnertesting.NewFakeExecutor()
	origExec := newExecutor
	t.Cleanup(func() { newExecutor = origExec })
	newExecutor = func(bool) runner.Executor { return fake }

	ta := &testApp{
		app:    newApp(cfg, false),
		exec:   fake,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	ta.in = strings.NewReader("")
	ta.out = ta.stdout
	ta.errOut = ta.stderr
	return ta
}

// save stores a connection and returns it as saved.
func (ta *testApp) save(t *testing.T, p profile.Profile) profile.Profile {
	t.Helper()
	saved, err := ta.store.Upsert(p)
	require.NoError(t, err)
	return saved
}

// swapTerminal makes stdin look like a terminal (or not) for the test.
func swapTerminal(t *testing.T, terminal bool) {
	t.Helper()
	orig := stdinIsTerminal
	t.Cleanup(func() { stdinIsTerminal = orig })
	stdinIsTerminal = func() bool { return terminal }
}
