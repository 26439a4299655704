package remote

import (
	"context"
	"testing"

	"github.com/rileyhilliard/ferry/internal/askpass"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/listing"
	"github.com/rileyhilliard/ferry/internal/logger"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/runner"
	runnertesting "github.com/rileyhilliard/ferry/internal/runner/testing"
	"github.com/rileyhilliard/ferry/internal/transport"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lsOutput = `total 8
drwxr-xr-x 2 u g 64 Jan 1 00:00 ./
drwxr-xr-x 9 u g 288 Jan 1 00:00 ../
-rw-r--r-- 1 u g 12 Jan 1 00:00 notes.txt
drwxr-xr-x 2 u g 64 Jan 1 00:00 logs/
`

func newTestBrowser(t *testing.T) (*Browser, *runnertesting.FakeExecutor, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/tmp", 0700))
	fake := runnertesting.NewFakeExecutor()
	b := NewBrowser(fake, askpass.NewInjectorWithFs(fs, "/tmp", logger.Noop()), transport.DefaultOptions(), logger.Noop())
	b.resolve = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	return b, fake, fs
}

func TestListDirectory_KeyAuth(t *testing.T) {
	b, fake, _ := newTestBrowser(t)
	fake.Stdout = lsOutput
	p := profile.New("box", "box.lan", "me", profile.KeyFile("/keys/box"))

	entries, err := b.ListDirectory(context.Background(), p, "/var", "", nil)
	require.NoError(t, err)

	assert.Equal(t, []listing.Entry{
		{Name: "logs", FullPath: "/var/logs", IsDirectory: true, Details: "drwxr-xr-x  64"},
		{Name: "notes.txt", FullPath: "/var/notes.txt", IsDirectory: false, Details: "-rw-r--r--  12"},
	}, entries)

	call := fake.LastCall()
	assert.Equal(t, "capture", call.Mode)
	assert.Equal(t, "/usr/bin/ssh", call.Command.Path)
	assert.Equal(t, []string{
		"-p", "22",
		"-o", "BatchMode=no",
		"-o", "StrictHostKeyChecking=accept-new",
		"-i", "/keys/box",
		"me@box.lan",
		"LC_ALL=C ls -la -p '/var'",
	}, call.Command.Args)
	assert.Empty(t, call.Command.Env)
	assert.False(t, call.Command.NullStdin)
	assert.Equal(t, "box.lan", call.Command.Host)
}

func TestListDirectory_PasswordAuth(t *testing.T) {
	b, fake, fs := newTestBrowser(t)
	fake.Stdout = lsOutput

	var scriptDuringRun string
	fake.OnRun = func(cmd runner.Command) {
		scriptDuringRun = cmd.Env[askpass.EnvAskpass]
		exists, err := afero.Exists(fs, scriptDuringRun)
		require.NoError(t, err)
		assert.True(t, exists, "helper must exist while ssh runs")
	}

	p := profile.New("box", "box.lan", "me", profile.Password())
	_, err := b.ListDirectory(context.Background(), p, "~", "pw", nil)
	require.NoError(t, err)

	call := fake.LastCall()
	assert.True(t, call.Command.NullStdin)
	assert.Equal(t, "pw", call.Command.Env[askpass.EnvPassword])
	assert.NotContains(t, call.Command.Args, "pw")
	assert.Equal(t, "LC_ALL=C ls -la -p ~", call.Command.Args[len(call.Command.Args)-1])

	exists, err := afero.Exists(fs, scriptDuringRun)
	require.NoError(t, err)
	assert.False(t, exists, "helper must be removed after ssh exits")
}

func TestListDirectory_MissingPassword(t *testing.T) {
	b, fake, _ := newTestBrowser(t)
	p := profile.New("box", "box.lan", "me", profile.Password())

	_, err := b.ListDirectory(context.Background(), p, "/", "", nil)

	assert.True(t, errors.IsCode(err, errors.ErrMissingPassword))
	assert.Zero(t, fake.CallCount())
}

func TestListDirectory_FailureCleansUp(t *testing.T) {
	b, fake, fs := newTestBrowser(t)
	fake.Output = []string{"ls: cannot access '/nope': No such file or directory\n"}
	fake.Err = errors.NewTransferFailed(2, "box.lan")

	var diagnostics []string
	p := profile.New("box", "box.lan", "me", profile.Password())
	_, err := b.ListDirectory(context.Background(), p, "/nope", "pw", func(s string) {
		diagnostics = append(diagnostics, s)
	})

	code, ok := errors.ExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 2, code)
	assert.Len(t, diagnostics, 1)

	leftovers, err := afero.ReadDir(fs, "/tmp")
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestListDirectory_EmptyPathListsRoot(t *testing.T) {
	b, fake, _ := newTestBrowser(t)
	fake.Stdout = "-rw-r--r-- 1 u g 1 Jan 1 00:00 etc-file\n"
	p := profile.New("box", "box.lan", "me", profile.KeyFile("/k"))

	entries, err := b.ListDirectory(context.Background(), p, "", "", nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/etc-file", entries[0].FullPath)
}

func TestListDirectory_InvalidProfile(t *testing.T) {
	b, fake, _ := newTestBrowser(t)
	p := profile.New("box", "", "me", profile.KeyFile("/k"))

	_, err := b.ListDirectory(context.Background(), p, "/", "", nil)
	assert.True(t, errors.IsCode(err, errors.ErrProfile))
	assert.Zero(t, fake.CallCount())
}

func TestListCommand(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/", "LC_ALL=C ls -la -p '/'"},
		{"/srv/my files", "LC_ALL=C ls -la -p '/srv/my files'"},
		{"/srv/it's", `LC_ALL=C ls -la -p '/srv/it'\''s'`},
		{"~/code", "LC_ALL=C ls -la -p ~/'code'"},
		{"~", "LC_ALL=C ls -la -p ~"},
		{"~/a b/~c", "LC_ALL=C ls -la -p ~/'a b/~c'"},
		{"/srv/~x", "LC_ALL=C ls -la -p '/srv/~x'"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ListCommand(tt.path, "C"))
		})
	}
}

func TestBuildListArgs_Port(t *testing.T) {
	p := profile.New("box", "box.lan", "me", profile.Password())
	p.Port = 2200

	args := BuildListArgs(p, "/", nil, transport.DefaultOptions())
	assert.Equal(t, []string{"-p", "2200"}, args[:2])
	assert.Equal(t, "me@box.lan", args[len(args)-2])
}
