package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rileyhilliard/ferry/internal/askpass"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/listing"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lsFixture = "total 8\n" +
	"drwxr-xr-x 2 u g 64 Jan 1 00:00 logs/\n" +
	"-rw-r--r-- 1 u g 12 Jan 1 00:00 notes.txt\n" +
	"drwxr-xr-x 2 u g 64 Jan 1 00:00 ./\n" +
	"drwxr-xr-x 2 u g 64 Jan 1 00:00 ../\n"

func TestLs_RendersEntries(t *testing.T) {
	ta := newTestApp(t)
	ta.save(t, profile.New("prod", "prod.example.com", "deploy", profile.KeyFile("/keys/id")))
	ta.exec.Stdout = lsFixture

	require.NoError(t, ta.ls(context.Background(), LsOptions{Connection: "prod", RemotePath: "/srv"}))

	out := ta.stdout.String()
	assert.Contains(t, out, "logs")
	assert.Contains(t, out, "notes.txt")
	assert.Less(t, strings.Index(out, "logs"), strings.Index(out, "notes.txt"), "directories first")

	call := ta.exec.LastCall()
	assert.Equal(t, "capture", call.Mode)
	assert.Equal(t, "/bin/sh", call.Command.Path)
	assert.Contains(t, call.Command.Args, "deploy@prod.example.com")
	assert.Contains(t, call.Command.Args[len(call.Command.Args)-1], "ls -la -p '/srv'")
}

func TestLs_DefaultPathFromConfig(t *testing.T) {
	ta := newTestApp(t)
	ta.cfg.Browse.RemotePath = "/var/www"
	ta.save(t, profile.New("prod", "h", "u", profile.KeyFile("/keys/id")))

	require.NoError(t, ta.ls(context.Background(), LsOptions{Connection: "prod"}))
	args := ta.exec.LastCall().Command.Args
	assert.Contains(t, args[len(args)-1], "'/var/www'")
}

func TestLs_JSON(t *testing.T) {
	ta := newTestApp(t)
	ta.save(t, profile.New("prod", "h", "u", profile.KeyFile("/keys/id")))
	ta.exec.Stdout = lsFixture

	require.NoError(t, ta.ls(context.Background(), LsOptions{Connection: "prod", RemotePath: "/srv", JSON: true}))

	var env struct {
		Success bool            `json:"success"`
		Data    []listing.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, []listing.Entry{
		{Name: "logs", FullPath: "/srv/logs", IsDirectory: true, Details: "drwxr-xr-x  64"},
		{Name: "notes.txt", FullPath: "/srv/notes.txt", Details: "-rw-r--r--  12"},
	}, env.Data)
}

func TestLs_PasswordFromStdin(t *testing.T) {
	ta := newTestApp(t)
	ta.save(t, profile.New("lab", "h", "u", profile.Password()))
	ta.in = strings.NewReader("s3cret\n")

	require.NoError(t, ta.ls(context.Background(), LsOptions{Connection: "lab", RemotePath: "/", PasswordStdin: true}))

	cmd := ta.exec.LastCall().Command
	assert.Equal(t, "s3cret", cmd.Env[askpass.EnvPassword])
	assert.True(t, cmd.NullStdin)
}

func TestLs_MissingPassword(t *testing.T) {
	ta := newTestApp(t)
	swapTerminal(t, false)
	ta.save(t, profile.New("lab", "h", "u", profile.Password()))

	err := ta.ls(context.Background(), LsOptions{Connection: "lab"})
	assert.True(t, errors.IsCode(err, errors.ErrMissingPassword))
	assert.Zero(t, ta.exec.CallCount(), "nothing runs without a password")
}

func TestLs_FailureShowsTransportOutput(t *testing.T) {
	ta := newTestApp(t)
	ta.save(t, profile.New("prod", "h", "u", profile.KeyFile("/keys/id")))
	ta.exec.Output = []string{"ls: cannot access '/nope': No such file or directory\n"}
	ta.exec.Err = errors.New(errors.ErrExec, "Remote command failed with exit code 2", "")

	err := ta.ls(context.Background(), LsOptions{Connection: "prod", RemotePath: "/nope"})
	assert.True(t, errors.IsCode(err, errors.ErrExec))
	assert.Contains(t, ta.stderr.String(), "No such file or directory")
	assert.Empty(t, ta.stdout.String())
}

func TestLs_FailureJSON(t *testing.T) {
	ta := newTestApp(t)
	ta.save(t, profile.New("prod", "h", "u", profile.KeyFile("/keys/id")))
	ta.exec.Err = errors.NewTransferFailed(255, "h")

	require.NoError(t, ta.ls(context.Background(), LsOptions{Connection: "prod", JSON: true}))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, errors.ErrTransferFailed, env.Error.Code)
}

func TestLs_UnknownConnection(t *testing.T) {
	ta := newTestApp(t)

	err := ta.ls(context.Background(), LsOptions{Connection: "ghost"})
	assert.True(t, errors.IsCode(err, errors.ErrProfile))
}
