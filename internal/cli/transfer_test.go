package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastTwo(args []string) (string, string) {
	return args[len(args)-2], args[len(args)-1]
}

func TestDefaultTargets(t *testing.T) {
	up := defaultTargets(TransferOptions{Direction: transfer.Upload, LocalPath: "/tmp/build/site"})
	assert.Equal(t, "site", up.RemotePath, "uploads land in the remote home")

	up = defaultTargets(TransferOptions{Direction: transfer.Upload, LocalPath: "/tmp/a.txt", RemotePath: "/srv/"})
	assert.Equal(t, "/srv/", up.RemotePath, "explicit target is kept")

	down := defaultTargets(TransferOptions{Direction: transfer.Download, RemotePath: "/var/log/app.log"})
	assert.Equal(t, "app.log", down.LocalPath)

	down = defaultTargets(TransferOptions{Direction: transfer.Download, RemotePath: "/srv/data/"})
	assert.Equal(t, "data", down.LocalPath)
}

func TestUpload(t *testing.T) {
	ta := newTestApp(t)
	ta.save(t, profile.New("prod", "prod.example.com", "deploy", profile.KeyFile("/keys/id")))

	local := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(local, []byte("pdf"), 0644))

	err := ta.transfer(context.Background(), TransferOptions{
		Connection: "prod",
		Direction:  transfer.Upload,
		LocalPath:  local,
		RemotePath: "/srv/reports/report.pdf",
	})
	require.NoError(t, err)

	call := ta.exec.LastCall()
	assert.Equal(t, "stream", call.Mode)
	src, dst := lastTwo(call.Command.Args)
	assert.Equal(t, local, src)
	assert.Equal(t, "deploy@prod.example.com:/srv/reports/report.pdf", dst)
	assert.NotContains(t, call.Command.Args, "-r")
	assert.Contains(t, ta.stdout.String(), "deploy@prod.example.com:/srv/reports/report.pdf")
}

func TestUpload_DirectoryIsRecursive(t *testing.T) {
	ta := newTestApp(t)
	ta.save(t, profile.New("prod", "h", "u", profile.KeyFile("/keys/id")))
	dir := t.TempDir()

	require.NoError(t, ta.transfer(context.Background(), TransferOptions{
		Connection: "prod",
		Direction:  transfer.Upload,
		LocalPath:  dir,
	}))

	args := ta.exec.LastCall().Command.Args
	assert.Contains(t, args, "-r")
	_, dst := lastTwo(args)
	assert.Equal(t, "u@h:"+filepath.Base(dir), dst)
}

func TestDownload(t *testing.T) {
	ta := newTestApp(t)
	ta.save(t, profile.New("prod", "h", "u", profile.KeyFile("/keys/id")))
	target := filepath.Join(t.TempDir(), "logs")

	require.NoError(t, ta.transfer(context.Background(), TransferOptions{
		Connection: "prod",
		Direction:  transfer.Download,
		RemotePath: "/var/log/app",
		LocalPath:  target,
		Recursive:  true,
	}))

	args := ta.exec.LastCall().Command.Args
	assert.Contains(t, args, "-r")
	src, dst := lastTwo(args)
	assert.Equal(t, "u@h:/var/log/app", src)
	assert.Equal(t, target, dst)
}

func TestTransfer_FailureKeepsExitCode(t *testing.T) {
	ta := newTestApp(t)
	ta.save(t, profile.New("prod", "h", "u", profile.KeyFile("/keys/id")))
	ta.exec.Output = []string{"scp: /srv/locked: Permission denied\n"}
	ta.exec.Err = errors.NewTransferFailed(1, "h")

	err := ta.transfer(context.Background(), TransferOptions{
		Connection: "prod",
		Direction:  transfer.Download,
		RemotePath: "/srv/locked",
		LocalPath:  filepath.Join(t.TempDir(), "locked"),
	})
	require.Error(t, err)
	assert.Equal(t, 1, exitStatus(err))
	assert.Contains(t, ta.stderr.String(), "Permission denied")
	assert.Empty(t, ta.stdout.String())
}

func TestTransfer_MissingPassword(t *testing.T) {
	ta := newTestApp(t)
	swapTerminal(t, false)
	ta.save(t, profile.New("lab", "h", "u", profile.Password()))

	err := ta.transfer(context.Background(), TransferOptions{
		Connection: "lab",
		Direction:  transfer.Download,
		RemotePath: "/etc/motd",
		LocalPath:  filepath.Join(t.TempDir(), "motd"),
	})
	assert.True(t, errors.IsCode(err, errors.ErrMissingPassword))
	assert.Zero(t, ta.exec.CallCount())
}

func TestTransferCommandsFlags(t *testing.T) {
	for _, cmd := range []string{"upload", "download"} {
		c, _, err := rootCmd.Find([]string{cmd})
		require.NoError(t, err)
		assert.NotNil(t, c.Flags().Lookup("recursive"), cmd)
		assert.NotNil(t, c.Flags().Lookup("password-stdin"), cmd)
	}
}
