package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/ferry/internal/paths"
	"github.com/rileyhilliard/ferry/internal/transfer"
	"github.com/rileyhilliard/ferry/internal/ui"
	"github.com/spf13/cobra"
)

// TransferOptions holds the arguments and flags of upload and download.
type TransferOptions struct {
	Connection    string
	Direction     transfer.Direction
	LocalPath     string
	RemotePath    string
	Recursive     bool
	PasswordStdin bool
}

var (
	uploadOpts   TransferOptions
	downloadOpts TransferOptions
)

var uploadCmd = &cobra.Command{
	Use:   "upload <connection> <local-path> [remote-path]",
	Short: "Copy a local file or directory to the remote host",
	Long: `Copy a local file or directory to the remote host with scp.

Without a remote path the item lands in the remote home directory under its
own name. Directories are always copied recursively.

Examples:
  ferry upload prod ./report.pdf /srv/reports/
  ferry upload prod ./site /var/www/site`,
	Args:              cobra.RangeArgs(2, 3),
	ValidArgsFunction: completeConnections,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := uploadOpts
		opts.Direction = transfer.Upload
		opts.Connection, opts.LocalPath = args[0], args[1]
		if len(args) == 3 {
			opts.RemotePath = args[2]
		}
		return newApp(currentSettings(), false).transfer(cmd.Context(), opts)
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <connection> <remote-path> [local-path]",
	Short: "Copy a remote file or directory to this machine",
	Long: `Copy a remote file or directory here with scp.

Without a local path the item is saved in the current directory under its
own name. Use -r for remote directories.

Examples:
  ferry download prod /var/log/app.log
  ferry download prod /srv/backups ~/backups -r`,
	Args:              cobra.RangeArgs(2, 3),
	ValidArgsFunction: completeConnections,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := downloadOpts
		opts.Direction = transfer.Download
		opts.Connection, opts.RemotePath = args[0], args[1]
		if len(args) == 3 {
			opts.LocalPath = args[2]
		}
		return newApp(currentSettings(), false).transfer(cmd.Context(), opts)
	},
}

func init() {
	for _, c := range []struct {
		cmd  *cobra.Command
		opts *TransferOptions
	}{{uploadCmd, &uploadOpts}, {downloadCmd, &downloadOpts}} {
		c.cmd.Flags().BoolVarP(&c.opts.Recursive, "recursive", "r", false, "copy directories recursively")
		addPasswordStdinFlag(c.cmd, &c.opts.PasswordStdin)
		rootCmd.AddCommand(c.cmd)
	}
}

// defaultTargets fills in the optional side of a transfer.
func defaultTargets(opts TransferOptions) TransferOptions {
	switch opts.Direction {
	case transfer.Upload:
		if opts.RemotePath == "" {
			// relative scp paths resolve against the remote home
			opts.RemotePath = filepath.Base(paths.ExpandLocal(opts.LocalPath))
		}
	case transfer.Download:
		if opts.LocalPath == "" {
			opts.LocalPath = paths.BaseRemote(opts.RemotePath)
			if opts.LocalPath == "/" || opts.LocalPath == paths.Home {
				opts.LocalPath = "."
			}
		}
	}
	return opts
}

func (a *app) transfer(ctx context.Context, opts TransferOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := a.store.Find(opts.Connection)
	if err != nil {
		return err
	}
	password, err := obtainPassword(p, opts.PasswordStdin, a.in)
	if err != nil {
		return err
	}
	opts = defaultTargets(opts)

	src, dst := opts.LocalPath, p.RemoteSpec(opts.RemotePath)
	verb := "Uploading"
	if opts.Direction == transfer.Download {
		src, dst = p.RemoteSpec(opts.RemotePath), opts.LocalPath
		verb = "Downloading"
	}

	var output strings.Builder
	sink := func(text string) { output.WriteString(text) }
	if isVerbose() {
		sink = func(text string) { fmt.Fprint(a.errOut, text) }
	}

	spin := a.spinner(fmt.Sprintf("%s %s %s %s", verb, src, ui.SymbolArrow, dst))
	err = a.transfers.Transfer(ctx, transfer.Request{
		Profile:    p,
		Direction:  opts.Direction,
		LocalPath:  opts.LocalPath,
		RemotePath: opts.RemotePath,
		Password:   password,
		Recursive:  opts.Recursive,
	}, sink)
	spin.finish(err)

	if err != nil {
		a.reportTransportOutput(output.String(), err)
		return err
	}
	if !isQuiet() {
		fmt.Fprintf(a.out, "%s %s %s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), src, ui.SymbolArrow, dst)
	}
	return nil
}
