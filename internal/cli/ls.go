package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/ferry/internal/listing"
	"github.com/rileyhilliard/ferry/internal/ui"
	"github.com/spf13/cobra"
)

// LsOptions holds the arguments and flags of `ls`.
type LsOptions struct {
	Connection    string
	RemotePath    string
	PasswordStdin bool
	JSON          bool
}

var lsOpts LsOptions

var lsCmd = &cobra.Command{
	Use:   "ls <connection> [remote-path]",
	Short: "List a remote directory",
	Long: `List a remote directory. Directories come first, then files, each group
in case-insensitive name order.

Examples:
  ferry ls prod
  ferry ls prod /var/log
  ferry ls lab '~/My Documents' --password-stdin < pw.txt`,
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: completeConnections,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := lsOpts
		opts.Connection = args[0]
		if len(args) == 2 {
			opts.RemotePath = args[1]
		}
		return newApp(currentSettings(), false).ls(cmd.Context(), opts)
	},
}

func init() {
	addPasswordStdinFlag(lsCmd, &lsOpts.PasswordStdin)
	lsCmd.Flags().BoolVar(&lsOpts.JSON, "json", false, "print entries as JSON")
	rootCmd.AddCommand(lsCmd)
}

func (a *app) ls(ctx context.Context, opts LsOptions) error {
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

	remotePath := opts.RemotePath
	if remotePath == "" {
		remotePath = a.cfg.Browse.RemotePath
	}

	var output strings.Builder
	spin := a.spinner("Listing " + remotePath + " on " + p.Name)
	entries, err := a.browser.ListDirectory(ctx, p, remotePath, password, func(text string) {
		output.WriteString(text)
	})
	spin.finish(err)
	a.reportTransportOutput(output.String(), err)

	if opts.JSON {
		if err != nil {
			return WriteJSONFromError(a.out, err)
		}
		if entries == nil {
			entries = []listing.Entry{}
		}
		return WriteJSONSuccess(a.out, entries)
	}
	if err != nil {
		return err
	}

	_, werr := a.out.Write([]byte(ui.RenderEntries(entries)))
	return werr
}

// reportTransportOutput shows what ssh or scp printed: always in verbose
// mode, otherwise only when the command failed.
func (a *app) reportTransportOutput(text string, err error) {
	text = strings.TrimRight(text, "\n")
	if text == "" || (err == nil && !isVerbose()) {
		return
	}
	fmt.Fprintln(a.errOut, ui.MutedStyle().Render(text))
}

// spinnerHandle is a Spinner that may be disabled.
type spinnerHandle struct {
	s *ui.Spinner
}

// spinner starts a spinner on stderr when it is a terminal and output isn't
// quiet or verbose (verbose output would tear through the animation).
func (a *app) spinner(label string) spinnerHandle {
	if isQuiet() || isVerbose() || a.errOut != os.Stderr || !ui.IsTerminal(os.Stderr) {
		return spinnerHandle{}
	}
	s := ui.NewSpinner(label, a.errOut)
	s.Start()
	return spinnerHandle{s: s}
}

func (h spinnerHandle) finish(err error) {
	if h.s != nil {
		h.s.Finish(err)
	}
}
