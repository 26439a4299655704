package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ferry/internal/browse"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/logger"
	"github.com/spf13/cobra"
)

var browsePasswordStdin bool

var browseCmd = &cobra.Command{
	Use:   "browse [connection]",
	Short: "Browse the remote and local filesystems side by side",
	Long: `Open an interactive two-pane browser: the remote host on the left, this
machine on the right.

Keys:
  enter / →      open directory
  backspace / ←  up a level
  tab            switch pane
  u / d          upload the local selection / download the remote selection
  p              type a path to go to
  n / e          new local folder / rename local item
  r              refresh both panes
  pgup / pgdn    scroll the ssh/scp log
  ?              more help
  q              quit`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeConnections,
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) == 1 {
			name = args[0]
		}
		return newApp(currentSettings(), true).browse(cmd.Context(), name, browsePasswordStdin)
	},
}

func init() {
	addPasswordStdinFlag(browseCmd, &browsePasswordStdin)
	rootCmd.AddCommand(browseCmd)
}

func (a *app) browse(ctx context.Context, name string, passwordStdin bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !stdinIsTerminal() && !passwordStdin {
		return errors.New(errors.ErrExec,
			"browse needs a terminal",
			"Use ferry ls, upload and download in scripts.")
	}

	p, err := a.resolveConnection(name)
	if err != nil {
		return err
	}
	password, err := obtainPassword(p, passwordStdin, a.in)
	if err != nil {
		return err
	}

	sess := a.newSession()
	if err := sess.Connect(p, password); err != nil {
		return err
	}
	defer sess.Disconnect()

	// Log lines on stderr would tear through the alternate screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(a.errOut)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if passwordStdin {
		// stdin carried the password; keys come from the controlling tty
		opts = append(opts, tea.WithInputTTY())
	}
	if _, err := tea.NewProgram(browse.NewModel(ctx, sess), opts...).Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"The browser stopped unexpectedly",
			"Run with FERRY_DEBUG=1 and try again.")
	}
	return nil
}
