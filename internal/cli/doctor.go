package cli

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/ferry/internal/doctor"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/ui"
	"github.com/spf13/cobra"
)

// DoctorOptions holds the arguments and flags of `doctor`.
type DoctorOptions struct {
	Connections   []string
	PasswordStdin bool
	JSON          bool
}

var doctorOpts DoctorOptions

var doctorCmd = &cobra.Command{
	Use:   "doctor [connection...]",
	Short: "Check ferry's local setup and, optionally, connections",
	Long: `Check the config file, the ssh and scp binaries, the askpass directory and
the saved connections' key files. Name connections to also list their remote
home directory as a live test.

Examples:
  ferry doctor
  ferry doctor prod lab`,
	ValidArgsFunction: completeConnections,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := doctorOpts
		opts.Connections = args
		return newApp(currentSettings(), false).doctor(cmd.Context(), opts)
	},
}

func init() {
	addPasswordStdinFlag(doctorCmd, &doctorOpts.PasswordStdin)
	doctorCmd.Flags().BoolVar(&doctorOpts.JSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(doctorCmd)
}

func (a *app) doctor(ctx context.Context, opts DoctorOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	checks := []doctor.Check{
		&doctor.ConfigFileCheck{ConfigPath: cfgFile},
		&doctor.ConfigSchemaCheck{ConfigPath: cfgFile},
		doctor.NewBinaryCheck("ssh", a.cfg.Transport.SSH),
		doctor.NewBinaryCheck("scp", a.cfg.Transport.SCP),
		&doctor.AskpassDirCheck{Dir: a.cfg.AskpassDir()},
	}
	checks = append(checks, doctor.NewConnectionChecks(a.store)...)
	results := doctor.RunAll(ctx, checks)

	remote, err := a.remoteChecks(opts)
	if err != nil {
		return err
	}
	if len(remote) > 0 {
		spin := a.spinner(fmt.Sprintf("Contacting %d connection%s", len(remote), plural(len(remote))))
		remoteResults := doctor.RunAllParallel(ctx, remote)
		spin.finish(nil)
		results = append(results, remoteResults...)
	}

	if opts.JSON {
		return WriteJSONSuccess(a.out, results)
	}
	a.printDoctorResults(results)

	if doctor.HasFailures(results) {
		return errors.New(errors.ErrExec, doctor.Summary(results), "See the suggestions above.")
	}
	return nil
}

// remoteChecks builds a live check per named connection. A password read
// from stdin serves every password connection named.
func (a *app) remoteChecks(opts DoctorOptions) ([]doctor.Check, error) {
	var stdinPassword *string
	var checks []doctor.Check

	for _, name := range opts.Connections {
		p, err := a.store.Find(name)
		if err != nil {
			return nil, err
		}

		var password string
		switch {
		case !p.Auth.IsPassword():
		case opts.PasswordStdin:
			if stdinPassword == nil {
				pw, err := obtainPassword(p, true, a.in)
				if err != nil {
					return nil, err
				}
				stdinPassword = &pw
			}
			password = *stdinPassword
		case stdinIsTerminal():
			if password, err = promptPassword(p); err != nil {
				return nil, err
			}
		}

		checks = append(checks, &doctor.ConnectionCheck{Profile: p, Password: password, Lister: a.browser})
	}
	return checks, nil
}

func (a *app) printDoctorResults(results []doctor.CheckResult) {
	grouped := doctor.GroupByCategory(results)
	for _, category := range doctor.Categories {
		group := grouped[category]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintln(a.out, ui.InfoStyle().Bold(true).Render(category))
		for _, r := range group {
			fmt.Fprintf(a.out, "  %s %s\n", statusSymbol(r.Status), r.Message)
			if r.Suggestion != "" && r.Status != doctor.StatusPass {
				fmt.Fprintf(a.out, "    %s\n", ui.MutedStyle().Render(r.Suggestion))
			}
		}
		fmt.Fprintln(a.out)
	}
	fmt.Fprintln(a.out, doctor.Summary(results))
}

func statusSymbol(s doctor.CheckStatus) string {
	switch s {
	case doctor.StatusPass:
		return ui.SuccessStyle().Render(ui.SymbolSuccess)
	case doctor.StatusWarn:
		return ui.WarningStyle().Render(ui.SymbolWarning)
	default:
		return ui.ErrorStyle().Render(ui.SymbolFail)
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
