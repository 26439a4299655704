package cli

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/paths"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/ui"
	"github.com/rileyhilliard/ferry/pkg/sshutil"
	"github.com/spf13/cobra"
)

// ConnectionAddOptions holds the flags of `connection add`.
type ConnectionAddOptions struct {
	Name     string
	Host     string
	Port     int
	User     string
	Key      string
	Password bool
}

// ConnectionImportOptions holds the flags of `connection import`.
type ConnectionImportOptions struct {
	Alias     string
	Name      string
	SSHConfig string
}

// Swapped in tests.
var (
	fillConnectionForm = runConnectionForm
	confirmRemoval     = huhConfirmRemoval
	currentUsername    = func() string {
		if u, err := user.Current(); err == nil {
			return u.Username
		}
		return os.Getenv("USER")
	}
)

var (
	addOpts    ConnectionAddOptions
	importOpts ConnectionImportOptions
	removeYes  bool
	listJSON   bool
)

var connectionCmd = &cobra.Command{
	Use:     "connection",
	Aliases: []string{"conn"},
	Short:   "Manage saved connections",
	Long: `Saved connections hold a host, port, user and how to authenticate.
Passwords are never stored; ferry asks for them when needed.`,
}

var connectionAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Save a new connection",
	Long: `Save a new connection. Without --host and --user a form asks for the details.

Examples:
  ferry connection add prod --host prod.example.com --user deploy --key ~/.ssh/id_ed25519
  ferry connection add lab --host 10.0.0.2 --user me --password`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := addOpts
		if len(args) == 1 {
			opts.Name = args[0]
		}
		return newApp(currentSettings(), false).connectionAdd(opts)
	},
}

var connectionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved connections",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp(currentSettings(), false).connectionList(listJSON)
	},
}

var connectionRemoveCmd = &cobra.Command{
	Use:               "remove [name]",
	Aliases:           []string{"rm"},
	Short:             "Delete a saved connection",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeConnections,
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) == 1 {
			name = args[0]
		}
		return newApp(currentSettings(), false).connectionRemove(name, removeYes)
	},
}

var connectionImportCmd = &cobra.Command{
	Use:   "import [alias]",
	Short: "Save a connection from ~/.ssh/config",
	Long: `Turn a Host entry from your ssh config into a saved connection. HostName,
User, Port and IdentityFile are carried over; entries without an
IdentityFile use password auth.

Examples:
  ferry connection import          # pick from the Host entries
  ferry connection import gpu-box --name gpu`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := importOpts
		if len(args) == 1 {
			opts.Alias = args[0]
		}
		return newApp(currentSettings(), false).connectionImport(opts)
	},
}

func init() {
	f := connectionAddCmd.Flags()
	f.StringVar(&addOpts.Host, "host", "", "hostname or IP address")
	f.IntVar(&addOpts.Port, "port", profile.DefaultPort, "ssh port")
	f.StringVarP(&addOpts.User, "user", "u", "", "remote username")
	f.StringVarP(&addOpts.Key, "key", "i", "", "private key file (key auth)")
	f.BoolVar(&addOpts.Password, "password", false, "use password auth (asked for on each connection)")
	connectionAddCmd.MarkFlagsMutuallyExclusive("key", "password")

	connectionListCmd.Flags().BoolVar(&listJSON, "json", false, "print connections as JSON")
	connectionRemoveCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "don't ask for confirmation")

	connectionImportCmd.Flags().StringVar(&importOpts.Name, "name", "", "save under this name instead of the alias")
	connectionImportCmd.Flags().StringVar(&importOpts.SSHConfig, "ssh-config", "", "ssh config file (default ~/.ssh/config)")

	connectionCmd.AddCommand(connectionAddCmd, connectionListCmd, connectionRemoveCmd, connectionImportCmd)
	rootCmd.AddCommand(connectionCmd)
}

func (a *app) connectionAdd(opts ConnectionAddOptions) error {
	if opts.Name == "" || opts.Host == "" || opts.User == "" {
		if !stdinIsTerminal() {
			return errors.New(errors.ErrProfile,
				"A name, --host and --user are required",
				"e.g. ferry connection add prod --host prod.example.com --user deploy")
		}
		if err := fillConnectionForm(&opts); err != nil {
			return err
		}
	}

	auth := profile.Password()
	if opts.Key != "" {
		keyPath := paths.ExpandLocal(opts.Key)
		info, err := sshutil.CheckPrivateKey(keyPath)
		if err != nil {
			return err
		}
		if info.Encrypted && !isQuiet() {
			ui.PrintWarning(keyPath + " is passphrase protected; ssh will ask for the passphrase")
		}
		auth = profile.KeyFile(keyPath)
	}

	p := profile.New(strings.TrimSpace(opts.Name), strings.TrimSpace(opts.Host), strings.TrimSpace(opts.User), auth)
	if opts.Port != 0 {
		p.Port = opts.Port
	}

	saved, err := a.store.Upsert(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Saved connection '%s' (%s)\n", ui.SuccessStyle().Render(ui.SymbolSuccess), saved.Name, describeProfile(saved))
	return nil
}

func (a *app) connectionList(asJSON bool) error {
	profiles, err := a.store.Load()
	if err != nil {
		return err
	}
	if asJSON {
		if profiles == nil {
			profiles = []profile.Profile{}
		}
		return WriteJSONSuccess(a.out, profiles)
	}

	if len(profiles) == 0 {
		fmt.Fprintln(a.out, "No connections saved.")
		fmt.Fprintln(a.out, ui.MutedStyle().Render("Add one with: ferry connection add, or ferry connection import"))
		return nil
	}

	rows := make([][]string, len(profiles))
	for i, p := range profiles {
		rows[i] = []string{p.Name, p.Destination() + ":" + strconv.Itoa(p.EffectivePort()), p.Auth.String()}
	}
	fmt.Fprintln(a.out, ui.RenderSimpleTable(
		[]ui.TableColumn{{Title: "NAME"}, {Title: "DESTINATION"}, {Title: "AUTH"}},
		rows,
	))
	return nil
}

func (a *app) connectionRemove(name string, yes bool) error {
	p, err := a.resolveConnection(name)
	if err != nil {
		return err
	}

	if !yes {
		if !stdinIsTerminal() {
			return errors.New(errors.ErrProfile,
				fmt.Sprintf("Not removing '%s' without confirmation", p.Name),
				"Pass --yes to remove it non-interactively.")
		}
		ok, err := confirmRemoval(p)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
	}

	removed, err := a.store.Remove(p.ID.String())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Removed connection '%s'\n", ui.SuccessStyle().Render(ui.SymbolSuccess), removed.Name)
	return nil
}

func (a *app) connectionImport(opts ConnectionImportOptions) error {
	configPath := opts.SSHConfig
	if configPath == "" {
		configPath = sshutil.DefaultConfigPath()
	}
	configPath = paths.ExpandLocal(configPath)

	alias := opts.Alias
	if alias == "" {
		picked, err := pickSSHHost(configPath)
		if err != nil {
			return err
		}
		if picked == "" {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
		alias = picked
	}

	entry, ok, err := sshutil.LookupHost(configPath, alias)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrProfile,
			"Couldn't read "+configPath,
			"Check the file is a valid ssh config.")
	}
	if !ok {
		return errors.New(errors.ErrProfile,
			fmt.Sprintf("No Host '%s' in %s", alias, configPath),
			"Run ferry connection import without an alias to pick from the list.")
	}

	p, err := profile.FromSSHHost(entry, currentUsername())
	if err != nil {
		return err
	}
	if opts.Name != "" {
		p.Name = opts.Name
	}
	if keyPath := p.Auth.KeyPath(); keyPath != "" {
		if _, err := sshutil.CheckPrivateKey(keyPath); err != nil && !isQuiet() {
			ui.PrintWarning(errors.Summary(err))
		}
	}

	saved, err := a.store.Upsert(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Imported '%s' as '%s' (%s)\n", ui.SuccessStyle().Render(ui.SymbolSuccess), alias, saved.Name, describeProfile(saved))
	return nil
}

// pickSSHHost lets the user choose a Host entry. Empty means cancelled.
func pickSSHHost(configPath string) (string, error) {
	entries, err := sshutil.ParseSSHConfigFile(configPath)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrProfile,
			"Couldn't read "+configPath,
			"Check the file is a valid ssh config.")
	}
	if len(entries) == 0 {
		return "", errors.New(errors.ErrProfile,
			"No Host entries found in "+configPath,
			"Add one there, or use ferry connection add.")
	}
	if len(entries) > 1 && !stdinIsTerminal() {
		return "", errors.New(errors.ErrProfile,
			"No alias given",
			"Name the Host entry to import: ferry connection import <alias>")
	}

	choices := make([]ui.Choice, len(entries))
	for i, e := range entries {
		choices[i] = ui.Choice{Key: e.Alias, Detail: e.Description(), Tags: []string{e.Hostname, e.User}}
	}
	picked, err := ui.Pick("Import from ssh config", choices)
	if err != nil || picked == nil {
		return "", err
	}
	return picked.Key, nil
}

func runConnectionForm(opts *ConnectionAddOptions) error {
	port := strconv.Itoa(opts.Port)
	if opts.Port == 0 {
		port = strconv.Itoa(profile.DefaultPort)
	}
	authKind := "password"
	if opts.Key != "" {
		authKind = "key"
	}
	notEmpty := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&opts.Name).Validate(notEmpty("name")),
			huh.NewInput().Title("Host").Placeholder("server.example.com").Value(&opts.Host).Validate(notEmpty("host")),
			huh.NewInput().Title("Port").Value(&port).Validate(func(s string) error {
				_, err := profile.ParsePort(s)
				return err
			}),
			huh.NewInput().Title("Username").Value(&opts.User).Validate(notEmpty("username")),
			huh.NewSelect[string]().
				Title("Authentication").
				Options(huh.NewOption("Password (asked each time)", "password"), huh.NewOption("Private key file", "key")).
				Value(&authKind),
		),
		huh.NewGroup(
			huh.NewInput().Title("Key file").Placeholder("~/.ssh/id_ed25519").Value(&opts.Key).Validate(notEmpty("key file")),
		).WithHideFunc(func() bool { return authKind != "key" }),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrProfile,
			"Couldn't get the connection details",
			"Try again, or pass --host, --user and --key/--password.")
	}

	opts.Port, _ = profile.ParsePort(port)
	if authKind == "password" {
		opts.Key = ""
	}
	return nil
}

func huhConfirmRemoval(p profile.Profile) (bool, error) {
	var confirm bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Remove connection '%s'?", p.Name)).
		Description(describeProfile(p)).
		Value(&confirm).
		Run()
	if err != nil {
		return false, errors.WrapWithCode(err, errors.ErrProfile,
			"Couldn't get your answer",
			"Pass --yes to skip the question.")
	}
	return confirm, nil
}
