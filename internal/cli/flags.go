package cli

import (
	"fmt"

	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/ui"
	"github.com/spf13/cobra"
)

// addPasswordStdinFlag registers --password-stdin on a command that talks
// to a host.
func addPasswordStdinFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "password-stdin", false, "read the connection password from the first line of stdin")
}

// completeConnections offers saved connection names for the first argument.
func completeConnections(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	profiles, err := profile.NewStore(currentSettings().Profiles.Path).Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name+"\t"+p.Destination())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// resolveConnection loads the named connection, or asks the user to pick one
// when name is empty and a terminal is attached.
func (a *app) resolveConnection(name string) (profile.Profile, error) {
	if name != "" {
		return a.store.Find(name)
	}

	profiles, err := a.store.Load()
	if err != nil {
		return profile.Profile{}, err
	}
	if len(profiles) != 1 && !stdinIsTerminal() {
		return profile.Profile{}, errors.New(errors.ErrProfile,
			"No connection given",
			"Name one: ferry connection list shows what's saved.")
	}

	choices := make([]ui.Choice, len(profiles))
	for i, p := range profiles {
		choices[i] = ui.Choice{Key: p.ID.String(), Label: p.Name, Detail: describeProfile(p), Tags: []string{p.Host}}
	}
	picked, err := ui.Pick("Choose a connection", choices)
	if err != nil {
		return profile.Profile{}, err
	}
	if picked == nil {
		return profile.Profile{}, errors.New(errors.ErrProfile, "Cancelled", "")
	}
	return a.store.Find(picked.Key)
}

// describeProfile renders "user@host:port, auth" for pickers and tables.
func describeProfile(p profile.Profile) string {
	return fmt.Sprintf("%s:%d, %s", p.Destination(), p.EffectivePort(), p.Auth)
}
