package doctor

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/pkg/sshutil"
)

// StoreCheck verifies the saved connections file loads.
type StoreCheck struct {
	Store *profile.Store
}

func (c *StoreCheck) Name() string     { return "connections_file" }
func (c *StoreCheck) Category() string { return "CONNECTIONS" }

func (c *StoreCheck) Run(ctx context.Context) CheckResult {
	profiles, err := c.Store.Load()
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    errors.Summary(err),
			Suggestion: "Fix or move aside " + c.Store.Path(),
		}
	}
	if len(profiles) == 0 {
		return CheckResult{
			Status:     StatusWarn,
			Message:    "No connections saved",
			Suggestion: "Add one with: ferry connection add, or ferry connection import",
		}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%d connection%s saved", len(profiles), pluralize(len(profiles))),
	}
}

// KeyFileCheck verifies a key-auth connection's private key is readable.
type KeyFileCheck struct {
	Profile profile.Profile
}

func (c *KeyFileCheck) Name() string     { return "key_" + c.Profile.Name }
func (c *KeyFileCheck) Category() string { return "CONNECTIONS" }

func (c *KeyFileCheck) Run(ctx context.Context) CheckResult {
	path := c.Profile.Auth.KeyPath()
	info, err := sshutil.CheckPrivateKey(path)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: %s", c.Profile.Name, errors.Summary(err)),
			Suggestion: "Point the connection at a valid private key",
		}
	}
	if info.Encrypted {
		return CheckResult{
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s: %s is passphrase protected", c.Profile.Name, path),
			Suggestion: "ssh will ask for the passphrase; add the key to ssh-agent to avoid that",
		}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %s key %s", c.Profile.Name, info.Type, path),
	}
}

// NewConnectionChecks creates the store check plus one key check per
// key-auth connection.
func NewConnectionChecks(store *profile.Store) []Check {
	checks := []Check{&StoreCheck{Store: store}}
	profiles, err := store.Load()
	if err != nil {
		return checks
	}
	for _, p := range profiles {
		if !p.Auth.IsPassword() {
			checks = append(checks, &KeyFileCheck{Profile: p})
		}
	}
	return checks
}
