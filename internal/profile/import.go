package profile

import (
	"fmt"

	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/pkg/sshutil"
)

// FromSSHHost builds a profile from an ~/.ssh/config entry. Entries with an
// IdentityFile become key-auth profiles; the rest use password auth.
// fallbackUser fills in when the entry has no User line.
func FromSSHHost(entry sshutil.SSHHostEntry, fallbackUser string) (Profile, error) {
	user := entry.User
	if user == "" {
		user = fallbackUser
	}

	auth := Password()
	if entry.IdentityFile != "" {
		auth = KeyFile(entry.IdentityFile)
	}

	port, err := ParsePort(entry.Port)
	if err != nil {
		return Profile{}, errors.WrapWithCode(err, errors.ErrProfile,
			fmt.Sprintf("Host '%s' in ssh config has an invalid port", entry.Alias),
			"Fix the Port line in ~/.ssh/config")
	}

	p := New(entry.Alias, entry.Address(), user, auth)
	p.Port = port
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}
