// Package profile defines saved connection profiles and their on-disk store.
//
// A profile never carries a password. Password-auth profiles get their secret
// per operation from the caller; key-auth profiles point at a key file.
package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rileyhilliard/ferry/internal/errors"
)

// DefaultPort is the ssh port used when a profile doesn't set one.
const DefaultPort = 22

// Profile describes one remote host the user can browse and transfer to.
type Profile struct {
	ID       uuid.UUID  `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	Host     string     `json:"host" yaml:"host"`
	Port     int        `json:"port" yaml:"port"`
	Username string     `json:"username" yaml:"username"`
	Auth     AuthMethod `json:"auth" yaml:"auth"`
}

// New creates a profile with a fresh id and the default port.
func New(name, host, username string, auth AuthMethod) Profile {
	return Profile{
		ID:       uuid.New(),
		Name:     name,
		Host:     host,
		Port:     DefaultPort,
		Username: username,
		Auth:     auth,
	}
}

// EffectivePort returns Port, or DefaultPort when unset.
func (p Profile) EffectivePort() int {
	if p.Port == 0 {
		return DefaultPort
	}
	return p.Port
}

// Destination is the user@host form the transport expects.
func (p Profile) Destination() string {
	return p.Username + "@" + p.Host
}

// RemoteSpec is user@host:path, the scp remote specifier.
func (p Profile) RemoteSpec(path string) string {
	return p.Destination() + ":" + path
}

// Label renders "name (user@host:port)" for pickers and status lines.
func (p Profile) Label() string {
	return fmt.Sprintf("%s (%s:%d)", p.Name, p.Destination(), p.EffectivePort())
}

// Validate checks the profile is usable for a connection.
func (p Profile) Validate() error {
	var problems []string

	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is empty")
	}
	if strings.TrimSpace(p.Host) == "" {
		problems = append(problems, "host is empty")
	}
	if strings.TrimSpace(p.Username) == "" {
		problems = append(problems, "username is empty")
	}
	if p.Port != 0 && (p.Port < 1 || p.Port > 65535) {
		problems = append(problems, "port "+strconv.Itoa(p.Port)+" is outside 1-65535")
	}

	if len(problems) > 0 {
		return errors.New(errors.ErrProfile,
			fmt.Sprintf("Connection '%s' is incomplete: %s", p.Name, strings.Join(problems, ", ")),
			"Fix it in the connections file, or remove it and add it again: ferry connection remove "+p.Name)
	}

	if !p.Auth.IsPassword() && strings.TrimSpace(p.Auth.KeyPath()) == "" {
		return errors.NewMissingKeyPath()
	}

	return nil
}

// ParsePort converts a user-entered port, defaulting to 22 when empty.
func ParsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return 0, errors.New(errors.ErrProfile,
			fmt.Sprintf("'%s' isn't a valid port", s),
			"Use a number between 1 and 65535.")
	}
	return port, nil
}
