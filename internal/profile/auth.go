package profile

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AuthKind discriminates the AuthMethod variants.
type AuthKind string

const (
	AuthPassword AuthKind = "password"
	AuthKey      AuthKind = "key"
)

// AuthMethod is how a profile authenticates: either a password supplied per
// operation (never stored) or a private key file on the local machine.
//
// The zero value is password auth.
type AuthMethod struct {
	kind    AuthKind
	keyPath string
}

// Password returns the password auth variant.
func Password() AuthMethod {
	return AuthMethod{kind: AuthPassword}
}

// KeyFile returns the key-file auth variant.
func KeyFile(path string) AuthMethod {
	return AuthMethod{kind: AuthKey, keyPath: path}
}

// Kind returns the variant discriminant.
func (a AuthMethod) Kind() AuthKind {
	if a.kind == "" {
		return AuthPassword
	}
	return a.kind
}

// IsPassword reports whether this is password auth.
func (a AuthMethod) IsPassword() bool {
	return a.Kind() == AuthPassword
}

// KeyPath returns the private key path. Empty for password auth.
func (a AuthMethod) KeyPath() string {
	return a.keyPath
}

// String renders the method for listings: "password" or "key (~/.ssh/id)".
func (a AuthMethod) String() string {
	if a.IsPassword() {
		return string(AuthPassword)
	}
	return fmt.Sprintf("%s (%s)", AuthKey, a.keyPath)
}

// authWire is the persisted shape: a kind discriminant plus path only for keys.
type authWire struct {
	Kind AuthKind `json:"kind" yaml:"kind"`
	Path string   `json:"path,omitempty" yaml:"path,omitempty"`
}

func (a AuthMethod) wire() authWire {
	w := authWire{Kind: a.Kind()}
	if w.Kind == AuthKey {
		w.Path = a.keyPath
	}
	return w
}

func fromWire(w authWire) (AuthMethod, error) {
	switch w.Kind {
	case AuthPassword:
		return Password(), nil
	case AuthKey:
		return KeyFile(w.Path), nil
	default:
		return AuthMethod{}, fmt.Errorf("unknown auth kind %q (expected %q or %q)", w.Kind, AuthPassword, AuthKey)
	}
}

// MarshalJSON implements json.Marshaler.
func (a AuthMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AuthMethod) UnmarshalJSON(data []byte) error {
	var w authWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m, err := fromWire(w)
	if err != nil {
		return err
	}
	*a = m
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (a AuthMethod) MarshalYAML() (interface{}, error) {
	return a.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *AuthMethod) UnmarshalYAML(node *yaml.Node) error {
	var w authWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	m, err := fromWire(w)
	if err != nil {
		return err
	}
	*a = m
	return nil
}
