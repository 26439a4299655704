package sshutil

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/rileyhilliard/ferry/internal/errors"
	"golang.org/x/crypto/ssh"
)

// KeyInfo describes a private key file without holding on to its material.
type KeyInfo struct {
	Path      string
	Type      string // e.g. "ssh-ed25519"; empty when encrypted and no public part is embedded
	Encrypted bool   // passphrase protected; the transport will ask for the passphrase
}

// CheckPrivateKey confirms path holds a private key the ssh transport can use.
// Passphrase-protected keys are accepted and reported as Encrypted.
func CheckPrivateKey(path string) (KeyInfo, error) {
	info := KeyInfo{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return info, errors.WrapWithCode(err, errors.ErrProfile,
			fmt.Sprintf("Couldn't read key file %s", path),
			"Check the path, or generate a key with: ssh-keygen -t ed25519")
	}

	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if stderrors.As(err, &missing) {
			info.Encrypted = true
			if missing.PublicKey != nil {
				info.Type = missing.PublicKey.Type()
			}
			return info, nil
		}
		return info, errors.WrapWithCode(err, errors.ErrProfile,
			fmt.Sprintf("%s doesn't look like a private key", path),
			"Point at the private half of the key pair (not the .pub file).")
	}

	info.Type = signer.PublicKey().Type()
	return info, nil
}
