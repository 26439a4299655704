package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/ui"
)

// stdinIsTerminal and promptPassword are swapped in tests.
var (
	stdinIsTerminal = func() bool { return ui.IsTerminal(os.Stdin) }
	promptPassword  = huhPasswordPrompt
)

// obtainPassword returns the password for a password-auth profile. Key-auth
// profiles need none. With fromStdin the first line of in is used;
// otherwise the user is asked on the terminal.
func obtainPassword(p profile.Profile, fromStdin bool, in io.Reader) (string, error) {
	if !p.Auth.IsPassword() {
		return "", nil
	}

	if fromStdin {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", errors.WrapWithCode(err, errors.ErrMissingPassword,
				"Couldn't read the password from stdin",
				"Pipe it in, e.g. pass show prod | ferry ls prod --password-stdin")
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return "", errors.NewMissingPassword()
		}
		return password, nil
	}

	if !stdinIsTerminal() {
		return "", errors.NewMissingPassword()
	}
	return promptPassword(p)
}

func huhPasswordPrompt(p profile.Profile) (string, error) {
	var password string
	err := huh.NewInput().
		Title("Password for " + p.Label()).
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Run()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrMissingPassword,
			"Password prompt cancelled",
			"Run the command again, or use --password-stdin.")
	}
	if password == "" {
		return "", errors.NewMissingPassword()
	}
	return password, nil
}
