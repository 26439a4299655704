package cli

import (
	"strings"
	"testing"

	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swapPrompt(t *testing.T, terminal bool, answer string) *int {
	t.Helper()
	origTerm, origPrompt := stdinIsTerminal, promptPassword
	t.Cleanup(func() { stdinIsTerminal, promptPassword = origTerm, origPrompt })

	calls := 0
	stdinIsTerminal = func() bool { return terminal }
	promptPassword = func(profile.Profile) (string, error) {
		calls++
		return answer, nil
	}
	return &calls
}

func TestObtainPassword_KeyAuthNeedsNone(t *testing.T) {
	calls := swapPrompt(t, true, "x")
	pw, err := obtainPassword(profile.New("k", "h", "u", profile.KeyFile("/k")), false, nil)
	require.NoError(t, err)
	assert.Empty(t, pw)
	assert.Zero(t, *calls)
}

func TestObtainPassword_Stdin(t *testing.T) {
	p := profile.New("lab", "h", "u", profile.Password())

	pw, err := obtainPassword(p, true, strings.NewReader("s3cret\r\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	pw, err = obtainPassword(p, true, strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)

	_, err = obtainPassword(p, true, strings.NewReader("\n"))
	assert.True(t, errors.IsCode(err, errors.ErrMissingPassword))
}

func TestObtainPassword_Prompt(t *testing.T) {
	calls := swapPrompt(t, true, "typed")
	pw, err := obtainPassword(profile.New("lab", "h", "u", profile.Password()), false, nil)
	require.NoError(t, err)
	assert.Equal(t, "typed", pw)
	assert.Equal(t, 1, *calls)
}

func TestObtainPassword_NoTerminal(t *testing.T) {
	calls := swapPrompt(t, false, "typed")
	_, err := obtainPassword(profile.New("lab", "h", "u", profile.Password()), false, nil)
	assert.True(t, errors.IsCode(err, errors.ErrMissingPassword))
	assert.Zero(t, *calls)
}
