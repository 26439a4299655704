package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig  = "CONFIG"
	ErrSSH     = "SSH"
	ErrExec    = "EXEC"
	ErrProfile = "PROFILE"
	ErrLocal   = "LOCAL"

	// Transport failures surfaced to callers of the browse/transfer services.
	ErrMissingPassword = "MISSING_PASSWORD"
	ErrMissingKeyPath  = "MISSING_KEY_PATH"
	ErrTransferFailed  = "TRANSFER_FAILED"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error

	// ExitCode is the transport's exit status for ErrTransferFailed errors.
	ExitCode int
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrSSH code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrSSH,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NewMissingPassword reports password auth without a usable password.
func NewMissingPassword() *Error {
	return &Error{
		Code:       ErrMissingPassword,
		Message:    "Password is required for password authentication",
		Suggestion: "Enter the password when prompted, or pipe it in with --password-stdin",
	}
}

// NewMissingKeyPath reports key auth configured without a key file.
func NewMissingKeyPath() *Error {
	return &Error{
		Code:       ErrMissingKeyPath,
		Message:    "Private key path is required for key authentication",
		Suggestion: "Set one with: ferry connection add --key ~/.ssh/id_ed25519",
	}
}

// NewTransferFailed reports a transport process that exited non-zero.
// Exit status 255 is what ssh and scp use for connection-level failures.
func NewTransferFailed(code int, host string) *Error {
	e := &Error{
		Code:     ErrTransferFailed,
		Message:  fmt.Sprintf("Transfer failed with exit code %d", code),
		ExitCode: code,
	}
	switch code {
	case 1:
		e.Suggestion = "Check the output above; the remote path may not exist or may not be readable"
	case 255:
		if host != "" {
			e.Message = fmt.Sprintf("Transfer failed with exit code %d: couldn't connect to '%s'", code, host)
		}
		e.Suggestion = "Check the host is reachable and your credentials are correct"
	default:
		e.Suggestion = "Check the output above for specific error details"
	}
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var fErr *Error
	if errors.As(err, &fErr) {
		return fErr.Code == code
	}
	return false
}

// ExitCode extracts the transport exit status from a TRANSFER_FAILED error.
func ExitCode(err error) (int, bool) {
	var fErr *Error
	if errors.As(err, &fErr) && fErr.Code == ErrTransferFailed {
		return fErr.ExitCode, true
	}
	return 0, false
}

// Summary returns the one-line message of a structured error, or err.Error()
// for anything else. Used where a status line has room for a single line.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var fErr *Error
	if errors.As(err, &fErr) {
		return fErr.Message
	}
	return strings.TrimSpace(err.Error())
}

// SuggestionOf returns the suggestion of a structured error anywhere in
// err's chain, or "".
func SuggestionOf(err error) string {
	var fErr *Error
	if errors.As(err, &fErr) {
		return fErr.Suggestion
	}
	return ""
}
