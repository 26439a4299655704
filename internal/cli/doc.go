// Package cli implements the ferry command-line interface.
//
// Each Cobra command parses its arguments into an options struct and hands
// it to a method on app, which carries the services wired from the loaded
// config (connection store, remote browser, transfer service, local
// filesystem) plus the reader and writers the command talks through. Tests
// build an app around a fake executor and buffers instead of the real
// process streams.
//
// # Commands
//
//	ferry connection add|list|remove|import   - manage saved connections
//	ferry ls <connection> [path]              - list a remote directory
//	ferry upload <connection> <local> [remote]
//	ferry download <connection> <remote> [local]
//	ferry browse [connection]                 - two-pane interactive browser
//	ferry version
//	ferry completion <shell>
//
// # Passwords
//
// Connections never store a password. Commands that reach a password-auth
// host ask for it on the terminal, or read the first line of stdin with
// --password-stdin. The password is handed to ssh/scp through a short-lived
// askpass helper and dropped when the command finishes.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --quiet, --no-color) are defined on
// the root command and applied in its PersistentPreRunE before any
// subcommand runs.
package cli
