// Package browse is the interactive two-pane file browser behind
// `ferry browse`.
//
// The left pane lists the remote working directory (through ssh and ls),
// the right pane the local one. Both are driven by a session.Session; every
// ssh, scp and filesystem call runs in a tea.Cmd so the UI never blocks.
// Transport output is collected in the session transcript and shown in the
// log pane at the bottom.
package browse
