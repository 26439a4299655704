// Package ui holds the terminal styling shared by ferry's commands: the
// color palette and symbols, a one-line Spinner for ls, upload and download,
// table and listing renderers, and the filterable Pick prompt used to choose
// a connection or an ssh_config alias.
//
// Use DisableColors for --no-color; every style degrades to plain text.
//
//	s := ui.NewSpinner("Listing /srv on prod", os.Stderr)
//	s.Start()
//	entries, err := browser.ListDirectory(ctx, p, "/srv", pw, nil)
//	s.Finish(err)
package ui
