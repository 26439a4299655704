package paths

import "strings"

// ShellQuote wraps s in single quotes for a POSIX shell, escaping embedded
// single quotes as '\'' (close, escaped quote, reopen).
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ShellQuoteRemote quotes a remote path for the remote login shell while
// leaving a leading ~ outside the quotes so the shell still expands it.
//
//	ShellQuoteRemote("~")          == "~"
//	ShellQuoteRemote("~/my dir")   == "~/'my dir'"
//	ShellQuoteRemote("/srv/it's")  == `'/srv/it'\''s'`
func ShellQuoteRemote(path string) string {
	switch {
	case path == Home:
		return Home
	case path == Home+"/":
		return Home + "/"
	case strings.HasPrefix(path, Home+"/"):
		return Home + "/" + ShellQuote(path[2:])
	default:
		return ShellQuote(path)
	}
}
