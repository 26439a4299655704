// Package paths holds the path arithmetic shared by the browse and transfer
// code. Remote paths are opaque strings joined textually: nothing here
// resolves "..", collapses duplicate slashes, or touches the remote host.
package paths

import "strings"

// Home is the remote shell's home directory shorthand.
const Home = "~"

// JoinRemote appends child to a remote directory path.
//
//	JoinRemote("/", "a")   == "/a"
//	JoinRemote("/x/", "a") == "/x/a"
//	JoinRemote("/x", "a")  == "/x/a"
func JoinRemote(base, child string) string {
	if base == "/" {
		return "/" + child
	}
	if strings.HasSuffix(base, "/") {
		return base + child
	}
	return base + "/" + child
}

// ParentRemote returns the directory containing path.
//
// "/" and "~" are their own parents. Tilde-relative paths stay tilde-relative
// ("~/a/b" -> "~/a", "~/a" -> "~"), absolute paths never gain a tilde
// ("/a/b" -> "/a", "/a" -> "/").
func ParentRemote(path string) string {
	if path == "/" || path == Home {
		return path
	}

	if rest, ok := strings.CutPrefix(path, Home+"/"); ok {
		segments := nonEmpty(strings.Split(rest, "/"))
		if len(segments) <= 1 {
			return Home
		}
		return Home + "/" + strings.Join(segments[:len(segments)-1], "/")
	}

	segments := nonEmpty(strings.Split(path, "/"))
	if len(segments) <= 1 {
		return "/"
	}
	return "/" + strings.Join(segments[:len(segments)-1], "/")
}

// BaseRemote returns the last non-empty segment of a remote path, or the path
// itself for "/" and "~".
func BaseRemote(path string) string {
	segments := nonEmpty(strings.Split(path, "/"))
	if len(segments) == 0 {
		return path
	}
	return segments[len(segments)-1]
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
