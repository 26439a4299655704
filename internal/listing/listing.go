// Package listing turns `ls -la -p` output into directory entries.
package listing

import (
	"sort"
	"strings"
	"unicode"

	"github.com/rileyhilliard/ferry/internal/paths"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// fieldCount is the number of columns in a long listing line; the last
// column is the name and may contain spaces.
const fieldCount = 9

// Entry is one item in a remote directory.
type Entry struct {
	Name        string `json:"name"`
	FullPath    string `json:"full_path"`
	IsDirectory bool   `json:"is_directory"`
	// Details is the raw permission and size columns, e.g. "drwxr-xr-x  4096".
	Details string `json:"details"`
}

// Parse reads the output of `ls -la -p` run in base. Lines that don't look
// like long-format entries are skipped, as are the . and .. entries. The
// result is sorted with Sort.
//
// Only the trailing "/" that -p adds to directories is removed. Other type
// markers some ls builds append (@, *, =, |) stay part of the name.
func Parse(output, base string) []Entry {
	var entries []Entry

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "total ") {
			continue
		}

		fields := splitFields(line, fieldCount)
		if len(fields) < fieldCount {
			continue
		}

		perms, size, name := fields[0], fields[4], fields[8]
		switch name {
		case ".", "..", "./", "../":
			continue
		}

		isDir := strings.HasPrefix(perms, "d") || strings.HasSuffix(name, "/")
		if isDir {
			name = strings.TrimSuffix(name, "/")
		}

		entries = append(entries, Entry{
			Name:        name,
			FullPath:    paths.JoinRemote(base, name),
			IsDirectory: isDir,
			Details:     perms + "  " + size,
		})
	}

	Sort(entries)
	return entries
}

// Sort orders entries in place: directories first, then by name ignoring case.
// Names that compare equal ignoring case fall back to byte order so the
// result is deterministic.
func Sort(entries []Entry) {
	// Collators keep internal buffers and aren't safe to share.
	c := collate.New(language.Und, collate.IgnoreCase)

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDirectory != b.IsDirectory {
			return a.IsDirectory
		}
		if cmp := c.CompareString(a.Name, b.Name); cmp != 0 {
			return cmp < 0
		}
		return a.Name < b.Name
	})
}

// splitFields splits s on runs of whitespace into at most n fields. The last
// field is the rest of the line with its inner spacing intact.
func splitFields(s string, n int) []string {
	fields := make([]string, 0, n)
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)

	for rest != "" && len(fields) < n-1 {
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			fields = append(fields, rest)
			return fields
		}
		fields = append(fields, rest[:end])
		rest = strings.TrimLeftFunc(rest[end:], unicode.IsSpace)
	}
	if rest != "" {
		fields = append(fields, rest)
	}
	return fields
}
