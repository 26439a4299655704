package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// userHomeDir is swapped in tests.
var userHomeDir = os.UserHomeDir

// ExpandLocal replaces a leading ~ with the current user's home directory.
// ~username is not supported. The path comes back unchanged when the home
// directory can't be resolved.
func ExpandLocal(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := userHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// ParentLocal returns the parent of a local directory, expanding ~ first.
// The filesystem root is its own parent.
func ParentLocal(path string) string {
	parent := filepath.Dir(ExpandLocal(path))
	if parent == "" || parent == "." {
		return string(filepath.Separator)
	}
	return parent
}
