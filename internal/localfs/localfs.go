// Package localfs is the local side of a browse session.
package localfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/listing"
	"github.com/rileyhilliard/ferry/internal/paths"
	"github.com/spf13/afero"
)

// NewFolderName is the base name CreateFolder starts from.
const NewFolderName = "New Folder"

// FS browses and edits local directories.
type FS struct {
	fs afero.Fs
}

// New returns an FS on the OS filesystem.
func New() *FS {
	return NewWithFs(afero.NewOsFs())
}

// NewWithFs returns an FS on an arbitrary filesystem.
func NewWithFs(fs afero.Fs) *FS {
	return &FS{fs: fs}
}

// List returns the entries of dir, ordered like remote listings. Hidden
// files are included. Symlinks report the type of their target.
func (l *FS) List(dir string) ([]listing.Entry, error) {
	dir = paths.ExpandLocal(strings.TrimSpace(dir))
	if dir == "" {
		return nil, errors.New(errors.ErrLocal,
			"Local path is required",
			"Pass a directory, e.g. ~ or /tmp")
	}
	if !l.IsDir(dir) {
		return nil, errors.New(errors.ErrLocal,
			"Local directory not found: "+dir,
			"Check the path exists and is a directory.")
	}

	infos, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrLocal,
			"Couldn't read "+dir,
			"Check the directory permissions.")
	}

	entries := make([]listing.Entry, 0, len(infos))
	for _, info := range infos {
		full := filepath.Join(dir, info.Name())
		if info.Mode()&os.ModeSymlink != 0 {
			if target, err := l.fs.Stat(full); err == nil {
				info = target
			}
		}

		details := fmt.Sprintf("%d bytes", info.Size())
		if info.IsDir() {
			details = "dir"
		}
		entries = append(entries, listing.Entry{
			Name:        info.Name(),
			FullPath:    full,
			IsDirectory: info.IsDir(),
			Details:     details,
		})
	}

	listing.Sort(entries)
	return entries, nil
}

// IsDir reports whether path (after ~ expansion) is an existing directory.
func (l *FS) IsDir(path string) bool {
	isDir, err := afero.IsDir(l.fs, paths.ExpandLocal(path))
	return err == nil && isDir
}

// CreateFolder makes "New Folder" in base, or "New Folder 2", "New Folder 3"...
// when the name is taken. It returns the created path.
func (l *FS) CreateFolder(base string) (string, error) {
	base = paths.ExpandLocal(base)
	if !l.IsDir(base) {
		return "", errors.New(errors.ErrLocal,
			"Local directory not found: "+base,
			"Browse to an existing directory first.")
	}

	name := NewFolderName
	dest := filepath.Join(base, name)
	for suffix := 2; l.exists(dest); suffix++ {
		name = fmt.Sprintf("%s %d", NewFolderName, suffix)
		dest = filepath.Join(base, name)
	}

	if err := l.fs.Mkdir(dest, 0755); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrLocal,
			"Couldn't create "+name,
			"Check that "+base+" is writable.")
	}
	return dest, nil
}

// Rename gives path a new base name in the same directory and returns the
// new path. Renaming to the current name does nothing.
func (l *FS) Rename(path, newName string) (string, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return "", errors.New(errors.ErrLocal,
			"Name can't be empty",
			"Type a name for the item.")
	}
	if strings.ContainsRune(newName, filepath.Separator) {
		return "", errors.New(errors.ErrLocal,
			fmt.Sprintf("'%s' contains a path separator", newName),
			"Rename only changes the name; move items with your file manager.")
	}

	path = paths.ExpandLocal(path)
	dest := filepath.Join(filepath.Dir(path), newName)
	if dest == path {
		return path, nil
	}
	if l.exists(dest) {
		return "", errors.New(errors.ErrLocal,
			fmt.Sprintf("An item named '%s' already exists", newName),
			"Pick a different name.")
	}

	if err := l.fs.Rename(path, dest); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrLocal,
			"Couldn't rename "+filepath.Base(path),
			"Check the item still exists and the directory is writable.")
	}
	return dest, nil
}

func (l *FS) exists(path string) bool {
	ok, err := afero.Exists(l.fs, path)
	return err == nil && ok
}
