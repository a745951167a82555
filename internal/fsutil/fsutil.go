// Package fsutil holds the small filesystem checks shared by the clipboard
// readers and the code that recreates a received selection on disk.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// DirPerm is the mode MkdirsRelative creates directories with (rwxrwxr-x).
const DirPerm os.FileMode = 0o775

var (
	// ErrNotRelative is returned by MkdirsRelative for paths not starting
	// with '.'.
	ErrNotRelative = errors.New("fsutil: path must be relative and start with '.'")
	// ErrNotDir is returned when an existing path component is not a
	// directory.
	ErrNotDir = errors.New("fsutil: not a directory")
	// ErrNotRegular is returned by FileSize for anything but a regular file.
	ErrNotRegular = errors.New("fsutil: not a regular file")
)

// Exists reports whether path names an existing entry. The empty path never
// exists.
func Exists(fsys afero.Fs, path string) bool {
	if path == "" {
		return false
	}
	ok, _ := afero.Exists(fsys, path)
	return ok
}

// Lstat stats path without following a final symlink when fsys can, and
// falls back to Stat otherwise.
func Lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		fi, _, err := l.LstatIfPossible(path)
		return fi, err
	}
	return fsys.Stat(path)
}

// IsDir reports whether path is a directory. With followSymlinks false a
// symlink to a directory is not one.
func IsDir(fsys afero.Fs, path string, followSymlinks bool) bool {
	if path == "" {
		return false
	}
	var (
		fi  os.FileInfo
		err error
	)
	if followSymlinks {
		fi, err = fsys.Stat(path)
	} else {
		fi, err = Lstat(fsys, path)
	}
	return err == nil && fi.IsDir()
}

// FileSize returns the size of an open regular file.
func FileSize(f afero.File) (int64, error) {
	st, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if !st.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s", ErrNotRegular, f.Name())
	}
	return st.Size(), nil
}

// ListDir returns the entry names of dir in lexical order, without "." and
// "..".
func ListDir(fsys afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		switch n := e.Name(); n {
		case ".", "..", "":
		default:
			names = append(names, n)
		}
	}
	return names, nil
}

// MkdirsRelative creates dir and any missing parents. dir must start with
// '.' and may not contain a ".." component, which keeps received names inside
// the working directory. An existing
// component that is not a real directory (a file, or a symlink even to a
// directory) stops it with ErrNotDir.
func MkdirsRelative(fsys afero.Fs, dir string) error {
	if dir == "" || dir[0] != '.' {
		return fmt.Errorf("%w: %q", ErrNotRelative, dir)
	}
	for _, part := range strings.Split(dir, string(os.PathSeparator)) {
		if part == ".." {
			return fmt.Errorf("%w: %q escapes the working directory", ErrNotRelative, dir)
		}
	}
	if Exists(fsys, dir) {
		if IsDir(fsys, dir, false) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrNotDir, dir)
	}

	for i := 0; i <= len(dir); i++ {
		if i < len(dir) && dir[i] != os.PathSeparator {
			continue
		}
		part := dir[:i]
		if part == "" {
			continue
		}
		if Exists(fsys, part) {
			if !IsDir(fsys, part, false) {
				return fmt.Errorf("%w: %s", ErrNotDir, part)
			}
			continue
		}
		if err := fsys.Mkdir(part, DirPerm); err != nil {
			return fmt.Errorf("mkdir %s: %w", part, err)
		}
	}
	return nil
}
