// Package dirtree flattens directory selections into lists of regular files.
package dirtree

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"go.klb.dev/clipshare/internal/fsutil"
)

// MaxDepth is the deepest directory level Expand descends into. Directories
// selected on the clipboard are level 1.
const MaxDepth = 256

// Expand appends the path of every regular file below dir to files and
// returns the extended slice. Subdirectories are walked depth-first; once
// depth exceeds MaxDepth the subtree is dropped without error, which also
// bounds symlink cycles and pathologically deep trees.
//
// Entries are classified with lstat where the filesystem supports it, so
// links, devices, sockets and pipes are never returned. A directory that
// cannot be read contributes nothing.
func Expand(fsys afero.Fs, dir string, depth int, files []string) []string {
	if depth > MaxDepth {
		return files
	}
	names, err := fsutil.ListDir(fsys, dir)
	if err != nil {
		slog.Debug("dirtree: cannot read directory", "dir", dir, "err", err)
		return files
	}

	prefix := dir
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}

	for _, name := range names {
		p := prefix + name
		fi, err := fsutil.Lstat(fsys, p)
		if err != nil {
			slog.Debug("dirtree: stat failed", "path", p, "err", err)
			continue
		}
		switch mode := fi.Mode(); {
		case mode.IsDir():
			files = Expand(fsys, p, depth+1, files)
		case mode.IsRegular():
			files = append(files, p)
		}
	}
	return files
}
