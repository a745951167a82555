package clip

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"go.klb.dev/clipshare/internal/dirtree"
	"go.klb.dev/clipshare/internal/screenshot"
)

type entryKind int

const (
	kindOther entryKind = iota
	kindFile
	kindDir
)

// statKind classifies path following symlinks, the way a file manager
// selection is meant to be read.
func statKind(fsys afero.Fs, path string) entryKind {
	if path == "" {
		return kindOther
	}
	st, err := fsys.Stat(path)
	if err != nil {
		slog.Debug("clip: stat failed", "path", path, "err", err)
		return kindOther
	}
	switch mode := st.Mode(); {
	case mode.IsDir():
		return kindDir
	case mode.IsRegular():
		return kindFile
	}
	return kindOther
}

// collect resolves selected paths into regular files. Directories are expanded
// with dirtree when expandDirs is set and skipped otherwise; anything else is
// dropped. Order follows paths, then directory listing order.
func collect(fsys afero.Fs, paths []string, classify func(string) entryKind, expandDirs bool) DirFiles {
	df := DirFiles{Files: make([]string, 0, len(paths))}
	for i, p := range paths {
		if i == 0 && expandDirs {
			df.PathLen = basePathLen(p)
			df.Base = p[:df.PathLen]
		}
		switch classify(p) {
		case kindFile:
			df.Files = append(df.Files, p)
		case kindDir:
			if expandDirs {
				df.Files = dirtree.Expand(fsys, p, 1, df.Files)
			} else {
				slog.Debug("clip: skipping directory", "path", p)
			}
		default:
			slog.Debug("clip: not a file", "path", p)
		}
	}
	return df
}

// basePathLen returns the length of p up to and including its last path
// separator, ignoring trailing separators, so both /tmp/sub and /tmp/sub/
// give len("/tmp/"). A separator at index 0 gives 0: a root prefix carries
// no useful base.
func basePathLen(p string) int {
	sep := string(os.PathSeparator)
	i := strings.LastIndex(strings.TrimRight(p, sep), sep)
	if i <= 0 {
		return 0
	}
	return i + 1
}

// imageOrScreenshot returns img when the clipboard read produced bytes and
// otherwise falls back to a fresh screen capture.
func imageOrScreenshot(img []byte, readErr error, shot screenshot.Producer) ([]byte, error) {
	if readErr == nil && len(img) > 0 {
		return img, nil
	}
	slog.Debug("clip: no clipboard image, capturing screenshot", "err", readErr, "len", len(img))
	if shot == nil {
		return nil, ErrNoImage
	}
	data, err := shot.Capture()
	if err != nil || len(data) == 0 {
		slog.Debug("clip: screenshot failed", "err", err, "len", len(data))
		return nil, ErrNoImage
	}
	return data, nil
}
