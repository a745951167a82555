package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"go.klb.dev/clipshare/internal/fsutil"
	"go.klb.dev/clipshare/internal/message"
)

// saveFiles copies the files of p into dst under their relative names, the
// way a receiving peer rebuilds a selection. Existing targets are never
// overwritten. It returns the names written.
func saveFiles(src, dst afero.Fs, p *message.Payload) ([]string, error) {
	var saved []string
	for i, name := range p.RelativeNames() {
		local := filepath.FromSlash(name)
		target := dotted(local)
		if fsutil.Exists(dst, target) {
			slog.Warn("not overwriting existing file", "name", name)
			continue
		}
		if err := fsutil.MkdirsRelative(dst, dotted(filepath.Dir(local))); err != nil {
			slog.Warn("cannot create directory", "name", name, "err", err)
			continue
		}
		if err := copyFile(src, p.Files[i], dst, target); err != nil {
			return saved, fmt.Errorf("save %s: %w", name, err)
		}
		saved = append(saved, name)
	}
	return saved, nil
}

// dotted prefixes a relative path with "./".
func dotted(rel string) string {
	if rel == "." {
		return rel
	}
	return "." + string(os.PathSeparator) + rel
}

func copyFile(src afero.Fs, from string, dst afero.Fs, to string) error {
	in, err := src.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()
	size, err := fsutil.FileSize(in)
	if err != nil {
		return err
	}

	out, err := dst.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.CopyN(out, in, size); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
