//go:build windows || darwin

package clip

import (
	"context"
	"log/slog"

	"github.com/spf13/afero"
	"golang.design/x/clipboard"

	"go.klb.dev/clipshare/internal/screenshot"
)

// nativeSource reads text and PNG images through golang.design/x/clipboard.
// File lists come from dropList, which is nil where the platform offers none.
type nativeSource struct {
	name     string
	shot     screenshot.Producer
	fsys     afero.Fs
	dropList func() ([]string, error)
	classify func(path string) entryKind
}

// newNative initialises the clipboard library. clipboard.Init is called here
// rather than in init() so that commands which never touch the clipboard
// don't log spurious warnings on headless systems.
func newNative(name string, shot screenshot.Producer) Source {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return Headless(shot)
	}
	fsys := afero.NewOsFs()
	return &nativeSource{
		name:     name,
		shot:     shot,
		fsys:     fsys,
		classify: func(p string) entryKind { return statKind(fsys, p) },
	}
}

func (n *nativeSource) Name() string { return n.name }

func (n *nativeSource) Text(context.Context) ([]byte, error) {
	text := clipboard.Read(clipboard.FmtText)
	if len(text) == 0 {
		return nil, ErrNoText
	}
	return text, nil
}

func (n *nativeSource) SetText(_ context.Context, text []byte) error {
	clipboard.Write(clipboard.FmtText, text)
	return nil
}

func (n *nativeSource) Image(context.Context) ([]byte, error) {
	img := clipboard.Read(clipboard.FmtImage)
	return imageOrScreenshot(img, nil, n.shot)
}

func (n *nativeSource) CopiedFiles(context.Context) ([]string, error) {
	paths, err := n.drops()
	if err != nil {
		return nil, err
	}
	return collect(n.fsys, paths, n.classify, false).Files, nil
}

func (n *nativeSource) CopiedDirsFiles(context.Context) (DirFiles, error) {
	paths, err := n.drops()
	if err != nil {
		return DirFiles{}, err
	}
	return collect(n.fsys, paths, n.classify, true), nil
}

func (n *nativeSource) drops() ([]string, error) {
	if n.dropList == nil {
		return nil, ErrNoFiles
	}
	paths, err := n.dropList()
	if err != nil {
		slog.Debug("clip: read file drop failed", "err", err)
		return nil, ErrNoFiles
	}
	return paths, nil
}
