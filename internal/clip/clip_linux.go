//go:build linux

package clip

import (
	"log/slog"

	"github.com/spf13/afero"

	"go.klb.dev/clipshare/internal/screenshot"
	"go.klb.dev/clipshare/internal/xclip"
)

// New returns the X11 selection backend, or a headless backend when xclip or
// the display is unavailable (e.g. a server without X11).
func New(shot screenshot.Producer) Source {
	tr := xclip.New()
	if !tr.Available() {
		slog.Warn("clipboard unavailable, running headless", "err", xclip.ErrUnavailable)
		return Headless(shot)
	}
	return NewSelection(tr, shot, afero.NewOsFs())
}
