package clip

import (
	"context"
	"errors"

	"go.klb.dev/clipshare/internal/screenshot"
)

// ErrHeadless is returned by SetText when there is no clipboard to write to.
var ErrHeadless = errors.New("clip: no clipboard available")

// headlessSource stands in when no display server is reachable. Reads find
// nothing; images still fall back to the screenshot producer.
type headlessSource struct {
	shot screenshot.Producer
}

// Headless returns a Source with an empty clipboard.
func Headless(shot screenshot.Producer) Source {
	return &headlessSource{shot: shot}
}

func (h *headlessSource) Name() string { return "headless (no-op)" }

func (h *headlessSource) Text(context.Context) ([]byte, error) { return nil, ErrNoText }

func (h *headlessSource) SetText(context.Context, []byte) error { return ErrHeadless }

func (h *headlessSource) Image(context.Context) ([]byte, error) {
	return imageOrScreenshot(nil, ErrNotFound, h.shot)
}

func (h *headlessSource) CopiedFiles(context.Context) ([]string, error) { return nil, ErrNoFiles }

func (h *headlessSource) CopiedDirsFiles(context.Context) (DirFiles, error) {
	return DirFiles{}, ErrNoFiles
}
