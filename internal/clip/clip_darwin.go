//go:build darwin

package clip

import "go.klb.dev/clipshare/internal/screenshot"

// New returns the macOS NSPasteboard backend. Copied Finder files are not
// exposed by the clipboard library, so file lists are always ErrNoFiles.
func New(shot screenshot.Producer) Source {
	return newNative("macOS NSPasteboard", shot)
}
