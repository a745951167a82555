//go:build !darwin && !windows && !linux

package clip

import "go.klb.dev/clipshare/internal/screenshot"

// New returns a headless backend; there is no clipboard integration for this
// platform.
func New(shot screenshot.Producer) Source {
	return Headless(shot)
}
