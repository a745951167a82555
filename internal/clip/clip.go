// Package clip normalises the system clipboard into text, PNG image and file
// list payloads. Build constraints select the implementation:
//
//	clip_linux.go     X11 selection buffers through the xclip helper
//	clip_windows.go   golang.design/x/clipboard + CF_HDROP file drops
//	clip_darwin.go    golang.design/x/clipboard, no file lists
//	clip_other.go     headless stub
//
// Every call queries the OS afresh; nothing is cached between calls.
package clip

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound reports that the clipboard does not hold the requested kind of
// content. It is the normal "nothing selected" outcome, not a failure.
var ErrNotFound = errors.New("clip: not found")

var (
	ErrNoText  = fmt.Errorf("%w: no text on clipboard", ErrNotFound)
	ErrNoImage = fmt.Errorf("%w: no image on clipboard and screen capture failed", ErrNotFound)
	ErrNoFiles = fmt.Errorf("%w: no copied files on clipboard", ErrNotFound)
)

// DirFiles is a flattened file selection. Base is the directory prefix of the
// first selected entry (including its trailing separator), or "" when there
// is none, and PathLen is len(Base). The first selected entry may itself be
// missing from Files, so callers strip Base only from files that start with it.
type DirFiles struct {
	Files   []string
	Base    string
	PathLen int
}

// Source is the interface that all platform clipboard implementations satisfy.
// Returned buffers and slices are owned by the caller.
type Source interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Text returns the clipboard text, or ErrNoText.
	Text(ctx context.Context) ([]byte, error)

	// SetText replaces the clipboard contents with text.
	SetText(ctx context.Context, text []byte) error

	// Image returns the clipboard image as PNG. When the clipboard holds no
	// image a screenshot is returned instead; ErrNoImage means both failed.
	Image(ctx context.Context) ([]byte, error)

	// CopiedFiles returns the regular files of a file-manager cut/copy.
	// Directories in the selection are skipped.
	CopiedFiles(ctx context.Context) ([]string, error)

	// CopiedDirsFiles is CopiedFiles with selected directories expanded
	// recursively into the files they contain.
	CopiedDirsFiles(ctx context.Context) (DirFiles, error)
}
