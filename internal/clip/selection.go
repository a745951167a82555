package clip

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"go.klb.dev/clipshare/internal/fileuri"
	"go.klb.dev/clipshare/internal/screenshot"
	"go.klb.dev/clipshare/internal/xclip"
)

// CopiedFilesTarget is the selection target file managers use for cut/copy.
// Its payload is "copy" or "cut" followed by one file:// URI per line.
const CopiedFilesTarget = "x-special/gnome-copied-files"

// Selection is a clipboard reached through named targets, such as an X11
// selection served by a helper process.
type Selection interface {
	// Query returns the selection converted to target, or an error when the
	// owner does not offer it.
	Query(ctx context.Context, target string) ([]byte, error)

	// Publish offers data as target on the selection.
	Publish(ctx context.Context, target string, data []byte) error
}

// SelectionSource implements Source on top of a Selection.
type SelectionSource struct {
	sel  Selection
	shot screenshot.Producer
	fsys afero.Fs
}

var _ Source = (*SelectionSource)(nil)

// NewSelection returns a Source reading from sel. shot is the image fallback
// (may be nil) and fsys resolves selected paths.
func NewSelection(sel Selection, shot screenshot.Producer, fsys afero.Fs) *SelectionSource {
	return &SelectionSource{sel: sel, shot: shot, fsys: fsys}
}

func (s *SelectionSource) Name() string { return "X11 selection (xclip)" }

func (s *SelectionSource) Text(ctx context.Context) ([]byte, error) {
	data, err := s.sel.Query(ctx, xclip.TargetText)
	if err != nil || len(data) == 0 {
		slog.Debug("clip: read text failed", "err", err, "len", len(data))
		return nil, ErrNoText
	}
	return data, nil
}

func (s *SelectionSource) SetText(ctx context.Context, text []byte) error {
	if err := s.sel.Publish(ctx, xclip.TargetText, text); err != nil {
		return fmt.Errorf("clip: write text: %w", err)
	}
	return nil
}

func (s *SelectionSource) Image(ctx context.Context) ([]byte, error) {
	data, err := s.sel.Query(ctx, xclip.TargetPNG)
	return imageOrScreenshot(data, err, s.shot)
}

func (s *SelectionSource) CopiedFiles(ctx context.Context) ([]string, error) {
	paths, err := s.copiedPaths(ctx)
	if err != nil {
		return nil, err
	}
	return collect(s.fsys, paths, s.kind, false).Files, nil
}

func (s *SelectionSource) CopiedDirsFiles(ctx context.Context) (DirFiles, error) {
	paths, err := s.copiedPaths(ctx)
	if err != nil {
		return DirFiles{}, err
	}
	return collect(s.fsys, paths, s.kind, true), nil
}

func (s *SelectionSource) kind(path string) entryKind { return statKind(s.fsys, path) }

// copiedPaths fetches the copied-files target and decodes its URIs.
func (s *SelectionSource) copiedPaths(ctx context.Context) ([]string, error) {
	targets, err := s.sel.Query(ctx, xclip.TargetTargets)
	if err != nil || len(targets) == 0 {
		slog.Debug("clip: read TARGETS failed", "err", err, "len", len(targets))
		return nil, ErrNoFiles
	}
	if !hasTarget(targets, CopiedFilesTarget) {
		slog.Debug("clip: no copied files")
		return nil, ErrNoFiles
	}

	payload, err := s.sel.Query(ctx, CopiedFilesTarget)
	if err != nil || len(payload) == 0 {
		slog.Debug("clip: read copied files failed", "err", err, "len", len(payload))
		return nil, ErrNoFiles
	}
	paths, err := ParseCopiedFiles(string(payload))
	if err != nil {
		slog.Debug("clip: copied files payload rejected", "err", err)
		return nil, ErrNoFiles
	}
	return paths, nil
}

func hasTarget(targets []byte, want string) bool {
	for _, t := range bytes.Split(targets, []byte("\n")) {
		if string(t) == want {
			return true
		}
	}
	return false
}

// ParseCopiedFiles decodes a copied-files payload: an intent line ("copy" or
// "cut") followed by newline separated file:// URIs. Decoding stops at the
// first malformed URI, keeping the paths decoded before it; only a bad intent
// line is an error.
func ParseCopiedFiles(payload string) ([]string, error) {
	intent, rest, ok := strings.Cut(payload, "\n")
	if !ok {
		return nil, fmt.Errorf("%w: no file list after intent line", fileuri.ErrMalformed)
	}
	if intent != "copy" && intent != "cut" {
		return nil, fmt.Errorf("%w: unexpected intent %q", fileuri.ErrMalformed, intent)
	}

	uris := strings.Split(rest, "\n")
	paths := make([]string, 0, len(uris))
	for _, u := range uris {
		p, err := fileuri.Decode(u)
		if err != nil {
			if u != "" {
				slog.Debug("clip: stopping at malformed uri", "uri", u, "err", err)
			}
			break
		}
		paths = append(paths, p)
	}
	return paths, nil
}
