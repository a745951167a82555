// Package xclip talks to the X11 selection buffers through the xclip helper
// program. Every call is one process round trip; nothing is cached.
package xclip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Well-known selection targets.
const (
	TargetTargets = "TARGETS"
	TargetText    = "UTF8_STRING"
	TargetPNG     = "image/png"
)

// ErrUnavailable is returned when the xclip binary cannot be found.
var ErrUnavailable = errors.New("xclip: helper not available")

// Transport runs xclip against one selection.
type Transport struct {
	// Path of the xclip binary. Empty means look up "xclip" in $PATH.
	Path string
	// Selection is primary, secondary or clipboard. Empty means clipboard.
	Selection string
}

// New returns a Transport for the CLIPBOARD selection.
func New() *Transport {
	return &Transport{Selection: "clipboard"}
}

// Available reports whether the helper can be run and an X display is set.
func (t *Transport) Available() bool {
	if os.Getenv("DISPLAY") == "" {
		return false
	}
	_, err := t.binary()
	return err == nil
}

// Query returns the selection contents converted to target. The helper exits
// non-zero when the selection does not offer target.
func (t *Transport) Query(ctx context.Context, target string) ([]byte, error) {
	bin, err := t.binary()
	if err != nil {
		return nil, err
	}
	args := []string{"-selection", t.selection(), "-o"}
	if target != "" {
		args = append(args, "-t", target)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("xclip: query %q: %w%s", target, err, detail(&stderr))
	}
	return out, nil
}

// Publish makes data available as target on the selection. xclip forks to
// serve the selection, so Publish returns once the data has been handed over.
// The forked child keeps any inherited pipes open, so stdout and stderr are
// left unattached.
func (t *Transport) Publish(ctx context.Context, target string, data []byte) error {
	bin, err := t.binary()
	if err != nil {
		return err
	}
	args := []string{"-selection", t.selection(), "-i"}
	if target != "" {
		args = append(args, "-t", target)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(data)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("xclip: publish %q: %w", target, err)
	}
	return nil
}

func (t *Transport) selection() string {
	if t.Selection == "" {
		return "clipboard"
	}
	return t.Selection
}

func (t *Transport) binary() (string, error) {
	name := t.Path
	if name == "" {
		name = "xclip"
	}
	p, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return p, nil
}

func detail(stderr *bytes.Buffer) string {
	s := strings.TrimSpace(stderr.String())
	if s == "" {
		return ""
	}
	return ": " + s
}
