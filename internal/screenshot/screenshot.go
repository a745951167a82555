// Package screenshot captures the screen as PNG. It is the fallback used when
// an image is requested but the clipboard holds none.
package screenshot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/kbinani/screenshot"
)

// ErrNoDisplay is returned when no active display can be captured.
var ErrNoDisplay = errors.New("screenshot: no active display")

// Producer captures the current screen and returns it PNG-encoded.
type Producer interface {
	Capture() ([]byte, error)
}

// Func adapts a plain function to Producer.
type Func func() ([]byte, error)

// Capture calls f.
func (f Func) Capture() ([]byte, error) { return f() }

// Display captures every active display as one image.
type Display struct{}

// Capture grabs the union of all active display bounds.
func (Display) Capture() ([]byte, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, ErrNoDisplay
	}
	var bounds image.Rectangle
	for i := 0; i < n; i++ {
		bounds = bounds.Union(screenshot.GetDisplayBounds(i))
	}
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("screenshot: capture %v: %w", bounds, err)
	}
	return Encode(img)
}

// Encode PNG-encodes img.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("screenshot: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
