// Package message defines the canonical, OS-independent clipboard payloads
// handed to peers.
//
// Payloads serialise to JSON. Binary content (text bytes, PNG images) is
// base64-encoded by encoding/json so it is safe to embed in a JSON string.
package message

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies the payload shape. The shapes are mutually exclusive.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindFiles Kind = "files"
)

// MIME types of the byte payloads.
const (
	MIMEText = "text/plain"
	MIMEPNG  = "image/png"
)

// Payload is one clipboard read.
type Payload struct {
	Kind Kind   `json:"kind"`
	MIME string `json:"mime,omitempty"`

	// KindText, KindImage
	Data []byte `json:"data,omitempty"`

	// KindFiles. Base is the directory prefix of the first selected entry
	// when directories were expanded, and PathLen its length. The first
	// selected entry need not appear in Files.
	Files   []string `json:"files,omitempty"`
	Base    string   `json:"base,omitempty"`
	PathLen int      `json:"path_len,omitempty"`
}

// NewText creates a text payload.
func NewText(text []byte) *Payload {
	return &Payload{Kind: KindText, MIME: MIMEText, Data: text}
}

// NewImage creates a PNG image payload.
func NewImage(png []byte) *Payload {
	return &Payload{Kind: KindImage, MIME: MIMEPNG, Data: png}
}

// NewFiles creates a file list payload. base is the selection root prefix
// ("" when there is none).
func NewFiles(files []string, base string) *Payload {
	return &Payload{Kind: KindFiles, Files: files, Base: base, PathLen: len(base)}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindText, KindImage, KindFiles:
		return k, nil
	}
	return "", fmt.Errorf("unknown payload kind %q", s)
}

// Encode serialises the payload to JSON without a trailing newline.
func (p *Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// Decode deserialises a payload from raw JSON bytes.
func Decode(b []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	if _, err := ParseKind(string(p.Kind)); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &p, nil
}

// RelativeNames returns the names a receiver should create for Files, using
// slash separators. Entries under Base keep their path below it, so a
// selected folder keeps its structure. Every other entry, and every entry
// when there is no base, is reduced to its base name.
func (p *Payload) RelativeNames() []string {
	base := p.base()
	names := make([]string, len(p.Files))
	for i, f := range p.Files {
		if base != "" && len(f) > len(base) && strings.HasPrefix(f, base) {
			names[i] = filepath.ToSlash(f[len(base):])
			continue
		}
		names[i] = filepath.Base(f)
	}
	return names
}

// base returns Base, or for payloads that only carry PathLen, the prefix of
// the first file when it ends on a separator.
func (p *Payload) base() string {
	if p.Base != "" {
		if !isSep(p.Base[len(p.Base)-1]) {
			return ""
		}
		return p.Base
	}
	if p.PathLen <= 0 || len(p.Files) == 0 || p.PathLen > len(p.Files[0]) {
		return ""
	}
	if !isSep(p.Files[0][p.PathLen-1]) {
		return ""
	}
	return p.Files[0][:p.PathLen]
}

func isSep(c byte) bool { return c == '/' || c == '\\' }
