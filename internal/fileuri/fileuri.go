// Package fileuri decodes the file:// URIs that desktop file managers put on
// the clipboard when files are cut or copied.
package fileuri

import (
	"errors"
	"fmt"
	"strings"
)

// Scheme is the only URI scheme accepted by Decode.
const Scheme = "file://"

// ErrMalformed is returned for input that is not a well-formed file URI.
var ErrMalformed = errors.New("fileuri: malformed uri")

// Decode strips the file:// scheme from s and percent-decodes the remainder.
// Each %XX escape (hex digits in either case) becomes one byte; every other
// byte is copied unchanged. The result is never longer than s.
//
// Only the scheme is removed, so file:///tmp/a decodes to /tmp/a and
// file://host/a decodes to host/a.
func Decode(s string) (string, error) {
	if !strings.HasPrefix(s, Scheme) {
		return "", fmt.Errorf("%w: missing %q prefix", ErrMalformed, Scheme)
	}
	rest := s[len(Scheme):]

	if strings.IndexByte(rest, '%') < 0 {
		return rest, nil
	}

	out := make([]byte, 0, len(rest))
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c != '%' {
			out = append(out, c)
			continue
		}
		if i+2 >= len(rest) {
			return "", fmt.Errorf("%w: truncated escape at offset %d", ErrMalformed, len(Scheme)+i)
		}
		hi, ok1 := unhex(rest[i+1])
		lo, ok2 := unhex(rest[i+2])
		if !ok1 || !ok2 {
			return "", fmt.Errorf("%w: bad escape %q at offset %d", ErrMalformed, rest[i:i+3], len(Scheme)+i)
		}
		out = append(out, hi<<4|lo)
		i += 2
	}
	return string(out), nil
}

// Encode returns the file:// URI for path, percent-encoding every byte that
// is not an unreserved URI character or '/'.
func Encode(path string) string {
	var b strings.Builder
	b.Grow(len(Scheme) + len(path))
	b.WriteString(Scheme)
	for i := 0; i < len(path); i++ {
		c := path[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func shouldEscape(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return false
	}
	switch c {
	case '-', '_', '.', '~', '/':
		return false
	}
	return true
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
