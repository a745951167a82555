// Package conf loads the clipshare server configuration.
//
// The file is line oriented:
//
//	app_port=4337
//	server_cert = /etc/clipshare/server.crt
//
// Lines without '=' are ignored, as are unknown keys. A missing file is not an
// error: Load returns a Config with every field unset so the caller can run
// on defaults.
package conf

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"go.klb.dev/clipshare/internal/fsutil"
)

const (
	// MaxLineLen is the longest config line considered; the rest of a longer
	// line is discarded.
	MaxLineLen = 2047
	// MaxKeyLen is the longest key recognised.
	MaxKeyLen = 255
	// MaxClientLen is the longest allow-list entry; the rest of a longer line
	// is discarded.
	MaxClientLen = 511
	// MaxFileSize bounds key and certificate files loaded into memory.
	MaxFileSize = 65536
)

// Recognised keys.
const (
	KeyAppPort        = "app_port"
	KeyAppPortSecure  = "app_port_secure"
	KeyWebPort        = "web_port"
	KeyServerKey      = "server_key"
	KeyServerCert     = "server_cert"
	KeyCACert         = "ca_cert"
	KeyAllowedClients = "allowed_clients"
)

// Config is the server configuration. Zero ports and nil buffers mean unset.
type Config struct {
	AppPort       uint16
	AppPortSecure uint16
	WebPort       uint16

	PrivKey    []byte
	ServerCert []byte
	CACert     []byte

	// AllowedClients is nil when no allow-list file was loaded. A loaded but
	// empty file gives an empty non-nil slice.
	AllowedClients []string
}

// Load parses the config file at path. It never fails: unreadable input
// leaves the affected fields unset.
func Load(fsys afero.Fs, path string) Config {
	var cfg Config

	f, err := fsys.Open(path)
	if err != nil {
		slog.Debug("config file not opened, using defaults", "path", path, "err", err)
		return cfg
	}
	defer f.Close()

	lr := newLineReader(f, MaxLineLen)
	for {
		line, err := lr.next()
		if err != nil {
			if err != io.EOF {
				slog.Debug("config read stopped", "path", path, "err", err)
			}
			break
		}
		cfg.apply(fsys, line)
	}
	return cfg
}

func (cfg *Config) apply(fsys afero.Fs, line string) {
	before, after, ok := strings.Cut(line, "=")
	if !ok {
		return
	}
	key := firstToken(before, MaxKeyLen)
	value := trim(after)

	slog.Debug("config entry", "key", key, "value", value)

	switch key {
	case KeyAppPort:
		setPort(&cfg.AppPort, value)
	case KeyAppPortSecure:
		setPort(&cfg.AppPortSecure, value)
	case KeyWebPort:
		setPort(&cfg.WebPort, value)
	case KeyServerKey:
		loadInto(fsys, &cfg.PrivKey, value)
	case KeyServerCert:
		loadInto(fsys, &cfg.ServerCert, value)
	case KeyCACert:
		loadInto(fsys, &cfg.CACert, value)
	case KeyAllowedClients:
		if clients, ok := loadClients(fsys, value); ok {
			cfg.AllowedClients = clients
		}
	}
}

func setPort(dst *uint16, value string) {
	n, ok := parseLeadingInt(value)
	if ok && 0 < n && n < 65536 {
		*dst = uint16(n)
	}
}

// loadInto leaves dst untouched when the file cannot be opened. Once opened,
// dst is replaced by the contents, or cleared if the file is not a regular
// file of 1..MaxFileSize bytes.
func loadInto(fsys afero.Fs, dst *[]byte, path string) {
	f, err := fsys.Open(path)
	if err != nil {
		slog.Debug("config: cannot open file", "path", path, "err", err)
		return
	}
	defer f.Close()
	*dst = loadFile(f)
}

func loadFile(f afero.File) []byte {
	size, err := fsutil.FileSize(f)
	if err != nil {
		slog.Debug("config: cannot size file", "path", f.Name(), "err", err)
		return nil
	}
	if size <= 0 || size > MaxFileSize {
		slog.Debug("config: file size out of range", "path", f.Name(), "size", size)
		return nil
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil
	}
	return buf
}

// loadClients reads an allow-list file: one client name per line, blank and
// '#' lines skipped. ok is false when the file cannot be opened.
func loadClients(fsys afero.Fs, path string) (clients []string, ok bool) {
	f, err := fsys.Open(path)
	if err != nil {
		slog.Debug("config: cannot open allowed clients", "path", path, "err", err)
		return nil, false
	}
	defer f.Close()

	clients = make([]string, 0, 1)
	lr := newLineReader(f, MaxClientLen)
	for {
		line, err := lr.next()
		if err != nil {
			break
		}
		client := trim(line)
		if client == "" || client[0] == '#' {
			continue
		}
		slog.Debug("allowed client", "client", client)
		clients = append(clients, client)
	}
	return clients, true
}

// trim strips bytes in the range 0x01..0x20 from both ends of s.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return 0 < r && r <= ' ' })
}

// firstToken returns the first whitespace-delimited token of s, cut to max
// bytes.
func firstToken(s string, max int) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	tok := fields[0]
	if len(tok) > max {
		tok = tok[:max]
	}
	return tok
}

// parseLeadingInt parses an optionally signed base-10 integer prefix of s,
// ignoring anything after the digits. ok is false when s has no digits or the
// value does not fit in an int64.
func parseLeadingInt(s string) (n int64, ok bool) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	digits := 0
	for digits < len(s) && '0' <= s[digits] && s[digits] <= '9' {
		d := int64(s[digits] - '0')
		if n > (1<<63-1-d)/10 {
			return 0, false
		}
		n = n*10 + d
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// lineReader yields newline-terminated lines capped at max bytes. The tail
// of an overlong line is read and discarded so it never becomes a line of its
// own.
type lineReader struct {
	br  *bufio.Reader
	max int
}

func newLineReader(r io.Reader, max int) *lineReader {
	return &lineReader{br: bufio.NewReader(r), max: max}
}

func (lr *lineReader) next() (string, error) {
	var (
		line []byte
		read bool
	)
	for {
		chunk, isPrefix, err := lr.br.ReadLine()
		if err != nil {
			if read {
				return string(line), nil
			}
			return "", err
		}
		read = true
		if room := lr.max - len(line); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			line = append(line, chunk...)
		}
		if !isPrefix {
			return string(line), nil
		}
	}
}
