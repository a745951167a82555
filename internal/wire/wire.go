// Package wire frames clipboard payloads as newline-delimited JSON, with
// optional NaCl secretbox encryption.
//
// Wire format (unencrypted):
//
//	<json>\n
//
// Wire format (encrypted):
//
//	<base64(nonce+ciphertext)>\n
//
// Either way every line is a single message.Payload, so a stream of reads can
// be piped to a peer or another process and decoded one line at a time.
package wire

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"sync"

	"go.klb.dev/clipshare/internal/crypto"
	"go.klb.dev/clipshare/internal/message"
)

// MaxMessageSize is the largest message we will read (16 MiB).
const MaxMessageSize = 16 * 1024 * 1024

// Writer writes one payload per line. It is safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	key *crypto.Key // nil = no encryption
}

// NewWriter wraps w. If key is non-nil every payload is sealed before it is
// written.
func NewWriter(w io.Writer, key *crypto.Key) *Writer {
	return &Writer{w: w, key: key}
}

// WriteMsg serialises p to JSON, optionally encrypts it, and writes it
// followed by a newline.
func (w *Writer) WriteMsg(p *message.Payload) error {
	raw, err := p.Encode()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	var line []byte
	if w.key != nil {
		ct, err := crypto.Seal(raw, w.key)
		if err != nil {
			return fmt.Errorf("encrypt: %w", err)
		}
		line = base64.StdEncoding.AppendEncode(nil, ct)
	} else {
		line = raw
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	_, err = w.w.Write(line)
	return err
}

// Reader reads payloads written by Writer.
type Reader struct {
	br  *bufio.Reader
	key *crypto.Key
}

// NewReader wraps r. key must match the writer's.
func NewReader(r io.Reader, key *crypto.Key) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024), key: key}
}

// ReadMsg reads one newline-terminated line, optionally decrypts it, and
// deserialises it. It returns io.EOF once the stream is exhausted.
func (r *Reader) ReadMsg() (*message.Payload, error) {
	var line []byte
	for {
		chunk, err := r.br.ReadSlice('\n')
		if len(line)+len(chunk) > MaxMessageSize {
			return nil, fmt.Errorf("message too large (> %d bytes)", MaxMessageSize)
		}
		line = append(line, chunk...)
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		break
	}

	// Strip trailing newline
	line = line[:len(line)-1]

	raw := line
	if r.key != nil {
		ct, err := base64.StdEncoding.AppendDecode(nil, line)
		if err != nil {
			return nil, fmt.Errorf("base64 decode: %w", err)
		}
		raw, err = crypto.Open(ct, r.key)
		if err != nil {
			return nil, fmt.Errorf("decrypt: %w", err)
		}
	}
	return message.Decode(raw)
}
