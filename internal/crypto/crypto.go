// Package crypto seals clipboard payloads with NaCl secretbox so a payload
// stream can cross an untrusted pipe.
//
// The 32-byte key is derived from a shared token with HKDF-SHA256. Each
// sealed message carries its own random nonce:
//
//	[ 24-byte nonce ][ ciphertext ]
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	KeySize   = 32
	nonceSize = 24
)

// ErrOpen is returned when a message fails authentication.
var ErrOpen = errors.New("crypto: decryption failed (wrong token?)")

var hkdfInfo = []byte("clipshare-payload-v1")

// Key is a secretbox key.
type Key = [KeySize]byte

// DeriveKey derives a key from token. Both ends must use the same token.
// An empty token yields a nil key, meaning payloads travel in the clear.
func DeriveKey(token string) (*Key, error) {
	if token == "" {
		return nil, nil
	}
	h := hkdf.New(sha256.New, []byte(token), nil, hkdfInfo)
	var key Key
	if _, err := io.ReadFull(h, key[:]); err != nil {
		return nil, fmt.Errorf("key derivation: %w", err)
	}
	return &key, nil
}

// Seal encrypts plaintext and returns nonce+ciphertext.
func Seal(plaintext []byte, key *Key) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("nonce generation: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, key), nil
}

// Open decrypts nonce+ciphertext produced by Seal.
func Open(sealed []byte, key *Key) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: message too short", ErrOpen)
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, key)
	if !ok {
		return nil, ErrOpen
	}
	return plain, nil
}
