// Package secretbox implements authenticated encryption for documents at rest.
//
// AES-256-GCM with a fresh 96-bit nonce per call. The key is loaded once at
// startup and held inside a Box value passed explicitly to whoever needs it;
// there is no package-level key state.
package secretbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// KeySize is the required key length: 32 bytes => AES-256.
	KeySize = 32
	// NonceSize is the recommended AES-GCM nonce size (96 bits).
	NonceSize = 12
	// TagSize is the GCM authentication tag size (128 bits).
	TagSize = 16
)

var (
	// ErrIntegrity means the ciphertext or tag failed authentication:
	// corruption or tampering. Callers must abort, never proceed.
	ErrIntegrity = errors.New("secretbox: authentication failed")

	// ErrBadKey means the configured key is missing or not 32 bytes.
	ErrBadKey = errors.New("secretbox: key must decode to 32 bytes")
)

// KeyFromBase64 decodes a base64 master key (std or raw encoding) and checks
// its length. Generate one with: openssl rand -base64 32
func KeyFromBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrBadKey
	}
	k, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		if k, err = base64.RawStdEncoding.DecodeString(s); err != nil {
			return nil, fmt.Errorf("secretbox: decode key: %w", err)
		}
	}
	if len(k) != KeySize {
		return nil, fmt.Errorf("%w (got %d)", ErrBadKey, len(k))
	}
	return k, nil
}

// Box performs AES-256-GCM encryption with a fixed key.
// A Box is immutable and safe for concurrent use.
type Box struct {
	aead cipher.AEAD
}

// New builds a Box from a raw 32-byte key.
func New(key []byte) (*Box, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w (got %d)", ErrBadKey, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("secretbox: aes.NewCipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("secretbox: cipher.NewGCM: %w", err)
	}
	return &Box{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce.
// Returns ciphertext, nonce (iv) and the 16-byte authentication tag separately,
// matching the stored blob descriptor layout.
func (b *Box) Encrypt(plaintext []byte) (ciphertext, iv, tag []byte, err error) {
	iv = make([]byte, NonceSize)
	if _, err = io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, nil, fmt.Errorf("secretbox: nonce: %w", err)
	}
	sealed := b.aead.Seal(nil, iv, plaintext, nil)
	// Seal appends the tag to the ciphertext; split it off.
	n := len(sealed) - TagSize
	return sealed[:n], iv, sealed[n:], nil
}

// Decrypt opens ciphertext with the given iv and tag.
// Any mismatch (wrong tag, flipped byte, malformed iv) returns ErrIntegrity.
func (b *Box) Decrypt(ciphertext, iv, tag []byte) ([]byte, error) {
	if len(iv) != NonceSize || len(tag) != TagSize {
		return nil, ErrIntegrity
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	pt, err := b.aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrIntegrity
	}
	return pt, nil
}
