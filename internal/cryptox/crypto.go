// Package cryptox seals session tokens before they reach persistent storage.
//
// A Sealer derives an AES-256 key from a configured secret with Argon2id and
// encrypts values with AES-GCM. The random 12-byte nonce is prepended to the
// ciphertext so a sealed value is self-contained.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
)

// ErrSealed reports a sealed value that cannot be opened with this key.
var ErrSealed = errors.New("sealed value cannot be opened")

// keySalt is fixed so the same secret yields the same key across restarts.
var keySalt = []byte("progressboard/session-token/v1")

// DeriveKey derives a 32-byte key from secret and salt with Argon2id.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

type Sealer struct {
	aead cipher.AEAD
}

// NewSealer returns a Sealer keyed by secret.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("empty sealing secret")
	}

	block, err := aes.NewCipher(DeriveKey([]byte(secret), keySalt))
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext and returns nonce||ciphertext.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n+s.aead.Overhead() {
		return nil, ErrSealed
	}
	plaintext, err := s.aead.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return nil, ErrSealed
	}
	return plaintext, nil
}

// Wipe overwrites b with zeros. Use it on passwords once they are sent.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
