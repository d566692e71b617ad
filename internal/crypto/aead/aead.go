// Package aead encrypts text with ChaCha20-Poly1305 under a passphrase.
//
// The key is the first 32 bytes of the passphrase with no derivation step.
// Ciphertexts are transported as padded standard base64.
package aead

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/mrz1836/keysmith/internal/errors"
)

// KeySize is the number of passphrase bytes used as the key.
const KeySize = chacha20poly1305.KeySize

// NonceMode selects how nonces are chosen.
type NonceMode uint8

const (
	// NonceRandom draws a fresh 12-byte nonce per message and prepends it
	// to the ciphertext.
	NonceRandom NonceMode = iota

	// NonceZero uses an all-zero nonce and emits the bare ciphertext. It
	// reads and writes ciphertexts made by older tooling. Encrypting two
	// messages under the same passphrase in this mode breaks both secrecy
	// and integrity.
	NonceZero
)

// ParseNonceMode converts "random" or "zero" into a NonceMode.
func ParseNonceMode(name string) (NonceMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random":
		return NonceRandom, nil
	case "zero":
		return NonceZero, nil
	default:
		return NonceRandom, errors.Wrapf(errors.ErrInvalidNonceMode, "%q (want random or zero)", name)
	}
}

// String returns the mode name.
func (m NonceMode) String() string {
	switch m {
	case NonceRandom:
		return "random"
	case NonceZero:
		return "zero"
	default:
		return fmt.Sprintf("NonceMode(%d)", uint8(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m NonceMode) MarshalText() ([]byte, error) {
	if m > NonceZero {
		return nil, errors.Wrapf(errors.ErrInvalidNonceMode, "nonce mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *NonceMode) UnmarshalText(text []byte) error {
	parsed, err := ParseNonceMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Set implements pflag.Value.
func (m *NonceMode) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (m *NonceMode) Type() string {
	return "nonce"
}

// Cipher encrypts and decrypts text under one passphrase.
type Cipher struct {
	aead cipher.AEAD
	mode NonceMode
	rand io.Reader
}

// New builds a Cipher from the first 32 bytes of passphrase.
func New(passphrase string, mode NonceMode) (*Cipher, error) {
	if len(passphrase) < KeySize {
		return nil, errors.Wrapf(errors.ErrInvalidKeyLength, "passphrase must be at least %d bytes, got %d", KeySize, len(passphrase))
	}
	if mode > NonceZero {
		return nil, errors.Wrapf(errors.ErrInvalidNonceMode, "nonce mode %d", uint8(mode))
	}

	aead, err := chacha20poly1305.New([]byte(passphrase[:KeySize]))
	if err != nil {
		return nil, fmt.Errorf("chacha20poly1305: %w: %w", errors.ErrInvalidKeyLength, err)
	}
	return &Cipher{aead: aead, mode: mode, rand: rand.Reader}, nil
}

// Mode returns the nonce mode the cipher was built with.
func (c *Cipher) Mode() NonceMode {
	return c.mode
}

// Encrypt trims surrounding whitespace from plaintext, seals it and returns
// the base64 encoding.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	msg := []byte(strings.TrimSpace(plaintext))
	nonce := make([]byte, c.aead.NonceSize())

	var sealed []byte
	switch c.mode {
	case NonceZero:
		sealed = c.aead.Seal(nil, nonce, msg, nil)
	case NonceRandom:
		if _, err := io.ReadFull(c.rand, nonce); err != nil {
			return "", fmt.Errorf("generating nonce: %w: %w", errors.ErrRandomSource, err)
		}
		sealed = c.aead.Seal(nonce, nonce, msg, nil)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Surrounding whitespace in encoded is ignored.
// Bytes that are not valid UTF-8 are replaced with U+FFFD.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", fmt.Errorf("decoding ciphertext: %w: %w", errors.ErrEncoding, err)
	}

	nonce := make([]byte, c.aead.NonceSize())
	if c.mode == NonceRandom {
		if len(data) < len(nonce) {
			return "", errors.Wrap(errors.ErrAuthentication, "ciphertext shorter than nonce")
		}
		copy(nonce, data)
		data = data[len(nonce):]
	}

	plain, err := c.aead.Open(nil, nonce, data, nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrAuthentication, "decrypting")
	}
	return lossyUTF8(plain), nil
}

// lossyUTF8 converts b to a string, replacing each maximal ill-formed
// subsequence with one U+FFFD. A truncated multi-byte sequence counts once;
// bytes that can never start or continue a sequence count one each.
func lossyUTF8(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r != utf8.RuneError || size > 1 {
			sb.Write(b[:size])
			b = b[size:]
			continue
		}
		sb.WriteRune(utf8.RuneError)
		b = b[invalidPrefixLen(b):]
	}
	return sb.String()
}

// invalidPrefixLen returns how many bytes at the start of b form a maximal
// ill-formed subsequence. b must not start with a valid encoding.
func invalidPrefixLen(b []byte) int {
	need, lo, hi := 0, byte(0x80), byte(0xbf)
	switch c := b[0]; {
	case c >= 0xc2 && c <= 0xdf:
		need = 1
	case c == 0xe0:
		need, lo = 2, 0xa0
	case c >= 0xe1 && c <= 0xec, c == 0xee, c == 0xef:
		need = 2
	case c == 0xed:
		need, hi = 2, 0x9f
	case c == 0xf0:
		need, lo = 3, 0x90
	case c >= 0xf1 && c <= 0xf3:
		need = 3
	case c == 0xf4:
		need, hi = 3, 0x8f
	default:
		return 1
	}

	if len(b) < 2 || b[1] < lo || b[1] > hi {
		return 1
	}
	n := 2
	for n <= need && n < len(b) && b[n] >= 0x80 && b[n] <= 0xbf {
		n++
	}
	return n
}
