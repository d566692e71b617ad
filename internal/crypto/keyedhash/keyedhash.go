// Package keyedhash signs messages with a BLAKE3 keyed hash.
//
// This is a symmetric scheme: the same 32-byte secret signs and verifies.
package keyedhash

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/mrz1836/keysmith/internal/errors"
	"github.com/mrz1836/keysmith/internal/input"
)

const (
	// KeySize is the number of significant key bytes.
	KeySize = 32

	// SignatureSize is the length of a keyed-hash digest.
	SignatureSize = 32
)

// Hasher signs and verifies with a fixed 32-byte key.
type Hasher struct {
	key [KeySize]byte
}

// New builds a Hasher from the first 32 bytes of key. Any bytes past the
// 32nd are ignored, so a key file with a trailing newline still works.
func New(key []byte) (*Hasher, error) {
	if len(key) < KeySize {
		return nil, errors.Wrapf(errors.ErrInvalidKeyLength, "blake3 key needs at least %d bytes, got %d", KeySize, len(key))
	}

	h := &Hasher{}
	copy(h.key[:], key[:KeySize])
	return h, nil
}

// Sign returns the keyed BLAKE3 digest of everything in r.
func (h *Hasher) Sign(ctx context.Context, r io.Reader) ([]byte, error) {
	msg, err := input.ReadAll(ctx, r)
	if err != nil {
		return nil, err
	}
	return h.digest(msg)
}

// Verify recomputes the digest of r and compares it with sig in constant
// time. A signature of the wrong length is a mismatch, not an error.
func (h *Hasher) Verify(ctx context.Context, r io.Reader, sig []byte) (bool, error) {
	msg, err := input.ReadAll(ctx, r)
	if err != nil {
		return false, err
	}

	want, err := h.digest(msg)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(want, sig) == 1, nil
}

func (h *Hasher) digest(msg []byte) ([]byte, error) {
	hasher, err := blake3.NewKeyed(h.key[:])
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidKeyLength, err.Error())
	}
	_, _ = hasher.Write(msg) // blake3 Hasher.Write never fails
	return hasher.Sum(nil), nil
}

// Generate draws a fresh 32-byte key from r.
func Generate(r io.Reader) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRandomSource, err)
	}
	return key, nil
}
