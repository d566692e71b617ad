// Package native provides Ed25519 signing using standard crypto libraries.
package native

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"fmt"
	"io"

	"filippo.io/edwards25519"

	"github.com/mrz1836/keysmith/internal/errors"
	"github.com/mrz1836/keysmith/internal/input"
)

const (
	// SeedSize is the length of an Ed25519 private seed.
	SeedSize = ed25519.SeedSize

	// PublicKeySize is the length of an Ed25519 public key.
	PublicKeySize = ed25519.PublicKeySize

	// SignatureSize is the length of an Ed25519 signature.
	SignatureSize = ed25519.SignatureSize
)

// Signer signs with an Ed25519 key derived from a 32-byte seed.
type Signer struct {
	privKey ed25519.PrivateKey
}

// NewSigner derives the signing keypair from seed. The seed must be exactly
// 32 bytes.
func NewSigner(seed []byte) (*Signer, error) {
	if len(seed) != SeedSize {
		return nil, errors.Wrapf(errors.ErrInvalidKeyLength, "ed25519 seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	return &Signer{privKey: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign signs everything in r. Ed25519 signatures are deterministic.
func (s *Signer) Sign(ctx context.Context, r io.Reader) ([]byte, error) {
	msg, err := input.ReadAll(ctx, r)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(s.privKey, msg), nil
}

// PublicKey returns a copy of the public half of the keypair.
func (s *Signer) PublicKey() []byte {
	pub, _ := s.privKey.Public().(ed25519.PublicKey)
	return append([]byte(nil), pub...)
}

// Verifier checks Ed25519 signatures against a 32-byte public key.
type Verifier struct {
	pubKey ed25519.PublicKey
}

// NewVerifier validates pub as a canonically encoded curve point and wraps it.
func NewVerifier(pub []byte) (*Verifier, error) {
	if len(pub) != PublicKeySize {
		return nil, errors.Wrapf(errors.ErrInvalidKeyLength, "ed25519 public key must be %d bytes, got %d", PublicKeySize, len(pub))
	}
	point, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return nil, fmt.Errorf("ed25519 public key: %w: %w", errors.ErrInvalidKeyEncoding, err)
	}
	// SetBytes accepts y >= p and a set sign bit on x = 0.
	if !bytes.Equal(point.Bytes(), pub) {
		return nil, errors.Wrap(errors.ErrInvalidKeyEncoding, "ed25519 public key is not canonically encoded")
	}
	return &Verifier{pubKey: append(ed25519.PublicKey(nil), pub...)}, nil
}

// Verify reports whether sig is a valid signature of everything in r.
// The signature must be exactly 64 bytes.
func (v *Verifier) Verify(ctx context.Context, r io.Reader, sig []byte) (bool, error) {
	if len(sig) != SignatureSize {
		return false, errors.Wrapf(errors.ErrInvalidSignatureLength, "ed25519 signature must be %d bytes, got %d", SignatureSize, len(sig))
	}

	msg, err := input.ReadAll(ctx, r)
	if err != nil {
		return false, err
	}
	return ed25519.Verify(v.pubKey, msg, sig), nil
}

// Generate creates a new keypair from r and returns the seed and the public
// key derived from it.
func Generate(r io.Reader) (seed, pub []byte, err error) {
	pubKey, privKey, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, nil, fmt.Errorf("generating ed25519 key: %w: %w", errors.ErrRandomSource, err)
	}
	return privKey.Seed(), []byte(pubKey), nil
}
