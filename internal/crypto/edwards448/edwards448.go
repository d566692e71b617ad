// Package edwards448 provides Ed448 signing backed by cloudflare/circl.
//
// Signatures use pure Ed448 with an empty context string.
package edwards448

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/ed448"

	"github.com/mrz1836/keysmith/internal/errors"
	"github.com/mrz1836/keysmith/internal/input"
)

const (
	// SeedSize is the length of an Ed448 private seed.
	SeedSize = ed448.SeedSize

	// PublicKeySize is the length of an Ed448 public key.
	PublicKeySize = ed448.PublicKeySize

	// SignatureSize is the length of an Ed448 signature.
	SignatureSize = ed448.SignatureSize
)

// signingContext is the Ed448 context string. Empty means plain Ed448.
const signingContext = ""

// Signer signs with an Ed448 key derived from a 57-byte seed.
type Signer struct {
	privKey ed448.PrivateKey
}

// NewSigner derives the signing keypair from seed.
func NewSigner(seed []byte) (*Signer, error) {
	if len(seed) != SeedSize {
		return nil, errors.Wrapf(errors.ErrInvalidKeyLength, "ed448 seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	return &Signer{privKey: ed448.NewKeyFromSeed(seed)}, nil
}

// Sign signs everything in r.
func (s *Signer) Sign(ctx context.Context, r io.Reader) ([]byte, error) {
	msg, err := input.ReadAll(ctx, r)
	if err != nil {
		return nil, err
	}
	return ed448.Sign(s.privKey, msg, signingContext), nil
}

// PublicKey returns a copy of the public half of the keypair.
func (s *Signer) PublicKey() []byte {
	pub, _ := s.privKey.Public().(ed448.PublicKey)
	return append([]byte(nil), pub...)
}

// Verifier checks Ed448 signatures.
//
// Only the key length is checked up front. A key that is not a valid
// curve point makes every signature fail to verify.
type Verifier struct {
	pubKey ed448.PublicKey
}

// NewVerifier wraps a 57-byte public key.
func NewVerifier(pub []byte) (*Verifier, error) {
	if len(pub) != PublicKeySize {
		return nil, errors.Wrapf(errors.ErrInvalidKeyLength, "ed448 public key must be %d bytes, got %d", PublicKeySize, len(pub))
	}
	return &Verifier{pubKey: append(ed448.PublicKey(nil), pub...)}, nil
}

// Verify reports whether sig is a valid signature of everything in r.
func (v *Verifier) Verify(ctx context.Context, r io.Reader, sig []byte) (bool, error) {
	if len(sig) != SignatureSize {
		return false, errors.Wrapf(errors.ErrInvalidSignatureLength, "ed448 signature must be %d bytes, got %d", SignatureSize, len(sig))
	}

	msg, err := input.ReadAll(ctx, r)
	if err != nil {
		return false, err
	}
	return ed448.Verify(v.pubKey, msg, sig, signingContext), nil
}

// Generate creates a new keypair from r and returns the seed and public key.
func Generate(r io.Reader) (seed, pub []byte, err error) {
	pubKey, privKey, err := ed448.GenerateKey(r)
	if err != nil {
		return nil, nil, fmt.Errorf("generating ed448 key: %w: %w", errors.ErrRandomSource, err)
	}
	return privKey.Seed(), []byte(pubKey), nil
}
