package crypto

import (
	"crypto/rand"
	"io"

	"github.com/mrz1836/keysmith/internal/crypto/edwards448"
	"github.com/mrz1836/keysmith/internal/crypto/keyedhash"
	"github.com/mrz1836/keysmith/internal/crypto/native"
	"github.com/mrz1836/keysmith/internal/errors"
	"github.com/mrz1836/keysmith/internal/passgen"
)

// GenerateOptions tunes key generation.
type GenerateOptions struct {
	// Legacy makes BLAKE3 keys out of a 32-character printable password
	// instead of raw random bytes, for compatibility with keys produced by
	// older tooling. It has no effect on the other formats.
	Legacy bool

	// Rand is the entropy source. Defaults to crypto/rand.Reader.
	Rand io.Reader
}

// NewSigner builds the signer for k.Format from k.Material.
// For Ed25519 and Ed448 the material is the private seed.
//
//nolint:ireturn // dispatch over a closed set of schemes
func NewSigner(k Key) (Signer, error) {
	var (
		s   Signer
		err error
	)
	switch k.Format {
	case FormatBlake3:
		s, err = keyedhash.New(k.Material)
	case FormatEd25519:
		s, err = native.NewSigner(k.Material)
	case FormatEd448:
		s, err = edwards448.NewSigner(k.Material)
	case FormatUnknown:
		return nil, errors.Wrap(errors.ErrUnknownFormat, "signer")
	default:
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "signer for format %d", uint8(k.Format))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s signer", k.Format)
	}
	return s, nil
}

// NewVerifier builds the verifier for k.Format from k.Material.
// For Ed25519 and Ed448 the material is the public key; for BLAKE3 it is
// the shared secret.
//
//nolint:ireturn // dispatch over a closed set of schemes
func NewVerifier(k Key) (Verifier, error) {
	var (
		v   Verifier
		err error
	)
	switch k.Format {
	case FormatBlake3:
		v, err = keyedhash.New(k.Material)
	case FormatEd25519:
		v, err = native.NewVerifier(k.Material)
	case FormatEd448:
		v, err = edwards448.NewVerifier(k.Material)
	case FormatUnknown:
		return nil, errors.Wrap(errors.ErrUnknownFormat, "verifier")
	default:
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "verifier for format %d", uint8(k.Format))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s verifier", k.Format)
	}
	return v, nil
}

// Generate creates fresh key material for f. The blocks line up with
// f.KeyFiles(): one secret for BLAKE3, [private seed, public key] for the
// asymmetric formats.
func Generate(f Format, opts GenerateOptions) ([][]byte, error) {
	r := opts.Rand
	if r == nil {
		r = rand.Reader
	}

	switch f {
	case FormatBlake3:
		if opts.Legacy {
			return generateLegacyBlake3(r)
		}
		key, err := keyedhash.Generate(r)
		if err != nil {
			return nil, err
		}
		return [][]byte{key}, nil
	case FormatEd25519:
		seed, pub, err := native.Generate(r)
		if err != nil {
			return nil, err
		}
		return [][]byte{seed, pub}, nil
	case FormatEd448:
		seed, pub, err := edwards448.Generate(r)
		if err != nil {
			return nil, err
		}
		return [][]byte{seed, pub}, nil
	case FormatUnknown:
		return nil, errors.Wrap(errors.ErrUnknownFormat, "generate")
	default:
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "generate for format %d", uint8(f))
	}
}

// generateLegacyBlake3 derives a BLAKE3 key from a printable password drawn
// from all four character classes.
func generateLegacyBlake3(r io.Reader) ([][]byte, error) {
	password, err := passgen.New(r).Generate(keyedhash.KeySize, passgen.AllClasses)
	if err != nil {
		return nil, errors.Wrap(err, "generating legacy blake3 key")
	}
	return [][]byte{[]byte(password)}, nil
}
