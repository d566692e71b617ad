// Package text implements the text subcommands: signing, verification,
// key generation, and passphrase encryption of text read from a file or
// standard input.
package text

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/keysmith/internal/constants"
	"github.com/mrz1836/keysmith/internal/crypto"
	"github.com/mrz1836/keysmith/internal/crypto/aead"
	"github.com/mrz1836/keysmith/internal/errors"
	"github.com/mrz1836/keysmith/internal/flock"
	"github.com/mrz1836/keysmith/internal/input"
)

// signatureEncoding is the transport encoding for signatures.
var signatureEncoding = base64.RawURLEncoding //nolint:gochecknoglobals // immutable encoding

// Service runs text operations. Each call loads its key material fresh and
// keeps nothing between calls.
type Service struct {
	inputs *input.Resolver
	logger zerolog.Logger
	rand   io.Reader
}

// ServiceOption configures optional Service behavior.
type ServiceOption func(*Service)

// WithRand sets the entropy source used for key generation.
func WithRand(r io.Reader) ServiceOption {
	return func(s *Service) {
		s.rand = r
	}
}

// NewService creates a Service reading "-" through inputs.
func NewService(inputs *input.Resolver, logger zerolog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		inputs: inputs,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign signs the full input with the key at req.KeyPath.
func (s *Service) Sign(ctx context.Context, req *SignRequest) (*SignResponse, error) {
	key, err := crypto.LoadFormatKey(req.Format, req.KeyPath)
	if err != nil {
		return nil, err
	}
	signer, err := crypto.NewSigner(key)
	if err != nil {
		return nil, err
	}

	rc, err := s.inputs.Open(req.Input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	sig, err := signer.Sign(ctx, rc)
	if err != nil {
		return nil, errors.Wrap(err, "signing input")
	}

	s.logger.Debug().
		Str("format", req.Format.String()).
		Str("input", req.Input).
		Int("signature_bytes", len(sig)).
		Msg("input signed")

	return &SignResponse{
		Signature: signatureEncoding.EncodeToString(sig),
		Format:    req.Format,
	}, nil
}

// Verify checks req.Signature against the full input. A mismatch is
// reported through VerifyResponse.Valid, not as an error.
func (s *Service) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResponse, error) {
	sig, err := signatureEncoding.DecodeString(strings.TrimSpace(req.Signature))
	if err != nil {
		return nil, fmt.Errorf("decoding signature: %w: %w", errors.ErrEncoding, err)
	}

	key, err := crypto.LoadFormatKey(req.Format, req.KeyPath)
	if err != nil {
		return nil, err
	}
	verifier, err := crypto.NewVerifier(key)
	if err != nil {
		return nil, err
	}

	rc, err := s.inputs.Open(req.Input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	valid, err := verifier.Verify(ctx, rc, sig)
	if err != nil {
		return nil, errors.Wrap(err, "verifying input")
	}

	s.logger.Debug().
		Str("format", req.Format.String()).
		Str("input", req.Input).
		Bool("valid", valid).
		Msg("signature checked")

	return &VerifyResponse{Valid: valid, Format: req.Format}, nil
}

// Generate writes fresh key files for req.Format into req.Dir. Unless
// req.Force is set, nothing is written when any target already exists.
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := input.ValidateDir(req.Dir); err != nil {
		return nil, err
	}

	names := req.Format.KeyFiles()
	if names == nil {
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "generate for %s", req.Format)
	}

	lock, err := flock.Acquire(filepath.Join(req.Dir, constants.LockFileName))
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			s.logger.Warn().Err(releaseErr).Str("dir", req.Dir).Msg("failed to release output directory lock")
		}
	}()

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(req.Dir, name)
		if req.Force {
			continue
		}
		if _, err := os.Lstat(paths[i]); err == nil {
			return nil, errors.Wrapf(errors.ErrKeyFileExists, "%s (use --force to overwrite)", paths[i])
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking %s: %w: %w", paths[i], errors.ErrIO, err)
		}
	}

	if req.Legacy && req.Format == crypto.FormatBlake3 {
		s.logger.Warn().Msg("legacy blake3 keys are printable passwords with less entropy than random bytes")
	}

	blocks, err := crypto.Generate(req.Format, crypto.GenerateOptions{Legacy: req.Legacy, Rand: s.rand})
	if err != nil {
		return nil, err
	}

	for i, block := range blocks {
		mode := constants.SecretKeyFileMode
		if isPublicKey(req.Format, i) {
			mode = constants.PublicKeyFileMode
		}
		if err := writeKeyFile(paths[i], block, mode, req.Force); err != nil {
			s.removeKeyFiles(paths[:i])
			return nil, err
		}
		s.logger.Info().
			Str("format", req.Format.String()).
			Str("path", paths[i]).
			Msg("key file written")
	}

	s.logger.Warn().
		Str("dir", req.Dir).
		Msg("private keys are stored unencrypted; restrict access to the output directory")

	return &GenerateResponse{Files: paths, Format: req.Format}, nil
}

// removeKeyFiles deletes files written earlier in a failed generate so no
// partial key set is left behind.
func (s *Service) removeKeyFiles(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove partial key file")
		}
	}
}

// isPublicKey reports whether block i of a generated key set is public.
func isPublicKey(f crypto.Format, i int) bool {
	return !f.IsSymmetric() && i == 1
}

// writeKeyFile writes data with the given permissions. Without force the
// file must not exist yet.
func writeKeyFile(path string, data []byte, mode os.FileMode, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, mode) //nolint:gosec // output path comes from the command line
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errors.Wrapf(errors.ErrKeyFileExists, "%s", path)
		}
		return fmt.Errorf("creating %s: %w: %w", path, errors.ErrIO, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("writing %s: %w: %w", path, errors.ErrIO, err)
	}
	// O_TRUNC keeps the old mode of an existing file.
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("setting mode on %s: %w: %w", path, errors.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("closing %s: %w: %w", path, errors.ErrIO, err)
	}
	return nil
}

// Encrypt encrypts the trimmed input text under req.Passphrase.
func (s *Service) Encrypt(ctx context.Context, req *EncryptRequest) (*EncryptResponse, error) {
	c, err := s.cipher(req.Passphrase, req.Nonce)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.inputs.ReadAll(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	ciphertext, err := c.Encrypt(string(plaintext))
	if err != nil {
		return nil, errors.Wrap(err, "encrypting input")
	}

	s.logger.Debug().
		Str("nonce", req.Nonce.String()).
		Str("input", req.Input).
		Msg("input encrypted")

	return &EncryptResponse{Ciphertext: ciphertext}, nil
}

// Decrypt decrypts the base64 ciphertext read from the input.
func (s *Service) Decrypt(ctx context.Context, req *DecryptRequest) (*DecryptResponse, error) {
	c, err := s.cipher(req.Passphrase, req.Nonce)
	if err != nil {
		return nil, err
	}

	encoded, err := s.inputs.ReadAll(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	plaintext, err := c.Decrypt(string(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "decrypting input")
	}

	s.logger.Debug().
		Str("nonce", req.Nonce.String()).
		Str("input", req.Input).
		Msg("input decrypted")

	return &DecryptResponse{Plaintext: plaintext}, nil
}

func (s *Service) cipher(passphrase string, mode aead.NonceMode) (*aead.Cipher, error) {
	c, err := aead.New(passphrase, mode)
	if err != nil {
		return nil, err
	}
	if mode == aead.NonceZero {
		s.logger.Warn().
			Str("nonce", mode.String()).
			Msg("zero nonce mode is deprecated; reusing a passphrase across messages breaks confidentiality")
	}
	return c, nil
}
