package crypto

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"

	"github.com/mrz1836/keysmith/internal/errors"
)

// Key pairs raw key material with the format it is meant for.
// Constructing a Signer or Verifier always goes through a Key, so the
// format can never be inferred from the bytes or mixed up between the
// signing and verifying sides.
type Key struct {
	Format   Format
	Material []byte
}

// LoadKey reads the full contents of a key file. It performs no parsing and
// no length validation; that is deferred to the scheme constructor.
func LoadKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // key path comes from the command line
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading key %q: %w: %w", path, errors.ErrIO, errors.ErrNotFound)
		}
		return nil, fmt.Errorf("reading key %q: %w: %w", path, errors.ErrIO, err)
	}
	return data, nil
}

// LoadFormatKey loads a key file and tags it with its format.
func LoadFormatKey(f Format, path string) (Key, error) {
	material, err := LoadKey(path)
	if err != nil {
		return Key{}, err
	}
	return Key{Format: f, Material: material}, nil
}

// NewKey tags inline key material with a format. The material is copied so
// later changes by the caller cannot affect the key.
func NewKey(f Format, material []byte) Key {
	return Key{Format: f, Material: bytes.Clone(material)}
}
