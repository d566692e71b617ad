package crypto

import (
	"strings"

	"github.com/mrz1836/keysmith/internal/constants"
	"github.com/mrz1836/keysmith/internal/crypto/edwards448"
	"github.com/mrz1836/keysmith/internal/crypto/keyedhash"
	"github.com/mrz1836/keysmith/internal/crypto/native"
	"github.com/mrz1836/keysmith/internal/errors"
)

// Format selects a signing scheme.
type Format uint8

// Supported formats. The zero value is invalid so that an unset Format is
// never silently treated as a real scheme.
const (
	FormatUnknown Format = iota
	FormatBlake3
	FormatEd25519
	FormatEd448
)

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FormatBlake3, FormatEd25519, FormatEd448}
}

// FormatNames returns the names of every supported format.
func FormatNames() []string {
	formats := Formats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.String())
	}
	return names
}

// ParseFormat converts a format name into a Format. Matching is case-insensitive.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "blake3":
		return FormatBlake3, nil
	case "ed25519":
		return FormatEd25519, nil
	case "ed448":
		return FormatEd448, nil
	default:
		return FormatUnknown, errors.Wrapf(errors.ErrUnknownFormat, "%q (want one of %s)", name, strings.Join(FormatNames(), ", "))
	}
}

// String returns the format's name as accepted by ParseFormat.
func (f Format) String() string {
	switch f {
	case FormatBlake3:
		return "blake3"
	case FormatEd25519:
		return "ed25519"
	case FormatEd448:
		return "ed448"
	case FormatUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if f == FormatUnknown || f > FormatEd448 {
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "format %d", uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Set implements pflag.Value so a Format can be bound directly to a flag.
func (f *Format) Set(s string) error {
	return f.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}

// SignatureSize returns the fixed signature length of the format in bytes.
func (f Format) SignatureSize() int {
	switch f {
	case FormatBlake3:
		return keyedhash.SignatureSize
	case FormatEd25519:
		return native.SignatureSize
	case FormatEd448:
		return edwards448.SignatureSize
	case FormatUnknown:
		return 0
	default:
		return 0
	}
}

// KeyFiles returns the file names that key generation writes, in the same
// order as the blocks returned by Generate.
func (f Format) KeyFiles() []string {
	switch f {
	case FormatBlake3:
		return []string{constants.Blake3KeyFile}
	case FormatEd25519:
		return []string{constants.Ed25519PrivateKeyFile, constants.Ed25519PublicKeyFile}
	case FormatEd448:
		return []string{constants.Ed448PrivateKeyFile, constants.Ed448PublicKeyFile}
	case FormatUnknown:
		return nil
	default:
		return nil
	}
}

// IsSymmetric reports whether the same key both signs and verifies.
func (f Format) IsSymmetric() bool {
	return f == FormatBlake3
}
