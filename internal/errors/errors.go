// Package errors provides centralized error handling for keysmith.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// I/O and transport errors.
var (
	// ErrIO indicates a file or stream could not be read or written.
	ErrIO = errors.New("i/o error")

	// ErrNotFound indicates an input path or key file does not exist.
	ErrNotFound = errors.New("path does not exist")

	// ErrNotADirectory indicates a path that must be an existing directory is not one.
	ErrNotADirectory = errors.New("path does not exist or is not a directory")

	// ErrKeyFileExists indicates key generation would overwrite an existing file.
	ErrKeyFileExists = errors.New("key file already exists")

	// ErrDirLocked indicates another process is generating keys in the same directory.
	ErrDirLocked = errors.New("output directory is locked")

	// ErrEncoding indicates malformed base64 at a transport boundary.
	ErrEncoding = errors.New("malformed base64 encoding")
)

// Cryptographic errors. A failed signature check is not an error; verify
// reports it as false.
var (
	// ErrInvalidKeyLength indicates key bytes do not have the length the scheme requires.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidKeyEncoding indicates key bytes do not decode to a valid key.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")

	// ErrInvalidSignatureLength indicates signature bytes are not the scheme's fixed length.
	ErrInvalidSignatureLength = errors.New("invalid signature length")

	// ErrAuthentication indicates the AEAD tag did not verify on decrypt.
	ErrAuthentication = errors.New("authentication failed")

	// ErrUnknownFormat indicates an unsupported signing format name.
	ErrUnknownFormat = errors.New("unknown signing format")

	// ErrInvalidNonceMode indicates an unsupported nonce mode name.
	ErrInvalidNonceMode = errors.New("invalid nonce mode")

	// ErrRandomSource indicates the random source failed to produce bytes.
	ErrRandomSource = errors.New("random source failure")
)

// CLI and configuration errors.
var (
	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrInvalidLength indicates a requested length is outside the allowed range.
	ErrInvalidLength = errors.New("invalid length")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}

// Is reports whether any error in err's chain matches target.
// It re-exports the standard library function so callers need a single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
