// Package input resolves input designators into byte streams.
//
// A designator is either "-" for standard input or a file path. Every
// consumer reads the whole stream into memory before doing any work, so
// input size is bounded by available memory.
package input

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mrz1836/keysmith/internal/constants"
	"github.com/mrz1836/keysmith/internal/errors"
)

// Resolver turns designators into readers.
type Resolver struct {
	stdin io.Reader
}

// NewResolver creates a Resolver that reads "-" from stdin.
// A nil stdin falls back to os.Stdin.
func NewResolver(stdin io.Reader) *Resolver {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Resolver{stdin: stdin}
}

// Open returns a reader for the designator. Standard input is never closed
// by the returned ReadCloser; files are.
func (r *Resolver) Open(designator string) (io.ReadCloser, error) {
	if designator == constants.StdinDesignator {
		return io.NopCloser(r.stdin), nil
	}

	f, err := os.Open(designator) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, pathError(designator, err)
	}
	return f, nil
}

// ReadAll opens the designator, buffers its full contents and releases the
// handle on every exit path.
func (r *Resolver) ReadAll(ctx context.Context, designator string) ([]byte, error) {
	rc, err := r.Open(designator)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return ReadAll(ctx, rc)
}

// ReadAll buffers a reader fully. The context is checked before and after
// the read; there is no way to interrupt a blocking read itself.
func ReadAll(ctx context.Context, rd io.Reader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w: %w", errors.ErrIO, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// ValidateFile checks that a designator is "-" or an existing path.
func ValidateFile(designator string) error {
	if designator == constants.StdinDesignator {
		return nil
	}
	if _, err := os.Stat(designator); err != nil {
		return pathError(designator, err)
	}
	return nil
}

// ValidateDir checks that path exists and is a directory.
func ValidateDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return errors.Wrapf(errors.ErrNotADirectory, "%q", path)
	}
	return nil
}

// pathError classifies an os error, keeping both the I/O category and the
// more specific not-found sentinel reachable through errors.Is.
func pathError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%q: %w: %w", path, errors.ErrIO, errors.ErrNotFound)
	}
	return fmt.Errorf("%q: %w: %w", path, errors.ErrIO, err)
}
