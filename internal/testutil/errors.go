// Package testutil provides testing utilities for keysmith.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockRead is returned by FailingReader.
	ErrMockRead = errors.New("mock read failure")

	// ErrMockRandom is returned by FailingRand.
	ErrMockRandom = errors.New("mock random source failure")
)

// FailingReader is an io.Reader whose reads always fail.
type FailingReader struct{}

// Read implements io.Reader.
func (FailingReader) Read(_ []byte) (int, error) {
	return 0, ErrMockRead
}

// FailingRand is a random source whose reads always fail.
type FailingRand struct{}

// Read implements io.Reader.
func (FailingRand) Read(_ []byte) (int, error) {
	return 0, ErrMockRandom
}
