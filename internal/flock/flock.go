// Package flock provides exclusive, non-blocking file locks on Unix and
// Windows.
//
// Usage:
//
//	lock, err := flock.Acquire(filepath.Join(dir, ".keysmith.lock"))
//	if err != nil {
//	    // another process holds the lock
//	}
//	defer lock.Release()
package flock

import (
	"fmt"
	"os"

	"github.com/mrz1836/keysmith/internal/errors"
)

// Lock is a held exclusive lock on a lock file.
type Lock struct {
	path string
	file *os.File
}

// Acquire creates path if needed and takes an exclusive lock on it without
// waiting. A lock held elsewhere fails with errors.ErrDirLocked.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //nolint:gosec // lock path is derived from the output directory
	if err != nil {
		return nil, fmt.Errorf("opening lock %s: %w: %w", path, errors.ErrIO, err)
	}

	if err := Exclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(errors.ErrDirLocked, "%s", path)
	}

	// The previous holder may have removed the file between our open and
	// our lock; a lock on an unlinked file protects nothing.
	held, statErr := f.Stat()
	current, pathErr := os.Stat(path)
	if statErr != nil || pathErr != nil || !os.SameFile(held, current) {
		_ = Unlock(f.Fd())
		_ = f.Close()
		return nil, errors.Wrapf(errors.ErrDirLocked, "%s", path)
	}

	return &Lock{path: path, file: f}, nil
}

// Release removes the lock file and drops the lock. It is safe to call
// more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	removeErr := os.Remove(l.path)
	unlockErr := Unlock(f.Fd())
	closeErr := f.Close()

	switch {
	case unlockErr != nil:
		return fmt.Errorf("unlocking %s: %w: %w", l.path, errors.ErrIO, unlockErr)
	case closeErr != nil:
		return fmt.Errorf("closing lock %s: %w: %w", l.path, errors.ErrIO, closeErr)
	case removeErr != nil && !os.IsNotExist(removeErr):
		return fmt.Errorf("removing lock %s: %w: %w", l.path, errors.ErrIO, removeErr)
	}
	return nil
}
