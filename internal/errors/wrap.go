package errors

import "fmt"

// Wrap adds context to errors at package boundaries.
// It returns nil if err is nil, allowing for safe inline usage:
//
//	if err != nil {
//	    return errors.Wrap(err, "failed to read input")
//	}
//
// The sentinel stays reachable through errors.Is:
//
//	if errors.Is(err, errors.ErrInvalidKeyLength) {
//	    ...
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context to errors at package boundaries.
// It returns nil if err is nil.
//
//	return errors.Wrapf(errors.ErrInvalidKeyLength, "expected %d bytes, got %d", 32, len(key))
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}
