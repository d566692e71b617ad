package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kserrors "github.com/mrz1836/keysmith/internal/errors"
)

// testError is a custom error type that matches no sentinel.
type testError struct {
	msg string
}

func (e testError) Error() string {
	return e.msg
}

func allSentinels() []error {
	return []error{
		kserrors.ErrIO,
		kserrors.ErrNotFound,
		kserrors.ErrNotADirectory,
		kserrors.ErrKeyFileExists,
		kserrors.ErrDirLocked,
		kserrors.ErrEncoding,
		kserrors.ErrInvalidKeyLength,
		kserrors.ErrInvalidKeyEncoding,
		kserrors.ErrInvalidSignatureLength,
		kserrors.ErrAuthentication,
		kserrors.ErrUnknownFormat,
		kserrors.ErrInvalidNonceMode,
		kserrors.ErrRandomSource,
		kserrors.ErrInvalidOutputFormat,
		kserrors.ErrConfigNil,
		kserrors.ErrConfigInvalid,
		kserrors.ErrEmptyValue,
		kserrors.ErrInvalidLength,
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	all := allSentinels()
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b, "%q should not match %q", a, b)
		}
	}
}

func TestSentinelErrors_LowercaseMessages(t *testing.T) {
	for _, err := range allSentinels() {
		msg := err.Error()
		require.NotEmpty(t, msg)
		assert.Equal(t, msg[:1], fmt.Sprintf("%c", msg[0]|0x20), "message %q should start lowercase", msg)
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.NoError(t, kserrors.Wrap(nil, "context"))
		assert.NoError(t, kserrors.Wrapf(nil, "context %d", 1))
	})

	t.Run("preserves chain", func(t *testing.T) {
		err := kserrors.Wrap(kserrors.ErrInvalidKeyLength, "loading key")
		require.ErrorIs(t, err, kserrors.ErrInvalidKeyLength)
		assert.Equal(t, "loading key: invalid key length", err.Error())
	})

	t.Run("formats message", func(t *testing.T) {
		err := kserrors.Wrapf(kserrors.ErrInvalidSignatureLength, "expected %d bytes, got %d", 64, 10)
		require.ErrorIs(t, err, kserrors.ErrInvalidSignatureLength)
		assert.Equal(t, "expected 64 bytes, got 10: invalid signature length", err.Error())
	})

	t.Run("multiple wraps", func(t *testing.T) {
		err := kserrors.Wrap(kserrors.Wrap(kserrors.ErrAuthentication, "inner"), "outer")
		assert.ErrorIs(t, err, kserrors.ErrAuthentication)
		assert.Equal(t, "outer: inner: authentication failed", err.Error())
	})
}

func TestUserMessage(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, kserrors.UserMessage(nil))
	})

	t.Run("unknown error returns original message", func(t *testing.T) {
		assert.Equal(t, "something odd", kserrors.UserMessage(testError{msg: "something odd"}))
	})

	t.Run("wrapped sentinel resolves", func(t *testing.T) {
		err := fmt.Errorf("decrypt: %w", kserrors.ErrAuthentication)
		assert.Contains(t, kserrors.UserMessage(err), "Decryption failed")
	})

	t.Run("not found wins over io", func(t *testing.T) {
		err := fmt.Errorf("open key.txt: %w: %w", kserrors.ErrIO, kserrors.ErrNotFound)
		assert.Equal(t, "File does not exist.", kserrors.UserMessage(err))
	})

	t.Run("every sentinel except config nil has a message", func(t *testing.T) {
		for _, err := range allSentinels() {
			if stderrors.Is(err, kserrors.ErrConfigNil) {
				continue
			}
			assert.NotEqual(t, err.Error(), kserrors.UserMessage(err), "missing user message for %q", err)
		}
	})
}

func TestActionable(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectAction bool
	}{
		{"nil", nil, false},
		{"key length", kserrors.ErrInvalidKeyLength, true},
		{"signature length", kserrors.ErrInvalidSignatureLength, true},
		{"authentication", kserrors.ErrAuthentication, true},
		{"random source has no action", kserrors.ErrRandomSource, false},
		{"unknown", testError{msg: "x"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg, action := kserrors.Actionable(tc.err)
			if tc.err == nil {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
			if tc.expectAction {
				assert.NotEmpty(t, action)
			} else {
				assert.Empty(t, action)
			}
		})
	}
}

func TestExitCode2Error(t *testing.T) {
	inner := kserrors.ErrUnknownFormat
	err := kserrors.NewExitCode2Error(inner)

	assert.Equal(t, inner.Error(), err.Error())
	require.ErrorIs(t, err, inner)
	assert.True(t, kserrors.IsExitCode2Error(err))
	assert.True(t, kserrors.IsExitCode2Error(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, kserrors.IsExitCode2Error(inner))
	assert.False(t, kserrors.IsExitCode2Error(nil))
}
