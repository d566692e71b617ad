package keyedhash

import (
	"bytes"
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"

	"github.com/mrz1836/keysmith/internal/errors"
	"github.com/mrz1836/keysmith/internal/testutil"
)

func TestNew(t *testing.T) {
	t.Run("exactly 32 bytes", func(t *testing.T) {
		h, err := New(testutil.Blake3Key)
		require.NoError(t, err)
		assert.Equal(t, testutil.Blake3Key, h.key[:])
	})

	t.Run("extra bytes are ignored", func(t *testing.T) {
		withNewline := append(bytes.Clone(testutil.Blake3Key), '\n')
		a, err := New(withNewline)
		require.NoError(t, err)
		b, err := New(testutil.Blake3Key)
		require.NoError(t, err)
		assert.Equal(t, b.key, a.key)
	})

	t.Run("short key is rejected", func(t *testing.T) {
		_, err := New(testutil.Blake3Key[:31])
		assert.ErrorIs(t, err, errors.ErrInvalidKeyLength)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, errors.ErrInvalidKeyLength)
	})

	t.Run("caller buffer changes do not affect key", func(t *testing.T) {
		key := bytes.Clone(testutil.Blake3Key)
		h, err := New(key)
		require.NoError(t, err)
		key[0] ^= 0xff
		assert.Equal(t, testutil.Blake3Key, h.key[:])
	})
}

func TestSignVerify(t *testing.T) {
	ctx := context.Background()
	h, err := New(testutil.Blake3Key)
	require.NoError(t, err)

	t.Run("hello round trip", func(t *testing.T) {
		sig, err := h.Sign(ctx, strings.NewReader("hello"))
		require.NoError(t, err)
		assert.Len(t, sig, SignatureSize)

		ok, err := h.Verify(ctx, strings.NewReader("hello"), sig)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = h.Verify(ctx, strings.NewReader("hello"), testutil.FlipBit(sig, 0))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("matches reference keyed hash", func(t *testing.T) {
		sig, err := h.Sign(ctx, strings.NewReader("hello"))
		require.NoError(t, err)

		ref, err := blake3.NewKeyed(testutil.Blake3Key)
		require.NoError(t, err)
		_, _ = ref.Write([]byte("hello"))
		assert.Equal(t, hex.EncodeToString(ref.Sum(nil)), hex.EncodeToString(sig))
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := h.Sign(ctx, strings.NewReader("same input"))
		require.NoError(t, err)
		b, err := h.Sign(ctx, strings.NewReader("same input"))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("empty message", func(t *testing.T) {
		sig, err := h.Sign(ctx, strings.NewReader(""))
		require.NoError(t, err)
		ok, err := h.Verify(ctx, strings.NewReader(""), sig)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("tampered message", func(t *testing.T) {
		msg := []byte("the quick brown fox")
		sig, err := h.Sign(ctx, bytes.NewReader(msg))
		require.NoError(t, err)

		for i := range msg {
			ok, err := h.Verify(ctx, bytes.NewReader(testutil.FlipBit(msg, i)), sig)
			require.NoError(t, err)
			assert.False(t, ok, "bit flip at byte %d must fail", i)
		}
	})

	t.Run("different key", func(t *testing.T) {
		sig, err := h.Sign(ctx, strings.NewReader("hello"))
		require.NoError(t, err)

		other, err := New(testutil.FlipBit(testutil.Blake3Key, 5))
		require.NoError(t, err)
		ok, err := other.Verify(ctx, strings.NewReader("hello"), sig)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong signature length is a mismatch", func(t *testing.T) {
		ok, err := h.Verify(ctx, strings.NewReader("hello"), make([]byte, 10))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("read failure is an error", func(t *testing.T) {
		_, err := h.Sign(ctx, testutil.FailingReader{})
		require.ErrorIs(t, err, errors.ErrIO)

		_, err = h.Verify(ctx, testutil.FailingReader{}, make([]byte, SignatureSize))
		assert.ErrorIs(t, err, errors.ErrIO)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("32 random bytes", func(t *testing.T) {
		key, err := Generate(bytes.NewReader(bytes.Repeat([]byte{7}, 64)))
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{7}, KeySize), key)

		_, err = New(key)
		assert.NoError(t, err)
	})

	t.Run("short random source", func(t *testing.T) {
		_, err := Generate(bytes.NewReader([]byte{1, 2, 3}))
		assert.ErrorIs(t, err, errors.ErrRandomSource)
	})

	t.Run("failing random source", func(t *testing.T) {
		_, err := Generate(testutil.FailingRand{})
		assert.ErrorIs(t, err, errors.ErrRandomSource)
	})
}
