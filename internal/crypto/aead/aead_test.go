package aead

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/mrz1836/keysmith/internal/errors"
	"github.com/mrz1836/keysmith/internal/testutil"
)

var modes = []NonceMode{NonceRandom, NonceZero} //nolint:gochecknoglobals // test table

func newCipher(t *testing.T, passphrase string, mode NonceMode) *Cipher {
	t.Helper()

	c, err := New(passphrase, mode)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("short passphrase", func(t *testing.T) {
		_, err := New(strings.Repeat("a", 31), NonceRandom)
		assert.ErrorIs(t, err, errors.ErrInvalidKeyLength)
	})

	t.Run("empty passphrase", func(t *testing.T) {
		_, err := New("", NonceZero)
		assert.ErrorIs(t, err, errors.ErrInvalidKeyLength)
	})

	t.Run("only the first 32 bytes matter", func(t *testing.T) {
		a := newCipher(t, testutil.Passphrase+"tail-one", NonceZero)
		b := newCipher(t, testutil.Passphrase+"different tail", NonceZero)

		ct, err := a.Encrypt("hello")
		require.NoError(t, err)
		pt, err := b.Decrypt(ct)
		require.NoError(t, err)
		assert.Equal(t, "hello", pt)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := New(testutil.Passphrase, NonceMode(7))
		assert.ErrorIs(t, err, errors.ErrInvalidNonceMode)
	})
}

func TestRoundTrip(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			c := newCipher(t, testutil.Passphrase, mode)

			for _, msg := range []string{"hello", "", "multi\nline text", "ünïcødé ✓"} {
				ct, err := c.Encrypt(msg)
				require.NoError(t, err)
				pt, err := c.Decrypt(ct)
				require.NoError(t, err)
				assert.Equal(t, msg, pt)
			}
		})
	}
}

func TestEncrypt_TrimsPlaintext(t *testing.T) {
	c := newCipher(t, testutil.Passphrase, NonceRandom)

	ct, err := c.Encrypt("  hello\n")
	require.NoError(t, err)
	pt, err := c.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "hello", pt)
}

func TestEncrypt_Layout(t *testing.T) {
	t.Run("random mode prepends nonce", func(t *testing.T) {
		c := newCipher(t, testutil.Passphrase, NonceRandom)
		ct, err := c.Encrypt("hello")
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(ct)
		require.NoError(t, err)
		assert.Len(t, raw, chacha20poly1305.NonceSize+len("hello")+chacha20poly1305.Overhead)
	})

	t.Run("random mode uses fresh nonces", func(t *testing.T) {
		c := newCipher(t, testutil.Passphrase, NonceRandom)
		a, err := c.Encrypt("hello")
		require.NoError(t, err)
		b, err := c.Encrypt("hello")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("random mode with failing source", func(t *testing.T) {
		c := newCipher(t, testutil.Passphrase, NonceRandom)
		c.rand = testutil.FailingRand{}
		_, err := c.Encrypt("hello")
		assert.ErrorIs(t, err, errors.ErrRandomSource)
	})

	t.Run("zero mode matches bare chacha20poly1305", func(t *testing.T) {
		c := newCipher(t, testutil.Passphrase, NonceZero)
		ct, err := c.Encrypt("hello")
		require.NoError(t, err)

		ref, err := chacha20poly1305.New([]byte(testutil.Passphrase))
		require.NoError(t, err)
		want := ref.Seal(nil, make([]byte, chacha20poly1305.NonceSize), []byte("hello"), nil)
		assert.Equal(t, base64.StdEncoding.EncodeToString(want), ct)
	})

	t.Run("zero mode is deterministic", func(t *testing.T) {
		c := newCipher(t, testutil.Passphrase, NonceZero)
		a, err := c.Encrypt("hello")
		require.NoError(t, err)
		b, err := c.Encrypt("hello")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("output is padded standard base64", func(t *testing.T) {
		c := newCipher(t, testutil.Passphrase, NonceZero)
		// 4 + 16 = 20 bytes encodes with one padding character.
		ct, err := c.Encrypt("hey!")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(ct, "="), ct)
		assert.False(t, strings.HasSuffix(ct, "=="), ct)

		raw, err := base64.StdEncoding.DecodeString(ct)
		require.NoError(t, err)
		assert.Len(t, raw, 20)
		_, err = base64.RawStdEncoding.DecodeString(ct)
		assert.Error(t, err, "padding must be present")
	})
}

func TestDecrypt_Errors(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			c := newCipher(t, testutil.Passphrase, mode)
			ct, err := c.Encrypt("hello")
			require.NoError(t, err)
			raw, err := base64.StdEncoding.DecodeString(ct)
			require.NoError(t, err)

			t.Run("wrong key", func(t *testing.T) {
				other := newCipher(t, strings.Repeat("b", 32), mode)
				_, err := other.Decrypt(ct)
				assert.ErrorIs(t, err, errors.ErrAuthentication)
			})

			t.Run("tampered ciphertext", func(t *testing.T) {
				for i := range raw {
					tampered := base64.StdEncoding.EncodeToString(testutil.FlipBit(raw, i))
					_, err := c.Decrypt(tampered)
					require.ErrorIs(t, err, errors.ErrAuthentication, "byte %d", i)
				}
			})

			t.Run("truncated", func(t *testing.T) {
				for _, n := range []int{0, 1, 11, 12, len(raw) - 1} {
					short := base64.StdEncoding.EncodeToString(raw[:n])
					_, err := c.Decrypt(short)
					require.ErrorIs(t, err, errors.ErrAuthentication, "length %d", n)
				}
			})

			t.Run("malformed base64", func(t *testing.T) {
				_, err := c.Decrypt("not*base64")
				assert.ErrorIs(t, err, errors.ErrEncoding)
			})

			t.Run("url-safe alphabet rejected", func(t *testing.T) {
				_, err := c.Decrypt("-_-_")
				assert.ErrorIs(t, err, errors.ErrEncoding)
			})
		})
	}
}

func TestDecrypt_IgnoresSurroundingWhitespace(t *testing.T) {
	c := newCipher(t, testutil.Passphrase, NonceRandom)
	ct, err := c.Encrypt("hello")
	require.NoError(t, err)

	pt, err := c.Decrypt("\n " + ct + "\n")
	require.NoError(t, err)
	assert.Equal(t, "hello", pt)
}

func TestDecrypt_LossyUTF8(t *testing.T) {
	ref, err := chacha20poly1305.New([]byte(testutil.Passphrase))
	require.NoError(t, err)
	sealed := ref.Seal(nil, make([]byte, chacha20poly1305.NonceSize), []byte{'h', 'i', 0xff, '!'}, nil)

	c := newCipher(t, testutil.Passphrase, NonceZero)
	pt, err := c.Decrypt(base64.StdEncoding.EncodeToString(sealed))
	require.NoError(t, err)
	assert.Equal(t, "hi\uFFFD!", pt)

	sealed = ref.Seal(nil, make([]byte, chacha20poly1305.NonceSize), []byte{'x', 0xff, 0xfe, 'y'}, nil)
	pt, err = c.Decrypt(base64.StdEncoding.EncodeToString(sealed))
	require.NoError(t, err)
	assert.Equal(t, "x\uFFFD\uFFFDy", pt, "each invalid byte is replaced")
}

func TestLossyUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "valid", in: []byte("héllo ✓"), want: "héllo ✓"},
		{name: "empty", in: nil, want: ""},
		{name: "adjacent invalid bytes", in: []byte{'x', 0xff, 0xfe, 'y'}, want: "x\uFFFD\uFFFDy"},
		{name: "lone continuation bytes", in: []byte{0x80, 0x80}, want: "\uFFFD\uFFFD"},
		{name: "truncated three-byte sequence", in: []byte{'a', 0xe2, 0x82, 'b'}, want: "a\uFFFDb"},
		{name: "truncated four-byte sequence at end", in: []byte{0xf0, 0x9f, 0x98}, want: "\uFFFD"},
		{name: "surrogate half", in: []byte{0xed, 0xa0, 0x80}, want: "\uFFFD\uFFFD\uFFFD"},
		{name: "overlong encoding", in: []byte{0xc0, 0xaf}, want: "\uFFFD\uFFFD"},
		{name: "encoded replacement character is kept", in: []byte("a\uFFFDb"), want: "a\uFFFDb"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, lossyUTF8(tc.in))
		})
	}
}

func TestNonceMode(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		m, err := ParseNonceMode("ZERO")
		require.NoError(t, err)
		assert.Equal(t, NonceZero, m)

		m, err = ParseNonceMode("random")
		require.NoError(t, err)
		assert.Equal(t, NonceRandom, m)

		_, err = ParseNonceMode("counter")
		assert.ErrorIs(t, err, errors.ErrInvalidNonceMode)
	})

	t.Run("zero value is random", func(t *testing.T) {
		var m NonceMode
		assert.Equal(t, NonceRandom, m)
	})

	t.Run("text round trip", func(t *testing.T) {
		data, err := json.Marshal(map[string]NonceMode{"nonce": NonceZero})
		require.NoError(t, err)
		assert.JSONEq(t, `{"nonce":"zero"}`, string(data))

		var out map[string]NonceMode
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, NonceZero, out["nonce"])

		_, err = NonceMode(5).MarshalText()
		assert.ErrorIs(t, err, errors.ErrInvalidNonceMode)
	})

	t.Run("flag value", func(t *testing.T) {
		var m NonceMode
		require.NoError(t, m.Set("zero"))
		assert.Equal(t, NonceZero, m)
		assert.Equal(t, "nonce", m.Type())
		assert.Equal(t, "NonceMode(9)", NonceMode(9).String())
	})
}
