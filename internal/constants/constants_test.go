package constants

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFileModes(t *testing.T) {
	t.Run("secret keys are owner only", func(t *testing.T) {
		assert.Equal(t, os.FileMode(0o600), SecretKeyFileMode)
		assert.Equal(t, os.FileMode(0o644), PublicKeyFileMode)
		assert.Zero(t, SecretKeyFileMode&0o077, "group and other must have no access")
	})

	t.Run("public keys are readable by others", func(t *testing.T) {
		assert.NotZero(t, PublicKeyFileMode&0o004)
		assert.Zero(t, PublicKeyFileMode&0o022, "public keys must not be writable by others")
	})
}

func TestKeyFileNames(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"Blake3KeyFile", Blake3KeyFile, "blake3.txt"},
		{"Ed25519PrivateKeyFile", Ed25519PrivateKeyFile, "ed25519_private.txt"},
		{"Ed25519PublicKeyFile", Ed25519PublicKeyFile, "ed25519_public.txt"},
		{"Ed448PrivateKeyFile", Ed448PrivateKeyFile, "ed448_private.txt"},
		{"Ed448PublicKeyFile", Ed448PublicKeyFile, "ed448_public.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant)
			assert.Equal(t, tt.constant, filepath.Base(tt.constant), "must be a bare file name")
		})
	}
}

func TestStdinDesignator(t *testing.T) {
	assert.Equal(t, "-", StdinDesignator)
}
