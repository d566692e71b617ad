package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// Fixture key material shared by tests. The values are fixed so that
// signatures produced in one test are reproducible in another.
var (
	// Blake3Key is a 32-byte printable BLAKE3 key, like the legacy generator produces.
	Blake3Key = []byte("k9#Tq2!vLm8@Xr4$Wz6^Bn1&Hc5*Jd7(") //nolint:gochecknoglobals // test fixture

	// Ed25519Seed is a 32-byte Ed25519 private seed.
	Ed25519Seed = bytes.Repeat([]byte{0x42}, 32) //nolint:gochecknoglobals // test fixture

	// Passphrase is a 32-byte all-'a' encryption passphrase.
	Passphrase = string(bytes.Repeat([]byte("a"), 32)) //nolint:gochecknoglobals // test fixture
)

// WriteFile writes data to name inside a fresh temp directory and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

// FlipBit returns a copy of b with bit 0 of byte i inverted.
func FlipBit(b []byte, i int) []byte {
	out := bytes.Clone(b)
	out[i] ^= 0x01
	return out
}

// ZeroReader is a deterministic "random" source that yields zero bytes.
type ZeroReader struct{}

// Read implements io.Reader.
func (ZeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}
