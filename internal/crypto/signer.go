// Package crypto provides the signing capability for keysmith.
//
// Three schemes sit behind one contract: a BLAKE3 keyed hash (symmetric,
// the same key signs and verifies), Ed25519, and Ed448. A scheme is picked
// by a closed Format value that always travels with the key material it
// belongs to; adding a scheme means adding a Format constant and a case in
// each dispatch switch.
package crypto

import (
	"context"
	"io"
)

// Signer produces a signature over a fully buffered input stream.
// Implementations are deterministic: signing the same input twice with the
// same key produces the same signature.
type Signer interface {
	// Sign reads r to the end and returns the raw signature bytes.
	Sign(ctx context.Context, r io.Reader) ([]byte, error)
}

// Verifier checks a signature over a fully buffered input stream.
type Verifier interface {
	// Verify reads r to the end and reports whether sig is valid for it.
	// A well-formed signature that does not match is (false, nil); errors are
	// reserved for malformed input such as a wrong signature length or a
	// read failure.
	Verify(ctx context.Context, r io.Reader, sig []byte) (bool, error)
}
