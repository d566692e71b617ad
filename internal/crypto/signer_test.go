package crypto

import (
	"github.com/mrz1836/keysmith/internal/crypto/edwards448"
	"github.com/mrz1836/keysmith/internal/crypto/keyedhash"
	"github.com/mrz1836/keysmith/internal/crypto/native"
)

// Compile-time checks that every scheme satisfies the contract.
var (
	_ Signer   = (*keyedhash.Hasher)(nil)
	_ Verifier = (*keyedhash.Hasher)(nil)
	_ Signer   = (*native.Signer)(nil)
	_ Verifier = (*native.Verifier)(nil)
	_ Signer   = (*edwards448.Signer)(nil)
	_ Verifier = (*edwards448.Verifier)(nil)
)
