package text

import (
	"github.com/mrz1836/keysmith/internal/crypto"
	"github.com/mrz1836/keysmith/internal/crypto/aead"
)

// SignRequest signs the contents of Input with the key stored at KeyPath.
type SignRequest struct {
	Input   string // "-" for stdin, otherwise a file path
	KeyPath string
	Format  crypto.Format
}

// SignResponse carries the signature as unpadded URL-safe base64.
type SignResponse struct {
	Signature string        `json:"signature"`
	Format    crypto.Format `json:"format"`
}

// VerifyRequest checks Signature against the contents of Input.
type VerifyRequest struct {
	Input     string
	KeyPath   string
	Format    crypto.Format
	Signature string // unpadded URL-safe base64
}

// VerifyResponse reports the verification result.
type VerifyResponse struct {
	Valid  bool          `json:"valid"`
	Format crypto.Format `json:"format"`
}

// GenerateRequest creates fresh key files for Format inside Dir.
type GenerateRequest struct {
	Format crypto.Format
	Dir    string
	Legacy bool
	Force  bool
}

// GenerateResponse lists the written key files in generation order.
type GenerateResponse struct {
	Files  []string      `json:"files"`
	Format crypto.Format `json:"format"`
}

// EncryptRequest encrypts the contents of Input under Passphrase.
type EncryptRequest struct {
	Input      string
	Passphrase string
	Nonce      aead.NonceMode
}

// EncryptResponse carries the ciphertext as padded standard base64.
type EncryptResponse struct {
	Ciphertext string `json:"ciphertext"`
}

// DecryptRequest decrypts the base64 ciphertext read from Input.
type DecryptRequest struct {
	Input      string
	Passphrase string
	Nonce      aead.NonceMode
}

// DecryptResponse carries the recovered plaintext.
type DecryptResponse struct {
	Plaintext string `json:"plaintext"`
}
