package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/keysmith/internal/crypto/aead"
	"github.com/mrz1836/keysmith/internal/text"
)

// textCryptOptions holds flags shared by text encrypt and text decrypt.
type textCryptOptions struct {
	input      string
	passphrase string
	nonce      aead.NonceMode
}

func addCryptFlags(cmd *cobra.Command, opts *textCryptOptions) {
	addInputFlag(cmd, &opts.input)
	cmd.Flags().StringVarP(&opts.passphrase, "key", "k", "", "passphrase; the first 32 bytes are the key")
	addNonceFlag(cmd, &opts.nonce)
	_ = cmd.MarkFlagRequired("key")
}

// newTextEncryptCmd creates the 'text encrypt' subcommand.
func newTextEncryptCmd(flags *GlobalFlags, state *runState) *cobra.Command {
	opts := &textCryptOptions{}

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text under a passphrase",
		Long: `Encrypt the input with ChaCha20-Poly1305 and print standard base64.

Surrounding whitespace is trimmed from the input. The passphrase must be at
least 32 bytes; only the first 32 are used. In the default random nonce
mode the nonce is stored in front of the ciphertext.`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return validateInput(opts.input)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newTextService(cmd).Encrypt(cmd.Context(), &text.EncryptRequest{
				Input:      opts.input,
				Passphrase: opts.passphrase,
				Nonce:      resolveNonce(cmd, &opts.nonce, state),
			})
			if err != nil {
				return err
			}
			return writeResult(cmd, flags, resp, resp.Ciphertext)
		},
	}

	addCryptFlags(cmd, opts)
	return cmd
}

// newTextDecryptCmd creates the 'text decrypt' subcommand.
func newTextDecryptCmd(flags *GlobalFlags, state *runState) *cobra.Command {
	opts := &textCryptOptions{}

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt text encrypted under a passphrase",
		Long: `Decrypt base64 ciphertext produced by 'keysmith text encrypt'.

--nonce must match the mode the ciphertext was produced with. Invalid UTF-8
in the plaintext is replaced with U+FFFD.`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return validateInput(opts.input)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newTextService(cmd).Decrypt(cmd.Context(), &text.DecryptRequest{
				Input:      opts.input,
				Passphrase: opts.passphrase,
				Nonce:      resolveNonce(cmd, &opts.nonce, state),
			})
			if err != nil {
				return err
			}
			return writeResult(cmd, flags, resp, resp.Plaintext)
		},
	}

	addCryptFlags(cmd, opts)
	return cmd
}
