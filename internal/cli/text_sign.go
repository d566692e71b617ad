package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/keysmith/internal/crypto"
	"github.com/mrz1836/keysmith/internal/text"
)

// textSignOptions holds flags for the text sign command.
type textSignOptions struct {
	input   string
	keyPath string
	format  crypto.Format
}

// newTextSignCmd creates the 'text sign' subcommand.
func newTextSignCmd(flags *GlobalFlags, state *runState) *cobra.Command {
	opts := &textSignOptions{}

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign text with a key file",
		Long: `Sign the input with the key in --key and print the signature as URL-safe
base64 without padding.

For ed25519 and ed448 the key file holds the private seed; for blake3 it
holds the shared 32-byte key.`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return validateInput(opts.input)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newTextService(cmd).Sign(cmd.Context(), &text.SignRequest{
				Input:   opts.input,
				KeyPath: opts.keyPath,
				Format:  resolveFormat(cmd, &opts.format, state),
			})
			if err != nil {
				return err
			}
			return writeResult(cmd, flags, resp, resp.Signature)
		},
	}

	addInputFlag(cmd, &opts.input)
	cmd.Flags().StringVarP(&opts.keyPath, "key", "k", "", "key file (private seed, or shared key for blake3)")
	addFormatFlag(cmd, &opts.format)
	_ = cmd.MarkFlagRequired("key")

	return cmd
}
