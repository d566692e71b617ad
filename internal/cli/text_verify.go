package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/keysmith/internal/crypto"
	"github.com/mrz1836/keysmith/internal/text"
)

// textVerifyOptions holds flags for the text verify command.
type textVerifyOptions struct {
	input     string
	keyPath   string
	format    crypto.Format
	signature string
}

// newTextVerifyCmd creates the 'text verify' subcommand.
func newTextVerifyCmd(flags *GlobalFlags, state *runState) *cobra.Command {
	opts := &textVerifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature over text",
		Long: `Verify the signature in --sig over the input and print true or false.

A signature that does not match exits 0 and prints false. Malformed base64
or a signature of the wrong length for the format is an error.`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return validateInput(opts.input)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newTextService(cmd).Verify(cmd.Context(), &text.VerifyRequest{
				Input:     opts.input,
				KeyPath:   opts.keyPath,
				Format:    resolveFormat(cmd, &opts.format, state),
				Signature: opts.signature,
			})
			if err != nil {
				return err
			}
			return writeResult(cmd, flags, resp, strconv.FormatBool(resp.Valid))
		},
	}

	addInputFlag(cmd, &opts.input)
	cmd.Flags().StringVarP(&opts.keyPath, "key", "k", "", "key file (public key, or shared key for blake3)")
	addFormatFlag(cmd, &opts.format)
	cmd.Flags().StringVarP(&opts.signature, "sig", "s", "", "signature as URL-safe base64")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("sig")

	return cmd
}
