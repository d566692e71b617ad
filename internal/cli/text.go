package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/keysmith/internal/config"
	"github.com/mrz1836/keysmith/internal/constants"
	"github.com/mrz1836/keysmith/internal/crypto"
	"github.com/mrz1836/keysmith/internal/crypto/aead"
	"github.com/mrz1836/keysmith/internal/errors"
	"github.com/mrz1836/keysmith/internal/input"
	"github.com/mrz1836/keysmith/internal/text"
	"github.com/mrz1836/keysmith/internal/tui"
)

// AddTextCommand adds the text command and its subcommands to the root command.
func AddTextCommand(root *cobra.Command, flags *GlobalFlags, state *runState) {
	root.AddCommand(newTextCmd(flags, state))
}

// newTextCmd creates the text command.
func newTextCmd(flags *GlobalFlags, state *runState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Sign, verify, and encrypt text",
		Long: `Sign, verify, and encrypt text read from a file or standard input.

Signing formats:
  blake3   BLAKE3 keyed hash with a shared 32-byte key
  ed25519  Ed25519 signatures (32-byte seed, 32-byte public key)
  ed448    Ed448 signatures (57-byte seed, 57-byte public key)

Examples:
  keysmith text generate --format ed25519 -d ./keys
  echo hello | keysmith text sign --format ed25519 -k ./keys/ed25519_private.txt
  keysmith text verify -i msg.txt --format ed25519 -k ./keys/ed25519_public.txt -s SIG
  keysmith text encrypt -i notes.txt -k "$PASSPHRASE"`,
	}

	cmd.AddCommand(
		newTextSignCmd(flags, state),
		newTextVerifyCmd(flags, state),
		newTextGenerateCmd(flags, state),
		newTextEncryptCmd(flags, state),
		newTextDecryptCmd(flags, state),
	)

	return cmd
}

// newTextService builds the text service for one invocation. Standard input
// comes from the command so tests can feed it.
func newTextService(cmd *cobra.Command) *text.Service {
	return text.NewService(input.NewResolver(cmd.InOrStdin()), *zerolog.Ctx(cmd.Context()))
}

// addInputFlag registers -i/--input, defaulting to standard input.
func addInputFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVarP(p, "input", "i", constants.StdinDesignator, `input file, or "-" for standard input`)
}

// validateInput rejects an input path that does not exist before any key
// is touched.
func validateInput(designator string) error {
	if err := input.ValidateFile(designator); err != nil {
		return errors.NewExitCode2Error(err)
	}
	return nil
}

// addFormatFlag registers --format. The flag default shown in help is the
// built-in one; the configured default is applied by resolveFormat.
func addFormatFlag(cmd *cobra.Command, p *crypto.Format) {
	*p = config.DefaultConfig().Text.DefaultFormat
	cmd.Flags().Var(p, "format", fmt.Sprintf("signing format (%s); default from text.default_format", strings.Join(crypto.FormatNames(), "|")))
}

// resolveFormat returns the --format value when given and the configured
// default otherwise.
func resolveFormat(cmd *cobra.Command, p *crypto.Format, state *runState) crypto.Format {
	if cmd.Flags().Changed("format") {
		return *p
	}
	return state.cfg.Text.DefaultFormat
}

// addNonceFlag registers --nonce.
func addNonceFlag(cmd *cobra.Command, p *aead.NonceMode) {
	*p = config.DefaultConfig().Text.NonceMode
	cmd.Flags().Var(p, "nonce", "nonce mode (random|zero); zero only reads and writes legacy ciphertexts")
}

// resolveNonce returns the --nonce value when given and the configured
// default otherwise.
func resolveNonce(cmd *cobra.Command, p *aead.NonceMode, state *runState) aead.NonceMode {
	if cmd.Flags().Changed("nonce") {
		return *p
	}
	return state.cfg.Text.NonceMode
}

// writeResult prints v as JSON, or line as a single line of text, on stdout.
func writeResult(cmd *cobra.Command, flags *GlobalFlags, v any, line string) error {
	out := cmd.OutOrStdout()
	if flags.Output == OutputJSON {
		return tui.NewJSONOutput(out).JSON(v)
	}
	_, err := fmt.Fprintln(out, line)
	return err
}
