package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mrz1836/keysmith/internal/crypto"
	"github.com/mrz1836/keysmith/internal/errors"
	"github.com/mrz1836/keysmith/internal/input"
	"github.com/mrz1836/keysmith/internal/text"
	"github.com/mrz1836/keysmith/internal/tui"
)

// textGenerateOptions holds flags for the text generate command.
type textGenerateOptions struct {
	dir    string
	format crypto.Format
	legacy bool
	force  bool
}

// newTextGenerateCmd creates the 'text generate' subcommand.
func newTextGenerateCmd(flags *GlobalFlags, state *runState) *cobra.Command {
	opts := &textGenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate key files",
		Long: `Generate key files for a signing format into an existing directory.

  blake3   blake3.txt (shared key, mode 0600)
  ed25519  ed25519_private.txt (0600) and ed25519_public.txt (0644)
  ed448    ed448_private.txt (0600) and ed448_public.txt (0644)

Keys are written raw and unencrypted. Existing files are kept unless
--force is given. --legacy makes the blake3 key a 32-character printable
password, as older tooling did.`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := input.ValidateDir(opts.dir); err != nil {
				return errors.NewExitCode2Error(err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newTextService(cmd).Generate(cmd.Context(), &text.GenerateRequest{
				Format: resolveFormat(cmd, &opts.format, state),
				Dir:    opts.dir,
				Legacy: opts.legacy,
				Force:  opts.force,
			})
			if err != nil {
				return err
			}
			return writeGenerateResult(cmd, flags, resp)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "existing directory to write key files into (alias --output-dir)")
	addFormatFlag(cmd, &opts.format)
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "generate a printable password-style blake3 key")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite existing key files")
	cmd.Flags().SetNormalizeFunc(outputDirAlias)
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

// outputDirAlias accepts --output-dir for --dir.
func outputDirAlias(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "output-dir" {
		name = "dir"
	}
	return pflag.NormalizedName(name)
}

// writeGenerateResult prints the written files. Text output is a table of
// file names and modes on stdout, plus a summary on stderr unless quiet.
func writeGenerateResult(cmd *cobra.Command, flags *GlobalFlags, resp *text.GenerateResponse) error {
	if flags.Output == OutputJSON {
		return tui.NewJSONOutput(cmd.OutOrStdout()).JSON(resp)
	}

	rows := make([][]string, 0, len(resp.Files))
	for _, path := range resp.Files {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w: %w", path, errors.ErrIO, err)
		}
		rows = append(rows, []string{filepath.Base(path), fmt.Sprintf("%04o", info.Mode().Perm())})
	}
	tui.NewTTYOutput(cmd.OutOrStdout()).Table([]string{"FILE", "MODE"}, rows)

	if !flags.Quiet {
		msg := fmt.Sprintf("generated %s key files in %s", resp.Format, filepath.Dir(resp.Files[0]))
		tui.NewTTYOutput(cmd.ErrOrStderr()).Success(msg)
	}
	return nil
}
