package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/keysmith/internal/config"
	"github.com/mrz1836/keysmith/internal/errors"
	"github.com/mrz1836/keysmith/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// This is set during PersistentPreRunE and should be accessed via GetLogger.
// Access is protected by globalLoggerMu for thread safety.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization will
// return a zero-value logger that discards all log output.
//
// This function is safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// runState carries what the root command resolves before any subcommand
// runs. Subcommands read it in their RunE.
type runState struct {
	cfg *config.Config
}

// newRootCmd creates and returns the root command for the keysmith CLI.
// This function-based approach avoids package-level globals, making the
// code more testable and avoiding gochecknoglobals linter warnings.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()
	state := &runState{cfg: config.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "keysmith",
		Short: "keysmith - sign, verify, and encrypt text",
		Long: `keysmith signs and verifies text with BLAKE3 keyed hashes, Ed25519 or
Ed448, generates the matching key files, and encrypts text under a
passphrase with ChaCha20-Poly1305.

Input is read from a file or, with "-" (the default), from standard input.
Signatures are printed as URL-safe base64 without padding; ciphertexts as
standard base64.`,
		Version: formatVersion(info),
		// Run displays help when the root command is invoked without subcommands.
		// This ensures PersistentPreRunE is called for flag validation.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd, flags); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			cfg, err := loadConfig(cmd.Context(), flags.ConfigFile)
			if err != nil {
				return err
			}
			state.cfg = cfg

			logger := InitLogger(flags.Verbose, flags.Quiet, cfg.Log, cmd.ErrOrStderr()).
				With().
				Str("run_id", uuid.NewString()).
				Logger()

			// Initialize logger based on flags (protected by mutex for thread safety)
			globalLoggerMu.Lock()
			globalLogger = logger
			globalLoggerMu.Unlock()

			cmd.SetContext(logger.WithContext(cmd.Context()))
			logger.Debug().Str("command", cmd.CommandPath()).Msg("command started")
			return nil
		},
		// SilenceUsage prevents printing usage on error
		// (we handle our own error messages)
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddTextCommand(cmd, flags, state)
	AddConfigCommand(cmd, flags, state)

	return cmd
}

// loadConfig loads the layered configuration, or only path when the user
// named a config file.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFile(ctx, path)
		if err != nil {
			return nil, errors.NewExitCode2Error(err)
		}
		return cfg, nil
	}
	return config.Load(ctx)
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// A failure is printed to stderr with its user message and suggested action
// before it is returned; map it to an exit code with ExitCodeForError.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		reportError(cmd.ErrOrStderr(), flags.Output, err)
	}
	CloseLogFile()
	return err
}

// reportError prints err in the requested output format. The raw error
// text is kept as context when it differs from the user message.
func reportError(w io.Writer, format string, err error) {
	if !IsValidOutputFormat(format) {
		format = OutputText
	}

	msg, action := errors.Actionable(err)
	ae := tui.NewActionableError(msg, action)
	if detail := err.Error(); detail != msg {
		ae = ae.WithContext(detail)
	}

	logger := GetLogger()
	logger.Debug().Err(err).Int("exit_code", ExitCodeForError(err)).Msg("command failed")

	tui.NewOutput(w, format).Error(ae)
}
