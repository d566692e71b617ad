package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/keysmith/internal/config"
	"github.com/mrz1836/keysmith/internal/constants"
)

func testLogConfig() config.LogConfig {
	return config.DefaultConfig().Log
}

func TestInitLoggerWithWriter_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		verbose       bool
		quiet         bool
		expectedLevel zerolog.Level
	}{
		{name: "default is info level", expectedLevel: zerolog.InfoLevel},
		{name: "verbose enables debug level", verbose: true, expectedLevel: zerolog.DebugLevel},
		{name: "quiet enables warn level", quiet: true, expectedLevel: zerolog.WarnLevel},
		{name: "verbose takes precedence over quiet", verbose: true, quiet: true, expectedLevel: zerolog.DebugLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := InitLoggerWithWriter(tc.verbose, tc.quiet, &buf)
			assert.Equal(t, tc.expectedLevel, logger.GetLevel())
			assert.Equal(t, tc.expectedLevel, selectLevel(tc.verbose, tc.quiet))
		})
	}
}

func TestSelectOutput_NonTTY(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, &buf, selectOutput(&buf))
}

func TestSelectOutput_RespectsNO_COLOR(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.Equal(t, os.Stderr, selectOutput(os.Stderr))
}

func TestCreateLogFileWriter_CreatesLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnvVar, tmpDir)

	writer, err := createLogFileWriter(testLogConfig())
	require.NoError(t, err)
	require.NotNil(t, writer)

	_, err = writer.Write([]byte(`{"level":"info","event":"test"}`))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	logDir := filepath.Join(tmpDir, constants.LogsDir)
	info, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	info, err = os.Stat(filepath.Join(logDir, constants.CLILogFileName))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestCreateLogFileWriter_FailsOnInvalidPath(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "not_a_directory")
	require.NoError(t, os.WriteFile(filePath, []byte("test"), 0o600))

	t.Setenv(HomeEnvVar, filePath)

	writer, err := createLogFileWriter(testLogConfig())
	require.Error(t, err)
	assert.Nil(t, writer)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

func TestGetKeysmithHome(t *testing.T) {
	t.Run("environment override", func(t *testing.T) {
		t.Setenv(HomeEnvVar, "/custom/keysmith/home")

		home, err := getKeysmithHome()
		require.NoError(t, err)
		assert.Equal(t, "/custom/keysmith/home", home)
	})

	t.Run("defaults to user home", func(t *testing.T) {
		userHome := t.TempDir()
		t.Setenv(HomeEnvVar, "")
		t.Setenv("HOME", userHome)

		home, err := getKeysmithHome()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(userHome, constants.AppHome), home)
	})
}

func TestLogFilePath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnvVar, tmpDir)

	path, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName), path)
}

func TestInitLogger_WritesToFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnvVar, tmpDir)

	var console bytes.Buffer
	logger := InitLogger(false, false, testLogConfig(), &console)
	logger.Info().Str("format", "ed25519").Msg("key file written")
	CloseLogFile()

	data, err := os.ReadFile(filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)) //#nosec G304 -- test temp dir
	require.NoError(t, err)
	assert.Contains(t, string(data), `"format":"ed25519"`)
	assert.Contains(t, string(data), "key file written")
	assert.Contains(t, console.String(), "key file written")
}

func TestInitLogger_FileDisabled(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnvVar, tmpDir)

	cfg := testLogConfig()
	cfg.File = false

	var console bytes.Buffer
	logger := InitLogger(false, false, cfg, &console)
	logger.Info().Msg("console only")
	CloseLogFile()

	_, err := os.Stat(filepath.Join(tmpDir, constants.LogsDir))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, console.String(), "console only")
}

func TestInitLogger_RedactsSensitiveDataInFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnvVar, tmpDir)

	var console bytes.Buffer
	logger := InitLogger(false, false, testLogConfig(), &console)
	logger.Info().Msg("encrypting with passphrase=hunter2hunter2hunter2hunter2hunt")
	CloseLogFile()

	data, err := os.ReadFile(filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)) //#nosec G304 -- test temp dir
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hunter2")
	assert.Contains(t, string(data), "[REDACTED]")
}

func TestCloseLogFile_NoOpWhenNil(_ *testing.T) {
	CloseLogFile()
	CloseLogFile()
}

func TestLogEntryStructure_MatchesExpectedFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)

	logger.Info().
		Str("format", "blake3").
		Str("input", "-").
		Msg("input signed")

	output := buf.String()
	assert.Contains(t, output, `"ts":`)
	assert.Contains(t, output, `"level":"info"`)
	assert.Contains(t, output, `"event":"input signed"`)
	assert.Contains(t, output, `"format":"blake3"`)
}

func TestConfigureZerologGlobals_Idempotent(t *testing.T) {
	t.Parallel()

	configureZerologGlobals()
	configureZerologGlobals()

	assert.Equal(t, "ts", zerolog.TimestampFieldName)
	assert.Equal(t, "event", zerolog.MessageFieldName)
}
