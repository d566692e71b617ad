package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// cmdResult holds what one CLI invocation wrote.
type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// isolateEnv points HOME, KEYSMITH_HOME and the working directory at temp
// dirs so no real config is read and no real log file is written.
func isolateEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(HomeEnvVar, filepath.Join(home, ".keysmith"))
	t.Setenv("NO_COLOR", "1")
	for _, name := range []string{
		"KEYSMITH_OUTPUT", "KEYSMITH_VERBOSE", "KEYSMITH_QUIET", "KEYSMITH_TEXT_DEFAULT_FORMAT", "KEYSMITH_TEXT_NONCE_MODE",
		"KEYSMITH_LOG_FILE", "KEYSMITH_LOG_MAX_SIZE_MB", "KEYSMITH_LOG_MAX_BACKUPS", "KEYSMITH_LOG_MAX_AGE_DAYS",
	} {
		t.Setenv(name, "")
	}
	t.Chdir(t.TempDir())
	return home
}

// executeCmd runs the root command with args, feeding stdin.
func executeCmd(t *testing.T, stdin string, args ...string) cmdResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	CloseLogFile()

	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
