// Package constants provides centralized constant values used throughout keysmith.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "os"

// Directory names used by keysmith for its own data.
const (
	// AppHome is the hidden directory name where keysmith stores config and logs.
	// It lives in the user's home directory, and optionally in a project directory.
	AppHome = ".keysmith"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Environment variables.
const (
	// EnvPrefix is the prefix for configuration environment variables (KEYSMITH_TEXT_DEFAULT_FORMAT).
	EnvPrefix = "KEYSMITH"
)

// StdinDesignator is the input designator that selects standard input.
const StdinDesignator = "-"

// LockFileName is held in an output directory while key files are written.
const LockFileName = ".keysmith.lock"

// Key file permissions. Private keys and BLAKE3 secrets are owner-only;
// public keys are world-readable.
const (
	// SecretKeyFileMode is the mode used for secret key files.
	SecretKeyFileMode os.FileMode = 0o600

	// PublicKeyFileMode is the mode used for public key files.
	PublicKeyFileMode os.FileMode = 0o644

	// AppDirMode is the mode used for ~/.keysmith and its subdirectories.
	AppDirMode = 0o700
)

// Log rotation defaults.
const (
	// DefaultLogMaxSizeMB is the size at which the log file is rotated.
	DefaultLogMaxSizeMB = 10

	// DefaultLogMaxBackups is the number of rotated log files to keep.
	DefaultLogMaxBackups = 3

	// DefaultLogMaxAgeDays is the number of days to keep rotated log files.
	DefaultLogMaxAgeDays = 28
)
