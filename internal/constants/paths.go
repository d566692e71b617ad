package constants

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.keysmith/logs/keysmith.log
	CLILogFileName = "keysmith.log"
)

// Configuration file names.
const (
	// ConfigFileName is the name of the configuration file inside AppHome,
	// both globally (~/.keysmith/config.yaml) and per project (./.keysmith/config.yaml).
	ConfigFileName = "config.yaml"
)

// Key file names written by key generation.
const (
	// Blake3KeyFile holds the single 32-byte BLAKE3 key.
	Blake3KeyFile = "blake3.txt"

	// Ed25519PrivateKeyFile holds the 32-byte Ed25519 seed.
	Ed25519PrivateKeyFile = "ed25519_private.txt"

	// Ed25519PublicKeyFile holds the 32-byte Ed25519 public key.
	Ed25519PublicKeyFile = "ed25519_public.txt"

	// Ed448PrivateKeyFile holds the 57-byte Ed448 seed.
	Ed448PrivateKeyFile = "ed448_private.txt"

	// Ed448PublicKeyFile holds the 57-byte Ed448 public key.
	Ed448PublicKeyFile = "ed448_public.txt"
)
