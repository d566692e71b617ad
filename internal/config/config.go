// Package config provides configuration management for keysmith with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (applied by the command that owns the flag)
//  2. Environment variables (KEYSMITH_* prefix)
//  3. Project config (.keysmith/config.yaml)
//  4. Global config (~/.keysmith/config.yaml)
//  5. Built-in defaults
//
// An explicit config file (--config) replaces both file layers.
//
// IMPORTANT: This package may import internal/constants, internal/errors and
// the crypto value types, but MUST NOT import internal/cli or internal/text.
package config

import (
	"github.com/mrz1836/keysmith/internal/crypto"
	"github.com/mrz1836/keysmith/internal/crypto/aead"
)

// Config is the root configuration structure for keysmith.
type Config struct {
	// Text contains defaults for the text subcommands.
	Text TextConfig `yaml:"text" mapstructure:"text" json:"text"`

	// Log contains settings for the log file.
	Log LogConfig `yaml:"log" mapstructure:"log" json:"log"`
}

// TextConfig contains defaults for signing and encryption.
type TextConfig struct {
	// DefaultFormat is used when --format is not given.
	// Default: blake3
	DefaultFormat crypto.Format `yaml:"default_format" mapstructure:"default_format" json:"default_format"`

	// NonceMode is used when --nonce is not given. "zero" only exists to
	// read and write ciphertexts made by older tooling.
	// Default: random
	NonceMode aead.NonceMode `yaml:"nonce_mode" mapstructure:"nonce_mode" json:"nonce_mode"`
}

// LogConfig controls the rotating log file under ~/.keysmith/logs.
type LogConfig struct {
	// File enables the log file. Console logging is unaffected.
	// Default: true
	File bool `yaml:"file" mapstructure:"file" json:"file"`

	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb" json:"max_size_mb"`

	// MaxBackups is the number of rotated files kept.
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups" json:"max_backups"`

	// MaxAgeDays is how long rotated files are kept.
	MaxAgeDays int `yaml:"max_age_days" mapstructure:"max_age_days" json:"max_age_days"`
}
