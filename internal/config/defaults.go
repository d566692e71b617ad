package config

import (
	"github.com/mrz1836/keysmith/internal/constants"
	"github.com/mrz1836/keysmith/internal/crypto"
	"github.com/mrz1836/keysmith/internal/crypto/aead"
)

// DefaultConfig returns a new Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Text: TextConfig{
			DefaultFormat: crypto.FormatBlake3,
			NonceMode:     aead.NonceRandom,
		},
		Log: LogConfig{
			File:       true,
			MaxSizeMB:  constants.DefaultLogMaxSizeMB,
			MaxBackups: constants.DefaultLogMaxBackups,
			MaxAgeDays: constants.DefaultLogMaxAgeDays,
		},
	}
}
