package config

import (
	"github.com/mrz1836/keysmith/internal/crypto"
	"github.com/mrz1836/keysmith/internal/crypto/aead"
	"github.com/mrz1836/keysmith/internal/errors"
)

// Log rotation bounds.
const (
	maxLogSizeMB  = 1024
	maxLogBackups = 100
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - text.default_format must name a supported format
//   - text.nonce_mode must be random or zero
//   - log sizes must be positive and bounded when the log file is enabled
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateTextConfig(&cfg.Text); err != nil {
		return err
	}

	return validateLogConfig(&cfg.Log)
}

func validateTextConfig(cfg *TextConfig) error {
	if _, err := cfg.DefaultFormat.MarshalText(); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"text.default_format must be one of %v", crypto.FormatNames())
	}
	if cfg.NonceMode != aead.NonceRandom && cfg.NonceMode != aead.NonceZero {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"text.nonce_mode must be random or zero, got %s", cfg.NonceMode)
	}
	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	if !cfg.File {
		return nil
	}

	if cfg.MaxSizeMB < 1 || cfg.MaxSizeMB > maxLogSizeMB {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"log.max_size_mb must be between 1 and %d, got %d", maxLogSizeMB, cfg.MaxSizeMB)
	}
	if cfg.MaxBackups < 0 || cfg.MaxBackups > maxLogBackups {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"log.max_backups must be between 0 and %d, got %d", maxLogBackups, cfg.MaxBackups)
	}
	if cfg.MaxAgeDays < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"log.max_age_days cannot be negative, got %d", cfg.MaxAgeDays)
	}
	return nil
}
