package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/keysmith/internal/constants"
	"github.com/mrz1836/keysmith/internal/errors"
)

// newViperInstance creates a Viper instance with the KEYSMITH_ env prefix,
// a key replacer for nested keys, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config and validates it.
func unmarshalAndValidate(ctx context.Context, v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "failed to unmarshal config: %v", err)
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("text.default_format", cfg.Text.DefaultFormat.String()).
		Str("text.nonce_mode", cfg.Text.NonceMode.String()).
		Bool("log.file", cfg.Log.File).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence:
//  1. Environment variables (KEYSMITH_* prefix)
//  2. Project config (.keysmith/config.yaml)
//  3. Global config (~/.keysmith/config.yaml)
//  4. Built-in defaults
//
// Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		// No home directory; defaults, project config and env still apply.
		globalPath = ""
	}
	return LoadFromPaths(ctx, ProjectConfigPath(), globalPath)
}

// LoadFile reads configuration from a single explicit file on top of the
// defaults, with environment variables still taking precedence. Unlike the
// layered files, an explicit file must exist.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "config file %q: %v", path, err)
	}

	v := newViperInstance()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "failed to read config file %q: %v", path, err)
	}
	return unmarshalAndValidate(ctx, v)
}

// LoadFromPaths loads configuration from specific file paths.
//
// projectConfigPath is the path to project-level config (higher priority).
// globalConfigPath is the path to global config (lower priority).
// Either path can be empty or missing to skip that level.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" && fileExists(globalConfigPath) {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrapf(errors.ErrConfigInvalid, "failed to read global config %s: %v", globalConfigPath, err)
		}
	}

	if projectConfigPath != "" && fileExists(projectConfigPath) {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrapf(errors.ErrConfigInvalid, "failed to read project config %s: %v", projectConfigPath, err)
		}
	}

	return unmarshalAndValidate(ctx, v)
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the mapstructure tag names exactly, and every
// key needs a default for env overrides to be picked up on Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("text.default_format", d.Text.DefaultFormat.String())
	v.SetDefault("text.nonce_mode", d.Text.NonceMode.String())

	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// Format and NonceMode decode from their names through encoding.TextUnmarshaler.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
