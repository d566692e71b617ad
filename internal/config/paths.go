package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/keysmith/internal/constants"
	"github.com/mrz1836/keysmith/internal/errors"
)

// GlobalConfigDir returns the path to the global keysmith directory,
// typically ~/.keysmith.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AppHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the project configuration file path relative
// to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.AppHome, constants.ConfigFileName)
}

// LogDir returns the directory holding the rotating log file.
func LogDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir), nil
}
