// Package paths resolves configuration and storage directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultStorageDirName is the CWD-relative storage directory used when no
// override is active.
const DefaultStorageDirName = "storage"

// Environment variable names for directory overrides.
const (
	EnvConfigDir  = "LISTMAKER_CONFIG_DIR"
	EnvStorageDir = "LISTMAKER_STORAGE_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/listmaker (fallback ~/.config/listmaker)
// macOS:   ~/Library/Application Support/listmaker
// Windows: %APPDATA%/listmaker
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "listmaker"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "listmaker"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "listmaker"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > LISTMAKER_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveStorageDir returns the storage root following the precedence chain:
// flag > configYAMLValue > LISTMAKER_STORAGE_DIR env > $(CWD)/storage.
func ResolveStorageDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvStorageDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultStorageDirName), nil
}
