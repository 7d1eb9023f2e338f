// Package config holds the jot configuration value and where it is loaded from.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the jot configuration directory.
//
// Resolution:
//   - $JOT_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/jot if set (respects XDG on any platform)
//   - %AppData%/jot on Windows
//   - ~/.config/jot on macOS and Linux
func Dir() string {
	if dir := os.Getenv("JOT_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jot")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "jot")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jot")
}

// DefaultFile returns the path of the default config file, or "" when no
// config directory can be determined.
func DefaultFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// EnvFile returns the path of the env fallback file, or "" when no config
// directory can be determined.
func EnvFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "env")
}
