// Package config resolves where easywork keeps its settings and logs.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "easywork"

// Dir returns the easywork configuration directory.
//
// Resolution:
//   - $EASYWORK_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/easywork if set
//   - %AppData%/EasyWork on Windows
//   - ~/.config/easywork on macOS and Linux
func Dir() string {
	if dir := os.Getenv("EASYWORK_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "EasyWork")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// DefaultDataDir returns the storage root for daily logs when nothing else
// is configured: EasyWork/Logs under the per-user application data directory
// (%AppData% on Windows), the location the desktop app has always used.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = Dir()
	}
	return filepath.Join(base, "EasyWork", "Logs")
}

// FilePath returns the default config file location.
func FilePath() string {
	return filepath.Join(Dir(), "config.yaml")
}
