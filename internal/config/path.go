// Package config resolves configuration values and well-known paths.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Application directory names under the user's config and data homes.
const (
	AppName        = "spend"
	ConfigFileName = "config"
	DatabaseFile   = "spend.db"
)

// ExpandPath expands a leading ~ and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}

// ConfigDir returns ~/.config/spend, or XDG_CONFIG_HOME/spend when set.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	return ExpandPath(filepath.Join("~", ".config", AppName))
}

// DefaultDatabasePath returns ~/.local/share/spend/spend.db, honoring
// XDG_DATA_HOME.
func DefaultDatabasePath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, DatabaseFile)
	}
	return ExpandPath(filepath.Join("~", ".local", "share", AppName, DatabaseFile))
}
