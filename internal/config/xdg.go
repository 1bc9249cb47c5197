// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// XDGCacheHome returns the XDG cache home or a default fallback.
func XDGCacheHome() string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".cache")
}

// DefaultWordBankPath returns the default path of the word bank file.
func DefaultWordBankPath() string {
	return filepath.Join(XDGConfigHome(), "wordquiz", "words.json")
}

// DefaultHistoryDBPath returns the default path for the history database.
func DefaultHistoryDBPath() string {
	return filepath.Join(XDGDataHome(), "wordquiz", "history.db")
}

// DefaultAudioCacheDir returns the cache directory for dictionary audio.
func DefaultAudioCacheDir() string {
	return filepath.Join(XDGCacheHome(), "wordquiz", "audio")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "wordquiz", "config.toml")
}
