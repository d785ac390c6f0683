// Package storage persists analysis reports, user preferences and query
// statistics between runs.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessvision"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/chessvision/
// - Linux: ~/.local/share/chessvision/
// - Windows: %APPDATA%/chessvision/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		// Linux and other Unix-like: XDG_DATA_HOME, else ~/.local/share/
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// GetDatabaseDir returns the directory holding the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	return dbDir, nil
}

// GetDiagramDir returns the directory diagram files land in when the
// caller gives no explicit output path.
func GetDiagramDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	diagramDir := filepath.Join(dataDir, "diagrams")
	if err := os.MkdirAll(diagramDir, 0755); err != nil {
		return "", err
	}

	return diagramDir, nil
}
