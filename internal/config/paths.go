package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvSourcePath is the environment variable for explicit source path
	EnvSourcePath = "TOPOGEN_SOURCE"
	// SourceSuffix is the suffix every source file name must carry
	SourceSuffix = "hosts.yml"
	// SourceDirName is the config directory name under XDG
	SourceDirName = "topogen"
)

// FindSourcePath searches for the source file in priority order:
// 1. $TOPOGEN_SOURCE (explicit path)
// 2. ./hosts.yml (working directory)
// 3. $XDG_CONFIG_HOME/topogen/hosts.yml
// 4. ~/.config/topogen/hosts.yml
//
// Returns empty string if no source file found
func FindSourcePath() string {
	// 1. Explicit environment variable
	if path := os.Getenv(EnvSourcePath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	// 2. Working directory
	if fileExists(SourceSuffix) {
		if abs, err := filepath.Abs(SourceSuffix); err == nil {
			return abs
		}
		return SourceSuffix
	}

	// 3. XDG config home
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, SourceDirName, SourceSuffix)
		if fileExists(path) {
			return path
		}
	}

	// 4. Default XDG location (~/.config)
	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", SourceDirName, SourceSuffix)
		if fileExists(path) {
			return path
		}
	}

	return ""
}

// EnsureSourceDir creates the source file directory if it doesn't exist
func EnsureSourceDir(sourcePath string) error {
	dir := filepath.Dir(sourcePath)
	return os.MkdirAll(dir, 0755)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
