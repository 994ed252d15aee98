package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath expands environment variables and a leading ~.
func NormalizePath(path string) string {
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return filepath.Clean(path)
}

func processConfigPath(path string) string {
	path = NormalizePath(path)
	// a directory means the default file inside it
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, defaultConfigFileName)
	}
	return filepath.Clean(path)
}

func defaultConfigPath() string {
	return NormalizePath(filepath.Join("~", ".relaysdk", defaultConfigFileName))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
