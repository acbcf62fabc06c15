// FILE: lixenwraith/conlog/paths.go
package conlog

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// PathProvider resolves the directory holding the log file and database
type PathProvider interface {
	LogDir() (string, error)
}

// PlatformDirs resolves the per-user application log directory:
// ~/Library/Logs/<app> on macOS and <user config dir>/<app>/logs elsewhere.
type PlatformDirs struct {
	AppName string
}

func (p PlatformDirs) LogDir() (string, error) {
	app := strings.TrimSpace(p.AppName)
	if app == "" {
		return "", fmtErrorf("application name is required to resolve the log directory")
	}

	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmtErrorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Logs", app), nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmtErrorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(base, app, "logs"), nil
}

// StaticDir is a fixed log directory
type StaticDir string

func (d StaticDir) LogDir() (string, error) {
	if d == "" {
		return "", fmtErrorf("log directory cannot be empty")
	}
	return string(d), nil
}
