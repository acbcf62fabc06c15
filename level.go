package conlog

import (
	"fmt"
	"strings"
)

// String returns the lowercase level name used in every sink
func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelDebug:
		return "debug"
	case LevelLog:
		return "log"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return fmt.Sprintf("level(%d)", int64(l))
	}
}

// ParseLevel converts a level name to its constant
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "verbose":
		return LevelVerbose, nil
	case "debug":
		return LevelDebug, nil
	case "log":
		return LevelLog, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use verbose, debug, log, info, warn, error, fatal)", levelStr)
	}
}

// ParseModes resolves a comma separated mode list.
// Unknown names are ignored, duplicates collapse, order is kept.
// An empty result falls back to the default mode.
func ParseModes(list string) []Mode {
	var modes []Mode
	seen := make(map[Mode]bool)
	for _, part := range strings.Split(list, ",") {
		mode, ok := parseMode(part)
		if !ok || seen[mode] {
			continue
		}
		seen[mode] = true
		modes = append(modes, mode)
	}
	if len(modes) == 0 {
		modes = []Mode{ModeDefault}
	}
	return modes
}

func parseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default":
		return ModeDefault, true
	case "console", "stdout":
		return ModeConsole, true
	case "file":
		return ModeFile, true
	case "database", "sqlite", "db":
		return ModeDatabase, true
	}
	return "", false
}
