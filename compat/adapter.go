package compat

import (
	"fmt"

	"github.com/lixenwraith/conlog"
)

// target routes one framework's already formatted lines into a logger,
// tagging each with the framework name
type target struct {
	logger *conlog.Logger
	source string
}

// emitf formats the line and records it at level
func (t target) emitf(level conlog.Level, format string, args []any) string {
	line := fmt.Sprintf(format, args...)
	t.emit(level, line)
	return line
}

func (t target) emit(level conlog.Level, line string) {
	// The line is passed as an argument so '%' in it is never substituted again
	switch {
	case level >= conlog.LevelFatal:
		t.logger.Fatal("%s: %s", t.source, line)
	case level >= conlog.LevelError:
		t.logger.Error("%s: %s", t.source, line)
	case level >= conlog.LevelWarn:
		t.logger.Warn("%s: %s", t.source, line)
	case level >= conlog.LevelInfo:
		t.logger.Info("%s: %s", t.source, line)
	case level >= conlog.LevelLog:
		t.logger.Log("%s: %s", t.source, line)
	default:
		t.logger.Debug("%s: %s", t.source, line)
	}
}
