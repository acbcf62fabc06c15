package compat

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/conlog"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter satisfies fasthttp.Logger. fasthttp logs through a single
// Printf, so the level is guessed from the line.
type FastHTTPAdapter struct {
	target
	fallback conlog.Level
	detect   func(line string) (conlog.Level, bool)
}

// FastHTTPOption customizes a FastHTTPAdapter
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level for lines the detector does not classify
func WithDefaultLevel(level conlog.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.fallback = level
	}
}

// WithLevelDetector replaces the keyword based DetectLogLevel
func WithLevelDetector(detector func(string) (conlog.Level, bool)) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.detect = detector
	}
}

func NewFastHTTPAdapter(logger *conlog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	a := &FastHTTPAdapter{
		target:   target{logger: logger, source: "fasthttp"},
		fallback: conlog.LevelInfo,
		detect:   DetectLogLevel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)

	level := a.fallback
	if a.detect != nil {
		if detected, ok := a.detect(line); ok {
			level = detected
		}
	}
	// Fatal would flush every sink on each request error
	if level > conlog.LevelError {
		level = conlog.LevelError
	}
	a.emit(level, line)
}

var levelKeywords = []struct {
	level conlog.Level
	words []string
}{
	{conlog.LevelError, []string{"error", "failed", "fatal", "panic"}},
	{conlog.LevelWarn, []string{"warn", "deprecated"}},
	{conlog.LevelDebug, []string{"debug", "trace"}},
}

// DetectLogLevel classifies a line by the first keyword group it contains,
// checked from most to least severe
func DetectLogLevel(line string) (conlog.Level, bool) {
	lower := strings.ToLower(line)
	for _, k := range levelKeywords {
		for _, w := range k.words {
			if strings.Contains(lower, w) {
				return k.level, true
			}
		}
	}
	return 0, false
}
