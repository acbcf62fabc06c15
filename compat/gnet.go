package compat

import (
	"os"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/conlog"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter satisfies gnet's logging.Logger. Fatalf records a fatal entry,
// which writes every buffered sink, and then calls the exit hook.
type GnetAdapter struct {
	target
	exit func(line string)
}

// GnetOption customizes a GnetAdapter
type GnetOption func(*GnetAdapter)

// WithFatalHandler replaces the process exit that follows Fatalf
func WithFatalHandler(handler func(line string)) GnetOption {
	return func(a *GnetAdapter) {
		a.exit = handler
	}
}

// WithGnetSource changes the "gnet" tag in front of each line
func WithGnetSource(name string) GnetOption {
	return func(a *GnetAdapter) {
		a.source = name
	}
}

func NewGnetAdapter(logger *conlog.Logger, opts ...GnetOption) *GnetAdapter {
	a := &GnetAdapter{
		target: target{logger: logger, source: "gnet"},
		exit:   func(string) { os.Exit(1) },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.emitf(conlog.LevelDebug, format, args)
}

func (a *GnetAdapter) Infof(format string, args ...any) {
	a.emitf(conlog.LevelInfo, format, args)
}

func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.emitf(conlog.LevelWarn, format, args)
}

func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.emitf(conlog.LevelError, format, args)
}

func (a *GnetAdapter) Fatalf(format string, args ...any) {
	line := a.emitf(conlog.LevelFatal, format, args)
	if a.exit != nil {
		a.exit(line)
	}
}
