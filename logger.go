// FILE: lixenwraith/conlog/logger.go
package conlog

import (
	"context"
	"sync/atomic"

	"github.com/lixenwraith/conlog/formatter"
)

// Logger is the console-shaped facade. Every call fans out to the sinks
// resolved from the configuration when the logger was built. Logging
// calls never fail; sink errors go to the registry's error reporting.
type Logger struct {
	registry *Registry
	sinks    []Sink
	modes    []Mode
	debug    bool
	owned    bool // Shutdown also closes the registry
	disabled atomic.Bool
}

// each dispatches fn to every sink, isolating sink panics
func (l *Logger) each(fn func(Sink)) {
	if l.disabled.Load() {
		return
	}
	for _, s := range l.sinks {
		l.dispatch(s, fn)
	}
}

func (l *Logger) dispatch(s Sink, fn func(Sink)) {
	defer func() {
		if r := recover(); r != nil {
			l.registry.reporter.report(fmtErrorf("%s sink panicked: %v", s.Mode(), r))
		}
	}()
	fn(s)
}

func (l *Logger) emit(level Level, msg any, args []any) {
	l.each(func(s Sink) { s.Log(level, msg, args...) })
}

// Log records a message at log level. msg may be a format string with
// %s %d %i %f %j %o %O %c placeholders; extra arguments are appended.
func (l *Logger) Log(msg any, args ...any) {
	l.emit(LevelLog, msg, args)
}

func (l *Logger) Info(msg any, args ...any) {
	l.emit(LevelInfo, msg, args)
}

func (l *Logger) Warn(msg any, args ...any) {
	l.emit(LevelWarn, msg, args)
}

// Error records a message with the caller's stack
func (l *Logger) Error(msg any, args ...any) {
	l.emit(LevelError, msg, args)
}

func (l *Logger) Debug(msg any, args ...any) {
	l.emit(LevelDebug, msg, args)
}

// Verbose records only when debug mode is on
func (l *Logger) Verbose(msg any, args ...any) {
	if !l.debug {
		return
	}
	l.emit(LevelVerbose, msg, args)
}

// Fatal records a message with a stack and writes every buffered sink
// before returning. It does not exit the process.
func (l *Logger) Fatal(msg any, args ...any) {
	l.emit(LevelFatal, msg, args)

	ctx, cancel := context.WithTimeout(context.Background(), fatalFlushTimeout)
	defer cancel()
	if err := l.Flush(ctx); err != nil {
		l.registry.reporter.report(err)
	}
}

// Dir dumps a value's structure, only in debug mode
func (l *Logger) Dir(v any) {
	if !l.debug {
		return
	}
	dump := formatter.Dump(v)
	l.emit(LevelLog, "%s", []any{dump})
}

// Assert records "Assertion failed" as an error when condition is false
func (l *Logger) Assert(condition bool, msg any, args ...any) {
	if condition {
		return
	}
	l.each(func(s Sink) { s.Assert(false, msg, args...) })
}

// Table renders data as an aligned grid, optionally restricted to columns
func (l *Logger) Table(data any, columns ...string) {
	l.each(func(s Sink) { s.Table(data, columns...) })
}

// Group opens a nested group; following entries are indented one level
func (l *Logger) Group(labels ...string) {
	label := joinLabels(labels)
	l.each(func(s Sink) { s.Group(label) })
}

// GroupCollapsed behaves as Group; no sink renders collapsed groups
func (l *Logger) GroupCollapsed(labels ...string) {
	l.Group(labels...)
}

// GroupEnd closes the innermost group; with none open it does nothing
func (l *Logger) GroupEnd() {
	l.each(func(s Sink) { s.GroupEnd() })
}

// Count increments and logs the counter for label ("default" if omitted)
func (l *Logger) Count(label ...string) {
	name := labelOrDefault(label)
	l.each(func(s Sink) { s.Count(name) })
}

func (l *Logger) CountReset(label ...string) {
	name := labelOrDefault(label)
	l.each(func(s Sink) { s.CountReset(name) })
}

// Time starts a timer, replacing any running timer with the same label
func (l *Logger) Time(label ...string) {
	name := labelOrDefault(label)
	l.each(func(s Sink) { s.Time(name) })
}

// TimeEnd logs the elapsed milliseconds and removes the timer
func (l *Logger) TimeEnd(label ...string) {
	name := labelOrDefault(label)
	l.each(func(s Sink) { s.TimeEnd(name) })
}

// TimeLog logs the elapsed milliseconds and extra values, keeping the timer
func (l *Logger) TimeLog(label string, args ...any) {
	if label == "" {
		label = defaultLabel
	}
	l.each(func(s Sink) { s.TimeLog(label, args...) })
}

// Clear drops grouping, counters, timers, and unwritten entries
func (l *Logger) Clear() {
	l.each(func(s Sink) { s.Clear() })
}

// Flush writes every buffered sink now
func (l *Logger) Flush(ctx context.Context) error {
	var err error
	for _, s := range l.sinks {
		err = combineErrors(err, s.Flush(ctx))
	}
	return err
}

// Shutdown flushes and disables the logger. A logger that owns its
// registry also closes the shared destinations.
func (l *Logger) Shutdown(ctx context.Context) error {
	if !l.disabled.CompareAndSwap(false, true) {
		return nil
	}
	if l.owned {
		return l.registry.Close(ctx)
	}
	return l.Flush(ctx)
}

// Stats reports the buffered sinks behind this logger
func (l *Logger) Stats() []Stats {
	var out []Stats
	for _, s := range l.sinks {
		if st, ok := s.Stats(); ok {
			out = append(out, st)
		}
	}
	return out
}

// Modes lists the active sinks in resolution order
func (l *Logger) Modes() []Mode {
	return append([]Mode(nil), l.modes...)
}

// Debugging reports whether debug-only output is enabled
func (l *Logger) Debugging() bool {
	return l.debug
}

// Registry exposes the shared state this logger writes through
func (l *Logger) Registry() *Registry {
	return l.registry
}
