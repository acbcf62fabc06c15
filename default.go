// FILE: lixenwraith/conlog/default.go
package conlog

import (
	"context"
	"sync"
	"sync/atomic"
)

// Process-wide registry and the logger behind the package-level functions
var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
	defaultLogger   atomic.Pointer[Logger]
)

func init() {
	defaultLogger.Store(&Logger{})
}

// processRegistry returns the process registry, creating it from cfg on first use.
// Callers hold defaultMu.
func processRegistry(cfg *Config, opts []Option) (*Registry, error) {
	if defaultRegistry != nil {
		return defaultRegistry, nil
	}
	reg, err := NewRegistry(cfg, opts...)
	if err != nil {
		return nil, err
	}
	defaultRegistry = reg
	return reg, nil
}

// Init installs a logger for cfg behind the package-level functions. The
// first call creates the process registry from cfg and opts; later calls
// reuse it and only change which sinks the default logger uses.
func Init(cfg *Config, opts ...Option) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()

	reg, err := processRegistry(cfg, opts)
	if err != nil {
		return err
	}
	defaultLogger.Store(reg.NewLogger(cfg))
	return nil
}

// New returns a logger over the process registry. Every logger built this
// way shares sink state with the package-level functions.
func New(cfg *Config, opts ...Option) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()

	reg, err := processRegistry(cfg, opts)
	if err != nil {
		return nil, err
	}
	return reg.NewLogger(cfg), nil
}

// Default returns the logger behind the package-level functions. Before
// Init it has no sinks and drops everything.
func Default() *Logger {
	return defaultLogger.Load()
}

// Shutdown closes the process registry. Package-level calls are dropped
// until the next Init.
func Shutdown(ctx context.Context) error {
	defaultMu.Lock()
	reg := defaultRegistry
	defaultRegistry = nil
	prev := defaultLogger.Swap(&Logger{})
	defaultMu.Unlock()

	prev.disabled.Store(true)
	if reg == nil {
		return nil
	}
	return reg.Close(ctx)
}

// Flush writes every buffered sink of the default logger
func Flush(ctx context.Context) error {
	return Default().Flush(ctx)
}

// Log records a message at log level
func Log(msg any, args ...any) {
	Default().Log(msg, args...)
}

// Info records a message at info level
func Info(msg any, args ...any) {
	Default().Info(msg, args...)
}

// Warn records a message at warn level
func Warn(msg any, args ...any) {
	Default().Warn(msg, args...)
}

// Error records a message with the caller's stack
func Error(msg any, args ...any) {
	Default().Error(msg, args...)
}

// Debug records a message at debug level
func Debug(msg any, args ...any) {
	Default().Debug(msg, args...)
}

// Verbose records only in debug mode
func Verbose(msg any, args ...any) {
	Default().Verbose(msg, args...)
}

// Fatal records a message and writes every buffered sink
func Fatal(msg any, args ...any) {
	Default().Fatal(msg, args...)
}

func Dir(v any) {
	Default().Dir(v)
}

func Assert(condition bool, msg any, args ...any) {
	Default().Assert(condition, msg, args...)
}

func Table(data any, columns ...string) {
	Default().Table(data, columns...)
}

func Group(labels ...string) {
	Default().Group(labels...)
}

func GroupCollapsed(labels ...string) {
	Default().GroupCollapsed(labels...)
}

func GroupEnd() {
	Default().GroupEnd()
}

func Count(label ...string) {
	Default().Count(label...)
}

func CountReset(label ...string) {
	Default().CountReset(label...)
}

func Time(label ...string) {
	Default().Time(label...)
}

func TimeEnd(label ...string) {
	Default().TimeEnd(label...)
}

func TimeLog(label string, args ...any) {
	Default().TimeLog(label, args...)
}

func Clear() {
	Default().Clear()
}
