// FILE: lixenwraith/conlog/builder.go
package conlog

import (
	"io"
	"strings"
	"time"
)

// Builder provides a fluent API for building a logger with its own registry.
// Errors are accumulated and returned by Build.
type Builder struct {
	cfg  *Config
	opts []Option
	err  error
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates the registry and a logger that owns it; shutting the logger
// down closes every destination.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	reg, err := NewRegistry(b.cfg, b.opts...)
	if err != nil {
		return nil, err
	}

	logger := reg.NewLogger(nil)
	logger.owned = true
	return logger, nil
}

// FromConfig replaces every configuration value with a copy of cfg.
func (b *Builder) FromConfig(cfg *Config) *Builder {
	if cfg == nil {
		b.err = combineErrors(b.err, fmtErrorf("configuration cannot be nil"))
		return b
	}
	b.cfg = cfg.Clone()
	return b
}

// Config returns a copy of the configuration built so far
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// Modes selects the sinks.
func (b *Builder) Modes(modes ...Mode) *Builder {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	b.cfg.Modes = strings.Join(names, ",")
	return b
}

// ModesString selects the sinks from a comma separated list.
func (b *Builder) ModesString(list string) *Builder {
	b.cfg.Modes = list
	return b
}

// Debug enables Verbose and Dir output.
func (b *Builder) Debug(enabled bool) *Builder {
	b.cfg.Debug = enabled
	return b
}

// AppName sets the name used to resolve the platform log directory.
func (b *Builder) AppName(name string) *Builder {
	b.cfg.AppName = name
	return b
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// FileName sets the text log file name.
func (b *Builder) FileName(name string) *Builder {
	b.cfg.FileName = name
	return b
}

// DatabaseName sets the database file name.
func (b *Builder) DatabaseName(name string) *Builder {
	b.cfg.DatabaseName = name
	return b
}

// FlushInterval sets the quiet period before a batch is written.
func (b *Builder) FlushInterval(d time.Duration) *Builder {
	if b.err != nil {
		return b
	}
	if d < time.Millisecond {
		b.err = fmtErrorf("flush interval must be at least 1ms: %v", d)
		return b
	}
	b.cfg.FlushIntervalMs = d.Milliseconds()
	return b
}

// FlushIntervalMs sets the flush interval in milliseconds.
func (b *Builder) FlushIntervalMs(ms int64) *Builder {
	b.cfg.FlushIntervalMs = ms
	return b
}

// ConsoleTarget routes console output: split, stdout, or stderr.
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// ConsoleColor toggles level colors on terminals.
func (b *Builder) ConsoleColor(enabled bool) *Builder {
	b.cfg.ConsoleColor = enabled
	return b
}

// InternalErrorsToStderr sets whether to write internal errors to stderr.
func (b *Builder) InternalErrorsToStderr(enabled bool) *Builder {
	b.cfg.InternalErrorsToStderr = enabled
	return b
}

// Override applies "key=value" strings on top of the current values.
func (b *Builder) Override(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	cfg, err := b.cfg.ApplyOverride(overrides...)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg = cfg
	return b
}

// Clock sets the source of timestamps and timer readings.
func (b *Builder) Clock(c Clock) *Builder {
	b.opts = append(b.opts, WithClock(c))
	return b
}

// PathProvider sets how an empty directory is resolved.
func (b *Builder) PathProvider(p PathProvider) *Builder {
	b.opts = append(b.opts, WithPathProvider(p))
	return b
}

// ErrorHandler receives internal failures instead of stderr.
func (b *Builder) ErrorHandler(h ErrorHandler) *Builder {
	b.opts = append(b.opts, WithErrorHandler(h))
	return b
}

// ConsoleOutput replaces the process streams.
func (b *Builder) ConsoleOutput(out, errOut io.Writer) *Builder {
	b.opts = append(b.opts, WithConsoleOutput(out, errOut))
	return b
}
