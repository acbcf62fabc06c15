// FILE: lixenwraith/conlog/registry.go
package conlog

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Registry owns the process-wide sink state. Loggers created from one
// registry share a single instance of each sink, so groups, counters,
// timers, and pending batches are common to all of them. The file and
// default modes share one destination.
type Registry struct {
	cfg      *Config
	dir      string
	clock    Clock
	paths    PathProvider
	handler  ErrorHandler
	out      io.Writer
	errOut   io.Writer
	reporter *reporter

	mu       sync.Mutex
	sinks    map[Mode]Sink
	fileDest *fileDestination
	dbDest   *databaseDestination
	closed   bool
}

// Option customizes a Registry
type Option func(*Registry)

// WithClock sets the source of entry timestamps and timer readings
func WithClock(c Clock) Option {
	return func(r *Registry) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithPathProvider sets how the log directory is resolved when the
// configuration leaves it empty
func WithPathProvider(p PathProvider) Option {
	return func(r *Registry) {
		if p != nil {
			r.paths = p
		}
	}
}

// WithErrorHandler receives internal failures instead of stderr
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Registry) {
		r.handler = h
	}
}

// WithConsoleOutput replaces the process streams used by the console sink
// and for internal error lines
func WithConsoleOutput(out, errOut io.Writer) Option {
	return func(r *Registry) {
		if out != nil {
			r.out = out
		}
		if errOut != nil {
			r.errOut = errOut
		}
	}
}

// NewRegistry validates the configuration and prepares the log directory.
// Sinks are created on first use.
func NewRegistry(cfg *Config, opts ...Option) (*Registry, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.Clone()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		cfg:    cfg,
		clock:  systemClock{},
		paths:  PlatformDirs{AppName: cfg.AppName},
		out:    os.Stdout,
		errOut: os.Stderr,
		sinks:  make(map[Mode]Sink),
	}
	for _, opt := range opts {
		opt(r)
	}

	dir := cfg.Directory
	if dir == "" {
		var err error
		if dir, err = r.paths.LogDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmtErrorf("failed to create log directory '%s': %w", dir, err)
	}
	r.dir = dir

	r.reporter = newReporter(r.handler, cfg.InternalErrorsToStderr, r.errOut)
	return r, nil
}

// Dir is the resolved log directory
func (r *Registry) Dir() string {
	return r.dir
}

// FilePath is the text log location
func (r *Registry) FilePath() string {
	return filepath.Join(r.dir, r.cfg.FileName)
}

// DatabasePath is the embedded store location
func (r *Registry) DatabasePath() string {
	return filepath.Join(r.dir, r.cfg.DatabaseName)
}

// Sink returns the shared sink for mode, creating it on first use
func (r *Registry) Sink(mode Mode) (Sink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, fmtErrorf("registry is closed")
	}
	if s, ok := r.sinks[mode]; ok {
		return s, nil
	}

	var s Sink
	switch mode {
	case ModeConsole:
		s = newConsoleSink(r.out, r.errOut, r.cfg, r.clock, r.reporter.report)
	case ModeFile, ModeDefault:
		if r.fileDest == nil {
			r.fileDest = newFileDestination(r.FilePath(), r.cfg, r.reporter.report)
		}
		s = newFileSink(r.fileDest, r.clock, mode == ModeDefault)
	case ModeDatabase:
		if r.dbDest == nil {
			r.dbDest = newDatabaseDestination(r.DatabasePath(), r.cfg, r.reporter.report)
		}
		s = newDatabaseSink(r.dbDest, r.clock)
	default:
		return nil, fmtErrorf("unknown sink mode '%s'", mode)
	}
	r.sinks[mode] = s
	return s, nil
}

// NewLogger builds a facade over the sinks named by cfg.Modes. Modes are
// resolved once; a nil cfg uses the registry's own configuration.
func (r *Registry) NewLogger(cfg *Config) *Logger {
	if cfg == nil {
		cfg = r.cfg
	}
	modes := resolveModes(ParseModes(cfg.Modes))

	l := &Logger{
		registry: r,
		debug:    cfg.Debug,
	}
	for _, mode := range modes {
		s, err := r.Sink(mode)
		if err != nil {
			r.reporter.report(err)
			continue
		}
		l.sinks = append(l.sinks, s)
		l.modes = append(l.modes, mode)
	}
	return l
}

// resolveModes drops the default view when the file sink is also selected,
// since both would otherwise push the same groups and counters twice
func resolveModes(modes []Mode) []Mode {
	hasFile := false
	for _, m := range modes {
		if m == ModeFile {
			hasFile = true
		}
	}
	if !hasFile {
		return modes
	}
	out := modes[:0:0]
	for _, m := range modes {
		if m != ModeDefault {
			out = append(out, m)
		}
	}
	return out
}

// Stats reports every buffered destination created so far
func (r *Registry) Stats() []Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Stats
	if r.fileDest != nil {
		out = append(out, r.fileDest.pipeline.snapshot(ModeFile))
	}
	if r.dbDest != nil {
		out = append(out, r.dbDest.pipeline.snapshot(ModeDatabase))
	}
	return out
}

// Close writes everything pending and stops all destinations.
// Entries logged afterwards are counted as dropped.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	fileDest, dbDest := r.fileDest, r.dbDest
	r.mu.Unlock()

	var err error
	if fileDest != nil {
		err = combineErrors(err, fileDest.pipeline.close(ctx))
	}
	if dbDest != nil {
		err = combineErrors(err, dbDest.pipeline.close(ctx))
	}
	return err
}
