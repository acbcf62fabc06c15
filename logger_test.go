// FILE: lixenwraith/conlog/logger_test.go
package conlog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/conlog/formatter"
)

var testEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

const testTimestamp = "2024-05-01T12:00:00.000Z"

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// syncBuffer is a bytes.Buffer safe for concurrent writers
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// errorCollector records internal errors
type errorCollector struct {
	mu   sync.Mutex
	errs []error
}

func (c *errorCollector) add(err error) {
	c.mu.Lock()
	c.errs = append(c.errs, err)
	c.mu.Unlock()
}

func (c *errorCollector) all() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

type testEnv struct {
	dir    string
	clock  *fakeClock
	out    *syncBuffer
	errOut *syncBuffer
	errs   *errorCollector
}

func newTestEnv(t testing.TB) *testEnv {
	return &testEnv{
		dir:    t.TempDir(),
		clock:  &fakeClock{now: testEpoch},
		out:    &syncBuffer{},
		errOut: &syncBuffer{},
		errs:   &errorCollector{},
	}
}

// builder starts from a long flush interval so tests flush explicitly
func (e *testEnv) builder() *Builder {
	return NewBuilder().
		Directory(e.dir).
		FlushInterval(time.Minute).
		ConsoleColor(false).
		Clock(e.clock).
		ErrorHandler(e.errs.add).
		ConsoleOutput(e.out, e.errOut)
}

func (e *testEnv) fileEntries(t testing.TB) []Entry {
	t.Helper()
	f, err := os.Open(filepath.Join(e.dir, "log.txt"))
	require.NoError(t, err)
	defer f.Close()
	entries, err := ReadFileEntries(f)
	require.NoError(t, err)
	return entries
}

func (e *testEnv) fileText(t testing.TB) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, "log.txt"))
	require.NoError(t, err)
	return string(data)
}

// createTestLogger creates logger for modes in temp directory
func createTestLogger(t testing.TB, modes string) (*Logger, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	logger, err := env.builder().ModesString(modes).Build()
	require.NoError(t, err)
	t.Cleanup(func() { logger.Shutdown(context.Background()) })
	return logger, env
}

func flush(t testing.TB, l *Logger) {
	t.Helper()
	require.NoError(t, l.Flush(context.Background()))
}

func messages(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}

func TestLoggerModes(t *testing.T) {
	tests := []struct {
		modes string
		want  []Mode
	}{
		{"", []Mode{ModeDefault}},
		{"console,file", []Mode{ModeConsole, ModeFile}},
		{"file,default", []Mode{ModeFile}},
		{"default,console", []Mode{ModeDefault, ModeConsole}},
		{"bogus", []Mode{ModeDefault}},
		{"sqlite, console", []Mode{ModeDatabase, ModeConsole}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.modes), func(t *testing.T) {
			logger, _ := createTestLogger(t, tt.modes)
			assert.Equal(t, tt.want, logger.Modes())
		})
	}
}

func TestLoggerFileMode(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	for i := 0; i < 3; i++ {
		logger.Info("hello %s", "world")
	}

	stats := logger.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].Pending)

	flush(t, logger)

	lines := strings.Split(strings.TrimSuffix(env.fileText(t), "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, "[info] - "+testTimestamp+" hello world", line)
	}

	stats = logger.Stats()
	assert.Equal(t, 0, stats[0].Pending)
	assert.Equal(t, uint64(1), stats[0].Flushes)
	assert.Equal(t, uint64(3), stats[0].EntriesWritten)
}

func TestLoggerDefaultModeErrorOnly(t *testing.T) {
	logger, env := createTestLogger(t, "")

	logger.Log("plain")
	logger.Info("info")
	logger.Warn("warn")
	logger.Debug("debug")
	logger.Error("boom %d", 1)

	stats := logger.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, ModeDefault, stats[0].Mode)
	assert.Equal(t, 1, stats[0].Pending)

	flush(t, logger)

	entries := env.fileEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, LevelError, entries[0].Level)
	assert.Equal(t, "boom 1", entries[0].Message)
	assert.True(t, strings.HasPrefix(entries[0].Stack, "boom 1\n    at "))
	assert.Contains(t, entries[0].Stack, "TestLoggerDefaultModeErrorOnly")
	assert.NotContains(t, entries[0].Stack, "(*recorder)")
}

func TestLoggerGroups(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	logger.Group("outer")
	logger.Log("one")
	logger.Group("inner", "x")
	logger.Log("two")
	logger.GroupEnd()
	logger.GroupEnd()
	logger.GroupEnd() // no open group
	logger.Log("three")
	flush(t, logger)

	entries := env.fileEntries(t)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Indent)
	assert.Equal(t, "outer", entries[0].Group)
	assert.Equal(t, 2, entries[1].Indent)
	assert.Equal(t, "inner x", entries[1].Group)
	assert.Equal(t, 0, entries[2].Indent)
	assert.Empty(t, entries[2].Group)

	text := env.fileText(t)
	assert.Contains(t, text, "[log] - "+testTimestamp+" [inner x] \t\ttwo\n")
	assert.Contains(t, text, "[log] - "+testTimestamp+" three\n")
}

func TestLoggerGroupWithoutLabel(t *testing.T) {
	logger, env := createTestLogger(t, "file,console")

	logger.Group()
	logger.Log("inside")
	logger.GroupEnd()
	flush(t, logger)

	entries := env.fileEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Indent)
	assert.Equal(t, defaultLabel, entries[0].Group)
	assert.Equal(t, "inside", entries[0].Message)

	assert.Contains(t, env.fileText(t), "[log] - "+testTimestamp+" [default] \tinside\n")
	// The console has no label line to print
	assert.Equal(t, consoleIndentUnit+"inside\n", env.out.String())
}

func TestLoggerGroupCollapsed(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	logger.GroupCollapsed("folded")
	logger.Log("inside")
	logger.GroupEnd()
	flush(t, logger)

	entries := env.fileEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Indent)
	assert.Equal(t, "folded", entries[0].Group)
}

func TestLoggerCount(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	logger.Count()
	logger.Count()
	logger.Count("pets")
	logger.CountReset()
	logger.Count()
	flush(t, logger)

	assert.Equal(t, []string{"default: 1", "default: 2", "pets: 1", "default: 1"}, messages(env.fileEntries(t)))
}

func TestLoggerTimers(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	logger.Time("load")
	env.clock.Advance(1500 * time.Millisecond)
	logger.TimeLog("load", "halfway", 2)
	env.clock.Advance(500 * time.Millisecond)
	logger.TimeEnd("load")
	logger.TimeEnd("load")
	flush(t, logger)

	entries := env.fileEntries(t)
	require.Len(t, entries, 4)
	assert.Equal(t, "load: 1500ms halfway 2", entries[0].Message)
	assert.Equal(t, "load: 2000ms - timer ended", entries[1].Message)

	assert.Equal(t, LevelError, entries[2].Level)
	assert.Equal(t, `Timer "load" doesn't exist.`, entries[2].Message)
	assert.NotEmpty(t, entries[2].Stack)

	assert.Equal(t, LevelLog, entries[3].Level)
	assert.Equal(t, "load: NaNms - timer ended", entries[3].Message)
}

func TestLoggerTimeRestart(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	logger.Time()
	env.clock.Advance(time.Second)
	logger.Time()
	env.clock.Advance(250 * time.Millisecond)
	logger.TimeEnd()
	flush(t, logger)

	assert.Equal(t, []string{"default: 250ms - timer ended"}, messages(env.fileEntries(t)))
}

func TestLoggerAssert(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	logger.Assert(true, "never shown")
	logger.Assert(false, nil)
	logger.Assert(false, "want %d got %d", 3, 4)
	flush(t, logger)

	entries := env.fileEntries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, "Assertion failed", entries[0].Message)
	assert.Equal(t, "Assertion failed: want 3 got 4", entries[1].Message)
	for _, e := range entries {
		assert.Equal(t, LevelError, e.Level)
		assert.Contains(t, e.Stack, "TestLoggerAssert")
	}
}

func TestLoggerTable(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	logger.Table([]int{1, 2, 3})
	flush(t, logger)

	entries := env.fileEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, formatter.BuildTable([]int{1, 2, 3}).Render(), entries[0].Message)

	lines := strings.Split(entries[0].Message, "\n")
	assert.Contains(t, lines[0], "(index)")
	assert.Contains(t, lines[0], "Values")
}

func TestLoggerClear(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	logger.Log("discarded")
	logger.Group("gone")
	logger.Count()
	logger.Time("t")
	logger.Clear()

	assert.Equal(t, 0, logger.Stats()[0].Pending)

	logger.Log("kept")
	logger.Count()
	logger.TimeEnd("t")
	flush(t, logger)

	entries := env.fileEntries(t)
	require.Len(t, entries, 4)
	assert.Equal(t, "kept", entries[0].Message)
	assert.Equal(t, 0, entries[0].Indent)
	assert.Equal(t, "default: 1", entries[1].Message)
	assert.Equal(t, `Timer "t" doesn't exist.`, entries[2].Message)
}

func TestLoggerDebugGating(t *testing.T) {
	type sprite struct {
		Name   string
		Frames int
	}

	t.Run("disabled", func(t *testing.T) {
		logger, env := createTestLogger(t, "file")
		logger.Verbose("hidden")
		logger.Dir(sprite{Name: "cat"})
		logger.Log("shown")
		flush(t, logger)

		assert.Equal(t, []string{"shown"}, messages(env.fileEntries(t)))
	})

	t.Run("enabled", func(t *testing.T) {
		env := newTestEnv(t)
		logger, err := env.builder().ModesString("file").Debug(true).Build()
		require.NoError(t, err)
		defer logger.Shutdown(context.Background())

		logger.Verbose("detail %d", 7)
		logger.Dir(sprite{Name: "cat", Frames: 4})
		flush(t, logger)

		entries := env.fileEntries(t)
		require.Len(t, entries, 2)
		assert.Equal(t, LevelVerbose, entries[0].Level)
		assert.Equal(t, "detail 7", entries[0].Message)
		assert.Equal(t, LevelLog, entries[1].Level)
		assert.Contains(t, entries[1].Message, `Name: (string) (len=3) "cat"`)
	})
}

func TestLoggerFatal(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	logger.Info("before")
	logger.Fatal("unrecoverable: %s", "disk")

	// Fatal writes synchronously, no explicit flush
	entries := env.fileEntries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, LevelFatal, entries[1].Level)
	assert.Equal(t, "unrecoverable: disk", entries[1].Message)
	assert.Contains(t, entries[1].Stack, "TestLoggerFatal")
}

func TestLoggerShutdown(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	logger.Info("pending")
	require.NoError(t, logger.Shutdown(context.Background()))

	assert.Equal(t, []string{"pending"}, messages(env.fileEntries(t)))

	// Dropped after shutdown
	logger.Info("late")
	assert.NoError(t, logger.Flush(context.Background()))
	assert.Equal(t, []string{"pending"}, messages(env.fileEntries(t)))

	// Second call is a no-op
	assert.NoError(t, logger.Shutdown(context.Background()))
}

func TestLoggerSharedRegistry(t *testing.T) {
	env := newTestEnv(t)
	cfg := DefaultConfig()
	cfg.Directory = env.dir
	cfg.FlushIntervalMs = time.Minute.Milliseconds()

	reg, err := NewRegistry(cfg, WithClock(env.clock), WithErrorHandler(env.errs.add))
	require.NoError(t, err)
	defer reg.Close(context.Background())

	fileCfg := cfg.Clone()
	fileCfg.Modes = "file"
	first := reg.NewLogger(fileCfg)
	second := reg.NewLogger(fileCfg)
	errorsOnly := reg.NewLogger(cfg)

	first.Group("shared")
	second.Log("from second")
	errorsOnly.Error("from default")
	errorsOnly.Info("filtered")
	first.GroupEnd()
	require.NoError(t, first.Flush(context.Background()))

	entries := env.fileEntries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, "from second", entries[0].Message)
	assert.Equal(t, 1, entries[0].Indent)
	assert.Equal(t, "from default", entries[1].Message)
	assert.Equal(t, "shared", entries[1].Group)
}

// panicSink fails every call
type panicSink struct {
	Sink
}

func (panicSink) Mode() Mode                  { return Mode("panic") }
func (panicSink) Log(Level, any, ...any)      { panic("sink exploded") }
func (panicSink) Flush(context.Context) error { return nil }
func (panicSink) Stats() (Stats, bool)        { return Stats{}, false }

func TestLoggerSinkPanicIsolated(t *testing.T) {
	logger, env := createTestLogger(t, "file")
	logger.sinks = append([]Sink{panicSink{}}, logger.sinks...)

	assert.NotPanics(t, func() { logger.Info("survives") })
	flush(t, logger)

	assert.Equal(t, []string{"survives"}, messages(env.fileEntries(t)))
	errs := env.errs.all()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "panic sink panicked: sink exploded")
}

func TestLoggerConsoleMode(t *testing.T) {
	logger, env := createTestLogger(t, "console")

	logger.Log("a")
	logger.Group("g")
	logger.Warn("w")
	logger.Error("e")
	logger.GroupEnd()
	logger.Info("b")

	assert.Equal(t, "a\ng\nb\n", env.out.String())
	assert.Equal(t, "  w\n  e\n", env.errOut.String())
	assert.Empty(t, logger.Stats())
}

func TestLoggerConcurrency(t *testing.T) {
	logger, env := createTestLogger(t, "file")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				logger.Info("worker %d message %d", id, j)
			}
		}(i)
	}
	wg.Wait()
	flush(t, logger)

	assert.Len(t, env.fileEntries(t), 1000)
}

func TestLoggerDebounce(t *testing.T) {
	env := newTestEnv(t)
	logger, err := env.builder().ModesString("file").FlushInterval(30 * time.Millisecond).Build()
	require.NoError(t, err)
	defer logger.Shutdown(context.Background())

	for i := 0; i < 20; i++ {
		logger.Info("burst %d", i)
	}

	require.Eventually(t, func() bool {
		return logger.Stats()[0].Flushes == 1
	}, 2*time.Second, 5*time.Millisecond)

	stats := logger.Stats()[0]
	assert.Equal(t, uint64(20), stats.EntriesWritten)
	assert.Equal(t, 0, stats.Pending)
	assert.Len(t, env.fileEntries(t), 20)
}
