// FILE: lixenwraith/conlog/constant.go
package conlog

import (
	"time"
)

// Level is the severity of an entry
type Level int64

// Log level constants, ordered by severity
const (
	LevelVerbose Level = -8
	LevelDebug   Level = -4
	LevelLog     Level = 0
	LevelInfo    Level = 2
	LevelWarn    Level = 4
	LevelError   Level = 8
	LevelFatal   Level = 12
)

// Mode names a sink selectable from configuration
type Mode string

// Sink modes
const (
	ModeDefault  Mode = "default"  // error-only view of the file sink
	ModeConsole  Mode = "console"  // immediate passthrough to stdout/stderr
	ModeFile     Mode = "file"     // batched append to the text log
	ModeDatabase Mode = "database" // batched insert into the embedded store
)

// Destinations and timing
const (
	// Debounce window between the last append and the flush
	defaultFlushInterval = 10 * time.Second
	// Bound on the synchronous write after a fatal entry
	fatalFlushTimeout = 5 * time.Second
	// Multi-row INSERT chunk, keeps bound variables under SQLite's limit
	insertChunkRows = 500
	// Indentation units per group level
	fileIndentUnit    = "\t"
	consoleIndentUnit = "  "
	// Default label for counters
	defaultLabel = "default"
	// Entry timestamps, ISO-8601 UTC with millisecond precision
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Internal error reporting
const (
	// Sustained rate and burst of internal error lines written to stderr
	internalErrorRate  = 1.0
	internalErrorBurst = 5
)
